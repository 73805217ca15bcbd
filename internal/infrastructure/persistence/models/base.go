package models

import (
	"time"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// SoftDeleteModel holds the soft-delete columns. Repositories filter on
// Deleted explicitly.
type SoftDeleteModel struct {
	Deleted   bool       `gorm:"not null;default:false;index"`
	DeletedAt *time.Time `gorm:"column:deleted_at"`
}

// ToDomain converts SoftDeleteModel to the domain type
func (m *SoftDeleteModel) ToDomain() shared.SoftDeletable {
	return shared.SoftDeletable{Deleted: m.Deleted, DeletedAt: m.DeletedAt}
}

// FromDomainSoftDeletable populates SoftDeleteModel from the domain type
func (m *SoftDeleteModel) FromDomainSoftDeletable(s shared.SoftDeletable) {
	m.Deleted = s.Deleted
	m.DeletedAt = s.DeletedAt
}
