package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the identity and timestamps shared by stores,
// integration records, products and orders
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// Touch bumps UpdatedAt
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SoftDeletable marks records that are hidden instead of removed.
type SoftDeletable struct {
	Deleted   bool
	DeletedAt *time.Time
}

// IsDeleted reports whether the record was soft-deleted
func (s *SoftDeletable) IsDeleted() bool {
	return s.Deleted
}

// MarkDeleted soft-deletes the record. Returns false if it was already deleted.
func (s *SoftDeletable) MarkDeleted() bool {
	if s.Deleted {
		return false
	}
	now := time.Now()
	s.Deleted = true
	s.DeletedAt = &now
	return true
}
