package models

import (
	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/store"
	"github.com/google/uuid"
)

// StoreModel is the persistence model for the Store aggregate
type StoreModel struct {
	BaseModel
	SoftDeleteModel
	Name                  string                      `gorm:"type:varchar(100);not null"`
	OwnerID               uuid.UUID                   `gorm:"type:uuid;not null;index"`
	EcommerceIntegrations []EcommerceIntegrationModel `gorm:"foreignKey:StoreID"`
	CourierIntegrations   []CourierIntegrationModel   `gorm:"foreignKey:StoreID"`
}

// TableName returns the table name for GORM
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts the model to a Store. Integration tokens are left as
// stored; the repository opens them.
func (m *StoreModel) ToDomain() *store.Store {
	s := &store.Store{
		BaseEntity:    m.BaseModel.ToDomain(),
		SoftDeletable: m.SoftDeleteModel.ToDomain(),
		Name:          m.Name,
		OwnerID:       m.OwnerID,
	}
	for i := range m.EcommerceIntegrations {
		s.EcommerceIntegrations = append(s.EcommerceIntegrations, m.EcommerceIntegrations[i].ToDomain())
	}
	for i := range m.CourierIntegrations {
		s.CourierIntegrations = append(s.CourierIntegrations, m.CourierIntegrations[i].ToDomain())
	}
	return s
}

// StoreModelFromDomain converts a Store without its integrations
func StoreModelFromDomain(s *store.Store) *StoreModel {
	m := &StoreModel{
		Name:    s.Name,
		OwnerID: s.OwnerID,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	m.FromDomainSoftDeletable(s.SoftDeletable)
	return m
}

// EcommerceIntegrationModel is the persistence model for EcommerceIntegration
type EcommerceIntegrationModel struct {
	BaseModel
	StoreID  uuid.UUID `gorm:"type:uuid;not null;index:idx_ecommerce_integrations_store_position,priority:1"`
	Title    string    `gorm:"type:varchar(100);not null"`
	Provider string    `gorm:"type:varchar(50);not null"`
	Email    string    `gorm:"type:varchar(255)"`
	BaseURL  string    `gorm:"column:base_url;type:varchar(500);not null"`
	Token    string    `gorm:"type:text"`
	Position int       `gorm:"not null;default:0;index:idx_ecommerce_integrations_store_position,priority:2"`
}

// TableName returns the table name for GORM
func (EcommerceIntegrationModel) TableName() string {
	return "ecommerce_integrations"
}

// ToDomain converts the model to an EcommerceIntegration
func (m *EcommerceIntegrationModel) ToDomain() *integration.EcommerceIntegration {
	return &integration.EcommerceIntegration{
		BaseEntity: m.BaseModel.ToDomain(),
		StoreID:    m.StoreID,
		Title:      m.Title,
		Provider:   integration.ProviderCode(m.Provider),
		Email:      m.Email,
		BaseURL:    m.BaseURL,
		Token:      m.Token,
		Position:   m.Position,
	}
}

// EcommerceIntegrationModelFromDomain converts an EcommerceIntegration
func EcommerceIntegrationModelFromDomain(rec *integration.EcommerceIntegration) *EcommerceIntegrationModel {
	m := &EcommerceIntegrationModel{
		StoreID:  rec.StoreID,
		Title:    rec.Title,
		Provider: rec.Provider.String(),
		Email:    rec.Email,
		BaseURL:  rec.BaseURL,
		Token:    rec.Token,
		Position: rec.Position,
	}
	m.FromDomainBaseEntity(rec.BaseEntity)
	return m
}

// CourierIntegrationModel is the persistence model for CourierIntegration
type CourierIntegrationModel struct {
	BaseModel
	StoreID    uuid.UUID `gorm:"type:uuid;not null;index:idx_courier_integrations_store_position,priority:1"`
	Title      string    `gorm:"type:varchar(100);not null"`
	Provider   string    `gorm:"type:varchar(50);not null"`
	Credential string    `gorm:"type:text"`
	BaseURL    string    `gorm:"column:base_url;type:varchar(500);not null"`
	Token      string    `gorm:"type:text"`
	Position   int       `gorm:"not null;default:0;index:idx_courier_integrations_store_position,priority:2"`
}

// TableName returns the table name for GORM
func (CourierIntegrationModel) TableName() string {
	return "courier_integrations"
}

// ToDomain converts the model to a CourierIntegration
func (m *CourierIntegrationModel) ToDomain() *integration.CourierIntegration {
	return &integration.CourierIntegration{
		BaseEntity: m.BaseModel.ToDomain(),
		StoreID:    m.StoreID,
		Title:      m.Title,
		Provider:   integration.ProviderCode(m.Provider),
		Credential: m.Credential,
		BaseURL:    m.BaseURL,
		Token:      m.Token,
		Position:   m.Position,
	}
}

// CourierIntegrationModelFromDomain converts a CourierIntegration
func CourierIntegrationModelFromDomain(rec *integration.CourierIntegration) *CourierIntegrationModel {
	m := &CourierIntegrationModel{
		StoreID:    rec.StoreID,
		Title:      rec.Title,
		Provider:   rec.Provider.String(),
		Credential: rec.Credential,
		BaseURL:    rec.BaseURL,
		Token:      rec.Token,
		Position:   rec.Position,
	}
	m.FromDomainBaseEntity(rec.BaseEntity)
	return m
}
