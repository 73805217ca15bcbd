// Package store holds the Store aggregate. A store owns its integration
// records; only the aggregate adds or removes them.
package store

import (
	"strings"
	"unicode/utf8"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Store is a merchant storefront
type Store struct {
	shared.BaseEntity
	shared.SoftDeletable
	Name                  string
	OwnerID               uuid.UUID
	EcommerceIntegrations []*integration.EcommerceIntegration
	CourierIntegrations   []*integration.CourierIntegration
}

// NewStore creates a store without integrations
func NewStore(name string, ownerID uuid.UUID) (*Store, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Store owner cannot be empty")
	}
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	return &Store{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		OwnerID:    ownerID,
	}, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", shared.NewDomainError("INVALID_NAME", "Store name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 100 {
		return "", shared.NewDomainError("INVALID_NAME", "Store name cannot exceed 100 characters")
	}
	return name, nil
}

// IsOwnedBy reports whether userID owns the store
func (s *Store) IsOwnedBy(userID uuid.UUID) bool {
	return s.OwnerID == userID
}

// Rename changes the store name
func (s *Store) Rename(name string) error {
	if s.Deleted {
		return shared.NewInvalidStateError("Store is deleted")
	}
	name, err := validateName(name)
	if err != nil {
		return err
	}
	s.Name = name
	s.Touch()
	return nil
}

// SoftDelete hides the store. Stores are never removed.
func (s *Store) SoftDelete() error {
	if !s.MarkDeleted() {
		return shared.NewInvalidStateError("Store is already deleted")
	}
	s.Touch()
	return nil
}

// AddEcommerceIntegration appends a record at the end of the store's list
func (s *Store) AddEcommerceIntegration(rec *integration.EcommerceIntegration) error {
	if err := s.checkOwnedRecord(rec.StoreID); err != nil {
		return err
	}
	rec.Position = 0
	if n := len(s.EcommerceIntegrations); n > 0 {
		rec.Position = s.EcommerceIntegrations[n-1].Position + 1
	}
	s.EcommerceIntegrations = append(s.EcommerceIntegrations, rec)
	s.Touch()
	return nil
}

// AddCourierIntegration appends a record at the end of the store's list
func (s *Store) AddCourierIntegration(rec *integration.CourierIntegration) error {
	if err := s.checkOwnedRecord(rec.StoreID); err != nil {
		return err
	}
	rec.Position = 0
	if n := len(s.CourierIntegrations); n > 0 {
		rec.Position = s.CourierIntegrations[n-1].Position + 1
	}
	s.CourierIntegrations = append(s.CourierIntegrations, rec)
	s.Touch()
	return nil
}

// RemoveEcommerceIntegration drops a record from the store's list
func (s *Store) RemoveEcommerceIntegration(id uuid.UUID) (*integration.EcommerceIntegration, error) {
	for i, rec := range s.EcommerceIntegrations {
		if rec.ID == id {
			s.EcommerceIntegrations = append(s.EcommerceIntegrations[:i:i], s.EcommerceIntegrations[i+1:]...)
			s.Touch()
			return rec, nil
		}
	}
	return nil, shared.NewNotFoundError("E-commerce integration")
}

// RemoveCourierIntegration drops a record from the store's list
func (s *Store) RemoveCourierIntegration(id uuid.UUID) (*integration.CourierIntegration, error) {
	for i, rec := range s.CourierIntegrations {
		if rec.ID == id {
			s.CourierIntegrations = append(s.CourierIntegrations[:i:i], s.CourierIntegrations[i+1:]...)
			s.Touch()
			return rec, nil
		}
	}
	return nil, shared.NewNotFoundError("Courier integration")
}

// EcommerceIntegration finds one of the store's e-commerce records
func (s *Store) EcommerceIntegration(id uuid.UUID) (*integration.EcommerceIntegration, error) {
	for _, rec := range s.EcommerceIntegrations {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, shared.NewNotFoundError("E-commerce integration")
}

// CourierIntegration finds one of the store's courier records
func (s *Store) CourierIntegration(id uuid.UUID) (*integration.CourierIntegration, error) {
	for _, rec := range s.CourierIntegrations {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, shared.NewNotFoundError("Courier integration")
}

func (s *Store) checkOwnedRecord(storeID uuid.UUID) error {
	if s.Deleted {
		return shared.NewInvalidStateError("Store is deleted")
	}
	if storeID != s.ID {
		return shared.NewDomainError("INVALID_STORE", "Integration belongs to another store")
	}
	return nil
}
