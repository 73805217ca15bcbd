package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Column widths, counted in characters
const (
	MaxNameLength            = 200
	MaxTagLength             = 100
	MaxBrandLength           = 100
	MaxRemoteProductIDLength = 100
)

// ThirdPartyTag records which integration a product came from and its id there
type ThirdPartyTag struct {
	IntegrationID   uuid.UUID
	RemoteProductID string
}

// Product is a store product. (StoreID, Name) is unique.
type Product struct {
	shared.BaseEntity
	shared.SoftDeletable
	StoreID        uuid.UUID
	CreatedBy      uuid.UUID
	LocalProductID int64
	Name           string
	Price          decimal.Decimal
	Tag            string
	Description    string
	Brand          string
	Stock          int
	ThirdPartyTags []ThirdPartyTag
}

// ProductDetails carries the mutable product attributes
type ProductDetails struct {
	Price       decimal.Decimal
	Tag         string
	Description string
	Brand       string
	Stock       int
}

// NewProduct creates a product under a store
func NewProduct(storeID, createdBy uuid.UUID, name string, details ProductDetails) (*Product, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return nil, shared.NewDomainError("INVALID_NAME", fmt.Sprintf("Product name cannot exceed %d characters", MaxNameLength))
	}
	if err := details.validate(); err != nil {
		return nil, err
	}

	p := &Product{
		BaseEntity: shared.NewBaseEntity(),
		StoreID:    storeID,
		CreatedBy:  createdBy,
		Name:       name,
	}
	p.apply(details)
	return p, nil
}

func (d ProductDetails) validate() error {
	if d.Price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if utf8.RuneCountInString(d.Tag) > MaxTagLength {
		return shared.NewDomainError("INVALID_TAG", fmt.Sprintf("Tag cannot exceed %d characters", MaxTagLength))
	}
	if utf8.RuneCountInString(d.Brand) > MaxBrandLength {
		return shared.NewDomainError("INVALID_BRAND", fmt.Sprintf("Brand cannot exceed %d characters", MaxBrandLength))
	}
	return nil
}

func (p *Product) apply(d ProductDetails) {
	p.Price = d.Price
	p.Tag = d.Tag
	p.Description = d.Description
	p.Brand = d.Brand
	p.Stock = d.Stock
	if p.Stock < 0 {
		p.Stock = 0
	}
}

// UpdateDetails overwrites price, stock and the descriptive fields
func (p *Product) UpdateDetails(d ProductDetails) error {
	if err := d.validate(); err != nil {
		return err
	}
	p.apply(d)
	p.Touch()
	return nil
}

// ValidateRemoteProductID checks an integration's product id fits a third
// party tag
func ValidateRemoteProductID(remoteID string) error {
	if utf8.RuneCountInString(remoteID) > MaxRemoteProductIDLength {
		return shared.NewDomainError("INVALID_REMOTE_ID",
			fmt.Sprintf("Remote product ID cannot exceed %d characters", MaxRemoteProductIDLength))
	}
	return nil
}

// AddThirdPartyTag records provenance. Returns false if the integration is
// already tagged.
func (p *Product) AddThirdPartyTag(integrationID uuid.UUID, remoteID string) bool {
	if p.HasThirdPartyTag(integrationID) {
		return false
	}
	p.ThirdPartyTags = append(p.ThirdPartyTags, ThirdPartyTag{
		IntegrationID:   integrationID,
		RemoteProductID: remoteID,
	})
	return true
}

// HasThirdPartyTag reports whether the product is tagged for the integration
func (p *Product) HasThirdPartyTag(integrationID uuid.UUID) bool {
	for _, t := range p.ThirdPartyTags {
		if t.IntegrationID == integrationID {
			return true
		}
	}
	return false
}
