package models

import (
	"time"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product entity.
// (store_id, name) and (store_id, local_product_id) are unique.
type ProductModel struct {
	BaseModel
	SoftDeleteModel
	StoreID        uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_products_store_name,priority:1;uniqueIndex:idx_products_store_local_id,priority:1"`
	Name           string                      `gorm:"type:varchar(200);not null;uniqueIndex:idx_products_store_name,priority:2"`
	LocalProductID int64                       `gorm:"not null;uniqueIndex:idx_products_store_local_id,priority:2"`
	CreatedBy      uuid.UUID                   `gorm:"type:uuid"`
	Price          decimal.Decimal             `gorm:"type:decimal(18,4);not null;default:0"`
	Tag            string                      `gorm:"type:varchar(100)"`
	Description    string                      `gorm:"type:text"`
	Brand          string                      `gorm:"type:varchar(100)"`
	Stock          int                         `gorm:"not null;default:0"`
	ThirdPartyTags []ProductThirdPartyTagModel `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a Product
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseEntity:     m.BaseModel.ToDomain(),
		SoftDeletable:  m.SoftDeleteModel.ToDomain(),
		StoreID:        m.StoreID,
		CreatedBy:      m.CreatedBy,
		LocalProductID: m.LocalProductID,
		Name:           m.Name,
		Price:          m.Price,
		Tag:            m.Tag,
		Description:    m.Description,
		Brand:          m.Brand,
		Stock:          m.Stock,
	}
	for _, t := range m.ThirdPartyTags {
		p.ThirdPartyTags = append(p.ThirdPartyTags, catalog.ThirdPartyTag{
			IntegrationID:   t.IntegrationID,
			RemoteProductID: t.RemoteProductID,
		})
	}
	return p
}

// ProductModelFromDomain converts a Product without its tags
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		StoreID:        p.StoreID,
		Name:           p.Name,
		LocalProductID: p.LocalProductID,
		CreatedBy:      p.CreatedBy,
		Price:          p.Price,
		Tag:            p.Tag,
		Description:    p.Description,
		Brand:          p.Brand,
		Stock:          p.Stock,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	m.FromDomainSoftDeletable(p.SoftDeletable)
	return m
}

// TagModelsFromDomain converts a product's third-party tags
func TagModelsFromDomain(p *catalog.Product) []ProductThirdPartyTagModel {
	tags := make([]ProductThirdPartyTagModel, 0, len(p.ThirdPartyTags))
	for _, t := range p.ThirdPartyTags {
		tags = append(tags, ProductThirdPartyTagModel{
			ID:              uuid.New(),
			ProductID:       p.ID,
			IntegrationID:   t.IntegrationID,
			RemoteProductID: t.RemoteProductID,
			CreatedAt:       time.Now(),
		})
	}
	return tags
}

// ProductThirdPartyTagModel records (integration, remote product id) for a
// product. integration_id has no foreign key so removing an integration keeps
// the provenance.
type ProductThirdPartyTagModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_tags_product_integration,priority:1"`
	IntegrationID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_tags_product_integration,priority:2;index"`
	RemoteProductID string    `gorm:"type:varchar(100);not null"`
	CreatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductThirdPartyTagModel) TableName() string {
	return "product_third_party_tags"
}

// ProductCounterModel holds the last LocalProductID handed out per store
type ProductCounterModel struct {
	StoreID       uuid.UUID `gorm:"type:uuid;primary_key"`
	LastProductID int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductCounterModel) TableName() string {
	return "product_counters"
}
