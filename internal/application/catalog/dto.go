package catalog

import (
	"time"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/catalog"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductListFilter narrows GET /stores/:id/products
type ProductListFilter struct {
	Search    string `form:"search" binding:"max=200"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=name local_product_id price stock brand created_at updated_at"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

func (f ProductListFilter) toDomain() shared.Filter {
	out := shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.SortBy,
		OrderDir: f.SortOrder,
		Search:   f.Search,
	}
	if out.OrderBy == "" {
		out.OrderBy = "local_product_id"
		if out.OrderDir == "" {
			out.OrderDir = "asc"
		}
	}
	return out.Normalize()
}

// ThirdPartyTagResponse names the integration a product came from
type ThirdPartyTagResponse struct {
	IntegrationID   uuid.UUID `json:"integration_id"`
	RemoteProductID string    `json:"remote_product_id"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             uuid.UUID               `json:"id"`
	StoreID        uuid.UUID               `json:"store_id"`
	LocalProductID int64                   `json:"local_product_id"`
	Name           string                  `json:"name"`
	Price          decimal.Decimal         `json:"price"`
	Tag            string                  `json:"tag,omitempty"`
	Description    string                  `json:"description,omitempty"`
	Brand          string                  `json:"brand,omitempty"`
	Stock          int                     `json:"stock"`
	CreatedBy      uuid.UUID               `json:"created_by"`
	ThirdPartyTags []ThirdPartyTagResponse `json:"third_party_tags"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// ToProductResponse converts a domain product
func ToProductResponse(p *catalog.Product) ProductResponse {
	tags := make([]ThirdPartyTagResponse, len(p.ThirdPartyTags))
	for i, t := range p.ThirdPartyTags {
		tags[i] = ThirdPartyTagResponse{IntegrationID: t.IntegrationID, RemoteProductID: t.RemoteProductID}
	}
	return ProductResponse{
		ID:             p.ID,
		StoreID:        p.StoreID,
		LocalProductID: p.LocalProductID,
		Name:           p.Name,
		Price:          p.Price,
		Tag:            p.Tag,
		Description:    p.Description,
		Brand:          p.Brand,
		Stock:          p.Stock,
		CreatedBy:      p.CreatedBy,
		ThirdPartyTags: tags,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToProductResponses converts a listing page
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}
