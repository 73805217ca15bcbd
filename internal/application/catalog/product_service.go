// Package catalog holds the read side of store products. Products are only
// created by storefront reconciliation.
package catalog

import (
	"context"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/catalog"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductService handles product queries
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// List returns a page of the store's products
func (s *ProductService) List(ctx context.Context, storeID uuid.UUID, filter ProductListFilter) (shared.Paginated[ProductResponse], error) {
	f := filter.toDomain()
	products, total, err := s.productRepo.ListByStore(ctx, storeID, f)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	return shared.NewPaginated(ToProductResponses(products), total, f.Page, f.PageSize), nil
}
