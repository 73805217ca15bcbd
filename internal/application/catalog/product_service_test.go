package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/catalog"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByStoreAndName(ctx context.Context, storeID uuid.UUID, name string) (*catalog.Product, error) {
	args := m.Called(ctx, storeID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) CreateIfAbsent(ctx context.Context, product *catalog.Product) (bool, error) {
	args := m.Called(ctx, product)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) ListByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func TestProductService_List(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)
	storeID := uuid.New()
	integrationID := uuid.New()

	p, err := catalog.NewProduct(storeID, uuid.New(), "Kettle", catalog.ProductDetails{Price: decimal.NewFromInt(25), Stock: 4})
	require.NoError(t, err)
	p.LocalProductID = 1
	p.AddThirdPartyTag(integrationID, "r-1")

	repo.On("ListByStore", mock.Anything, storeID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.OrderBy == "local_product_id" && f.OrderDir == "asc" && f.Page == 1 && f.PageSize == 20 && f.Search == "ket"
	})).Return([]catalog.Product{*p}, int64(1), nil)

	page, err := svc.List(context.Background(), storeID, ProductListFilter{Search: "ket"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.Items[0].LocalProductID)
	assert.True(t, decimal.NewFromInt(25).Equal(page.Items[0].Price))
	require.Len(t, page.Items[0].ThirdPartyTags, 1)
	assert.Equal(t, integrationID, page.Items[0].ThirdPartyTags[0].IntegrationID)
	repo.AssertExpectations(t)
}

func TestProductService_List_Sorting(t *testing.T) {
	tests := []struct {
		name    string
		filter  ProductListFilter
		wantBy  string
		wantDir string
	}{
		{"default", ProductListFilter{}, "local_product_id", "asc"},
		{"default column, desc", ProductListFilter{SortOrder: "desc"}, "local_product_id", "desc"},
		{"explicit column", ProductListFilter{SortBy: "price"}, "price", "desc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.filter.toDomain()
			assert.Equal(t, tt.wantBy, f.OrderBy)
			assert.Equal(t, tt.wantDir, f.OrderDir)
		})
	}
}

func TestProductService_List_Error(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)
	repo.On("ListByStore", mock.Anything, mock.Anything, mock.Anything).Return([]catalog.Product(nil), int64(0), errors.New("boom"))

	_, err := svc.List(context.Background(), uuid.New(), ProductListFilter{})
	assert.EqualError(t, err, "boom")
}
