package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/catalog"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// errNameTaken rolls back a product insert that lost the (store, name) race
var errNameTaken = errors.New("persistence: product name already taken")

// nextLocalIDSQL bumps the per-store counter and returns the new value.
// Supported by PostgreSQL and SQLite 3.35+.
const nextLocalIDSQL = `INSERT INTO product_counters (store_id, last_product_id) VALUES (?, 1)
ON CONFLICT (store_id) DO UPDATE SET last_product_id = product_counters.last_product_id + 1
RETURNING last_product_id`

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: tx}
}

// FindByStoreAndName finds a non-deleted product by exact name within a store
func (r *GormProductRepository) FindByStoreAndName(ctx context.Context, storeID uuid.UUID, name string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Scopes(storeScope(storeID), activeScope).
		Preload("ThirdPartyTags").
		First(&model, "name = ?", strings.TrimSpace(name)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Product")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CreateIfAbsent assigns the next LocalProductID and inserts the product with
// its tags. The insert is skipped, and the counter bump rolled back, when the
// store already has a product with that name.
func (r *GormProductRepository) CreateIfAbsent(ctx context.Context, product *catalog.Product) (bool, error) {
	var localID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Raw(nextLocalIDSQL, product.StoreID).Scan(&localID).Error; err != nil {
			return fmt.Errorf("next local product id: %w", err)
		}

		model := models.ProductModelFromDomain(product)
		model.LocalProductID = localID
		result := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "store_id"}, {Name: "name"}},
				DoNothing: true,
			}).
			Create(model)
		if result.Error != nil {
			return fmt.Errorf("insert product: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errNameTaken
		}

		if tags := models.TagModelsFromDomain(product); len(tags) > 0 {
			if err := tx.Create(&tags).Error; err != nil {
				return fmt.Errorf("insert product tags: %w", err)
			}
		}
		return nil
	})
	if errors.Is(err, errNameTaken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	product.LocalProductID = localID
	return true, nil
}

// Update saves product details and adds tags the product did not have yet
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ProductModel{}).
			Where("id = ? AND store_id = ?", product.ID, product.StoreID).
			Updates(map[string]any{
				"price":       product.Price,
				"tag":         product.Tag,
				"description": product.Description,
				"brand":       product.Brand,
				"stock":       product.Stock,
				"updated_at":  product.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFoundError("Product")
		}

		if tags := models.TagModelsFromDomain(product); len(tags) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "product_id"}, {Name: "integration_id"}},
				DoNothing: true,
			}).Create(&tags).Error; err != nil {
				return fmt.Errorf("insert product tags: %w", err)
			}
		}
		return nil
	})
}

// ListByStore lists non-deleted products of a store. Search matches the name.
func (r *GormProductRepository) ListByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]catalog.Product, int64, error) {
	f := filter.Normalize()
	query := r.db.WithContext(ctx).Model(&models.ProductModel{}).Scopes(storeScope(storeID), activeScope)
	if search := strings.TrimSpace(f.Search); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ProductModel
	if err := query.Preload("ThirdPartyTags").
		Scopes(pageScope(f.Offset(), f.PageSize, orderClause(f, ProductSortFields))).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products, total, nil
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
