package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/trade"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: tx}
}

func orderLinesByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// FindByIDForStore finds a non-deleted order that belongs to the store
func (r *GormOrderRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Scopes(storeScope(storeID), activeScope).
		Preload("Lines", orderLinesByPosition).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Order")
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByRemoteID checks the (store, remote order id) key, deleted rows included
func (r *GormOrderRepository) ExistsByRemoteID(ctx context.Context, storeID uuid.UUID, remoteOrderID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Scopes(storeScope(storeID)).
		Where("remote_order_id = ?", remoteOrderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateIfAbsent inserts the order and its lines unless the store already has
// an order with the same remote id
func (r *GormOrderRepository) CreateIfAbsent(ctx context.Context, order *trade.Order) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "store_id"}, {Name: "remote_order_id"}},
				DoNothing: true,
			}).
			Create(models.OrderModelFromDomain(order))
		if result.Error != nil {
			return fmt.Errorf("insert order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if lines := models.LineModelsFromDomain(order); len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return fmt.Errorf("insert order lines: %w", err)
			}
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// UpdateStatus writes the order's status fields if the stored status still
// equals expected, and bumps the version
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, order *trade.Order, expected trade.OrderStatus) error {
	result := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Scopes(storeScope(order.StoreID)).
		Where("id = ? AND status = ?", order.ID, expected.String()).
		Updates(map[string]any{
			"status":                 order.Status.String(),
			"courier_integration_id": order.CourierIntegrationID,
			"dispatched_at":          order.DispatchedAt,
			"updated_at":             order.UpdatedAt,
			"version":                gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	order.Version++
	return nil
}

// ListByStore lists non-deleted orders of a store, optionally by status.
// Search matches the remote order id.
func (r *GormOrderRepository) ListByStore(ctx context.Context, storeID uuid.UUID, filter trade.OrderFilter) ([]trade.Order, int64, error) {
	f := filter.Filter.Normalize()
	query := r.db.WithContext(ctx).Model(&models.OrderModel{}).Scopes(storeScope(storeID), activeScope)
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if f.Search != "" {
		query = query.Where("remote_order_id LIKE ?", "%"+f.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.OrderModel
	if err := query.Preload("Lines", orderLinesByPosition).
		Scopes(pageScope(f.Offset(), f.PageSize, orderClause(f, OrderSortFields))).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]trade.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, total, nil
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
