package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/store"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStoreRepository implements store.StoreRepository using GORM
type GormStoreRepository struct {
	db     *gorm.DB
	sealer TokenSealer
}

// NewGormStoreRepository creates a new GormStoreRepository. A nil sealer
// stores integration tokens in plain text.
func NewGormStoreRepository(db *gorm.DB, sealer TokenSealer) *GormStoreRepository {
	return &GormStoreRepository{db: db, sealer: sealerOrPlain(sealer)}
}

// WithTx returns a repository bound to tx
func (r *GormStoreRepository) WithTx(tx *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: tx, sealer: r.sealer}
}

// Create inserts the store and its integration records in one transaction
func (r *GormStoreRepository) Create(ctx context.Context, s *store.Store) error {
	ecommerce := make([]*models.EcommerceIntegrationModel, 0, len(s.EcommerceIntegrations))
	for _, rec := range s.EcommerceIntegrations {
		m, err := r.sealEcommerce(rec)
		if err != nil {
			return err
		}
		ecommerce = append(ecommerce, m)
	}
	couriers := make([]*models.CourierIntegrationModel, 0, len(s.CourierIntegrations))
	for _, rec := range s.CourierIntegrations {
		m, err := r.sealCourier(rec)
		if err != nil {
			return err
		}
		couriers = append(couriers, m)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(models.StoreModelFromDomain(s)).Error; err != nil {
			return fmt.Errorf("insert store: %w", err)
		}
		if len(ecommerce) > 0 {
			if err := tx.Create(&ecommerce).Error; err != nil {
				return fmt.Errorf("insert e-commerce integrations: %w", err)
			}
		}
		if len(couriers) > 0 {
			if err := tx.Create(&couriers).Error; err != nil {
				return fmt.Errorf("insert courier integrations: %w", err)
			}
		}
		return nil
	})
}

// FindByID loads a non-deleted store with its integrations in position order
func (r *GormStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	var model models.StoreModel
	err := r.db.WithContext(ctx).
		Scopes(activeScope).
		Preload("EcommerceIntegrations", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("CourierIntegrations", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Store")
		}
		return nil, err
	}

	s := model.ToDomain()
	for _, rec := range s.EcommerceIntegrations {
		if rec.Token, err = r.sealer.Open(rec.Token); err != nil {
			return nil, fmt.Errorf("open token of integration %s: %w", rec.ID, err)
		}
	}
	for _, rec := range s.CourierIntegrations {
		if rec.Token, err = r.sealer.Open(rec.Token); err != nil {
			return nil, fmt.Errorf("open token of integration %s: %w", rec.ID, err)
		}
	}
	return s, nil
}

// List returns non-deleted stores without their integrations
func (r *GormStoreRepository) List(ctx context.Context, filter store.StoreFilter) ([]store.Store, int64, error) {
	f := filter.Filter.Normalize()
	query := r.db.WithContext(ctx).Model(&models.StoreModel{}).Scopes(activeScope)
	if filter.OwnerID != uuid.Nil {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	name := strings.TrimSpace(filter.Name)
	if name == "" {
		name = strings.TrimSpace(f.Search)
	}
	if name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.StoreModel
	if err := query.Scopes(pageScope(f.Offset(), f.PageSize, orderClause(f, StoreSortFields))).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	stores := make([]store.Store, len(rows))
	for i := range rows {
		stores[i] = *rows[i].ToDomain()
	}
	return stores, total, nil
}

// Update saves name and soft-delete state
func (r *GormStoreRepository) Update(ctx context.Context, s *store.Store) error {
	result := r.db.WithContext(ctx).Model(&models.StoreModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"name":       s.Name,
			"deleted":    s.Deleted,
			"deleted_at": s.DeletedAt,
			"updated_at": s.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("Store")
	}
	return nil
}

// ListActiveIDs returns the ids and owners of all non-deleted stores
func (r *GormStoreRepository) ListActiveIDs(ctx context.Context) (map[uuid.UUID]uuid.UUID, error) {
	var rows []struct {
		ID      uuid.UUID
		OwnerID uuid.UUID
	}
	if err := r.db.WithContext(ctx).Model(&models.StoreModel{}).
		Scopes(activeScope).
		Select("id", "owner_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make(map[uuid.UUID]uuid.UUID, len(rows))
	for _, row := range rows {
		ids[row.ID] = row.OwnerID
	}
	return ids, nil
}

// SaveEcommerceIntegration inserts or updates an e-commerce record
func (r *GormStoreRepository) SaveEcommerceIntegration(ctx context.Context, rec *integration.EcommerceIntegration) error {
	m, err := r.sealEcommerce(rec)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(m).Error
}

// SaveCourierIntegration inserts or updates a courier record
func (r *GormStoreRepository) SaveCourierIntegration(ctx context.Context, rec *integration.CourierIntegration) error {
	m, err := r.sealCourier(rec)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(m).Error
}

// DeleteEcommerceIntegration removes an e-commerce record of the store
func (r *GormStoreRepository) DeleteEcommerceIntegration(ctx context.Context, storeID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(storeScope(storeID)).
		Delete(&models.EcommerceIntegrationModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("E-commerce integration")
	}
	return nil
}

// DeleteCourierIntegration removes a courier record of the store
func (r *GormStoreRepository) DeleteCourierIntegration(ctx context.Context, storeID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(storeScope(storeID)).
		Delete(&models.CourierIntegrationModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("Courier integration")
	}
	return nil
}

// FindCourierIntegration loads a courier record by id regardless of store
func (r *GormStoreRepository) FindCourierIntegration(ctx context.Context, id uuid.UUID) (*integration.CourierIntegration, error) {
	var model models.CourierIntegrationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Courier integration")
		}
		return nil, err
	}
	rec := model.ToDomain()
	token, err := r.sealer.Open(rec.Token)
	if err != nil {
		return nil, fmt.Errorf("open token of integration %s: %w", rec.ID, err)
	}
	rec.Token = token
	return rec, nil
}

func (r *GormStoreRepository) sealEcommerce(rec *integration.EcommerceIntegration) (*models.EcommerceIntegrationModel, error) {
	m := models.EcommerceIntegrationModelFromDomain(rec)
	sealed, err := r.sealer.Seal(rec.Token)
	if err != nil {
		return nil, fmt.Errorf("seal token of integration %s: %w", rec.ID, err)
	}
	m.Token = sealed
	return m, nil
}

func (r *GormStoreRepository) sealCourier(rec *integration.CourierIntegration) (*models.CourierIntegrationModel, error) {
	m := models.CourierIntegrationModelFromDomain(rec)
	sealed, err := r.sealer.Seal(rec.Token)
	if err != nil {
		return nil, fmt.Errorf("seal token of integration %s: %w", rec.ID, err)
	}
	m.Token = sealed
	return m, nil
}

// Ensure GormStoreRepository implements StoreRepository
var _ store.StoreRepository = (*GormStoreRepository)(nil)
