package persistence

import (
	"context"
	"testing"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/store"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoreWithDefaults(t *testing.T, name string, owner uuid.UUID) *store.Store {
	t.Helper()
	s, err := store.NewStore(name, owner)
	require.NoError(t, err)

	shop, err := integration.NewEcommerceIntegration(s.ID, "Default Store", integration.ProviderDummyStore, "", "http://localhost:4000", "shop-token")
	require.NoError(t, err)
	require.NoError(t, s.AddEcommerceIntegration(shop))

	courier, err := integration.NewCourierIntegration(s.ID, "Default Courier", integration.ProviderDummyCourier, "", "http://localhost:4002", "courier-token")
	require.NoError(t, err)
	require.NoError(t, s.AddCourierIntegration(courier))
	return s
}

func TestGormStoreRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStoreRepository(db, prefixSealer{})
	ctx := context.Background()

	s := newStoreWithDefaults(t, "Corner Shop", uuid.New())
	require.NoError(t, repo.Create(ctx, s))

	found, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Corner Shop", found.Name)
	require.Len(t, found.EcommerceIntegrations, 1)
	require.Len(t, found.CourierIntegrations, 1)
	assert.Equal(t, "shop-token", found.EcommerceIntegrations[0].Token)
	assert.Equal(t, "courier-token", found.CourierIntegrations[0].Token)
	assert.Equal(t, integration.ProviderDummyCourier, found.CourierIntegrations[0].Provider)

	t.Run("tokens are sealed at rest", func(t *testing.T) {
		var row models.EcommerceIntegrationModel
		require.NoError(t, db.First(&row, "id = ?", s.EcommerceIntegrations[0].ID).Error)
		assert.Equal(t, "sealed:shop-token", row.Token)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormStoreRepository_IntegrationsKeepPositionOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStoreRepository(db, nil)
	ctx := context.Background()

	s := newStoreWithDefaults(t, "Corner Shop", uuid.New())
	require.NoError(t, repo.Create(ctx, s))

	second, err := integration.NewEcommerceIntegration(s.ID, "Second", integration.ProviderDummyStore, "", "http://localhost:4001", "")
	require.NoError(t, err)
	require.NoError(t, s.AddEcommerceIntegration(second))
	require.NoError(t, repo.SaveEcommerceIntegration(ctx, second))

	found, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, found.EcommerceIntegrations, 2)
	assert.Equal(t, "Default Store", found.EcommerceIntegrations[0].Title)
	assert.Equal(t, "Second", found.EcommerceIntegrations[1].Title)

	title := "Renamed"
	require.NoError(t, second.Apply(integration.RecordUpdate{Title: &title}))
	require.NoError(t, repo.SaveEcommerceIntegration(ctx, second))

	found, err = repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", found.EcommerceIntegrations[1].Title)

	require.NoError(t, repo.DeleteEcommerceIntegration(ctx, s.ID, second.ID))
	assert.ErrorIs(t, repo.DeleteEcommerceIntegration(ctx, s.ID, second.ID), shared.ErrNotFound)

	t.Run("delete is scoped to the store", func(t *testing.T) {
		courierID := s.CourierIntegrations[0].ID
		assert.ErrorIs(t, repo.DeleteCourierIntegration(ctx, uuid.New(), courierID), shared.ErrNotFound)

		rec, err := repo.FindCourierIntegration(ctx, courierID)
		require.NoError(t, err)
		assert.Equal(t, s.ID, rec.StoreID)
	})
}

func TestGormStoreRepository_ListAndSoftDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStoreRepository(db, nil)
	ctx := context.Background()

	owner := uuid.New()
	first := newStoreWithDefaults(t, "Alpha Goods", owner)
	second := newStoreWithDefaults(t, "Beta Market", owner)
	other := newStoreWithDefaults(t, "Gamma Foods", uuid.New())
	for _, s := range []*store.Store{first, second, other} {
		require.NoError(t, repo.Create(ctx, s))
	}

	stores, total, err := repo.List(ctx, store.StoreFilter{OwnerID: owner, Filter: shared.Filter{OrderBy: "name", OrderDir: "asc"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, stores, 2)
	assert.Equal(t, "Alpha Goods", stores[0].Name)

	stores, total, err = repo.List(ctx, store.StoreFilter{Name: "market"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, second.ID, stores[0].ID)

	require.NoError(t, second.SoftDelete())
	require.NoError(t, repo.Update(ctx, second))

	_, err = repo.FindByID(ctx, second.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	active, err := repo.ListActiveIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)
	assert.Equal(t, owner, active[first.ID])
	assert.NotContains(t, active, second.ID)

	missing, err := store.NewStore("Ghost", owner)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Update(ctx, missing), shared.ErrNotFound)
}
