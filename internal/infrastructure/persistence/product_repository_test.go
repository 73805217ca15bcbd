package persistence

import (
	"context"
	"sync"
	"testing"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/catalog"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, storeID uuid.UUID, name string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(storeID, uuid.New(), name, catalog.ProductDetails{
		Price: decimal.NewFromFloat(12.5),
		Brand: "Acme",
		Stock: 3,
	})
	require.NoError(t, err)
	return p
}

func TestGormProductRepository_CreateIfAbsent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	storeID := uuid.New()
	integrationID := uuid.New()

	widget := newTestProduct(t, storeID, "Widget")
	widget.AddThirdPartyTag(integrationID, "101")

	created, err := repo.CreateIfAbsent(ctx, widget)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(1), widget.LocalProductID)

	gadget := newTestProduct(t, storeID, "Gadget")
	created, err = repo.CreateIfAbsent(ctx, gadget)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(2), gadget.LocalProductID)

	t.Run("same name in the same store is not inserted", func(t *testing.T) {
		dup := newTestProduct(t, storeID, "Widget")
		created, err := repo.CreateIfAbsent(ctx, dup)
		require.NoError(t, err)
		assert.False(t, created)

		var count int64
		require.NoError(t, db.Model(&models.ProductModel{}).Where("store_id = ? AND name = ?", storeID, "Widget").Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("lost insert does not consume a local id", func(t *testing.T) {
		next := newTestProduct(t, storeID, "Sprocket")
		created, err := repo.CreateIfAbsent(ctx, next)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, int64(3), next.LocalProductID)
	})

	t.Run("local ids are per store", func(t *testing.T) {
		p := newTestProduct(t, uuid.New(), "Widget")
		created, err := repo.CreateIfAbsent(ctx, p)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, int64(1), p.LocalProductID)
	})

	t.Run("found with tags", func(t *testing.T) {
		found, err := repo.FindByStoreAndName(ctx, storeID, " Widget ")
		require.NoError(t, err)
		assert.Equal(t, widget.ID, found.ID)
		assert.True(t, found.Price.Equal(decimal.NewFromFloat(12.5)))
		assert.True(t, found.HasThirdPartyTag(integrationID))
	})

	t.Run("missing name is not found", func(t *testing.T) {
		_, err := repo.FindByStoreAndName(ctx, storeID, "Nothing")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_ConcurrentCreateKeepsNamesUnique(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	storeID := uuid.New()

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.CreateIfAbsent(ctx, newTestProduct(t, storeID, "Widget"))
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	var count int64
	require.NoError(t, db.Model(&models.ProductModel{}).Where("store_id = ?", storeID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGormProductRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	storeID := uuid.New()

	p := newTestProduct(t, storeID, "Widget")
	first := uuid.New()
	p.AddThirdPartyTag(first, "101")
	_, err := repo.CreateIfAbsent(ctx, p)
	require.NoError(t, err)

	require.NoError(t, p.UpdateDetails(catalog.ProductDetails{Price: decimal.NewFromInt(20), Brand: "Globex", Stock: 9}))
	second := uuid.New()
	p.AddThirdPartyTag(second, "A-7")
	require.NoError(t, repo.Update(ctx, p))

	found, err := repo.FindByStoreAndName(ctx, storeID, "Widget")
	require.NoError(t, err)
	assert.True(t, found.Price.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "Globex", found.Brand)
	assert.Equal(t, 9, found.Stock)
	assert.Len(t, found.ThirdPartyTags, 2)
	assert.Equal(t, int64(1), found.LocalProductID)

	ghost := newTestProduct(t, storeID, "Ghost")
	assert.ErrorIs(t, repo.Update(ctx, ghost), shared.ErrNotFound)
}

func TestGormProductRepository_ListByStore(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	storeID := uuid.New()

	for _, name := range []string{"Blue Mug", "Red Mug", "Teapot"} {
		_, err := repo.CreateIfAbsent(ctx, newTestProduct(t, storeID, name))
		require.NoError(t, err)
	}
	_, err := repo.CreateIfAbsent(ctx, newTestProduct(t, uuid.New(), "Green Mug"))
	require.NoError(t, err)

	products, total, err := repo.ListByStore(ctx, storeID, shared.Filter{Search: "mug", OrderBy: "name", OrderDir: "asc"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, products, 2)
	assert.Equal(t, "Blue Mug", products[0].Name)

	products, total, err = repo.ListByStore(ctx, storeID, shared.Filter{Page: 2, PageSize: 2, OrderBy: "local_product_id", OrderDir: "asc"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, products, 1)
	assert.Equal(t, "Teapot", products[0].Name)
}
