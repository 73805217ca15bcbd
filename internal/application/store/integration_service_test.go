package store

import (
	"context"
	"errors"
	"testing"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStoreWithIntegrations(t *testing.T, ownerID uuid.UUID) *store.Store {
	t.Helper()
	st := newTestStore(t, ownerID)
	estore, err := integration.NewEcommerceIntegration(st.ID, "Dummy Store", integration.ProviderDummyStore, "", "http://localhost:4000", "")
	require.NoError(t, err)
	require.NoError(t, st.AddEcommerceIntegration(estore))
	courier, err := integration.NewCourierIntegration(st.ID, "Dummy Courier", integration.ProviderDummyCourier, "", "http://localhost:4002", "")
	require.NoError(t, err)
	require.NoError(t, st.AddCourierIntegration(courier))
	return st
}

func strPtr(s string) *string { return &s }

func TestIntegrationService_AddEcommerce(t *testing.T) {
	repo := new(MockStoreRepository)
	svc := NewIntegrationService(repo, nil)
	ownerID := uuid.New()
	st := newStoreWithIntegrations(t, ownerID)

	repo.On("FindByID", mock.Anything, st.ID).Return(st, nil)
	repo.On("SaveEcommerceIntegration", mock.Anything, mock.MatchedBy(func(rec *integration.EcommerceIntegration) bool {
		return rec.StoreID == st.ID && rec.Position == 1 && rec.Token == "tok"
	})).Return(nil)

	resp, err := svc.AddEcommerce(context.Background(), st.ID, ownerID, CreateEcommerceIntegrationRequest{
		Title:    "Second shop",
		Provider: " shopify ",
		Email:    "ops@example.com",
		BaseURL:  "https://shop.example.com/",
		Token:    "tok",
	})
	require.NoError(t, err)
	assert.Equal(t, "SHOPIFY", resp.Provider, "providers are stored without checking the adapter registry")
	assert.Equal(t, "https://shop.example.com", resp.BaseURL)
	assert.Equal(t, 1, resp.Position)
	assert.True(t, resp.HasToken)
	repo.AssertExpectations(t)
}

func TestIntegrationService_AddEcommerce_InvalidEmail(t *testing.T) {
	repo := new(MockStoreRepository)
	svc := NewIntegrationService(repo, nil)
	ownerID := uuid.New()
	st := newStoreWithIntegrations(t, ownerID)
	repo.On("FindByID", mock.Anything, st.ID).Return(st, nil)

	_, err := svc.AddEcommerce(context.Background(), st.ID, ownerID, CreateEcommerceIntegrationRequest{
		Title: "x", Provider: "DUMMY_STORE", Email: "not-an-email", BaseURL: "http://localhost:4000",
	})
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_EMAIL", domainErr.Code)
	repo.AssertNotCalled(t, "SaveEcommerceIntegration", mock.Anything, mock.Anything)
}

func TestIntegrationService_UpdateCourier(t *testing.T) {
	repo := new(MockStoreRepository)
	svc := NewIntegrationService(repo, nil)
	ownerID := uuid.New()
	st := newStoreWithIntegrations(t, ownerID)
	rec := st.CourierIntegrations[0]

	repo.On("FindByID", mock.Anything, st.ID).Return(st, nil)
	repo.On("SaveCourierIntegration", mock.Anything, rec).Return(nil)

	resp, err := svc.UpdateCourier(context.Background(), st.ID, ownerID, rec.ID, UpdateIntegrationRequest{
		Title:   strPtr("Night rider"),
		Contact: strPtr("acct-42"),
		BaseURL: strPtr("https://rider.example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Night rider", resp.Title)
	assert.Equal(t, "https://rider.example.com", resp.BaseURL)
	assert.True(t, resp.HasCredential)
	assert.Equal(t, integration.ProviderDummyCourier, rec.Provider)
	repo.AssertExpectations(t)
}

func TestIntegrationService_UpdateEcommerce_Unknown(t *testing.T) {
	repo := new(MockStoreRepository)
	svc := NewIntegrationService(repo, nil)
	ownerID := uuid.New()
	st := newStoreWithIntegrations(t, ownerID)
	repo.On("FindByID", mock.Anything, st.ID).Return(st, nil)

	_, err := svc.UpdateEcommerce(context.Background(), st.ID, ownerID, uuid.New(), UpdateIntegrationRequest{Title: strPtr("x")})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestIntegrationService_Remove(t *testing.T) {
	repo := new(MockStoreRepository)
	svc := NewIntegrationService(repo, nil)
	ownerID := uuid.New()
	st := newStoreWithIntegrations(t, ownerID)
	estoreID := st.EcommerceIntegrations[0].ID
	courierID := st.CourierIntegrations[0].ID

	repo.On("FindByID", mock.Anything, st.ID).Return(st, nil)
	repo.On("DeleteEcommerceIntegration", mock.Anything, st.ID, estoreID).Return(nil)
	repo.On("DeleteCourierIntegration", mock.Anything, st.ID, courierID).Return(nil)

	require.NoError(t, svc.RemoveEcommerce(context.Background(), st.ID, ownerID, estoreID))
	require.NoError(t, svc.RemoveCourier(context.Background(), st.ID, ownerID, courierID))
	assert.Empty(t, st.EcommerceIntegrations)
	assert.Empty(t, st.CourierIntegrations)
	repo.AssertExpectations(t)
}

func TestIntegrationService_List_OtherOwner(t *testing.T) {
	repo := new(MockStoreRepository)
	svc := NewIntegrationService(repo, nil)
	st := newStoreWithIntegrations(t, uuid.New())
	repo.On("FindByID", mock.Anything, st.ID).Return(st, nil)

	_, err := svc.ListEcommerce(context.Background(), st.ID, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = svc.ListCourier(context.Background(), st.ID, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestIntegrationService_ListInPositionOrder(t *testing.T) {
	repo := new(MockStoreRepository)
	svc := NewIntegrationService(repo, nil)
	ownerID := uuid.New()
	st := newStoreWithIntegrations(t, ownerID)
	second, err := integration.NewCourierIntegration(st.ID, "Backup", integration.ProviderDummyCourier, "", "http://localhost:4003", "")
	require.NoError(t, err)
	require.NoError(t, st.AddCourierIntegration(second))
	repo.On("FindByID", mock.Anything, st.ID).Return(st, nil)

	list, err := svc.ListCourier(context.Background(), st.ID, ownerID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 0, list[0].Position)
	assert.Equal(t, 1, list[1].Position)
	assert.Equal(t, "Backup", list[1].Title)
}
