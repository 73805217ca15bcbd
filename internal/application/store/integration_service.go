package store

import (
	"context"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IntegrationService manages a store's integration records. Whether a
// provider code has an adapter is decided when the records are used, not here.
type IntegrationService struct {
	repo   store.StoreRepository
	logger *zap.Logger
}

// NewIntegrationService creates a new IntegrationService
func NewIntegrationService(repo store.StoreRepository, logger *zap.Logger) *IntegrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntegrationService{repo: repo, logger: logger}
}

// ---------------------------------------------------------------------------
// E-commerce records
// ---------------------------------------------------------------------------

// ListEcommerce returns the store's e-commerce records in position order
func (s *IntegrationService) ListEcommerce(ctx context.Context, storeID, userID uuid.UUID) ([]EcommerceIntegrationResponse, error) {
	st, err := LoadOwned(ctx, s.repo, storeID, userID)
	if err != nil {
		return nil, err
	}
	out := make([]EcommerceIntegrationResponse, 0, len(st.EcommerceIntegrations))
	for _, rec := range st.EcommerceIntegrations {
		out = append(out, ToEcommerceIntegrationResponse(rec))
	}
	return out, nil
}

// AddEcommerce appends an e-commerce record to the store
func (s *IntegrationService) AddEcommerce(ctx context.Context, storeID, userID uuid.UUID, req CreateEcommerceIntegrationRequest) (*EcommerceIntegrationResponse, error) {
	st, err := LoadOwned(ctx, s.repo, storeID, userID)
	if err != nil {
		return nil, err
	}
	rec, err := integration.NewEcommerceIntegration(st.ID, req.Title,
		integration.ParseProviderCode(req.Provider), req.Email, req.BaseURL, req.Token)
	if err != nil {
		return nil, err
	}
	if err := st.AddEcommerceIntegration(rec); err != nil {
		return nil, err
	}
	if err := s.repo.SaveEcommerceIntegration(ctx, rec); err != nil {
		return nil, err
	}
	s.logger.Info("E-commerce integration added",
		zap.String("store_id", st.ID.String()),
		zap.String("integration_id", rec.ID.String()),
		zap.String("provider", rec.Provider.String()),
	)
	resp := ToEcommerceIntegrationResponse(rec)
	return &resp, nil
}

// UpdateEcommerce changes an e-commerce record
func (s *IntegrationService) UpdateEcommerce(ctx context.Context, storeID, userID, id uuid.UUID, req UpdateIntegrationRequest) (*EcommerceIntegrationResponse, error) {
	st, err := LoadOwned(ctx, s.repo, storeID, userID)
	if err != nil {
		return nil, err
	}
	rec, err := st.EcommerceIntegration(id)
	if err != nil {
		return nil, err
	}
	if err := rec.Apply(req.toDomain()); err != nil {
		return nil, err
	}
	if err := s.repo.SaveEcommerceIntegration(ctx, rec); err != nil {
		return nil, err
	}
	resp := ToEcommerceIntegrationResponse(rec)
	return &resp, nil
}

// RemoveEcommerce deletes an e-commerce record. Orders and products that
// reference it keep the id.
func (s *IntegrationService) RemoveEcommerce(ctx context.Context, storeID, userID, id uuid.UUID) error {
	st, err := LoadOwned(ctx, s.repo, storeID, userID)
	if err != nil {
		return err
	}
	if _, err := st.RemoveEcommerceIntegration(id); err != nil {
		return err
	}
	return s.repo.DeleteEcommerceIntegration(ctx, st.ID, id)
}

// ---------------------------------------------------------------------------
// Courier records
// ---------------------------------------------------------------------------

// ListCourier returns the store's courier records in position order
func (s *IntegrationService) ListCourier(ctx context.Context, storeID, userID uuid.UUID) ([]CourierIntegrationResponse, error) {
	st, err := LoadOwned(ctx, s.repo, storeID, userID)
	if err != nil {
		return nil, err
	}
	out := make([]CourierIntegrationResponse, 0, len(st.CourierIntegrations))
	for _, rec := range st.CourierIntegrations {
		out = append(out, ToCourierIntegrationResponse(rec))
	}
	return out, nil
}

// AddCourier appends a courier record to the store
func (s *IntegrationService) AddCourier(ctx context.Context, storeID, userID uuid.UUID, req CreateCourierIntegrationRequest) (*CourierIntegrationResponse, error) {
	st, err := LoadOwned(ctx, s.repo, storeID, userID)
	if err != nil {
		return nil, err
	}
	rec, err := integration.NewCourierIntegration(st.ID, req.Title,
		integration.ParseProviderCode(req.Provider), req.Credential, req.BaseURL, req.Token)
	if err != nil {
		return nil, err
	}
	if err := st.AddCourierIntegration(rec); err != nil {
		return nil, err
	}
	if err := s.repo.SaveCourierIntegration(ctx, rec); err != nil {
		return nil, err
	}
	s.logger.Info("Courier integration added",
		zap.String("store_id", st.ID.String()),
		zap.String("integration_id", rec.ID.String()),
		zap.String("provider", rec.Provider.String()),
	)
	resp := ToCourierIntegrationResponse(rec)
	return &resp, nil
}

// UpdateCourier changes a courier record
func (s *IntegrationService) UpdateCourier(ctx context.Context, storeID, userID, id uuid.UUID, req UpdateIntegrationRequest) (*CourierIntegrationResponse, error) {
	st, err := LoadOwned(ctx, s.repo, storeID, userID)
	if err != nil {
		return nil, err
	}
	rec, err := st.CourierIntegration(id)
	if err != nil {
		return nil, err
	}
	if err := rec.Apply(req.toDomain()); err != nil {
		return nil, err
	}
	if err := s.repo.SaveCourierIntegration(ctx, rec); err != nil {
		return nil, err
	}
	resp := ToCourierIntegrationResponse(rec)
	return &resp, nil
}

// RemoveCourier deletes a courier record. Dispatched orders keep the id.
func (s *IntegrationService) RemoveCourier(ctx context.Context, storeID, userID, id uuid.UUID) error {
	st, err := LoadOwned(ctx, s.repo, storeID, userID)
	if err != nil {
		return err
	}
	if _, err := st.RemoveCourierIntegration(id); err != nil {
		return err
	}
	return s.repo.DeleteCourierIntegration(ctx, st.ID, id)
}
