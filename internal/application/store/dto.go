package store

import (
	"time"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/store"
	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Store DTOs
// ---------------------------------------------------------------------------

// CreateStoreRequest represents a request to create a store
type CreateStoreRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// RenameStoreRequest represents a request to rename a store
type RenameStoreRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// StoreListFilter narrows GET /stores
type StoreListFilter struct {
	Name      string `form:"name" binding:"max=100"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=name created_at updated_at"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

func (f StoreListFilter) toDomain(ownerID uuid.UUID) store.StoreFilter {
	base := shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.SortBy,
		OrderDir: f.SortOrder,
	}
	if base.OrderBy == "" {
		base.OrderBy = "created_at"
	}
	return store.StoreFilter{Filter: base.Normalize(), OwnerID: ownerID, Name: f.Name}
}

// StoreResponse represents a store in API responses
type StoreResponse struct {
	ID                    uuid.UUID                       `json:"id"`
	Name                  string                          `json:"name"`
	OwnerID               uuid.UUID                       `json:"owner_id"`
	EcommerceIntegrations []EcommerceIntegrationResponse `json:"ecommerce_integrations"`
	CourierIntegrations   []CourierIntegrationResponse   `json:"courier_integrations"`
	CreatedAt             time.Time                       `json:"created_at"`
	UpdatedAt             time.Time                       `json:"updated_at"`
}

// StoreListResponse is a store without its integrations
type StoreListResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToStoreResponse converts the aggregate
func ToStoreResponse(s *store.Store) StoreResponse {
	resp := StoreResponse{
		ID:                    s.ID,
		Name:                  s.Name,
		OwnerID:               s.OwnerID,
		EcommerceIntegrations: make([]EcommerceIntegrationResponse, 0, len(s.EcommerceIntegrations)),
		CourierIntegrations:   make([]CourierIntegrationResponse, 0, len(s.CourierIntegrations)),
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
	for _, rec := range s.EcommerceIntegrations {
		resp.EcommerceIntegrations = append(resp.EcommerceIntegrations, ToEcommerceIntegrationResponse(rec))
	}
	for _, rec := range s.CourierIntegrations {
		resp.CourierIntegrations = append(resp.CourierIntegrations, ToCourierIntegrationResponse(rec))
	}
	return resp
}

// ToStoreListResponses converts a listing page
func ToStoreListResponses(stores []store.Store) []StoreListResponse {
	out := make([]StoreListResponse, len(stores))
	for i := range stores {
		out[i] = StoreListResponse{
			ID:        stores[i].ID,
			Name:      stores[i].Name,
			CreatedAt: stores[i].CreatedAt,
			UpdatedAt: stores[i].UpdatedAt,
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Integration record DTOs
// ---------------------------------------------------------------------------

// CreateEcommerceIntegrationRequest adds an e-commerce integration
type CreateEcommerceIntegrationRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=100"`
	Provider string `json:"provider" binding:"required,max=50,provider_code"`
	Email    string `json:"email" binding:"omitempty,email"`
	BaseURL  string `json:"base_url" binding:"required,url"`
	Token    string `json:"token" binding:"max=2000"`
}

// CreateCourierIntegrationRequest adds a courier integration
type CreateCourierIntegrationRequest struct {
	Title      string `json:"title" binding:"required,min=1,max=100"`
	Provider   string `json:"provider" binding:"required,max=50,provider_code"`
	Credential string `json:"credential" binding:"max=500"`
	BaseURL    string `json:"base_url" binding:"required,url"`
	Token      string `json:"token" binding:"max=2000"`
}

// UpdateIntegrationRequest changes an integration record. Contact is the
// email for e-commerce records and the credential for courier records. The
// provider cannot be changed.
type UpdateIntegrationRequest struct {
	Title   *string `json:"title" binding:"omitempty,min=1,max=100"`
	Contact *string `json:"contact" binding:"omitempty,max=500"`
	BaseURL *string `json:"base_url" binding:"omitempty,url"`
	Token   *string `json:"token" binding:"omitempty,max=2000"`
}

func (r UpdateIntegrationRequest) toDomain() integration.RecordUpdate {
	return integration.RecordUpdate{
		Title:   r.Title,
		Contact: r.Contact,
		BaseURL: r.BaseURL,
		Token:   r.Token,
	}
}

// EcommerceIntegrationResponse represents an e-commerce record. The token is
// never returned.
type EcommerceIntegrationResponse struct {
	ID                  uuid.UUID `json:"id"`
	StoreID             uuid.UUID `json:"store_id"`
	Title               string    `json:"title"`
	Provider            string    `json:"provider"`
	ProviderDisplayName string    `json:"provider_display_name"`
	Email               string    `json:"email,omitempty"`
	BaseURL             string    `json:"base_url"`
	HasToken            bool      `json:"has_token"`
	Position            int       `json:"position"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// CourierIntegrationResponse represents a courier record
type CourierIntegrationResponse struct {
	ID                  uuid.UUID `json:"id"`
	StoreID             uuid.UUID `json:"store_id"`
	Title               string    `json:"title"`
	Provider            string    `json:"provider"`
	ProviderDisplayName string    `json:"provider_display_name"`
	HasCredential       bool      `json:"has_credential"`
	BaseURL             string    `json:"base_url"`
	HasToken            bool      `json:"has_token"`
	Position            int       `json:"position"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ToEcommerceIntegrationResponse converts an e-commerce record
func ToEcommerceIntegrationResponse(rec *integration.EcommerceIntegration) EcommerceIntegrationResponse {
	return EcommerceIntegrationResponse{
		ID:                  rec.ID,
		StoreID:             rec.StoreID,
		Title:               rec.Title,
		Provider:            rec.Provider.String(),
		ProviderDisplayName: rec.Provider.DisplayName(),
		Email:               rec.Email,
		BaseURL:             rec.BaseURL,
		HasToken:            rec.Token != "",
		Position:            rec.Position,
		CreatedAt:           rec.CreatedAt,
		UpdatedAt:           rec.UpdatedAt,
	}
}

// ToCourierIntegrationResponse converts a courier record
func ToCourierIntegrationResponse(rec *integration.CourierIntegration) CourierIntegrationResponse {
	return CourierIntegrationResponse{
		ID:                  rec.ID,
		StoreID:             rec.StoreID,
		Title:               rec.Title,
		Provider:            rec.Provider.String(),
		ProviderDisplayName: rec.Provider.DisplayName(),
		HasCredential:       rec.Credential != "",
		BaseURL:             rec.BaseURL,
		HasToken:            rec.Token != "",
		Position:            rec.Position,
		CreatedAt:           rec.CreatedAt,
		UpdatedAt:           rec.UpdatedAt,
	}
}
