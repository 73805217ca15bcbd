package integration

import (
	"net/mail"
	"net/url"
	"strings"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Record is the part of an integration record the adapter factory needs
type Record interface {
	GetID() uuid.UUID
	ProviderCode() ProviderCode
	Category() Category
}

// EcommerceIntegration links a store to one e-commerce gateway
type EcommerceIntegration struct {
	shared.BaseEntity
	StoreID  uuid.UUID
	Title    string
	Provider ProviderCode
	Email    string
	BaseURL  string
	Token    string
	// Position orders the store's integrations; lower runs first
	Position int
}

// CourierIntegration links a store to one courier gateway
type CourierIntegration struct {
	shared.BaseEntity
	StoreID    uuid.UUID
	Title      string
	Provider   ProviderCode
	Credential string
	BaseURL    string
	Token      string
	Position   int
}

// RecordUpdate holds optional changes to an integration record. The provider
// is deliberately absent: it is fixed at creation.
type RecordUpdate struct {
	Title   *string
	Contact *string // email for e-commerce, credential for courier
	BaseURL *string
	Token   *string
}

// NewEcommerceIntegration creates an e-commerce integration record
func NewEcommerceIntegration(storeID uuid.UUID, title string, provider ProviderCode, email, baseURL, token string) (*EcommerceIntegration, error) {
	if err := validateRecord(storeID, title, provider, baseURL); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	return &EcommerceIntegration{
		BaseEntity: shared.NewBaseEntity(),
		StoreID:    storeID,
		Title:      strings.TrimSpace(title),
		Provider:   provider,
		Email:      strings.TrimSpace(email),
		BaseURL:    normalizeBaseURL(baseURL),
		Token:      token,
	}, nil
}

// NewCourierIntegration creates a courier integration record
func NewCourierIntegration(storeID uuid.UUID, title string, provider ProviderCode, credential, baseURL, token string) (*CourierIntegration, error) {
	if err := validateRecord(storeID, title, provider, baseURL); err != nil {
		return nil, err
	}
	return &CourierIntegration{
		BaseEntity: shared.NewBaseEntity(),
		StoreID:    storeID,
		Title:      strings.TrimSpace(title),
		Provider:   provider,
		Credential: credential,
		BaseURL:    normalizeBaseURL(baseURL),
		Token:      token,
	}, nil
}

// ProviderCode implements Record
func (i *EcommerceIntegration) ProviderCode() ProviderCode { return i.Provider }

// Category implements Record
func (i *EcommerceIntegration) Category() Category { return CategoryEcommerce }

// ProviderCode implements Record
func (i *CourierIntegration) ProviderCode() ProviderCode { return i.Provider }

// Category implements Record
func (i *CourierIntegration) Category() Category { return CategoryCourier }

// Apply updates the mutable fields of an e-commerce integration
func (i *EcommerceIntegration) Apply(u RecordUpdate) error {
	title, baseURL, err := applyCommon(i.Title, i.BaseURL, u)
	if err != nil {
		return err
	}
	if u.Contact != nil {
		if err := validateEmail(*u.Contact); err != nil {
			return err
		}
		i.Email = strings.TrimSpace(*u.Contact)
	}
	if u.Token != nil {
		i.Token = *u.Token
	}
	i.Title, i.BaseURL = title, baseURL
	i.Touch()
	return nil
}

// Apply updates the mutable fields of a courier integration
func (i *CourierIntegration) Apply(u RecordUpdate) error {
	title, baseURL, err := applyCommon(i.Title, i.BaseURL, u)
	if err != nil {
		return err
	}
	if u.Contact != nil {
		i.Credential = *u.Contact
	}
	if u.Token != nil {
		i.Token = *u.Token
	}
	i.Title, i.BaseURL = title, baseURL
	i.Touch()
	return nil
}

func applyCommon(title, baseURL string, u RecordUpdate) (string, string, error) {
	if u.Title != nil {
		if strings.TrimSpace(*u.Title) == "" {
			return "", "", shared.NewDomainError("INVALID_TITLE", "Integration title cannot be empty")
		}
		title = strings.TrimSpace(*u.Title)
	}
	if u.BaseURL != nil {
		if err := validateBaseURL(*u.BaseURL); err != nil {
			return "", "", err
		}
		baseURL = normalizeBaseURL(*u.BaseURL)
	}
	return title, baseURL, nil
}

func validateRecord(storeID uuid.UUID, title string, provider ProviderCode, baseURL string) error {
	if storeID == uuid.Nil {
		return shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Integration title cannot be empty")
	}
	if provider.IsEmpty() {
		return shared.NewDomainError("INVALID_PROVIDER", "Provider cannot be empty")
	}
	return validateBaseURL(baseURL)
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return shared.NewDomainError("INVALID_ENDPOINT", "Endpoint must be an absolute http(s) URL")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return shared.NewDomainError("INVALID_EMAIL", "Contact email is not valid")
	}
	return nil
}

func normalizeBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}
