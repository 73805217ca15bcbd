package integration

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Integration Errors
// ---------------------------------------------------------------------------

var (
	// Configuration errors
	ErrProviderNotSupported = errors.New("integration: provider not supported")
	ErrProviderRegistered   = errors.New("integration: provider already registered")
	ErrNoCourierIntegration = errors.New("integration: store has no courier integration")

	// Transport errors
	ErrGatewayUnavailable     = errors.New("integration: gateway unavailable")
	ErrGatewayRequestFailed   = errors.New("integration: gateway request failed")
	ErrGatewayInvalidResponse = errors.New("integration: invalid gateway response")

	// Contract-only operations
	ErrUnsupportedOperation = errors.New("integration: operation not implemented")

	// Sync coordination
	ErrSyncInProgress = errors.New("integration: store sync already in progress")
)

// IsTransportError reports whether err came from talking to a remote gateway
func IsTransportError(err error) bool {
	return errors.Is(err, ErrGatewayUnavailable) ||
		errors.Is(err, ErrGatewayRequestFailed) ||
		errors.Is(err, ErrGatewayInvalidResponse)
}

// ConfigurationError reports an integration record whose provider has no
// registered adapter. It fails the whole adapter batch.
type ConfigurationError struct {
	Category      Category
	Provider      ProviderCode
	IntegrationID uuid.UUID
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s service %q is not supported (integration %s)",
		e.Category, e.Provider, e.IntegrationID)
}

// Unwrap lets errors.Is match ErrProviderNotSupported
func (e *ConfigurationError) Unwrap() error {
	return ErrProviderNotSupported
}

// UnsupportedOperationError is returned by contract-only adapter methods
type UnsupportedOperationError struct {
	Provider  ProviderCode
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("integration: %s does not implement %s", e.Provider, e.Operation)
}

// Unwrap lets errors.Is match ErrUnsupportedOperation
func (e *UnsupportedOperationError) Unwrap() error {
	return ErrUnsupportedOperation
}

// NewUnsupportedOperation builds an UnsupportedOperationError
func NewUnsupportedOperation(provider ProviderCode, operation string) error {
	return &UnsupportedOperationError{Provider: provider, Operation: operation}
}

// DispatchFailedError carries the courier's message when it refused or could
// not be reached. The order is left pending.
type DispatchFailedError struct {
	OrderID       uuid.UUID
	IntegrationID uuid.UUID
	Message       string
}

func (e *DispatchFailedError) Error() string {
	return fmt.Sprintf("dispatch of order %s failed: %s", e.OrderID, e.Message)
}
