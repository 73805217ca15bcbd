package adapter

import (
	"time"

	"go.uber.org/zap"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/courier"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/ecommerce"
)

// Deps are the collaborators handed to the built-in adapters
type Deps struct {
	Reconciler integration.Reconciler
	Archiver   integration.SnapshotArchiver
	Logger     *zap.Logger
	Timeout    time.Duration
}

// RegisterDefaults registers DUMMY_STORE and DUMMY_COURIER
func RegisterDefaults(f *Factory, deps Deps) error {
	err := f.EStores().Register(integration.ProviderDummyStore,
		func(rec *integration.EcommerceIntegration) (integration.EStoreAdapter, error) {
			return ecommerce.NewDummyStoreAdapter(rec, ecommerce.DummyStoreDeps{
				Reconciler: deps.Reconciler,
				Archiver:   deps.Archiver,
				Logger:     deps.Logger,
				Timeout:    deps.Timeout,
			})
		})
	if err != nil {
		return err
	}

	return f.Couriers().Register(integration.ProviderDummyCourier,
		func(rec *integration.CourierIntegration) (integration.CourierAdapter, error) {
			return courier.NewDummyCourierAdapter(rec, courier.DummyCourierDeps{
				Logger:  deps.Logger,
				Timeout: deps.Timeout,
			})
		})
}

// NewDefaultFactory returns a factory with the built-in adapters registered
func NewDefaultFactory(deps Deps) (*Factory, error) {
	f := NewFactory()
	if err := RegisterDefaults(f, deps); err != nil {
		return nil, err
	}
	return f, nil
}
