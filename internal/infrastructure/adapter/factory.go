package adapter

import (
	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
)

// EStoreRegistry maps e-commerce provider codes to adapters
type EStoreRegistry = Registry[*integration.EcommerceIntegration, integration.EStoreAdapter]

// CourierRegistry maps courier provider codes to adapters
type CourierRegistry = Registry[*integration.CourierIntegration, integration.CourierAdapter]

// Factory implements integration.AdapterFactory over two registries
type Factory struct {
	estores  *EStoreRegistry
	couriers *CourierRegistry
}

// NewFactory creates a factory with empty registries
func NewFactory() *Factory {
	return &Factory{
		estores:  NewRegistry[*integration.EcommerceIntegration, integration.EStoreAdapter](integration.CategoryEcommerce),
		couriers: NewRegistry[*integration.CourierIntegration, integration.CourierAdapter](integration.CategoryCourier),
	}
}

// EStores exposes the e-commerce registry for registration
func (f *Factory) EStores() *EStoreRegistry {
	return f.estores
}

// Couriers exposes the courier registry for registration
func (f *Factory) Couriers() *CourierRegistry {
	return f.couriers
}

// EStoreAdapters implements integration.AdapterFactory
func (f *Factory) EStoreAdapters(records []*integration.EcommerceIntegration) ([]integration.EStoreAdapter, error) {
	return f.estores.BuildAll(records)
}

// CourierAdapters implements integration.AdapterFactory
func (f *Factory) CourierAdapters(records []*integration.CourierIntegration) ([]integration.CourierAdapter, error) {
	return f.couriers.BuildAll(records)
}

var _ integration.AdapterFactory = (*Factory)(nil)
