package integration

// AdapterFactory turns a store's integration records into adapters. Both
// methods are all-or-nothing: if any record names an unsupported provider a
// *ConfigurationError is returned and no adapter is built.
type AdapterFactory interface {
	EStoreAdapters(records []*EcommerceIntegration) ([]EStoreAdapter, error)
	CourierAdapters(records []*CourierIntegration) ([]CourierAdapter, error)
}
