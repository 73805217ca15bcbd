// Package integration contains the Integration bounded context.
// It connects a store to external e-commerce platforms and courier services.
//
// Key concepts:
//   - EcommerceIntegration / CourierIntegration: per-store configuration records
//   - EStoreAdapter: port for pulling products and orders from an e-commerce gateway
//   - CourierAdapter: port for handing orders to a courier gateway
//   - Reconciler: domain service that merges remote records into local products and orders
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package integration
