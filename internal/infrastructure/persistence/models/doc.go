// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
//   - base.go: BaseModel and soft-delete columns
//   - store.go: stores and their integration records
//   - catalog.go: products, third-party tags, per-store product counters
//   - trade.go: orders and order lines
package models
