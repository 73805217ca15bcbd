package persistence

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// storeScope limits a query to rows of one store
func storeScope(storeID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("store_id = ?", storeID)
	}
}

// activeScope hides soft-deleted rows
func activeScope(db *gorm.DB) *gorm.DB {
	return db.Where("deleted = ?", false)
}

// pageScope applies offset, limit and a whitelisted order
func pageScope(offset, limit int, order string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(order).Offset(offset).Limit(limit)
	}
}
