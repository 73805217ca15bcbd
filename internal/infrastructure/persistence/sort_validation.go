package persistence

import (
	"strings"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
)

// ValidateSortOrder normalizes a sort direction to ASC or DESC. Anything else
// becomes DESC.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField if it is whitelisted, else defaultField
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// orderClause builds a whitelisted ORDER BY expression from a filter. Rows
// tied on the sort column (orders by status, products by brand) are ordered
// by id so pages do not overlap.
func orderClause(f shared.Filter, allowedFields map[string]bool) string {
	field := ValidateSortField(f.OrderBy, allowedFields, "created_at")
	dir := ValidateSortOrder(f.OrderDir)
	if field == "id" {
		return "id " + dir
	}
	return field + " " + dir + ", id " + dir
}

// StoreSortFields are the sortable store columns
var StoreSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// ProductSortFields are the sortable product columns
var ProductSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"name":             true,
	"local_product_id": true,
	"price":            true,
	"stock":            true,
	"brand":            true,
}

// OrderSortFields are the sortable order columns
var OrderSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"remote_order_id": true,
	"status":          true,
	"subtotal":        true,
	"dispatched_at":   true,
}
