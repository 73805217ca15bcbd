package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/catalog"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/trade"
	"github.com/google/uuid"
)

// MatchedProductUpdatePolicy decides what product sync does with a remote
// product whose name already exists in the store.
type MatchedProductUpdatePolicy string

const (
	// MatchedProductKeep leaves the local product untouched
	MatchedProductKeep MatchedProductUpdatePolicy = "keep"
	// MatchedProductRefresh copies remote price, stock and descriptive fields
	// onto the local product and tags it with the integration
	MatchedProductRefresh MatchedProductUpdatePolicy = "refresh"
)

// ParseMatchedProductUpdatePolicy parses a policy name. Empty means keep.
func ParseMatchedProductUpdatePolicy(s string) (MatchedProductUpdatePolicy, error) {
	switch p := MatchedProductUpdatePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return MatchedProductKeep, nil
	case MatchedProductKeep, MatchedProductRefresh:
		return p, nil
	}
	return "", fmt.Errorf("integration: unknown matched product policy %q", s)
}

// Reconciler merges remote records into local products and orders. Adapters
// call it after fetching from their gateway.
type Reconciler interface {
	ReconcileProducts(ctx context.Context, actorID, storeID, integrationID uuid.UUID, products []RemoteProduct) (*ProductSyncReport, error)
	ReconcileOrders(ctx context.Context, storeID uuid.UUID, source *EcommerceIntegration, orders []RemoteOrder) (*OrderSyncReport, error)
}

// CatalogReconciler is the default Reconciler. Creation relies on the
// repositories' CreateIfAbsent so concurrent syncs of one store cannot insert
// duplicates.
type CatalogReconciler struct {
	products catalog.ProductRepository
	orders   trade.OrderRepository
	policy   MatchedProductUpdatePolicy
}

// NewCatalogReconciler creates a reconciler
func NewCatalogReconciler(products catalog.ProductRepository, orders trade.OrderRepository, policy MatchedProductUpdatePolicy) *CatalogReconciler {
	if policy == "" {
		policy = MatchedProductKeep
	}
	return &CatalogReconciler{products: products, orders: orders, policy: policy}
}

// Policy returns the matched product policy in effect
func (r *CatalogReconciler) Policy() MatchedProductUpdatePolicy {
	return r.policy
}

// ReconcileProducts creates every remote product whose name is not yet used in
// the store. Matched products are only changed under MatchedProductRefresh.
func (r *CatalogReconciler) ReconcileProducts(ctx context.Context, actorID, storeID, integrationID uuid.UUID, products []RemoteProduct) (*ProductSyncReport, error) {
	report := &ProductSyncReport{IntegrationID: integrationID, Fetched: len(products)}

	for _, rp := range products {
		skip := func(reason string) {
			report.Skipped++
			report.Skips = append(report.Skips, ReconciliationSkip{Kind: SkipKindProduct, RemoteID: rp.ID, Reason: reason})
		}

		name := strings.TrimSpace(rp.Name)
		if name == "" {
			skip("remote product has no name")
			continue
		}

		existing, err := r.products.FindByStoreAndName(ctx, storeID, name)
		if err == nil {
			if r.policy == MatchedProductRefresh {
				if err := catalog.ValidateRemoteProductID(rp.ID); err != nil {
					skip(err.Error())
					continue
				}
				if err := existing.UpdateDetails(detailsOf(rp)); err != nil {
					skip(err.Error())
					continue
				}
				existing.AddThirdPartyTag(integrationID, rp.ID)
				if err := r.products.Update(ctx, existing); err != nil {
					return report, fmt.Errorf("refresh product %q: %w", name, err)
				}
				report.Refreshed++
			}
			report.Matched++
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return report, fmt.Errorf("find product %q: %w", name, err)
		}

		if err := catalog.ValidateRemoteProductID(rp.ID); err != nil {
			skip(err.Error())
			continue
		}
		product, err := catalog.NewProduct(storeID, actorID, name, detailsOf(rp))
		if err != nil {
			skip(err.Error())
			continue
		}
		product.AddThirdPartyTag(integrationID, rp.ID)

		created, err := r.products.CreateIfAbsent(ctx, product)
		if err != nil {
			return report, fmt.Errorf("create product %q: %w", name, err)
		}
		if created {
			report.Created++
		} else {
			// another sync inserted the same name first
			report.Matched++
		}
	}

	return report, nil
}

// ReconcileOrders creates a pending order for every remote order id not seen
// before in the store. Lines are resolved to products by name; unknown lines
// are dropped, and an order with no resolvable line is not created.
func (r *CatalogReconciler) ReconcileOrders(ctx context.Context, storeID uuid.UUID, source *EcommerceIntegration, orders []RemoteOrder) (*OrderSyncReport, error) {
	report := &OrderSyncReport{IntegrationID: source.ID, Fetched: len(orders)}

	for _, ro := range orders {
		skip := func(kind SkipKind, reason string) {
			report.Skips = append(report.Skips, ReconciliationSkip{Kind: kind, RemoteID: ro.ID, Reason: reason})
		}

		remoteID := strings.TrimSpace(ro.ID)
		if remoteID == "" {
			report.Unresolved++
			skip(SkipKindOrder, "remote order has no id")
			continue
		}

		exists, err := r.orders.ExistsByRemoteID(ctx, storeID, remoteID)
		if err != nil {
			return report, fmt.Errorf("lookup order %q: %w", remoteID, err)
		}
		if exists {
			report.AlreadySynced++
			continue
		}

		lines := make([]trade.OrderLine, 0, len(ro.Lines))
		for _, rl := range ro.Lines {
			name := strings.TrimSpace(rl.Name)
			if rl.Quantity <= 0 {
				report.DroppedLines++
				skip(SkipKindOrderLine, fmt.Sprintf("line %q has quantity %d", name, rl.Quantity))
				continue
			}
			product, err := r.products.FindByStoreAndName(ctx, storeID, name)
			if errors.Is(err, shared.ErrNotFound) {
				report.DroppedLines++
				skip(SkipKindOrderLine, fmt.Sprintf("no product named %q", name))
				continue
			}
			if err != nil {
				return report, fmt.Errorf("resolve line %q of order %q: %w", name, remoteID, err)
			}
			lines = append(lines, trade.OrderLine{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  rl.Quantity,
			})
		}

		if len(lines) == 0 {
			report.Unresolved++
			skip(SkipKindOrder, "no line item matched a store product")
			continue
		}

		order, err := trade.NewOrder(storeID, source.ID, source.Provider.String(), remoteID, lines, ro.DeliveryAddress, ro.Subtotal)
		if err != nil {
			report.Unresolved++
			skip(SkipKindOrder, err.Error())
			continue
		}

		created, err := r.orders.CreateIfAbsent(ctx, order)
		if err != nil {
			return report, fmt.Errorf("create order %q: %w", remoteID, err)
		}
		if !created {
			report.AlreadySynced++
			continue
		}
		report.Created = append(report.Created, order)
	}

	return report, nil
}

func detailsOf(rp RemoteProduct) catalog.ProductDetails {
	return catalog.ProductDetails{
		Price:       rp.Price,
		Tag:         rp.Tag,
		Description: rp.Description,
		Brand:       rp.Brand,
		Stock:       rp.Stock,
	}
}
