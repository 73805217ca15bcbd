// Package adapter maps integration records to the adapters that serve them.
package adapter

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
)

// Constructor builds an adapter for one integration record
type Constructor[R integration.Record, A any] func(rec R) (A, error)

// Registry maps provider codes of one category to adapter constructors
type Registry[R integration.Record, A any] struct {
	mu           sync.RWMutex
	category     integration.Category
	constructors map[integration.ProviderCode]Constructor[R, A]
}

// NewRegistry creates an empty registry for a category
func NewRegistry[R integration.Record, A any](category integration.Category) *Registry[R, A] {
	return &Registry[R, A]{
		category:     category,
		constructors: make(map[integration.ProviderCode]Constructor[R, A]),
	}
}

// Register adds a constructor. Codes are normalized before use.
func (r *Registry[R, A]) Register(code integration.ProviderCode, ctor Constructor[R, A]) error {
	code = integration.ParseProviderCode(code.String())
	if code.IsEmpty() {
		return fmt.Errorf("%w: empty %s provider code", integration.ErrProviderNotSupported, r.category)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.constructors[code]; exists {
		return fmt.Errorf("%w: %s provider '%s'", integration.ErrProviderRegistered, r.category, code)
	}
	r.constructors[code] = ctor
	return nil
}

// Supports reports whether code has a constructor
func (r *Registry[R, A]) Supports(code integration.ProviderCode) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.constructors[integration.ParseProviderCode(code.String())]
	return ok
}

// Providers returns the registered codes in sorted order
func (r *Registry[R, A]) Providers() []integration.ProviderCode {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]integration.ProviderCode, 0, len(r.constructors))
	for code := range r.constructors {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Build constructs the adapter for one record
func (r *Registry[R, A]) Build(rec R) (A, error) {
	r.mu.RLock()
	ctor, ok := r.constructors[normalized(rec)]
	r.mu.RUnlock()

	if !ok {
		var zero A
		return zero, r.configurationError(rec)
	}
	return ctor(rec)
}

// BuildAll constructs one adapter per record, in record order. Every provider
// code is checked before anything is built, so an unsupported record yields a
// *integration.ConfigurationError and no adapters at all.
func (r *Registry[R, A]) BuildAll(records []R) ([]A, error) {
	r.mu.RLock()
	ctors := make([]Constructor[R, A], len(records))
	for i, rec := range records {
		ctor, ok := r.constructors[normalized(rec)]
		if !ok {
			r.mu.RUnlock()
			return nil, r.configurationError(rec)
		}
		ctors[i] = ctor
	}
	r.mu.RUnlock()

	adapters := make([]A, 0, len(records))
	for i, rec := range records {
		a, err := ctors[i](rec)
		if err != nil {
			return nil, fmt.Errorf("build %s adapter for integration %s: %w", r.category, rec.GetID(), err)
		}
		adapters = append(adapters, a)
	}
	return adapters, nil
}

func (r *Registry[R, A]) configurationError(rec R) error {
	return &integration.ConfigurationError{
		Category:      r.category,
		Provider:      rec.ProviderCode(),
		IntegrationID: rec.GetID(),
	}
}

func normalized(rec integration.Record) integration.ProviderCode {
	return integration.ParseProviderCode(rec.ProviderCode().String())
}
