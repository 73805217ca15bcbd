package integration

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ---------------------------------------------------------------------------
// ProviderCode identifies the concrete adapter behind an integration record
// ---------------------------------------------------------------------------

// ProviderCode identifies the concrete adapter behind an integration record
type ProviderCode string

const (
	// ProviderDummyStore is the reference e-commerce gateway
	ProviderDummyStore ProviderCode = "DUMMY_STORE"
	// ProviderDummyCourier is the reference courier gateway
	ProviderDummyCourier ProviderCode = "DUMMY_COURIER"
)

// ParseProviderCode normalizes user input. It does not check that an adapter
// is registered for the code; the adapter factory owns that decision.
func ParseProviderCode(s string) ProviderCode {
	return ProviderCode(strings.ToUpper(strings.TrimSpace(s)))
}

// String returns the string representation of ProviderCode
func (c ProviderCode) String() string {
	return string(c)
}

// IsEmpty reports whether no provider was given
func (c ProviderCode) IsEmpty() bool {
	return strings.TrimSpace(string(c)) == ""
}

// DisplayName returns a human-readable name, e.g. "Dummy Store"
func (c ProviderCode) DisplayName() string {
	if c.IsEmpty() {
		return ""
	}
	words := strings.ReplaceAll(strings.ToLower(string(c)), "_", " ")
	return cases.Title(language.English).String(words)
}

// Category is the kind of external system an integration talks to
type Category string

const (
	CategoryEcommerce Category = "ecommerce"
	CategoryCourier   Category = "courier"
)

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}
