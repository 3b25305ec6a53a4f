package token

import (
	"strings"

	"batchSwap/internal/model"
)

const (
	UnknownSymbol   = "Unknown"
	DefaultDecimals = int32(18)
)

// Registry resolves token metadata by address, ignoring case.
type Registry struct {
	supported []model.Token
	bySupport map[string]model.Token
	byKnown   map[string]model.Token
}

// NewRegistry indexes the supported and known token tables.
func NewRegistry(supported, known []model.Token) *Registry {
	r := &Registry{
		supported: append([]model.Token(nil), supported...),
		bySupport: make(map[string]model.Token, len(supported)),
		byKnown:   make(map[string]model.Token, len(known)),
	}
	for _, t := range supported {
		r.bySupport[t.Key()] = t
	}
	for _, t := range known {
		r.byKnown[t.Key()] = t
	}
	return r
}

// Default returns a registry over the built-in tables.
func Default() *Registry {
	return NewRegistry(DefaultSupported, DefaultKnown)
}

// Supported returns the supported tokens in table order.
func (r *Registry) Supported() []model.Token {
	return append([]model.Token(nil), r.supported...)
}

// LookupSupported finds a supported token.
func (r *Registry) LookupSupported(address string) (model.Token, bool) {
	t, ok := r.bySupport[strings.ToLower(strings.TrimSpace(address))]
	return t, ok
}

// Resolve returns the display symbol and decimals for an address.
// Unknown addresses resolve to "Unknown" with 18 decimals.
func (r *Registry) Resolve(address string) (string, int32) {
	key := strings.ToLower(strings.TrimSpace(address))
	if t, ok := r.byKnown[key]; ok {
		return t.Symbol, t.Decimals
	}
	return UnknownSymbol, DefaultDecimals
}
