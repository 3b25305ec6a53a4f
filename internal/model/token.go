package model

import "strings"

// Token describes a supported or known ERC20 token.
type Token struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int32  `json:"decimals"`
	Fee      uint32 `json:"fee,omitempty"`
	Pool     string `json:"pool,omitempty"`
}

// Key returns the lower-cased address used for lookups.
func (t Token) Key() string {
	return strings.ToLower(t.Address)
}
