package dex

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	feeSize = 3
	maxFee  = 1<<24 - 1
)

// Path is a validated multi-hop swap path: tokens[i] -> fees[i] -> tokens[i+1].
type Path struct {
	tokens []common.Address
	fees   []uint32
}

// NewPath validates that there is exactly one fee tier between consecutive tokens.
func NewPath(tokens []common.Address, fees []uint32) (Path, error) {
	if len(tokens) == 0 {
		return Path{}, fmt.Errorf("path is empty")
	}
	if len(tokens) != len(fees)+1 {
		return Path{}, fmt.Errorf("path/fee lengths do not match: %d tokens, %d fees", len(tokens), len(fees))
	}
	for i, fee := range fees {
		if fee > maxFee {
			return Path{}, fmt.Errorf("fee %d at hop %d exceeds uint24", fee, i)
		}
	}
	return Path{
		tokens: append([]common.Address(nil), tokens...),
		fees:   append([]uint32(nil), fees...),
	}, nil
}

// ParsePath builds a Path from hex addresses.
func ParsePath(addresses []string, fees []uint32) (Path, error) {
	tokens := make([]common.Address, 0, len(addresses))
	for _, addr := range addresses {
		addr = strings.TrimSpace(addr)
		if !common.IsHexAddress(addr) {
			return Path{}, fmt.Errorf("invalid address: %s", addr)
		}
		tokens = append(tokens, common.HexToAddress(addr))
	}
	return NewPath(tokens, fees)
}

// EncodePath returns the lower-case 0x-prefixed packed encoding of a path.
func EncodePath(addresses []string, fees []uint32) (string, error) {
	path, err := ParsePath(addresses, fees)
	if err != nil {
		return "", err
	}
	return path.Hex(), nil
}

// Hops returns the number of pools traversed.
func (p Path) Hops() int {
	return len(p.fees)
}

// Tokens returns a copy of the token sequence.
func (p Path) Tokens() []common.Address {
	return append([]common.Address(nil), p.tokens...)
}

// Bytes packs the path as address(20) || fee(3) || ... || address(20).
func (p Path) Bytes() []byte {
	if len(p.tokens) == 0 {
		return nil
	}
	out := make([]byte, 0, common.AddressLength*len(p.tokens)+feeSize*len(p.fees))
	for i, fee := range p.fees {
		out = append(out, p.tokens[i].Bytes()...)
		out = append(out, byte(fee>>16), byte(fee>>8), byte(fee))
	}
	return append(out, p.tokens[len(p.tokens)-1].Bytes()...)
}

// Hex returns the packed path as lower-case hex with a 0x prefix.
func (p Path) Hex() string {
	return strings.ToLower(hexutil.Encode(p.Bytes()))
}
