package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Identity is a participant address: a campaign, its owner, a buyer or a
// certificate holder. Parsed identities are always in EIP-55 checksummed
// form so two spellings of the same address compare equal.
type Identity string

// ParseIdentity validates s as a 20-byte hex address and returns its
// canonical form. The zero address is rejected.
func ParseIdentity(s string) (Identity, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentity, s)
	}
	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return "", fmt.Errorf("%w: zero address", ErrInvalidIdentity)
	}
	return Identity(addr.Hex()), nil
}

// MustIdentity is like ParseIdentity but panics on invalid input. It is
// intended for constants and tests.
func MustIdentity(s string) Identity {
	id, err := ParseIdentity(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IdentityFromBytes derives an identity from the last 20 bytes of b.
func IdentityFromBytes(b []byte) Identity {
	return Identity(common.BytesToAddress(b).Hex())
}

func (i Identity) String() string { return string(i) }

// IsZero reports whether the identity is unset.
func (i Identity) IsZero() bool { return i == "" }
