package domain

import "fmt"

// AssetKind selects how value moves for a campaign.
type AssetKind string

const (
	// AssetNative is paid with value attached to the call itself.
	AssetNative AssetKind = "native"
	// AssetToken is paid by pulling a pre-approved fungible token balance.
	AssetToken AssetKind = "token"
)

// Asset identifies the single payment asset of a campaign.
type Asset struct {
	Kind    AssetKind `json:"kind"`
	Address Identity  `json:"address,omitempty"`
}

// NativeAsset returns the native-currency asset.
func NativeAsset() Asset { return Asset{Kind: AssetNative} }

// TokenAsset returns the fungible token deployed at addr.
func TokenAsset(addr Identity) Asset { return Asset{Kind: AssetToken, Address: addr} }

// Validate checks that the asset kind is known and that token assets carry
// an address.
func (a Asset) Validate() error {
	switch a.Kind {
	case AssetNative:
		if !a.Address.IsZero() {
			return fmt.Errorf("%w: native asset has no address", ErrInvalidAsset)
		}
	case AssetToken:
		if a.Address.IsZero() {
			return fmt.Errorf("%w: token asset requires an address", ErrInvalidAsset)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidAsset, a.Kind)
	}
	return nil
}

func (a Asset) String() string {
	if a.Kind == AssetToken {
		return "token:" + a.Address.String()
	}
	return string(a.Kind)
}

// ParseAsset parses "native" or "token:<address>".
func ParseAsset(s string) (Asset, error) {
	if s == string(AssetNative) {
		return NativeAsset(), nil
	}
	const prefix = "token:"
	if len(s) > len(prefix) && s[:len(prefix)] == prefix {
		addr, err := ParseIdentity(s[len(prefix):])
		if err != nil {
			return Asset{}, fmt.Errorf("%w: %w", ErrInvalidAsset, err)
		}
		return TokenAsset(addr), nil
	}
	return Asset{}, fmt.Errorf("%w: %q", ErrInvalidAsset, s)
}
