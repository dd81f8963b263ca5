package payment

import (
	"fmt"

	"certsale/internal/adapter/ledger"
	"certsale/internal/core/domain"
	"certsale/internal/core/port"
)

// Gateway picks the adapter registered for an asset.
type Gateway struct {
	adapters map[domain.Asset]port.PaymentAdapter
}

var _ port.PaymentGateway = (*Gateway)(nil)

func NewGateway(adapters ...port.PaymentAdapter) *Gateway {
	g := &Gateway{adapters: make(map[domain.Asset]port.PaymentAdapter, len(adapters))}
	for _, a := range adapters {
		g.adapters[a.Asset()] = a
	}
	return g
}

// FromBook registers a native or token adapter for every asset in b.
func FromBook(b *ledger.Book) (*Gateway, error) {
	var adapters []port.PaymentAdapter
	for _, asset := range b.Assets() {
		l, err := b.Ledger(asset)
		if err != nil {
			return nil, err
		}
		switch asset.Kind {
		case domain.AssetNative:
			adapters = append(adapters, NewNative(l))
		case domain.AssetToken:
			adapters = append(adapters, NewToken(asset.Address, l))
		}
	}
	return NewGateway(adapters...), nil
}

func (g *Gateway) For(asset domain.Asset) (port.PaymentAdapter, error) {
	a, ok := g.adapters[asset]
	if !ok {
		return nil, fmt.Errorf("%w: no adapter for %s", domain.ErrInvalidAsset, asset)
	}
	return a, nil
}
