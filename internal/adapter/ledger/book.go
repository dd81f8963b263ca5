package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"certsale/internal/core/domain"
	"certsale/internal/core/port"
)

var (
	ErrUnknownAsset   = errors.New("asset is not registered")
	ErrFaucetDisabled = errors.New("faucet is disabled")
)

// Book keeps one Ledger per registered asset.
type Book struct {
	mu      sync.RWMutex
	ledgers map[domain.Asset]*Ledger
	faucet  bool
}

var _ port.LedgerUseCase = (*Book)(nil)

// NewBook returns a book with the native asset and one ledger per token.
func NewBook(faucet bool, tokens ...domain.Identity) *Book {
	b := &Book{
		ledgers: map[domain.Asset]*Ledger{domain.NativeAsset(): New()},
		faucet:  faucet,
	}
	for _, t := range tokens {
		b.ledgers[domain.TokenAsset(t)] = New()
	}
	return b
}

// Ledger returns the ledger of asset.
func (b *Book) Ledger(asset domain.Asset) (*Ledger, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	l, ok := b.ledgers[asset]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAsset, asset)
	}
	return l, nil
}

// Assets returns the registered assets, native first.
func (b *Book) Assets() []domain.Asset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.Asset, 0, len(b.ledgers))
	for a := range b.ledgers {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind == domain.AssetNative
		}
		return out[i].Address < out[j].Address
	})
	return out
}

func (b *Book) Balance(ctx context.Context, asset domain.Asset, account domain.Identity) (uint64, error) {
	l, err := b.Ledger(asset)
	if err != nil {
		return 0, err
	}
	return l.BalanceOf(ctx, account)
}

func (b *Book) Approve(ctx context.Context, asset domain.Asset, owner, spender domain.Identity, amount uint64) error {
	l, err := b.Ledger(asset)
	if err != nil {
		return err
	}
	return l.Approve(ctx, owner, spender, amount)
}

// Faucet mints amount to account when the book was created with the
// faucet enabled.
func (b *Book) Faucet(ctx context.Context, asset domain.Asset, account domain.Identity, amount uint64) error {
	if !b.faucet {
		return ErrFaucetDisabled
	}
	l, err := b.Ledger(asset)
	if err != nil {
		return err
	}
	return l.Mint(ctx, account, amount)
}
