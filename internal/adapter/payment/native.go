// Package payment implements the escrow adapters that move a campaign's
// payment asset.
package payment

import (
	"context"
	"fmt"

	"certsale/internal/core/domain"
	"certsale/internal/core/port"
)

// Native settles campaigns paid in the chain's native value. The payer
// attaches value to the call and it must match the amount exactly.
type Native struct {
	ledger port.ValueLedger
}

var _ port.PaymentAdapter = (*Native)(nil)

func NewNative(ledger port.ValueLedger) *Native {
	return &Native{ledger: ledger}
}

func (n *Native) Asset() domain.Asset { return domain.NativeAsset() }

func (n *Native) Collect(ctx context.Context, escrow domain.Identity, p domain.Payment, amount uint64) error {
	switch {
	case p.Attached < amount:
		return fmt.Errorf("%w: attached %d, need %d", domain.ErrInsufficientPayment, p.Attached, amount)
	case p.Attached > amount:
		return fmt.Errorf("%w: attached %d, need %d", domain.ErrOverPayment, p.Attached, amount)
	}
	if amount == 0 {
		return nil
	}
	if err := n.ledger.Transfer(ctx, p.Payer, escrow, amount); err != nil {
		return transferFailed(err)
	}
	return nil
}

func (n *Native) Release(ctx context.Context, escrow, to domain.Identity, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := n.ledger.Transfer(ctx, escrow, to, amount); err != nil {
		return transferFailed(err)
	}
	return nil
}

func (n *Native) Balance(ctx context.Context, account domain.Identity) (uint64, error) {
	return n.ledger.BalanceOf(ctx, account)
}

func transferFailed(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrPaymentTransferFailed, err)
}
