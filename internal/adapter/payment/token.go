package payment

import (
	"context"
	"fmt"

	"certsale/internal/core/domain"
	"certsale/internal/core/port"
)

// Token settles campaigns paid in a fungible token. The payer approves the
// campaign beforehand and the campaign pulls the amount; no native value
// may be attached.
type Token struct {
	asset  domain.Asset
	ledger port.ValueLedger
}

var _ port.PaymentAdapter = (*Token)(nil)

func NewToken(address domain.Identity, ledger port.ValueLedger) *Token {
	return &Token{asset: domain.TokenAsset(address), ledger: ledger}
}

func (t *Token) Asset() domain.Asset { return t.asset }

func (t *Token) Collect(ctx context.Context, escrow domain.Identity, p domain.Payment, amount uint64) error {
	if p.Attached != 0 {
		return fmt.Errorf("%w: %d native value attached to a token payment", domain.ErrOverPayment, p.Attached)
	}
	if amount == 0 {
		return nil
	}
	allowed, err := t.ledger.Allowance(ctx, p.Payer, escrow)
	if err != nil {
		return transferFailed(err)
	}
	if allowed < amount {
		return fmt.Errorf("%w: allowance %d, need %d", domain.ErrInsufficientPayment, allowed, amount)
	}
	bal, err := t.ledger.BalanceOf(ctx, p.Payer)
	if err != nil {
		return transferFailed(err)
	}
	if bal < amount {
		return fmt.Errorf("%w: balance %d, need %d", domain.ErrInsufficientPayment, bal, amount)
	}
	if err := t.ledger.TransferFrom(ctx, escrow, p.Payer, escrow, amount); err != nil {
		return transferFailed(err)
	}
	return nil
}

func (t *Token) Release(ctx context.Context, escrow, to domain.Identity, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := t.ledger.Transfer(ctx, escrow, to, amount); err != nil {
		return transferFailed(err)
	}
	return nil
}

func (t *Token) Balance(ctx context.Context, account domain.Identity) (uint64, error) {
	return t.ledger.BalanceOf(ctx, account)
}
