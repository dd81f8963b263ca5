package port

import (
	"context"

	"certsale/internal/core/domain"
)

// PaymentAdapter moves value of a single asset in and out of campaign
// escrow accounts. A failed call moves nothing.
type PaymentAdapter interface {
	Asset() domain.Asset
	// Collect takes amount from payment.Payer into escrow.
	Collect(ctx context.Context, escrow domain.Identity, payment domain.Payment, amount uint64) error
	// Release pays amount from escrow to the recipient.
	Release(ctx context.Context, escrow, to domain.Identity, amount uint64) error
	// Balance returns the account's balance of the asset.
	Balance(ctx context.Context, account domain.Identity) (uint64, error)
}

// PaymentGateway selects the adapter for a campaign's asset.
type PaymentGateway interface {
	For(asset domain.Asset) (PaymentAdapter, error)
}

// ValueLedger is the account book behind an asset: the native chain or a
// fungible token contract.
type ValueLedger interface {
	BalanceOf(ctx context.Context, account domain.Identity) (uint64, error)
	Allowance(ctx context.Context, owner, spender domain.Identity) (uint64, error)
	Transfer(ctx context.Context, from, to domain.Identity, amount uint64) error
	TransferFrom(ctx context.Context, spender, from, to domain.Identity, amount uint64) error
}

// LedgerUseCase exposes the development value ledger to clients so they
// can fund accounts and approve campaigns before buying.
type LedgerUseCase interface {
	Balance(ctx context.Context, asset domain.Asset, account domain.Identity) (uint64, error)
	Approve(ctx context.Context, asset domain.Asset, owner, spender domain.Identity, amount uint64) error
	Faucet(ctx context.Context, asset domain.Asset, account domain.Identity, amount uint64) error
}
