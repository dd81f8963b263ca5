// Package ledger is an in-memory value ledger standing in for the chain:
// one Ledger per asset, with ERC-20 style balances and allowances.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"certsale/internal/core/domain"
	"certsale/internal/core/port"
)

var (
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrBalanceOverflow       = errors.New("balance overflow")
)

// Receiver is called before value is credited to an account it is
// registered for. Returning an error rejects the transfer, the way a
// contract's receive hook reverts.
//
// A receiver that calls back into the campaign service must pass ctx, or a
// context derived from it, so the call is rejected as reentrant. On any
// other context the call waits for the campaign being settled and only
// returns once that context is done.
type Receiver func(ctx context.Context, from domain.Identity, amount uint64) error

// Ledger holds balances and allowances of a single asset.
type Ledger struct {
	mu         sync.Mutex
	balances   map[domain.Identity]uint64
	allowances map[domain.Identity]map[domain.Identity]uint64
	receivers  map[domain.Identity]Receiver
}

var _ port.ValueLedger = (*Ledger)(nil)

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{
		balances:   make(map[domain.Identity]uint64),
		allowances: make(map[domain.Identity]map[domain.Identity]uint64),
		receivers:  make(map[domain.Identity]Receiver),
	}
}

// Mint credits amount to account out of thin air.
func (l *Ledger) Mint(_ context.Context, account domain.Identity, amount uint64) error {
	if account.IsZero() {
		return domain.ErrInvalidIdentity
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	bal := l.balances[account]
	if bal+amount < bal {
		return ErrBalanceOverflow
	}
	l.balances[account] = bal + amount
	return nil
}

// Approve sets the amount spender may pull from owner.
func (l *Ledger) Approve(_ context.Context, owner, spender domain.Identity, amount uint64) error {
	if owner.IsZero() || spender.IsZero() {
		return domain.ErrInvalidIdentity
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.allowances[owner] == nil {
		l.allowances[owner] = make(map[domain.Identity]uint64)
	}
	l.allowances[owner][spender] = amount
	return nil
}

// SetReceiver registers r for account; a nil r removes it.
func (l *Ledger) SetReceiver(account domain.Identity, r Receiver) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if r == nil {
		delete(l.receivers, account)
		return
	}
	l.receivers[account] = r
}

func (l *Ledger) BalanceOf(_ context.Context, account domain.Identity) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[account], nil
}

func (l *Ledger) Allowance(_ context.Context, owner, spender domain.Identity) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.allowances[owner][spender], nil
}

// Transfer moves amount from one account to another.
func (l *Ledger) Transfer(ctx context.Context, from, to domain.Identity, amount uint64) error {
	if err := l.notify(ctx, from, to, amount); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(from, to, amount)
}

// TransferFrom moves amount from one account to another on behalf of
// spender, consuming spender's allowance.
func (l *Ledger) TransferFrom(ctx context.Context, spender, from, to domain.Identity, amount uint64) error {
	if err := l.notify(ctx, from, to, amount); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	allowed := l.allowances[from][spender]
	if allowed < amount {
		return fmt.Errorf("%w: %s allows %s %d, need %d", ErrInsufficientAllowance, from, spender, allowed, amount)
	}
	if err := l.move(from, to, amount); err != nil {
		return err
	}
	l.allowances[from][spender] = allowed - amount
	return nil
}

// notify runs the recipient's hook without holding the lock so the hook
// may call back into the ledger or the service.
func (l *Ledger) notify(ctx context.Context, from, to domain.Identity, amount uint64) error {
	l.mu.Lock()
	r := l.receivers[to]
	l.mu.Unlock()
	if r == nil {
		return nil
	}
	if err := r(ctx, from, amount); err != nil {
		return fmt.Errorf("recipient %s rejected transfer: %w", to, err)
	}
	return nil
}

func (l *Ledger) move(from, to domain.Identity, amount uint64) error {
	if from.IsZero() || to.IsZero() {
		return domain.ErrInvalidIdentity
	}
	bal := l.balances[from]
	if bal < amount {
		return fmt.Errorf("%w: %s has %d, need %d", ErrInsufficientBalance, from, bal, amount)
	}
	if from == to {
		return nil
	}
	dst := l.balances[to]
	if dst+amount < dst {
		return ErrBalanceOverflow
	}
	l.balances[from] = bal - amount
	l.balances[to] = dst + amount
	return nil
}
