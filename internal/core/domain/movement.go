package domain

import "fmt"

// Payment is what a caller offers with an operation that collects value.
// Attached is the native value sent along with the call; it is always zero
// for token-denominated campaigns.
type Payment struct {
	Payer    Identity `json:"payer"`
	Attached uint64   `json:"attached"`
}

// MovementKind tells the settlement layer which way value flows.
type MovementKind uint8

const (
	// MovementNone means the operation moves no value.
	MovementNone MovementKind = iota
	// MovementCollect pulls value from the payer into the campaign escrow.
	MovementCollect
	// MovementRelease pushes value from the escrow to a recipient.
	MovementRelease
)

func (k MovementKind) String() string {
	switch k {
	case MovementCollect:
		return "collect"
	case MovementRelease:
		return "release"
	default:
		return "none"
	}
}

// Movement is the single value transfer an operation requires. The
// campaign state already reflects it when it is returned; the caller must
// settle it or restore the state it held before the operation.
type Movement struct {
	Kind    MovementKind
	Party   Identity
	Amount  uint64
	Payment Payment
}

func collectFrom(p Payment, amount uint64) Movement {
	return Movement{Kind: MovementCollect, Party: p.Payer, Amount: amount, Payment: p}
}

func releaseTo(to Identity, amount uint64) Movement {
	return Movement{Kind: MovementRelease, Party: to, Amount: amount}
}

// Ledger tracks value held by a campaign. Collected always equals the sum
// of the three outflows plus Escrow.
type Ledger struct {
	Collected   uint64 `json:"collected"`
	Withdrawn   uint64 `json:"withdrawn"`
	Refunded    uint64 `json:"refunded"`
	Distributed uint64 `json:"distributed"`
	Escrow      uint64 `json:"escrow"`
}

// Released is the total value that left the escrow.
func (l Ledger) Released() uint64 {
	return l.Withdrawn + l.Refunded + l.Distributed
}

func (l Ledger) canCollect(amount uint64) error {
	if l.Escrow+amount < l.Escrow || l.Collected+amount < l.Collected {
		return fmt.Errorf("%w: escrow would overflow", ErrCapacityExceeded)
	}
	return nil
}

func (l *Ledger) collect(amount uint64) error {
	if err := l.canCollect(amount); err != nil {
		return err
	}
	l.Escrow += amount
	l.Collected += amount
	return nil
}

func (l *Ledger) release(amount uint64, bucket *uint64) error {
	if amount > l.Escrow {
		return ErrConservationViolated
	}
	l.Escrow -= amount
	*bucket += amount
	return nil
}
