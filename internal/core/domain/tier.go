package domain

import (
	"fmt"
	"math"
)

// PricingMode decides how a tier's unit price derives from the base price.
type PricingMode string

const (
	// PricingFlat charges the base price for every unit of every tier.
	PricingFlat PricingMode = "flat"
	// PricingDenomination charges base price × tier capacity per unit, so a
	// certificate from a tier of 50 costs fifty times the base.
	PricingDenomination PricingMode = "denomination"
)

// Pricing is fixed at campaign construction.
type Pricing struct {
	Mode      PricingMode `json:"mode"`
	BasePrice uint64      `json:"base_price"`
}

// UnitPrice returns the per-unit price of a tier with the given capacity.
func (p Pricing) UnitPrice(capacity uint64) (uint64, error) {
	switch p.Mode {
	case PricingFlat:
		return p.BasePrice, nil
	case PricingDenomination:
		if capacity != 0 && p.BasePrice > math.MaxUint64/capacity {
			return 0, fmt.Errorf("%w: unit price overflows", ErrInvalidCampaign)
		}
		return p.BasePrice * capacity, nil
	default:
		return 0, fmt.Errorf("%w: unknown pricing mode %q", ErrInvalidCampaign, p.Mode)
	}
}

// Tier is a priced bucket of identical sale units.
type Tier struct {
	Index      int    `json:"index"`
	ContentRef string `json:"content_ref"`
	Capacity   uint64 `json:"capacity"`
	Remaining  uint64 `json:"remaining"`
	UnitPrice  uint64 `json:"unit_price"`
}

// Sold returns how many units left the tier.
func (t Tier) Sold() uint64 { return t.Capacity - t.Remaining }

// TierRequest asks for Quantity units of the tier at index Tier.
type TierRequest struct {
	Tier     int    `json:"tier"`
	Quantity uint64 `json:"quantity"`
}

// allocation is the outcome of a successful allocate call: one tier index
// per unit, in the order the caller asked for them.
type allocation struct {
	units []int
	cost  uint64
}

// allocate checks that every request fits and prices it. It changes
// nothing; commit applies the result.
func (c *Campaign) allocate(reqs []TierRequest) (allocation, error) {
	need := make(map[int]uint64, len(reqs))
	var count, cost uint64
	for _, r := range reqs {
		if r.Tier < 0 || r.Tier >= len(c.Tiers) {
			return allocation{}, fmt.Errorf("%w: %d", ErrTierNotFound, r.Tier)
		}
		if r.Quantity == 0 {
			continue
		}
		tier := c.Tiers[r.Tier]
		total := need[r.Tier] + r.Quantity
		if total < r.Quantity || total > tier.Remaining {
			return allocation{}, fmt.Errorf("%w: tier %d has %d remaining", ErrCapacityExceeded, r.Tier, tier.Remaining)
		}
		need[r.Tier] = total
		count += r.Quantity
		// Construction guarantees Σ capacity × price fits in uint64.
		cost += r.Quantity * tier.UnitPrice
	}
	if count == 0 {
		return allocation{}, ErrEmptyRequest
	}
	minted := c.Registry.Minted()
	if minted+count < minted || minted+count > c.MaximumSupply {
		return allocation{}, fmt.Errorf("%w: maximum supply %d, minted %d, requested %d",
			ErrCapacityExceeded, c.MaximumSupply, minted, count)
	}

	units := make([]int, 0, count)
	for _, r := range reqs {
		for i := uint64(0); i < r.Quantity; i++ {
			units = append(units, r.Tier)
		}
	}
	return allocation{units: units, cost: cost}, nil
}

// commit decrements tier stock and mints one certificate per unit.
func (c *Campaign) commit(a allocation, to Identity, paid bool) []CertificateID {
	ids := make([]CertificateID, 0, len(a.units))
	for _, t := range a.units {
		c.Tiers[t].Remaining--
		var price uint64
		if paid {
			price = c.Tiers[t].UnitPrice
		}
		ids = append(ids, c.Registry.mint(to, t, price))
	}
	return ids
}

// UnitsToRequests converts a per-unit list of tier indices, as accepted by
// the contract buy call, into tier requests preserving order.
func UnitsToRequests(units []int) []TierRequest {
	reqs := make([]TierRequest, 0, len(units))
	for _, t := range units {
		if n := len(reqs); n > 0 && reqs[n-1].Tier == t {
			reqs[n-1].Quantity++
			continue
		}
		reqs = append(reqs, TierRequest{Tier: t, Quantity: 1})
	}
	return reqs
}
