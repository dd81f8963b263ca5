package domain

import (
	"fmt"
	"time"

	"github.com/holiman/uint256"
)

// Distribution is a deposit of later profit split pro rata over the
// certificates that existed when it was created.
//
// Claims are tracked per certificate rather than per holder: a certificate
// that changes hands after its share was claimed carries nothing to the new
// holder, and certificates minted after creation are not eligible. Together
// these keep the sum of all claims within TotalAmount.
type Distribution struct {
	Index         int                    `json:"index"`
	TotalAmount   uint64                 `json:"total_amount"`
	SupplyBasis   uint64                 `json:"supply_basis"`
	MintWatermark CertificateID          `json:"mint_watermark"`
	Paid          uint64                 `json:"paid"`
	Claimed       map[CertificateID]bool `json:"claimed"`
	CreatedAt     time.Time              `json:"created_at"`
}

// Remaining is the part of TotalAmount not yet claimed.
func (d *Distribution) Remaining() uint64 { return d.TotalAmount - d.Paid }

func (d *Distribution) eligible(cert Certificate) bool {
	return cert.ID < d.MintWatermark && !cert.Burned && !d.Claimed[cert.ID]
}

func (d *Distribution) clone() Distribution {
	out := *d
	if d.Claimed != nil {
		out.Claimed = make(map[CertificateID]bool, len(d.Claimed))
		for id, v := range d.Claimed {
			out.Claimed[id] = v
		}
	}
	return out
}

// shareOf returns floor(total × count / basis) without intermediate
// overflow.
func shareOf(total, count, basis uint64) uint64 {
	if basis == 0 || count == 0 {
		return 0
	}
	if count >= basis {
		return total
	}
	z, _ := new(uint256.Int).MulDivOverflow(uint256.NewInt(total), uint256.NewInt(count), uint256.NewInt(basis))
	return z.Uint64()
}

// ClaimLine is the payout of one distribution within a claim.
type ClaimLine struct {
	Index        int             `json:"index"`
	Certificates []CertificateID `json:"certificates"`
	Amount       uint64          `json:"amount"`
}

// ClaimReceipt sums the lines of a single or batched claim.
type ClaimReceipt struct {
	Lines  []ClaimLine `json:"lines"`
	Amount uint64      `json:"amount"`
}

// CreateDistribution records a new distribution of amount, deposited by
// the owner, over the current live supply.
func (c *Campaign) CreateDistribution(caller Identity, amount uint64, payment Payment, now time.Time) (Distribution, Movement, error) {
	if err := c.requireOwner(caller); err != nil {
		return Distribution{}, Movement{}, err
	}
	if st := c.EffectiveStatus(now); st != StatusWithdrawn {
		return Distribution{}, Movement{}, fmt.Errorf("%w: campaign is %s", ErrNotWithdrawn, st)
	}
	if amount == 0 {
		return Distribution{}, Movement{}, ErrZeroAmount
	}
	basis := c.Registry.LiveSupply()
	if basis == 0 {
		return Distribution{}, Movement{}, ErrEmptySupply
	}
	if err := c.Ledger.collect(amount); err != nil {
		return Distribution{}, Movement{}, err
	}
	d := Distribution{
		Index:         len(c.Distributions),
		TotalAmount:   amount,
		SupplyBasis:   basis,
		MintWatermark: CertificateID(c.Registry.Minted()),
		Claimed:       make(map[CertificateID]bool),
		CreatedAt:     now.UTC(),
	}
	c.Distributions = append(c.Distributions, d)
	c.touch(now)
	payment.Payer = caller
	return d.clone(), collectFrom(payment, amount), nil
}

// Distribution returns a copy of the distribution at index.
func (c *Campaign) Distribution(index int) (Distribution, error) {
	d, err := c.distribution(index)
	if err != nil {
		return Distribution{}, err
	}
	return d.clone(), nil
}

func (c *Campaign) distribution(index int) (*Distribution, error) {
	if index < 0 || index >= len(c.Distributions) {
		return nil, fmt.Errorf("%w: %d", ErrDistributionNotFound, index)
	}
	return &c.Distributions[index], nil
}

// Entitlement returns what holder would receive by claiming distribution
// index now. It reads current holdings; only the supply basis is frozen.
func (c *Campaign) Entitlement(index int, holder Identity) (uint64, error) {
	d, err := c.distribution(index)
	if err != nil {
		return 0, err
	}
	amount, _ := c.claimable(d, holder, &c.Registry)
	return amount, nil
}

func (c *Campaign) claimable(d *Distribution, holder Identity, reg OwnershipRegistry) (uint64, []CertificateID) {
	n := reg.BalanceOf(holder)
	var certs []CertificateID
	for i := 0; uint64(i) < n; i++ {
		id, err := reg.TokenOfOwnerByIndex(holder, i)
		if err != nil {
			break
		}
		cert, err := c.Registry.Get(id)
		if err != nil || !d.eligible(cert) {
			continue
		}
		certs = append(certs, id)
	}
	amount := shareOf(d.TotalAmount, uint64(len(certs)), d.SupplyBasis)
	if amount > d.Remaining() {
		amount = d.Remaining()
	}
	return amount, certs
}

// Claim pays holder's share of distribution index. Claiming again without
// receiving new eligible certificates pays zero and is not an error.
func (c *Campaign) Claim(index int, holder Identity, now time.Time) (ClaimReceipt, Movement, error) {
	return c.ClaimBatch([]int{index}, holder, now)
}

// ClaimBatch applies Claim to each index in order and releases the total
// in one movement. An unknown index fails the whole batch.
func (c *Campaign) ClaimBatch(indices []int, holder Identity, now time.Time) (ClaimReceipt, Movement, error) {
	if holder.IsZero() {
		return ClaimReceipt{}, Movement{}, ErrInvalidIdentity
	}
	for _, idx := range indices {
		if _, err := c.distribution(idx); err != nil {
			return ClaimReceipt{}, Movement{}, err
		}
	}

	var receipt ClaimReceipt
	for _, idx := range indices {
		d := &c.Distributions[idx]
		amount, certs := c.claimable(d, holder, &c.Registry)
		if d.Claimed == nil {
			d.Claimed = make(map[CertificateID]bool)
		}
		for _, id := range certs {
			d.Claimed[id] = true
		}
		d.Paid += amount
		receipt.Lines = append(receipt.Lines, ClaimLine{Index: idx, Certificates: certs, Amount: amount})
		receipt.Amount += amount
	}
	if err := c.Ledger.release(receipt.Amount, &c.Ledger.Distributed); err != nil {
		return ClaimReceipt{}, Movement{}, err
	}
	if receipt.Amount > 0 {
		c.touch(now)
	}
	return receipt, releaseTo(holder, receipt.Amount), nil
}
