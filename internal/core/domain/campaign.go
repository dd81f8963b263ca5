package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Campaign is one certificate sale: its tiers, the certificates it minted,
// the escrow holding collected value and the distributions paid out of it.
// Amounts are integer units of the campaign's payment asset.
type Campaign struct {
	ID            Identity       `json:"id"`
	Owner         Identity       `json:"owner"`
	Name          string         `json:"name"`
	Symbol        string         `json:"symbol"`
	ContentBase   string         `json:"content_base"`
	Asset         Asset          `json:"asset"`
	Pricing       Pricing        `json:"pricing"`
	Status        Status         `json:"status"`
	Deadline      time.Time      `json:"deadline"`
	MaximumSupply uint64         `json:"maximum_supply"`
	Tiers         []Tier         `json:"tiers"`
	Registry      Registry       `json:"registry"`
	Distributions []Distribution `json:"distributions"`
	Ledger        Ledger         `json:"ledger"`
	Version       int64          `json:"version"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// CreateCampaignInput describes a campaign to create.
type CreateCampaignInput struct {
	Owner          Identity
	ContentBase    string
	Name           string
	Symbol         string
	TierRefs       []string
	TierQuantities []uint64
	Pricing        Pricing
	MaximumSupply  uint64
	Deadline       time.Time
	Asset          Asset
}

// NormalizeCreateCampaignInput trims and validates input.
func NormalizeCreateCampaignInput(input CreateCampaignInput) (CreateCampaignInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Symbol = strings.TrimSpace(input.Symbol)
	input.ContentBase = strings.TrimSpace(input.ContentBase)

	if input.Owner.IsZero() {
		return CreateCampaignInput{}, fmt.Errorf("%w: owner is required", ErrInvalidIdentity)
	}
	if input.Name == "" {
		return CreateCampaignInput{}, fmt.Errorf("%w: name is required", ErrInvalidCampaign)
	}
	if len(input.TierQuantities) == 0 {
		return CreateCampaignInput{}, fmt.Errorf("%w: at least one tier is required", ErrInvalidCampaign)
	}
	if len(input.TierRefs) != 0 && len(input.TierRefs) != len(input.TierQuantities) {
		return CreateCampaignInput{}, fmt.Errorf("%w: %d tier refs for %d tiers",
			ErrInvalidCampaign, len(input.TierRefs), len(input.TierQuantities))
	}
	if input.MaximumSupply == 0 {
		return CreateCampaignInput{}, fmt.Errorf("%w: maximum supply must be positive", ErrInvalidCampaign)
	}
	if input.Pricing.Mode == "" {
		input.Pricing.Mode = PricingFlat
	}
	if input.Asset.Kind == "" {
		input.Asset = NativeAsset()
	}
	if err := input.Asset.Validate(); err != nil {
		return CreateCampaignInput{}, err
	}
	return input, nil
}

// CreateCampaign builds a new campaign in status New. idGenerator returns
// the campaign address, which also identifies its escrow account.
func CreateCampaign(input CreateCampaignInput, now func() time.Time, idGenerator func() (Identity, error)) (Campaign, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		return Campaign{}, fmt.Errorf("%w: id generator is required", ErrInvalidCampaign)
	}
	normalized, err := NormalizeCreateCampaignInput(input)
	if err != nil {
		return Campaign{}, err
	}
	createdAt := now().UTC()
	if !normalized.Deadline.After(createdAt) {
		return Campaign{}, ErrInvalidDeadline
	}

	tiers := make([]Tier, len(normalized.TierQuantities))
	var capacity, revenue uint64
	for i, qty := range normalized.TierQuantities {
		if qty == 0 {
			return Campaign{}, fmt.Errorf("%w: tier %d has no capacity", ErrInvalidCampaign, i)
		}
		price, err := normalized.Pricing.UnitPrice(qty)
		if err != nil {
			return Campaign{}, err
		}
		if price != 0 && qty > math.MaxUint64/price {
			return Campaign{}, fmt.Errorf("%w: tier %d revenue overflows", ErrInvalidCampaign, i)
		}
		if capacity+qty < capacity || revenue+qty*price < revenue {
			return Campaign{}, fmt.Errorf("%w: tier totals overflow", ErrInvalidCampaign)
		}
		capacity += qty
		revenue += qty * price

		var ref string
		if len(normalized.TierRefs) > 0 {
			ref = strings.TrimSpace(normalized.TierRefs[i])
		}
		tiers[i] = Tier{
			Index:      i,
			ContentRef: ref,
			Capacity:   qty,
			Remaining:  qty,
			UnitPrice:  price,
		}
	}

	id, err := idGenerator()
	if err != nil {
		return Campaign{}, fmt.Errorf("generate campaign id: %w", err)
	}
	if id.IsZero() {
		return Campaign{}, fmt.Errorf("%w: empty campaign id", ErrInvalidIdentity)
	}

	return Campaign{
		ID:            id,
		Owner:         normalized.Owner,
		Name:          normalized.Name,
		Symbol:        normalized.Symbol,
		ContentBase:   normalized.ContentBase,
		Asset:         normalized.Asset,
		Pricing:       normalized.Pricing,
		Status:        StatusNew,
		Deadline:      normalized.Deadline.UTC(),
		MaximumSupply: normalized.MaximumSupply,
		Tiers:         tiers,
		Registry:      Registry{Owned: make(map[Identity][]CertificateID)},
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}, nil
}

// EffectiveStatus layers deadline expiry over the stored status: a campaign
// still New at or past its deadline is Cancelled.
func (c *Campaign) EffectiveStatus(now time.Time) Status {
	if c.Status == StatusNew && !now.Before(c.Deadline) {
		return StatusCancelled
	}
	return c.Status
}

// PurchaseReceipt lists the certificates minted by a purchase.
type PurchaseReceipt struct {
	Certificates []CertificateID `json:"certificates"`
	Cost         uint64          `json:"cost"`
}

// Purchase allocates the requested units, mints them to buyer at their
// tier price and asks for the total cost to be collected from payment.
func (c *Campaign) Purchase(buyer Identity, reqs []TierRequest, payment Payment, now time.Time) (PurchaseReceipt, Movement, error) {
	if buyer.IsZero() {
		return PurchaseReceipt{}, Movement{}, ErrInvalidIdentity
	}
	if st := c.EffectiveStatus(now); st != StatusNew {
		return PurchaseReceipt{}, Movement{}, fmt.Errorf("%w: campaign is %s", ErrNotNew, st)
	}
	alloc, err := c.allocate(reqs)
	if err != nil {
		return PurchaseReceipt{}, Movement{}, err
	}
	if err := c.Ledger.canCollect(alloc.cost); err != nil {
		return PurchaseReceipt{}, Movement{}, err
	}

	ids := c.commit(alloc, buyer, true)
	_ = c.Ledger.collect(alloc.cost)
	c.touch(now)

	payment.Payer = buyer
	return PurchaseReceipt{Certificates: ids, Cost: alloc.cost}, collectFrom(payment, alloc.cost), nil
}

// Withdraw ends the sale and releases the whole escrow to the owner.
func (c *Campaign) Withdraw(caller Identity, now time.Time) (uint64, Movement, error) {
	if err := c.requireOwner(caller); err != nil {
		return 0, Movement{}, err
	}
	if st := c.EffectiveStatus(now); st != StatusNew {
		return 0, Movement{}, fmt.Errorf("%w: campaign is %s", ErrNotEligibleForWithdrawal, st)
	}
	amount := c.Ledger.Escrow
	if err := c.Ledger.release(amount, &c.Ledger.Withdrawn); err != nil {
		return 0, Movement{}, err
	}
	c.Status = StatusWithdrawn
	c.touch(now)
	return amount, releaseTo(c.Owner, amount), nil
}

// Cancel ends the sale without releasing funds; holders may then reclaim.
func (c *Campaign) Cancel(caller Identity, now time.Time) error {
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	if st := c.EffectiveStatus(now); st.Terminal() {
		if st == StatusCancelled {
			return ErrAlreadyCancelled
		}
		return ErrAlreadyWithdrawn
	}
	c.Status = StatusCancelled
	c.touch(now)
	return nil
}

// ExtendDeadline moves the deadline. It is refused once the campaign is
// cancelled, including by expiry, so an expired campaign cannot be revived.
func (c *Campaign) ExtendDeadline(caller Identity, deadline, now time.Time) error {
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	if c.EffectiveStatus(now) == StatusCancelled {
		return ErrCampaignCancelled
	}
	if !deadline.After(now) {
		return ErrInvalidDeadline
	}
	c.Deadline = deadline.UTC()
	c.touch(now)
	return nil
}

// ManualTransfer mints units to recipient without payment. The
// certificates carry a zero paid price and are never refundable.
func (c *Campaign) ManualTransfer(caller Identity, reqs []TierRequest, recipient Identity, now time.Time) ([]CertificateID, error) {
	if err := c.requireOwner(caller); err != nil {
		return nil, err
	}
	if recipient.IsZero() {
		return nil, fmt.Errorf("%w: recipient is required", ErrInvalidIdentity)
	}
	if c.EffectiveStatus(now) == StatusCancelled {
		return nil, ErrCampaignCancelled
	}
	alloc, err := c.allocate(reqs)
	if err != nil {
		return nil, err
	}
	ids := c.commit(alloc, recipient, false)
	c.touch(now)
	return ids, nil
}

// RefundReceipt lists the certificates refunded and burned by a reclaim.
type RefundReceipt struct {
	Certificates []CertificateID `json:"certificates"`
	Amount       uint64          `json:"amount"`
}

// Reclaim refunds the paid price of every refundable certificate caller
// holds and burns them. Holding nothing refundable yields a zero refund.
func (c *Campaign) Reclaim(caller Identity, now time.Time) (RefundReceipt, Movement, error) {
	if caller.IsZero() {
		return RefundReceipt{}, Movement{}, ErrInvalidIdentity
	}
	if st := c.EffectiveStatus(now); st != StatusCancelled {
		return RefundReceipt{}, Movement{}, fmt.Errorf("%w: campaign is %s", ErrNotCancelled, st)
	}

	var receipt RefundReceipt
	for _, id := range c.Registry.HeldBy(caller) {
		cert := c.Registry.Certificates[id]
		if !cert.Refundable() {
			continue
		}
		receipt.Certificates = append(receipt.Certificates, id)
		receipt.Amount += cert.PaidPrice
	}
	if receipt.Amount > c.Ledger.Escrow {
		return RefundReceipt{}, Movement{}, ErrConservationViolated
	}

	for _, id := range receipt.Certificates {
		c.Registry.Certificates[id].Refunded = true
		c.Registry.burn(id)
	}
	_ = c.Ledger.release(receipt.Amount, &c.Ledger.Refunded)
	if len(receipt.Certificates) > 0 {
		c.touch(now)
	}
	return receipt, releaseTo(caller, receipt.Amount), nil
}

// TransferCertificate moves a live certificate from caller to another
// holder. Refund and distribution state travel with the certificate.
func (c *Campaign) TransferCertificate(caller Identity, id CertificateID, to Identity, now time.Time) error {
	if to.IsZero() {
		return fmt.Errorf("%w: recipient is required", ErrInvalidIdentity)
	}
	holder, err := c.Registry.OwnerOf(id)
	if err != nil {
		return err
	}
	if holder != caller {
		return ErrNotHolder
	}
	c.Registry.transfer(id, to)
	c.touch(now)
	return nil
}

// Balance returns the value currently held in escrow.
func (c *Campaign) Balance() uint64 { return c.Ledger.Escrow }

// TotalMinted returns the number of certificates ever minted.
func (c *Campaign) TotalMinted() uint64 { return c.Registry.Minted() }

// LiveSupply returns the number of certificates not burned by a refund.
func (c *Campaign) LiveSupply() uint64 { return c.Registry.LiveSupply() }

// Tier returns a copy of the tier at index i.
func (c *Campaign) Tier(i int) (Tier, error) {
	if i < 0 || i >= len(c.Tiers) {
		return Tier{}, fmt.Errorf("%w: %d", ErrTierNotFound, i)
	}
	return c.Tiers[i], nil
}

// Certificate returns the certificate with the given id.
func (c *Campaign) Certificate(id CertificateID) (Certificate, error) {
	return c.Registry.Get(id)
}

// CertificatesOf returns holder's live certificates in enumeration order.
func (c *Campaign) CertificatesOf(holder Identity) []Certificate {
	ids := c.Registry.HeldBy(holder)
	out := make([]Certificate, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.Registry.Certificates[id])
	}
	return out
}

// TokenURI resolves a certificate's metadata location: the content base
// followed by its tier's content reference, or by "<tier number>.json"
// when the tier has none.
func (c *Campaign) TokenURI(id CertificateID) (string, error) {
	if _, err := c.Registry.OwnerOf(id); err != nil {
		return "", err
	}
	tier := c.Tiers[c.Registry.Certificates[id].Tier]
	if tier.ContentRef != "" {
		return c.ContentBase + tier.ContentRef, nil
	}
	return c.ContentBase + strconv.Itoa(tier.Index+1) + ".json", nil
}

// CheckConservation verifies that every unit collected is either still in
// escrow or accounted for by a release, and that no distribution paid out
// more than it received.
func (c *Campaign) CheckConservation() error {
	l := c.Ledger
	if l.Collected != l.Released()+l.Escrow {
		return fmt.Errorf("%w: collected %d, released %d, escrow %d",
			ErrConservationViolated, l.Collected, l.Released(), l.Escrow)
	}
	var paid uint64
	for _, d := range c.Distributions {
		if d.Paid > d.TotalAmount {
			return fmt.Errorf("%w: distribution %d paid %d of %d",
				ErrConservationViolated, d.Index, d.Paid, d.TotalAmount)
		}
		paid += d.Paid
	}
	if paid != l.Distributed {
		return fmt.Errorf("%w: distributions paid %d, ledger shows %d",
			ErrConservationViolated, paid, l.Distributed)
	}
	return nil
}

// Clone returns a deep copy of the campaign.
func (c *Campaign) Clone() Campaign {
	out := *c
	out.Tiers = append([]Tier(nil), c.Tiers...)
	out.Registry = c.Registry.clone()
	out.Distributions = nil
	for i := range c.Distributions {
		out.Distributions = append(out.Distributions, c.Distributions[i].clone())
	}
	return out
}

func (c *Campaign) requireOwner(caller Identity) error {
	if caller.IsZero() || caller != c.Owner {
		return ErrNotOwner
	}
	return nil
}

func (c *Campaign) touch(now time.Time) {
	c.UpdatedAt = now.UTC()
}
