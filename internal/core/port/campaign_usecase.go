package port

import (
	"context"
	"time"

	"certsale/internal/core/domain"
)

// CampaignUseCase defines the business operations exposed by the sale
// service. This interface represents the primary port into the application
// domain. Every mutating call is atomic: it either commits and settles its
// value movement or leaves the campaign as it was.
type CampaignUseCase interface {
	// CreateCampaign deploys a new campaign and announces its address.
	CreateCampaign(ctx context.Context, req CreateCampaignReq) (*CampaignView, error)
	// ListCampaigns returns every campaign created so far.
	ListCampaigns(ctx context.Context) ([]CampaignSummary, error)
	// GetCampaign returns the campaign with its effective status.
	GetCampaign(ctx context.Context, id domain.Identity) (*CampaignView, error)

	Purchase(ctx context.Context, id, buyer domain.Identity, reqs []domain.TierRequest, payment domain.Payment) (*domain.PurchaseReceipt, error)
	Withdraw(ctx context.Context, id, caller domain.Identity) (uint64, error)
	Cancel(ctx context.Context, id, caller domain.Identity) error
	ExtendDeadline(ctx context.Context, id, caller domain.Identity, deadline time.Time) error
	ManualTransfer(ctx context.Context, id, caller domain.Identity, reqs []domain.TierRequest, recipient domain.Identity) ([]domain.CertificateID, error)
	Reclaim(ctx context.Context, id, caller domain.Identity) (*domain.RefundReceipt, error)

	CreateDistribution(ctx context.Context, id, caller domain.Identity, amount uint64, payment domain.Payment) (*DistributionView, error)
	// Entitlement returns what holder would receive by claiming now.
	Entitlement(ctx context.Context, id domain.Identity, index int, holder domain.Identity) (uint64, error)
	Claim(ctx context.Context, id domain.Identity, index int, holder domain.Identity) (*domain.ClaimReceipt, error)
	ClaimBatch(ctx context.Context, id domain.Identity, indices []int, holder domain.Identity) (*domain.ClaimReceipt, error)

	CertificatesOf(ctx context.Context, id, holder domain.Identity) ([]CertificateView, error)
	Certificate(ctx context.Context, id domain.Identity, certID domain.CertificateID) (*CertificateView, error)
	TransferCertificate(ctx context.Context, id, caller domain.Identity, certID domain.CertificateID, to domain.Identity) error
}

// CreateCampaignReq carries the factory parameters of a new campaign.
type CreateCampaignReq struct {
	Owner          domain.Identity
	ContentBase    string
	Name           string
	Symbol         string
	TierRefs       []string
	TierQuantities []uint64
	Pricing        domain.Pricing
	MaximumSupply  uint64
	Deadline       time.Time
	Asset          domain.Asset
}

// CampaignView is the read model of a campaign returned to clients.
// Status is the effective status at the time of the call.
type CampaignView struct {
	ID            domain.Identity    `json:"projectAddress"`
	Owner         domain.Identity    `json:"owner"`
	Name          string             `json:"name"`
	Symbol        string             `json:"symbol"`
	ContentBase   string             `json:"content_base"`
	Asset         domain.Asset       `json:"asset"`
	Pricing       domain.Pricing     `json:"pricing"`
	Status        domain.Status      `json:"status"`
	Deadline      time.Time          `json:"deadline"`
	MaximumSupply uint64             `json:"maximum_supply"`
	TotalMinted   uint64             `json:"total_minted"`
	LiveSupply    uint64             `json:"live_supply"`
	Balance       uint64             `json:"balance"`
	Ledger        domain.Ledger      `json:"ledger"`
	Tiers         []domain.Tier      `json:"tiers"`
	Distributions []DistributionView `json:"distributions"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// DistributionView summarises one distribution without its claim set.
type DistributionView struct {
	Index       int       `json:"index"`
	TotalAmount uint64    `json:"total_amount"`
	SupplyBasis uint64    `json:"supply_basis"`
	Paid        uint64    `json:"paid"`
	Remaining   uint64    `json:"remaining"`
	CreatedAt   time.Time `json:"created_at"`
}

// CertificateView is a certificate with its resolved metadata URI.
type CertificateView struct {
	ID        domain.CertificateID `json:"id"`
	Tier      int                  `json:"tier"`
	Holder    domain.Identity      `json:"holder"`
	PaidPrice uint64               `json:"paid_price"`
	Refunded  bool                 `json:"refunded"`
	Burned    bool                 `json:"burned"`
	TokenURI  string               `json:"token_uri,omitempty"`
}

// NewCampaignView builds the read model of c as of now.
func NewCampaignView(c *domain.Campaign, now time.Time) *CampaignView {
	v := &CampaignView{
		ID:            c.ID,
		Owner:         c.Owner,
		Name:          c.Name,
		Symbol:        c.Symbol,
		ContentBase:   c.ContentBase,
		Asset:         c.Asset,
		Pricing:       c.Pricing,
		Status:        c.EffectiveStatus(now),
		Deadline:      c.Deadline,
		MaximumSupply: c.MaximumSupply,
		TotalMinted:   c.TotalMinted(),
		LiveSupply:    c.LiveSupply(),
		Balance:       c.Balance(),
		Ledger:        c.Ledger,
		Tiers:         append([]domain.Tier(nil), c.Tiers...),
		Distributions: make([]DistributionView, 0, len(c.Distributions)),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	for i := range c.Distributions {
		v.Distributions = append(v.Distributions, NewDistributionView(&c.Distributions[i]))
	}
	return v
}

// NewDistributionView builds the read model of d.
func NewDistributionView(d *domain.Distribution) DistributionView {
	return DistributionView{
		Index:       d.Index,
		TotalAmount: d.TotalAmount,
		SupplyBasis: d.SupplyBasis,
		Paid:        d.Paid,
		Remaining:   d.Remaining(),
		CreatedAt:   d.CreatedAt,
	}
}

// NewCertificateView resolves cert against c. Burned certificates have no
// URI.
func NewCertificateView(c *domain.Campaign, cert domain.Certificate) CertificateView {
	uri, _ := c.TokenURI(cert.ID)
	return CertificateView{
		ID:        cert.ID,
		Tier:      cert.Tier,
		Holder:    cert.Holder,
		PaidPrice: cert.PaidPrice,
		Refunded:  cert.Refunded,
		Burned:    cert.Burned,
		TokenURI:  uri,
	}
}
