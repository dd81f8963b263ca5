package port

//go:generate mockery

import (
	"context"
	"errors"
	"time"

	"certsale/internal/core/domain"
)

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrConcurrentUpdate = errors.New("campaign was modified concurrently")
	ErrReentrantCall    = errors.New("reentrant call into a campaign with a pending settlement")
)

// CampaignRepository defines the persistence layer for campaigns. It is an
// outbound port in hexagonal architecture. Implementations must be
// concurrency-safe and store a campaign as one unit.
type CampaignRepository interface {
	// Create stores a new campaign. It sets c.Version to 1.
	Create(ctx context.Context, c *domain.Campaign) error
	// Get returns the campaign with the given address, or nil when there
	// is none.
	Get(ctx context.Context, id domain.Identity) (*domain.Campaign, error)
	// List returns a summary of every campaign in creation order.
	List(ctx context.Context) ([]CampaignSummary, error)
	// Save replaces the stored campaign when its version still equals
	// c.Version and increments c.Version. A version mismatch returns
	// ErrConcurrentUpdate.
	Save(ctx context.Context, c *domain.Campaign) error
}

// CampaignSummary is the listing row of a campaign. Status is the stored
// status; callers apply the deadline themselves.
type CampaignSummary struct {
	ID        domain.Identity `json:"projectAddress"`
	Owner     domain.Identity `json:"owner"`
	Name      string          `json:"name"`
	Symbol    string          `json:"symbol"`
	Asset     domain.Asset    `json:"asset"`
	Status    domain.Status   `json:"status"`
	Deadline  time.Time       `json:"deadline"`
	CreatedAt time.Time       `json:"created_at"`
}

// Summarize builds the listing row of c.
func Summarize(c *domain.Campaign) CampaignSummary {
	return CampaignSummary{
		ID:        c.ID,
		Owner:     c.Owner,
		Name:      c.Name,
		Symbol:    c.Symbol,
		Asset:     c.Asset,
		Status:    c.Status,
		Deadline:  c.Deadline,
		CreatedAt: c.CreatedAt,
	}
}
