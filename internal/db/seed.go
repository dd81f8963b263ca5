package db

import (
	"context"
	"fmt"
	"time"

	"certsale/internal/core/domain"
	"certsale/internal/core/port"
)

// Seed creates demo campaigns owned by owner: a native denomination sale
// shaped like the reference deployment and one flat-priced sale per token.
func Seed(ctx context.Context, svc port.CampaignUseCase, owner domain.Identity, tokens []domain.Identity) ([]domain.Identity, error) {
	reqs := []port.CreateCampaignReq{{
		Owner:          owner,
		ContentBase:    "ipfs://",
		Name:           "Demo certificates",
		Symbol:         "DEMO",
		TierQuantities: []uint64{1, 2, 3, 50},
		Pricing:        domain.Pricing{Mode: domain.PricingDenomination, BasePrice: 2},
		MaximumSupply:  100,
		Deadline:       time.Now().AddDate(0, 1, 0),
		Asset:          domain.NativeAsset(),
	}}
	for i, t := range tokens {
		reqs = append(reqs, port.CreateCampaignReq{
			Owner:          owner,
			ContentBase:    "ipfs://",
			Name:           fmt.Sprintf("Token campaign %d", i+1),
			Symbol:         fmt.Sprintf("TOK%d", i+1),
			TierRefs:       []string{"bronze.json", "silver.json", "gold.json"},
			TierQuantities: []uint64{100, 20, 5},
			Pricing:        domain.Pricing{Mode: domain.PricingFlat, BasePrice: 10},
			MaximumSupply:  125,
			Deadline:       time.Now().AddDate(0, 2, 0),
			Asset:          domain.TokenAsset(t),
		})
	}

	ids := make([]domain.Identity, 0, len(reqs))
	for _, req := range reqs {
		view, err := svc.CreateCampaign(ctx, req)
		if err != nil {
			return ids, fmt.Errorf("seed %q: %w", req.Name, err)
		}
		ids = append(ids, view.ID)
	}
	return ids, nil
}
