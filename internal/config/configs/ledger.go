package configs

import (
	"fmt"

	"certsale/internal/core/domain"
)

// Ledger configures the in-memory value ledger that settles payments.
// Tokens lists the fungible token addresses accepted as payment assets in
// addition to the native asset.
type Ledger struct {
	FaucetEnabled bool     `env:"FAUCET_ENABLED" envDefault:"false"`
	Tokens        []string `env:"TOKENS" envSeparator:","`
	// SeedOwner owns the campaigns created by the seed command.
	SeedOwner string `env:"SEED_OWNER" envDefault:"0x1111111111111111111111111111111111111111"`
}

// TokenAddresses parses Tokens.
func (c Ledger) TokenAddresses() ([]domain.Identity, error) {
	out := make([]domain.Identity, 0, len(c.Tokens))
	for _, t := range c.Tokens {
		id, err := domain.ParseIdentity(t)
		if err != nil {
			return nil, fmt.Errorf("LEDGER_TOKENS: %w", err)
		}
		out = append(out, id)
	}
	return out, nil
}
