package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certsale/internal/adapter/usecase"
	"certsale/internal/core/domain"
	"certsale/internal/core/port"
	"certsale/internal/db"
)

// openRepo connects to the database named by CERTSALE_TEST_PSQL, applies
// the migrations and empties the table. The test is skipped without it.
func openRepo(t *testing.T) *CampaignRepository {
	t.Helper()
	addr := os.Getenv("CERTSALE_TEST_PSQL")
	if addr == "" {
		t.Skip("CERTSALE_TEST_PSQL is not set")
	}
	require.NoError(t, db.Migrate(addr))

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, addr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	_, err = pool.Exec(ctx, `TRUNCATE campaigns`)
	require.NoError(t, err)
	return NewCampaignRepository(pool)
}

func newCampaign(t *testing.T) domain.Campaign {
	t.Helper()
	c, err := domain.CreateCampaign(domain.CreateCampaignInput{
		Owner:          domain.MustIdentity("0x1111111111111111111111111111111111111111"),
		Name:           "name",
		Symbol:         "SYM",
		TierQuantities: []uint64{2},
		Pricing:        domain.Pricing{BasePrice: 3},
		MaximumSupply:  2,
		Deadline:       time.Now().Add(time.Hour),
	}, time.Now, usecase.NewAddress)
	require.NoError(t, err)
	return c
}

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	c := newCampaign(t)

	require.NoError(t, repo.Create(ctx, &c))
	assert.Equal(t, int64(1), c.Version)

	buyer := domain.MustIdentity("0x2222222222222222222222222222222222222222")
	_, _, err := c.Purchase(buyer, []domain.TierRequest{{Tier: 0, Quantity: 1}}, domain.Payment{}, time.Now())
	require.NoError(t, err)

	stale := c.Clone()
	require.NoError(t, repo.Save(ctx, &c))
	assert.Equal(t, int64(2), c.Version)
	require.ErrorIs(t, repo.Save(ctx, &stale), port.ErrConcurrentUpdate)

	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint64(3), got.Balance())
	assert.Equal(t, []domain.CertificateID{0}, got.Registry.HeldBy(buyer))

	missing, err := repo.Get(ctx, buyer)
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
	assert.Equal(t, domain.NativeAsset(), list[0].Asset)
}
