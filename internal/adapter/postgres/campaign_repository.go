package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"certsale/internal/core/domain"
	"certsale/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository using pgxpool for
// PostgreSQL. The aggregate is stored as JSONB next to the scalar columns
// used for listing.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

var _ port.CampaignRepository = (*CampaignRepository)(nil)

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// Create inserts a new campaign with version 1.
func (r *CampaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	stored := *c
	stored.Version = 1
	state, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("encode campaign: %w", err)
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO campaigns
    (id, owner, name, symbol, asset, status, deadline, state, version, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		c.ID.String(), c.Owner.String(), c.Name, c.Symbol, c.Asset.String(), int16(c.Status),
		c.Deadline, state, stored.Version, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return err
	}
	c.Version = stored.Version
	return nil
}

// Get returns the campaign by address.
func (r *CampaignRepository) Get(ctx context.Context, id domain.Identity) (*domain.Campaign, error) {
	var (
		state   []byte
		version int64
	)
	err := r.pool.QueryRow(ctx, `SELECT state, version FROM campaigns WHERE id = $1`, id.String()).Scan(&state, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var c domain.Campaign
	if err = json.Unmarshal(state, &c); err != nil {
		return nil, fmt.Errorf("decode campaign %s: %w", id, err)
	}
	c.Version = version
	return &c, nil
}

// List returns campaign summaries in creation order.
func (r *CampaignRepository) List(ctx context.Context) ([]port.CampaignSummary, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, owner, name, symbol, asset, status, deadline, created_at
FROM campaigns ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (port.CampaignSummary, error) {
		var (
			s      port.CampaignSummary
			id     string
			owner  string
			asset  string
			status int16
		)
		if err := row.Scan(&id, &owner, &s.Name, &s.Symbol, &asset, &status, &s.Deadline, &s.CreatedAt); err != nil {
			return s, err
		}
		a, err := domain.ParseAsset(asset)
		if err != nil {
			return s, err
		}
		s.ID = domain.Identity(id)
		s.Owner = domain.Identity(owner)
		s.Asset = a
		s.Status = domain.Status(status)
		return s, nil
	})
}

// Save replaces the campaign state inside a serializable transaction,
// locking the row and checking the version first. A serialization failure
// is reported as port.ErrConcurrentUpdate.
func (r *CampaignRepository) Save(ctx context.Context, c *domain.Campaign) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	next := c.Version + 1
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if err = tx.Commit(ctx); err != nil {
			err = serializationConflict(c.ID, err)
			return
		}
		c.Version = next
	}()

	// lock campaign
	var version int64
	err = tx.QueryRow(ctx, `SELECT version FROM campaigns WHERE id = $1 FOR UPDATE`, c.ID.String()).Scan(&version)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", port.ErrCampaignNotFound, c.ID)
	}
	if err != nil {
		return serializationConflict(c.ID, err)
	}
	if version != c.Version {
		return fmt.Errorf("%w: %s has version %d, saving %d", port.ErrConcurrentUpdate, c.ID, version, c.Version)
	}

	stored := *c
	stored.Version = next
	state, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("encode campaign: %w", err)
	}
	_, err = tx.Exec(ctx, `UPDATE campaigns
SET status = $2, deadline = $3, state = $4, version = $5, updated_at = $6
WHERE id = $1`,
		c.ID.String(), int16(c.Status), c.Deadline, state, next, c.UpdatedAt)
	return serializationConflict(c.ID, err)
}

// serializationFailure is SQLSTATE 40001.
const serializationFailure = "40001"

func serializationConflict(id domain.Identity, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == serializationFailure {
		return fmt.Errorf("%w: %s: %w", port.ErrConcurrentUpdate, id, err)
	}
	return err
}
