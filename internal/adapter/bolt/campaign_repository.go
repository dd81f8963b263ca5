// Package bolt stores campaigns in an embedded bbolt file for single-node
// deployments and tests.
package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"certsale/internal/core/domain"
	"certsale/internal/core/port"
)

var (
	bucketCampaigns = []byte("campaigns")
	bucketOrder     = []byte("campaign_order")
)

// CampaignRepository implements port.CampaignRepository on bbolt. Each
// campaign is one JSON document; bbolt's single writer makes the version
// check and the write atomic.
type CampaignRepository struct {
	db *bbolt.DB
}

var _ port.CampaignRepository = (*CampaignRepository)(nil)

// Open opens or creates the database at path.
func Open(path string) (*CampaignRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("bolt: create directory: %w", err)
	}
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("bolt: open db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketCampaigns, bucketOrder} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("bolt: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &CampaignRepository{db: db}, nil
}

// Close closes the underlying database.
func (r *CampaignRepository) Close() error { return r.db.Close() }

func (r *CampaignRepository) Create(_ context.Context, c *domain.Campaign) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketCampaigns)
		key := []byte(c.ID)
		if b.Get(key) != nil {
			return fmt.Errorf("bolt: campaign %s already exists", c.ID)
		}
		stored := *c
		stored.Version = 1
		data, err := json.Marshal(&stored)
		if err != nil {
			return fmt.Errorf("bolt: encode campaign: %w", err)
		}
		if err := b.Put(key, data); err != nil {
			return err
		}
		order := tx.Bucket(bucketOrder)
		seq, err := order.NextSequence()
		if err != nil {
			return err
		}
		if err := order.Put(seqKey(seq), key); err != nil {
			return err
		}
		c.Version = 1
		return nil
	})
}

func (r *CampaignRepository) Get(_ context.Context, id domain.Identity) (*domain.Campaign, error) {
	var c *domain.Campaign
	err := r.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketCampaigns).Get([]byte(id))
		if data == nil {
			return nil
		}
		c = new(domain.Campaign)
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("bolt: decode campaign %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CampaignRepository) List(_ context.Context) ([]port.CampaignSummary, error) {
	var out []port.CampaignSummary
	err := r.db.View(func(tx *bbolt.Tx) error {
		campaigns := tx.Bucket(bucketCampaigns)
		return tx.Bucket(bucketOrder).ForEach(func(_, id []byte) error {
			data := campaigns.Get(id)
			if data == nil {
				return nil
			}
			var c domain.Campaign
			if err := json.Unmarshal(data, &c); err != nil {
				return fmt.Errorf("bolt: decode campaign %s: %w", id, err)
			}
			out = append(out, port.Summarize(&c))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CampaignRepository) Save(_ context.Context, c *domain.Campaign) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketCampaigns)
		key := []byte(c.ID)
		data := b.Get(key)
		if data == nil {
			return fmt.Errorf("%w: %s", port.ErrCampaignNotFound, c.ID)
		}
		var current struct {
			Version int64 `json:"version"`
		}
		if err := json.Unmarshal(data, &current); err != nil {
			return fmt.Errorf("bolt: decode campaign %s: %w", c.ID, err)
		}
		if current.Version != c.Version {
			return fmt.Errorf("%w: %s has version %d, saving %d", port.ErrConcurrentUpdate, c.ID, current.Version, c.Version)
		}
		stored := *c
		stored.Version++
		next, err := json.Marshal(&stored)
		if err != nil {
			return fmt.Errorf("bolt: encode campaign: %w", err)
		}
		if err := b.Put(key, next); err != nil {
			return err
		}
		c.Version = stored.Version
		return nil
	})
}

func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}
