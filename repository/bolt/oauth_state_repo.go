// Package bolt keeps pending OAuth sign-ins in a local bbolt file for single-node deployments.
package bolt

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/repository"
)

const defaultBucket = "oauth_state"

// StateStore wraps BoltDB to persist OAuth state records until they are consumed or expire.
type StateStore struct {
	db     *bolt.DB
	bucket []byte
	now    func() time.Time
}

var _ repository.OAuthStateRepository = (*StateStore)(nil)

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string) (*StateStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(defaultBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &StateStore{
		db:     db,
		bucket: []byte(defaultBucket),
		now:    time.Now,
	}, nil
}

func (s *StateStore) Save(_ context.Context, state *domain.OAuthState) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if state == nil || state.State == "" {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(state.State), payload)
	})
}

// Consume reads and deletes the record in one write transaction so a state can be used once.
func (s *StateStore) Consume(_ context.Context, state string) (*domain.OAuthState, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}

	var stored *domain.OAuthState
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		raw := bucket.Get([]byte(state))
		if raw == nil {
			return nil
		}
		var record domain.OAuthState
		if err := json.Unmarshal(raw, &record); err == nil {
			stored = &record
		}
		return bucket.Delete([]byte(state))
	})
	if err != nil {
		return nil, domain.Unavailable("consume oauth state", err)
	}
	if stored == nil || stored.IsExpired(s.now()) {
		return nil, domain.ErrStateInvalid
	}
	return stored, nil
}

// PurgeExpired removes records that expired before now and returns how many were deleted.
func (s *StateStore) PurgeExpired(now time.Time) (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var removed int
	err := s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var record domain.OAuthState
			if err := json.Unmarshal(v, &record); err != nil || record.IsExpired(now) {
				if err := c.Delete(); err != nil {
					return err
				}
				removed++
			}
		}
		return nil
	})
	return removed, err
}

// Size returns the number of pending records.
func (s *StateStore) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the Bolt database.
func (s *StateStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
