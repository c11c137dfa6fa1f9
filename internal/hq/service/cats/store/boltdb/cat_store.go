package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/boltdb/bolt"

	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/entity"
	"github.com/kiosk404/spycats/internal/hq/service/cats/pkg/errno"
	"github.com/kiosk404/spycats/pkg/utils/json"
)

// CatStore implements the CatRepository interface using BoltDB.
type CatStore struct {
	db *bolt.DB
}

// NewCatStore creates a new BoltDB-backed CatStore.
func NewCatStore(db *DB) *CatStore {
	return &CatStore{db: db.Bolt()}
}

// Create appends a new cat to the store.
func (s *CatStore) Create(_ context.Context, cat *entity.Cat) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		idx := tx.Bucket(bucketCatIndex)
		if idx.Get([]byte(cat.ID)) != nil {
			return errno.ErrCatExists
		}

		b := tx.Bucket(bucketCats)
		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate sequence: %w", err)
		}
		key := seqKey(seq)

		data, err := json.Marshal(cat)
		if err != nil {
			return fmt.Errorf("failed to marshal cat: %w", err)
		}
		if err := b.Put(key, data); err != nil {
			return err
		}
		return idx.Put([]byte(cat.ID), key)
	})
}

// Get retrieves a cat by its ID.
func (s *CatStore) Get(_ context.Context, id string) (*entity.Cat, error) {
	var cat entity.Cat
	err := s.db.View(func(tx *bolt.Tx) error {
		key := tx.Bucket(bucketCatIndex).Get([]byte(id))
		if key == nil {
			return errno.ErrCatNotFound
		}
		data := tx.Bucket(bucketCats).Get(key)
		if data == nil {
			return errno.ErrCatNotFound
		}
		if err := json.Unmarshal(data, &cat); err != nil {
			return fmt.Errorf("failed to unmarshal cat: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// Update modifies an existing cat in the store, keeping its position.
func (s *CatStore) Update(_ context.Context, cat *entity.Cat) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		key := tx.Bucket(bucketCatIndex).Get([]byte(cat.ID))
		if key == nil {
			return errno.ErrCatNotFound
		}

		data, err := json.Marshal(cat)
		if err != nil {
			return fmt.Errorf("failed to marshal cat: %w", err)
		}
		return tx.Bucket(bucketCats).Put(key, data)
	})
}

// Delete removes a cat from the store.
func (s *CatStore) Delete(_ context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		idx := tx.Bucket(bucketCatIndex)
		key := idx.Get([]byte(id))
		if key == nil {
			return errno.ErrCatNotFound
		}
		// key points into the index page, copy it before mutating the index.
		key = append([]byte(nil), key...)
		if err := idx.Delete([]byte(id)); err != nil {
			return err
		}
		return tx.Bucket(bucketCats).Delete(key)
	})
}

// List returns all cats in insertion order.
func (s *CatStore) List(_ context.Context) ([]*entity.Cat, error) {
	cats := []*entity.Cat{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCats).ForEach(func(_, v []byte) error {
			var cat entity.Cat
			if err := json.Unmarshal(v, &cat); err != nil {
				return fmt.Errorf("failed to unmarshal cat: %w", err)
			}
			cats = append(cats, &cat)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list cats: %w", err)
	}
	return cats, nil
}

func seqKey(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}
