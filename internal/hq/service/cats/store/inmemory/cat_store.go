package inmemory

import (
	"container/list"
	"context"
	"sync"

	"github.com/jinzhu/copier"

	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/entity"
	"github.com/kiosk404/spycats/internal/hq/service/cats/pkg/errno"
)

// CatStore is an in-memory implementation of repo.CatRepository.
//
// Records are indexed by id for constant-time lookups and kept on a list
// in insertion order for listing. Callers only ever see copies.
type CatStore struct {
	mu    sync.RWMutex
	index map[string]*list.Element
	order *list.List
}

// NewCatStore creates a new CatStore instance.
func NewCatStore() *CatStore {
	return &CatStore{
		index: make(map[string]*list.Element),
		order: list.New(),
	}
}

// Create appends a cat.
func (s *CatStore) Create(_ context.Context, cat *entity.Cat) error {
	c, err := clone(cat)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[cat.ID]; ok {
		return errno.ErrCatExists
	}
	s.index[cat.ID] = s.order.PushBack(c)
	return nil
}

// Get returns a cat by ID.
func (s *CatStore) Get(_ context.Context, id string) (*entity.Cat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.index[id]
	if !ok {
		return nil, errno.ErrCatNotFound
	}
	return clone(e.Value.(*entity.Cat))
}

// Update replaces a cat in place.
func (s *CatStore) Update(_ context.Context, cat *entity.Cat) error {
	c, err := clone(cat)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.index[cat.ID]
	if !ok {
		return errno.ErrCatNotFound
	}
	e.Value = c
	return nil
}

// Delete deletes a cat by ID.
func (s *CatStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.index[id]
	if !ok {
		return errno.ErrCatNotFound
	}
	s.order.Remove(e)
	delete(s.index, id)
	return nil
}

// List returns all cats in insertion order.
func (s *CatStore) List(_ context.Context) ([]*entity.Cat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cats := make([]*entity.Cat, 0, s.order.Len())
	for e := s.order.Front(); e != nil; e = e.Next() {
		c, err := clone(e.Value.(*entity.Cat))
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, nil
}

func clone(cat *entity.Cat) (*entity.Cat, error) {
	out := new(entity.Cat)
	if err := copier.Copy(out, cat); err != nil {
		return nil, err
	}
	return out, nil
}
