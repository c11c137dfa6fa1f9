package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/entity"
	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/repo"
)

// Clock returns the current time.
type Clock func() time.Time

// IDGenerator returns a fresh record id.
type IDGenerator func() string

// Timestamps are kept at millisecond precision so every backend
// (BSON dates included) round-trips them unchanged.
const timestampPrecision = time.Millisecond

func defaultClock() time.Time {
	return time.Now().UTC().Truncate(timestampPrecision)
}

// Option configures the cat service.
type Option func(*catServiceImpl)

// WithClock overrides the time source.
func WithClock(clock Clock) Option {
	return func(s *catServiceImpl) {
		s.now = clock
	}
}

// WithIDGenerator overrides the id source.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *catServiceImpl) {
		s.newID = gen
	}
}

// catServiceImpl implements the CatService interface.
type catServiceImpl struct {
	catRepo repo.CatRepository

	// writeMu serialises mutations so each one runs to completion
	// before the next is processed.
	writeMu sync.Mutex

	now   Clock
	newID IDGenerator
}

// NewCatService returns a CatService backed by catRepo.
func NewCatService(catRepo repo.CatRepository, opts ...Option) CatService {
	s := &catServiceImpl{
		catRepo: catRepo,
		now:     defaultClock,
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *catServiceImpl) ListCats(ctx context.Context) ([]*entity.Cat, error) {
	return s.catRepo.List(ctx)
}

func (s *catServiceImpl) GetCat(ctx context.Context, id string) (*entity.Cat, error) {
	return s.catRepo.Get(ctx, id)
}

func (s *catServiceImpl) CreateCat(ctx context.Context, in entity.CreateCatInput) (*entity.Cat, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	now := s.now()
	cat := &entity.Cat{
		ID:                s.newID(),
		Name:              in.Name,
		Breed:             in.Breed,
		YearsOfExperience: *in.YearsOfExperience,
		Salary:            *in.Salary,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.catRepo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *catServiceImpl) UpdateSalary(ctx context.Context, id string, in entity.SalaryInput) (*entity.Cat, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cat, err := s.catRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	updated := *cat
	updated.Salary = *in.Salary
	updated.UpdatedAt = s.now()
	// updated_at never moves backwards, even when the clock does not advance.
	if !updated.UpdatedAt.After(cat.UpdatedAt) {
		updated.UpdatedAt = cat.UpdatedAt.Add(timestampPrecision)
	}

	if err := s.catRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *catServiceImpl) DeleteCat(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.catRepo.Delete(ctx, id)
}
