// Package storetest holds the behavior every repo.CatRepository
// implementation must share. Store packages run it from their own tests.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/entity"
	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/repo"
	"github.com/kiosk404/spycats/internal/hq/service/cats/pkg/errno"
)

// Factory returns an empty repository. It is called once per subtest.
type Factory func(t *testing.T) repo.CatRepository

var epoch = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

// NewCat builds a valid record whose timestamps are offset from a fixed epoch.
func NewCat(id, name string, minutes int) *entity.Cat {
	ts := epoch.Add(time.Duration(minutes) * time.Minute).Add(123 * time.Millisecond)
	return &entity.Cat{
		ID:                id,
		Name:              name,
		Breed:             "Siamese",
		YearsOfExperience: 5,
		Salary:            75000.5,
		CreatedAt:         ts,
		UpdatedAt:         ts,
	}
}

// AssertCat compares every field, using time equality for timestamps.
func AssertCat(t *testing.T, want, got *entity.Cat) {
	t.Helper()
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Breed, got.Breed)
	assert.Equal(t, want.YearsOfExperience, got.YearsOfExperience)
	assert.InDelta(t, want.Salary, got.Salary, 1e-9)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at: want %s, got %s", want.CreatedAt, got.CreatedAt)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt), "updated_at: want %s, got %s", want.UpdatedAt, got.UpdatedAt)
}

func ids(cats []*entity.Cat) []string {
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, c.ID)
	}
	return out
}

// Run exercises the repository contract against stores built by newRepo.
func Run(t *testing.T, newRepo Factory) {
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		r := newRepo(t)
		cats, err := r.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, cats)
		assert.Empty(t, cats)
	})

	t.Run("create and get", func(t *testing.T) {
		r := newRepo(t)
		want := NewCat("1", "Agent Whiskers", 0)
		require.NoError(t, r.Create(ctx, want))

		got, err := r.Get(ctx, "1")
		require.NoError(t, err)
		AssertCat(t, want, got)
	})

	t.Run("duplicate id", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Create(ctx, NewCat("1", "Agent Whiskers", 0)))
		err := r.Create(ctx, NewCat("1", "Impostor", 1))
		assert.ErrorIs(t, err, errno.ErrCatExists)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		r := newRepo(t)
		// Ids and names sort differently from insertion order on purpose.
		for i, id := range []string{"c", "a", "b"} {
			require.NoError(t, r.Create(ctx, NewCat(id, "Agent "+id, i)))
		}
		cats, err := r.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, ids(cats))
	})

	t.Run("missing id", func(t *testing.T) {
		r := newRepo(t)
		_, err := r.Get(ctx, "nope")
		assert.ErrorIs(t, err, errno.ErrCatNotFound)
		assert.ErrorIs(t, r.Update(ctx, NewCat("nope", "Ghost", 0)), errno.ErrCatNotFound)
		assert.ErrorIs(t, r.Delete(ctx, "nope"), errno.ErrCatNotFound)
	})

	t.Run("update keeps position", func(t *testing.T) {
		r := newRepo(t)
		for i, id := range []string{"1", "2", "3"} {
			require.NoError(t, r.Create(ctx, NewCat(id, "Agent "+id, i)))
		}

		changed := NewCat("2", "Agent 2", 1)
		changed.Salary = 99000
		changed.UpdatedAt = changed.UpdatedAt.Add(time.Hour)
		require.NoError(t, r.Update(ctx, changed))

		got, err := r.Get(ctx, "2")
		require.NoError(t, err)
		AssertCat(t, changed, got)

		cats, err := r.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3"}, ids(cats))
	})

	t.Run("delete", func(t *testing.T) {
		r := newRepo(t)
		for i, id := range []string{"1", "2", "3"} {
			require.NoError(t, r.Create(ctx, NewCat(id, "Agent "+id, i)))
		}
		require.NoError(t, r.Delete(ctx, "2"))

		_, err := r.Get(ctx, "2")
		assert.ErrorIs(t, err, errno.ErrCatNotFound)
		assert.ErrorIs(t, r.Delete(ctx, "2"), errno.ErrCatNotFound)

		cats, err := r.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "3"}, ids(cats))

		// A new record goes to the end even after a delete.
		require.NoError(t, r.Create(ctx, NewCat("4", "Agent 4", 3)))
		cats, err = r.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "3", "4"}, ids(cats))
	})

	t.Run("returned records are detached", func(t *testing.T) {
		r := newRepo(t)
		cat := NewCat("1", "Agent Whiskers", 0)
		require.NoError(t, r.Create(ctx, cat))
		cat.Name = "mutated after create"

		got, err := r.Get(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "Agent Whiskers", got.Name)

		got.Salary = 1
		again, err := r.Get(ctx, "1")
		require.NoError(t, err)
		assert.InDelta(t, 75000.5, again.Salary, 1e-9)
	})

	t.Run("concurrent creates", func(t *testing.T) {
		r := newRepo(t)
		const n = 20

		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs <- r.Create(ctx, NewCat(fmt.Sprintf("cat-%02d", i), "Agent", i))
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		cats, err := r.List(ctx)
		require.NoError(t, err)
		assert.Len(t, cats, n)
	})
}
