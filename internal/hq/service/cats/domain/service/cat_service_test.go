package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bytedance/gg/gptr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/entity"
	"github.com/kiosk404/spycats/internal/hq/service/cats/pkg/errno"
	"github.com/kiosk404/spycats/internal/hq/service/cats/store/inmemory"
)

// fixedClock returns the same instant until advanced.
type fixedClock struct{ t time.Time }

func (c *fixedClock) now() time.Time          { return c.t }
func (c *fixedClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func sequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestService(t *testing.T) (CatService, *fixedClock) {
	t.Helper()
	clock := &fixedClock{t: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)}
	return NewCatService(inmemory.NewCatStore(), WithClock(clock.now), WithIDGenerator(sequentialIDs())), clock
}

func whiskers() entity.CreateCatInput {
	return entity.CreateCatInput{Name: "Agent Whiskers", Breed: "Siamese", YearsOfExperience: gptr.Of[float64](5), Salary: gptr.Of[float64](75000)}
}

func TestCreateCat(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestService(t)

	in := whiskers()
	in.Name = "  Agent Whiskers  "
	cat, err := svc.CreateCat(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, "id-1", cat.ID)
	assert.Equal(t, "Agent Whiskers", cat.Name)
	assert.Equal(t, 5.0, cat.YearsOfExperience)
	assert.Equal(t, 75000.0, cat.Salary)
	assert.Equal(t, clock.t, cat.CreatedAt)
	assert.Equal(t, cat.CreatedAt, cat.UpdatedAt)

	got, err := svc.GetCat(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, cat, got)
}

func TestCreateCatRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.CreateCat(ctx, entity.CreateCatInput{Name: "", Breed: "Siamese", YearsOfExperience: gptr.Of[float64](-1), Salary: gptr.Of[float64](0)})
	require.True(t, errno.IsValidation(err))

	var verr *errno.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)

	cats, err := svc.ListCats(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestListCatsInCreationOrder(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestService(t)

	for _, name := range []string{"Shadow Paws", "Agent Whiskers", "Midnight"} {
		in := whiskers()
		in.Name = name
		_, err := svc.CreateCat(ctx, in)
		require.NoError(t, err)
		clock.advance(time.Second)
	}

	cats, err := svc.ListCats(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, "Shadow Paws", cats[0].Name)
	assert.Equal(t, "Agent Whiskers", cats[1].Name)
	assert.Equal(t, "Midnight", cats[2].Name)
}

func TestUpdateSalary(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestService(t)

	cat, err := svc.CreateCat(ctx, whiskers())
	require.NoError(t, err)

	clock.advance(time.Minute)
	updated, err := svc.UpdateSalary(ctx, cat.ID, entity.SalaryInput{Salary: gptr.Of[float64](82000)})
	require.NoError(t, err)

	assert.Equal(t, 82000.0, updated.Salary)
	assert.Equal(t, cat.CreatedAt, updated.CreatedAt)
	assert.Equal(t, clock.t, updated.UpdatedAt)
	assert.Equal(t, cat.Name, updated.Name)
	assert.Equal(t, cat.Breed, updated.Breed)
	assert.Equal(t, cat.YearsOfExperience, updated.YearsOfExperience)
}

func TestUpdateSalaryBumpsTimestampWhenClockStalls(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	cat, err := svc.CreateCat(ctx, whiskers())
	require.NoError(t, err)

	first, err := svc.UpdateSalary(ctx, cat.ID, entity.SalaryInput{Salary: gptr.Of[float64](80000)})
	require.NoError(t, err)
	assert.True(t, first.UpdatedAt.After(cat.UpdatedAt))

	second, err := svc.UpdateSalary(ctx, cat.ID, entity.SalaryInput{Salary: gptr.Of[float64](81000)})
	require.NoError(t, err)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
}

func TestUpdateSalaryErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	cat, err := svc.CreateCat(ctx, whiskers())
	require.NoError(t, err)

	_, err = svc.UpdateSalary(ctx, cat.ID, entity.SalaryInput{Salary: gptr.Of[float64](-10)})
	assert.True(t, errno.IsValidation(err))

	// Unknown ids win over bad input.
	_, err = svc.UpdateSalary(ctx, "missing", entity.SalaryInput{Salary: gptr.Of[float64](-10)})
	assert.ErrorIs(t, err, errno.ErrCatNotFound)

	got, err := svc.GetCat(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, 75000.0, got.Salary)
	assert.Equal(t, cat.UpdatedAt, got.UpdatedAt)
}

func TestDeleteCat(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	cat, err := svc.CreateCat(ctx, whiskers())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCat(ctx, cat.ID))
	_, err = svc.GetCat(ctx, cat.ID)
	assert.ErrorIs(t, err, errno.ErrCatNotFound)
	assert.ErrorIs(t, svc.DeleteCat(ctx, cat.ID), errno.ErrCatNotFound)
}

// populated returns a service holding three agents created a second apart.
func populated(t *testing.T) (CatService, *fixedClock) {
	t.Helper()
	svc, clock := newTestService(t)
	for _, name := range []string{"Agent Whiskers", "Shadow Paws", "Midnight"} {
		in := whiskers()
		in.Name = name
		_, err := svc.CreateCat(context.Background(), in)
		require.NoError(t, err)
		clock.advance(time.Second)
	}
	return svc, clock
}

// snapshot lists the collection by value.
func snapshot(t *testing.T, svc CatService) []entity.Cat {
	t.Helper()
	cats, err := svc.ListCats(context.Background())
	require.NoError(t, err)
	out := make([]entity.Cat, 0, len(cats))
	for _, c := range cats {
		out = append(out, *c)
	}
	return out
}

func TestListCatsIsRepeatable(t *testing.T) {
	svc, clock := populated(t)
	first := snapshot(t, svc)
	clock.advance(time.Hour)
	assert.Equal(t, first, snapshot(t, svc))
}

func TestUpdateSalaryLeavesOtherRecordsUntouched(t *testing.T) {
	ctx := context.Background()
	svc, clock := populated(t)
	before := snapshot(t, svc)

	clock.advance(time.Minute)
	updated, err := svc.UpdateSalary(ctx, "id-2", entity.SalaryInput{Salary: gptr.Of[float64](99000)})
	require.NoError(t, err)

	want := append([]entity.Cat{}, before...)
	want[1].Salary = 99000
	want[1].UpdatedAt = clock.t
	assert.Equal(t, want[1], *updated)
	assert.Equal(t, want, snapshot(t, svc))
}

func TestDeleteCatLeavesOtherRecordsUntouched(t *testing.T) {
	svc, _ := populated(t)
	before := snapshot(t, svc)

	require.NoError(t, svc.DeleteCat(context.Background(), "id-2"))
	assert.Equal(t, []entity.Cat{before[0], before[2]}, snapshot(t, svc))
}

func TestFailedMutationsLeaveCollectionIdentical(t *testing.T) {
	ctx := context.Background()
	svc, clock := populated(t)
	before := snapshot(t, svc)
	clock.advance(time.Minute)

	_, err := svc.UpdateSalary(ctx, "missing", entity.SalaryInput{Salary: gptr.Of[float64](1000)})
	assert.ErrorIs(t, err, errno.ErrCatNotFound)
	assert.ErrorIs(t, svc.DeleteCat(ctx, "missing"), errno.ErrCatNotFound)

	_, err = svc.UpdateSalary(ctx, "id-1", entity.SalaryInput{Salary: gptr.Of[float64](0)})
	assert.True(t, errno.IsValidation(err))
	_, err = svc.CreateCat(ctx, entity.CreateCatInput{Name: "Tom"})
	assert.True(t, errno.IsValidation(err))

	assert.Equal(t, before, snapshot(t, svc))
}

func TestDefaultClockTruncatesToMillis(t *testing.T) {
	now := defaultClock()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Millisecond))
}

func TestSeedRoster(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewCatStore()

	n, err := SeedRoster(ctx, store, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	cats, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, "1", cats[0].ID)
	assert.Equal(t, "Agent Whiskers", cats[0].Name)
	assert.Equal(t, "Maine Coon", cats[1].Breed)
	assert.Equal(t, 60000.0, cats[2].Salary)

	// A populated store is left alone.
	n, err = SeedRoster(ctx, store, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
}
