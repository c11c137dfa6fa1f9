package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/repo"
	"github.com/kiosk404/spycats/internal/hq/service/cats/store/storetest"
)

func openTestDB(t *testing.T, path string) *DB {
	t.Helper()
	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCatStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) repo.CatRepository {
		return NewCatStore(openTestDB(t, filepath.Join(t.TempDir(), "cats.db")))
	})
}

func TestCatStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "cats.db")

	db, err := Open(path)
	require.NoError(t, err)
	s := NewCatStore(db)
	want := storetest.NewCat("1", "Agent Whiskers", 0)
	require.NoError(t, s.Create(ctx, want))
	require.NoError(t, s.Create(ctx, storetest.NewCat("2", "Shadow Paws", 1)))
	require.NoError(t, db.Close())

	s = NewCatStore(openTestDB(t, path))
	got, err := s.Get(ctx, "1")
	require.NoError(t, err)
	storetest.AssertCat(t, want, got)

	// The sequence resumes past the persisted records.
	require.NoError(t, s.Create(ctx, storetest.NewCat("3", "Midnight", 2)))
	cats, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, "3", cats[2].ID)
}
