package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/repo"
	"github.com/kiosk404/spycats/internal/hq/service/cats/store/storetest"
)

func TestCatStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) repo.CatRepository {
		db, err := Open(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		return NewCatStore(db)
	})
}

func TestCatStoreOnDisk(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "cats.sqlite")

	db, err := Open(path)
	require.NoError(t, err)
	want := storetest.NewCat("1", "Agent Whiskers", 0)
	require.NoError(t, NewCatStore(db).Create(ctx, want))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	got, err := NewCatStore(db).Get(ctx, "1")
	require.NoError(t, err)
	storetest.AssertCat(t, want, got)
	assert.Contains(t, GetSchemaSQL(), "CREATE TABLE IF NOT EXISTS cats")
}
