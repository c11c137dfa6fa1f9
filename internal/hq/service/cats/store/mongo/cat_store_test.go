package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/repo"
	"github.com/kiosk404/spycats/internal/hq/service/cats/store/storetest"
)

// Set SPYCATS_TEST_MONGO_URI (for example mongodb://localhost:27017) to run.
func TestCatStore(t *testing.T) {
	uri := os.Getenv("SPYCATS_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("SPYCATS_TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	client, err := Connect(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	database := fmt.Sprintf("spycats_test_%d", time.Now().UnixNano())
	t.Cleanup(func() { _ = client.Database(database).Drop(context.Background()) })

	n := 0
	storetest.Run(t, func(t *testing.T) repo.CatRepository {
		n++
		s, err := NewCatStore(ctx, client, database, fmt.Sprintf("cats_%d", n))
		require.NoError(t, err)
		return s
	})
}
