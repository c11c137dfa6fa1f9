package cats

import (
	"context"
	"fmt"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/repo"
	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/service"
	boltdbStore "github.com/kiosk404/spycats/internal/hq/service/cats/store/boltdb"
	"github.com/kiosk404/spycats/internal/hq/service/cats/store/inmemory"
	mongoStore "github.com/kiosk404/spycats/internal/hq/service/cats/store/mongo"
	sqliteStore "github.com/kiosk404/spycats/internal/hq/service/cats/store/sqlite"
	"github.com/kiosk404/spycats/internal/pkg/options"
	"github.com/kiosk404/spycats/pkg/logger"
)

// Config holds the configuration for the Cats module.
// Follows K8S-style: Config → Complete() → New(ctx).
type Config struct {
	// Store selects and configures the persistence backend.
	Store options.StoreOptions

	// ServiceOptions are passed through to the cat service (clock, id source).
	ServiceOptions []service.Option
}

// CompletedConfig is the validated and completed configuration.
type CompletedConfig struct {
	*Config
}

// Complete fills defaults.
func (c *Config) Complete() CompletedConfig {
	defaults := options.NewStoreOptions()
	if c.Store.Type == "" {
		c.Store.Type = defaults.Type
	}
	if c.Store.BoltDBPath == "" {
		c.Store.BoltDBPath = defaults.BoltDBPath
	}
	if c.Store.SQLitePath == "" {
		c.Store.SQLitePath = defaults.SQLitePath
	}
	if c.Store.Mongo.Database == "" {
		c.Store.Mongo.Database = defaults.Mongo.Database
	}
	if c.Store.Mongo.Collection == "" {
		c.Store.Mongo.Collection = defaults.Mongo.Collection
	}
	return CompletedConfig{c}
}

// Module is the top-level Cats module.
type Module struct {
	Service service.CatService

	closers []func() error
}

// Close releases the store handles held by the module.
func (m *Module) Close() error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	return first
}

// New creates and initializes the Cats module from a completed config.
func (c CompletedConfig) New(ctx context.Context) (*Module, error) {
	logger.Info("[Cats] creating Cats module...")

	m := &Module{}
	catStore, err := c.openStore(ctx, m)
	if err != nil {
		_ = m.Close()
		return nil, err
	}

	if c.Store.Seed {
		n, err := service.SeedRoster(ctx, catStore, time.Now())
		if err != nil {
			_ = m.Close()
			return nil, fmt.Errorf("failed to seed roster: %w", err)
		}
		if n > 0 {
			logger.Info("[Cats] seeded %d sample agents", n)
		}
	}

	m.Service = service.NewCatService(catStore, c.ServiceOptions...)

	logger.Info("[Cats] Cats module initialized (store=%s)", c.Store.Type)
	return m, nil
}

func (c CompletedConfig) openStore(ctx context.Context, m *Module) (repo.CatRepository, error) {
	switch c.Store.Type {
	case options.StoreBoltDB:
		db, err := boltdbStore.Open(c.Store.BoltDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open boltdb at %s: %w", c.Store.BoltDBPath, err)
		}
		m.closers = append(m.closers, db.Close)
		logger.Info("[Cats] using BoltDB store at %s", c.Store.BoltDBPath)
		return boltdbStore.NewCatStore(db), nil

	case options.StoreSQLite:
		db, err := sqliteStore.Open(c.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite at %s: %w", c.Store.SQLitePath, err)
		}
		m.closers = append(m.closers, db.Close)
		logger.Info("[Cats] using SQLite store at %s", c.Store.SQLitePath)
		return sqliteStore.NewCatStore(db), nil

	case options.StoreMongo:
		client, err := mongoStore.Connect(ctx, c.Store.Mongo.URI)
		if err != nil {
			return nil, err
		}
		m.closers = append(m.closers, disconnect(client))
		s, err := mongoStore.NewCatStore(ctx, client, c.Store.Mongo.Database, c.Store.Mongo.Collection)
		if err != nil {
			return nil, err
		}
		logger.Info("[Cats] using MongoDB store %s.%s", c.Store.Mongo.Database, c.Store.Mongo.Collection)
		return s, nil

	default:
		logger.Info("[Cats] using in-memory store")
		return inmemory.NewCatStore(), nil
	}
}

func disconnect(client *mongodriver.Client) func() error {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return client.Disconnect(ctx)
	}
}
