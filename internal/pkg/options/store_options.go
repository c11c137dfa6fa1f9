package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Supported persistence backends.
const (
	StoreInMemory = "inmemory"
	StoreBoltDB   = "boltdb"
	StoreSQLite   = "sqlite"
	StoreMongo    = "mongo"
)

// StoreOptions selects and configures the persistence backend for agent records.
type StoreOptions struct {
	// Type is one of inmemory, boltdb, sqlite, mongo. (default: inmemory)
	Type string `json:"type" mapstructure:"type"`
	// BoltDBPath is the BoltDB file used when Type is boltdb.
	BoltDBPath string `json:"boltdb-path" mapstructure:"boltdb-path"`
	// SQLitePath is the SQLite database file used when Type is sqlite.
	SQLitePath string `json:"sqlite-path" mapstructure:"sqlite-path"`
	// Mongo holds the connection settings used when Type is mongo.
	Mongo MongoOptions `json:"mongo" mapstructure:"mongo"`
	// Seed loads the sample roster into an empty store at startup.
	Seed bool `json:"seed" mapstructure:"seed"`
}

// MongoOptions holds MongoDB connection settings.
type MongoOptions struct {
	URI        string `json:"uri"        mapstructure:"uri"`
	Database   string `json:"database"   mapstructure:"database"`
	Collection string `json:"collection" mapstructure:"collection"`
}

// NewStoreOptions returns the default store options.
func NewStoreOptions() *StoreOptions {
	return &StoreOptions{
		Type:       StoreInMemory,
		BoltDBPath: "data/spycats.db",
		SQLitePath: "data/spycats.sqlite",
		Mongo: MongoOptions{
			Database:   "spycats",
			Collection: "cats",
		},
	}
}

// Validate checks StoreOptions fields.
func (o *StoreOptions) Validate() []error {
	var errs []error
	switch o.Type {
	case StoreInMemory:
	case StoreBoltDB:
		if o.BoltDBPath == "" {
			errs = append(errs, fmt.Errorf("store %q: boltdb-path is required", o.Type))
		}
	case StoreSQLite:
		if o.SQLitePath == "" {
			errs = append(errs, fmt.Errorf("store %q: sqlite-path is required", o.Type))
		}
	case StoreMongo:
		if o.Mongo.URI == "" {
			errs = append(errs, fmt.Errorf("store %q: mongo.uri is required", o.Type))
		}
		if o.Mongo.Database == "" || o.Mongo.Collection == "" {
			errs = append(errs, fmt.Errorf("store %q: mongo.database and mongo.collection are required", o.Type))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid store type %q, must be one of inmemory, boltdb, sqlite, mongo", o.Type))
	}
	return errs
}

// AddFlags adds flags for the store options.
func (o *StoreOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Type, "store.type", o.Type, "Persistence backend: inmemory, boltdb, sqlite or mongo.")
	fs.StringVar(&o.BoltDBPath, "store.boltdb-path", o.BoltDBPath, "BoltDB file path (store.type=boltdb).")
	fs.StringVar(&o.SQLitePath, "store.sqlite-path", o.SQLitePath, "SQLite database path (store.type=sqlite).")
	fs.StringVar(&o.Mongo.URI, "store.mongo.uri", o.Mongo.URI, "MongoDB connection URI (store.type=mongo).")
	fs.StringVar(&o.Mongo.Database, "store.mongo.database", o.Mongo.Database, "MongoDB database name.")
	fs.StringVar(&o.Mongo.Collection, "store.mongo.collection", o.Mongo.Collection, "MongoDB collection holding agent records.")
	fs.BoolVar(&o.Seed, "store.seed", o.Seed, "Load the sample roster into an empty store at startup.")
}
