package config

import (
	"github.com/kiosk404/spycats/internal/hq/options"
)

// Config is the running configuration structure of the hq service.
type Config struct {
	*options.Options
}

// CreateConfigFromOptions creates a running configuration instance based
// on a given hq command line or configuration file option.
func CreateConfigFromOptions(opts *options.Options) (*Config, error) {
	return &Config{opts}, nil
}
