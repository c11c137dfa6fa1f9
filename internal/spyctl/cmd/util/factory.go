package util

import (
	"net/http"
	"time"

	"github.com/spf13/viper"

	"github.com/kiosk404/spycats/internal/dashboard"
)

// Viper keys shared by every spyctl command.
const (
	FlagServer  = "server"
	FlagTimeout = "timeout"
)

// Factory provides abstractions that allow spyctl commands to be extended
// across different HQ transports. Commands never build clients themselves.
type Factory interface {
	// HQClient returns a client for the configured HQ address.
	HQClient() dashboard.API
	// ServerAddr is the HQ base URL in use.
	ServerAddr() string
}

type defaultFactory struct{}

// NewDefaultFactory resolves the HQ address and timeout from viper, which
// merges flags, SPYCATS_API_URL and the built-in default.
func NewDefaultFactory() Factory {
	return &defaultFactory{}
}

func (f *defaultFactory) ServerAddr() string {
	if addr := viper.GetString(FlagServer); addr != "" {
		return addr
	}
	return dashboard.DefaultBaseURL
}

func (f *defaultFactory) HQClient() dashboard.API {
	timeout := viper.GetDuration(FlagTimeout)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return dashboard.NewClient(f.ServerAddr(), &http.Client{Timeout: timeout})
}

// NewFactory returns a Factory bound to a fixed API, used by tests and
// embedders.
func NewFactory(api dashboard.API, addr string) Factory {
	return staticFactory{api: api, addr: addr}
}

type staticFactory struct {
	api  dashboard.API
	addr string
}

func (f staticFactory) HQClient() dashboard.API { return f.api }
func (f staticFactory) ServerAddr() string      { return f.addr }
