package options

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// CORSOptions controls which browser origins may call the API.
type CORSOptions struct {
	// AllowOrigins lists allowed origins. "*" allows any origin.
	AllowOrigins []string `json:"allow-origins" mapstructure:"allow-origins"`
	// MaxAge is the preflight cache duration in seconds.
	MaxAge int `json:"max-age" mapstructure:"max-age"`
}

// NewCORSOptions returns the default CORS options, which allow any origin.
func NewCORSOptions() *CORSOptions {
	return &CORSOptions{
		AllowOrigins: []string{"*"},
		MaxAge:       600,
	}
}

// Validate checks CORSOptions fields.
func (o *CORSOptions) Validate() []error {
	var errs []error
	for _, origin := range o.AllowOrigins {
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			errs = append(errs, fmt.Errorf("invalid cors origin %q, must start with http:// or https://", origin))
		}
	}
	if o.MaxAge < 0 {
		errs = append(errs, fmt.Errorf("cors max-age must not be negative"))
	}
	return errs
}

// AddFlags adds flags for the CORS options.
func (o *CORSOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringSliceVar(&o.AllowOrigins, "cors.allow-origins", o.AllowOrigins, "Origins allowed to call the API, comma separated. '*' allows any.")
	fs.IntVar(&o.MaxAge, "cors.max-age", o.MaxAge, "Preflight cache duration in seconds.")
}
