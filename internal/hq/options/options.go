package options

import (
	genericoptions "github.com/kiosk404/spycats/internal/pkg/options"
	"github.com/kiosk404/spycats/internal/pkg/server"
	"github.com/kiosk404/spycats/pkg/logger"
	"github.com/kiosk404/spycats/pkg/utils/cliflag"
	"github.com/kiosk404/spycats/pkg/utils/json"
)

// Options runs the hq server.
type Options struct {
	GenericServerRunOptions *genericoptions.ServerRunOptions       `json:"server"   mapstructure:"server"`
	InsecureServing         *genericoptions.InsecureServingOptions `json:"insecure" mapstructure:"insecure"`
	Store                   *genericoptions.StoreOptions           `json:"store"    mapstructure:"store"`
	CORS                    *genericoptions.CORSOptions            `json:"cors"     mapstructure:"cors"`
	Log                     *logger.Options                        `json:"log"      mapstructure:"log"`
}

// NewOptions creates an Options object with default parameters.
func NewOptions() *Options {
	return &Options{
		GenericServerRunOptions: genericoptions.NewServerRunOptions(),
		InsecureServing:         genericoptions.NewInsecureServingOptions(),
		Store:                   genericoptions.NewStoreOptions(),
		CORS:                    genericoptions.NewCORSOptions(),
		Log:                     logger.NewOptions(),
	}
}

// Flags returns flags for hq by section name.
func (o *Options) Flags() (fss cliflag.NamedFlagSets) {
	o.GenericServerRunOptions.AddFlags(fss.FlagSet("generic"))
	o.InsecureServing.AddFlags(fss.FlagSet("insecure serving"))
	o.Store.AddFlags(fss.FlagSet("store"))
	o.CORS.AddFlags(fss.FlagSet("cors"))
	o.Log.AddFlags(fss.FlagSet("logs"))
	return fss
}

// Validate checks Options and return a slice of found errs.
func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.GenericServerRunOptions.Validate()...)
	errs = append(errs, o.InsecureServing.Validate()...)
	errs = append(errs, o.Store.Validate()...)
	errs = append(errs, o.CORS.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return errs
}

// ApplyTo applies the run options to the generic server config.
func (o *Options) ApplyTo(c *server.Config) error {
	if err := o.GenericServerRunOptions.ApplyTo(c); err != nil {
		return err
	}
	return o.InsecureServing.ApplyTo(c)
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)

	return string(data)
}

// Complete set default Options.
func (o *Options) Complete() error {
	if o.Store.Type == "" {
		o.Store.Type = genericoptions.StoreInMemory
	}
	return nil
}
