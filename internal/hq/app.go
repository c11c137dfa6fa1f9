// Package hq runs the Spy Cats Agency resource store: the HTTP API that
// owns the canonical roster of agent records.
package hq

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/kiosk404/spycats/internal/hq/config"
	"github.com/kiosk404/spycats/internal/hq/options"
	"github.com/kiosk404/spycats/pkg/app"
	"github.com/kiosk404/spycats/pkg/logger"
)

const commandDesc = `The Spy Cats Agency HQ keeps the roster of agent records and serves it
over HTTP+JSON. Records can be listed, created, have their salary updated,
and be removed.`

// NewApp creates an App object with default parameters.
func NewApp(basename string) *app.App {
	opts := options.NewOptions()
	application := app.NewApp("Spy Cats HQ",
		basename,
		app.WithOptions(opts),
		app.WithDescription(commandDesc),
		app.WithEnvPrefix("SPYCATS"),
		app.WithDefaultValidArgs(),
		app.WithConfigWatcher(reloadLogLevel),
		app.WithRunFunc(run(opts)),
	)

	return application
}

func run(opts *options.Options) app.RunFunc {
	return func(basename string) error {
		if err := logger.Init(opts.Log); err != nil {
			return err
		}
		defer logger.Flush()

		cfg, err := config.CreateConfigFromOptions(opts)
		if err != nil {
			return err
		}

		return Run(cfg)
	}
}

// reloadLogLevel applies log.level from the re-read config file.
func reloadLogLevel(e fsnotify.Event) {
	level := viper.GetString("log.level")
	if err := logger.SetLevel(level); err != nil {
		logger.Warn("[HQ] config %s changed, ignoring log level %q: %v", e.Name, level, err)
		return
	}
	logger.Info("[HQ] config %s changed, log level is now %s", e.Name, level)
}
