// Package logger is the process-wide structured logger built on logrus.
//
// Call sites use printf-style helpers and prefix messages with the
// component in brackets, e.g. logger.Info("[Cats] using %s store", typ).
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configures the global logger.
type Options struct {
	Level       string   `json:"level"        mapstructure:"level"`
	Format      string   `json:"format"       mapstructure:"format"`
	OutputPaths []string `json:"output-paths" mapstructure:"output-paths"`
}

// NewOptions returns the default logging options: info level text logs on stdout.
func NewOptions() *Options {
	return &Options{
		Level:       logrus.InfoLevel.String(),
		Format:      FormatText,
		OutputPaths: []string{"stdout"},
	}
}

// Validate checks the logging options.
func (o *Options) Validate() []error {
	var errs []error
	if _, err := logrus.ParseLevel(o.Level); err != nil {
		errs = append(errs, err)
	}
	if o.Format != FormatText && o.Format != FormatJSON {
		errs = append(errs, fmt.Errorf("invalid log format %q, must be %q or %q", o.Format, FormatText, FormatJSON))
	}
	return errs
}

// AddFlags adds the logging flags to the given flag set.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Level, "log.level", o.Level, "Minimum log level: debug, info, warn, error.")
	fs.StringVar(&o.Format, "log.format", o.Format, "Log format: 'text' or 'json'.")
	fs.StringSliceVar(&o.OutputPaths, "log.output-paths", o.OutputPaths, "Log destinations: stdout, stderr or file paths.")
}

var (
	mu    sync.Mutex
	std   = newDefault()
	files []*os.File
)

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// Init reconfigures the global logger from opts.
func Init(opts *Options) error {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		return err
	}

	var writers []io.Writer
	var opened []*os.File
	for _, p := range opts.OutputPaths {
		switch p {
		case "", "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		default:
			if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
				return fmt.Errorf("create log directory: %w", err)
			}
			f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("open log file %s: %w", p, err)
			}
			writers = append(writers, f)
			opened = append(opened, f)
		}
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}

	mu.Lock()
	defer mu.Unlock()

	closeFiles()
	files = opened

	std.SetLevel(level)
	std.SetOutput(io.MultiWriter(writers...))
	if strings.EqualFold(opts.Format, FormatJSON) {
		std.SetFormatter(&logrus.JSONFormatter{})
	} else {
		std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

// SetLevel changes the minimum level at runtime.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	std.SetLevel(lvl)
	return nil
}

// SetOutput redirects log output; mostly useful in tests.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// Flush syncs and closes any log files opened by Init.
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	closeFiles()
	std.SetOutput(os.Stdout)
}

func closeFiles() {
	for _, f := range files {
		_ = f.Sync()
		_ = f.Close()
	}
	files = nil
}

// WithFields returns an entry carrying the given structured fields.
func WithFields(fields map[string]any) *logrus.Entry {
	return std.WithFields(logrus.Fields(fields))
}

func Debug(format string, args ...any) { std.Debugf(format, args...) }
func Info(format string, args ...any)  { std.Infof(format, args...) }
func Warn(format string, args ...any)  { std.Warnf(format, args...) }
func Error(format string, args ...any) { std.Errorf(format, args...) }
func Fatal(format string, args ...any) { std.Fatalf(format, args...) }
