// Package export writes the agency roster to a CSV or JSON file.
package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kiosk404/spycats/internal/dashboard"
	"github.com/kiosk404/spycats/internal/spyctl/cmd/util"
)

// ExportOptions is an options struct to support the export command.
type ExportOptions struct {
	Format string
	Output string
	Search string

	now     func() time.Time
	Factory util.Factory
	util.IOStreams
}

// NewCmdExport returns the "export" command.
func NewCmdExport(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	o := NewExportOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "export",
		DisableFlagsInUseLine: true,
		Short:                 "Export the roster as CSV or JSON",
		Long: heredoc.Doc(`
			Export the roster as CSV or JSON.

			Without --output the file is named spy-cats-YYYY-MM-DD.<format>
			in the current directory. Use --output - to write to stdout.
		`),
		Example: heredoc.Doc(`
			# Export to spy-cats-<today>.csv
			spyctl export

			# Export JSON to stdout
			spyctl export --format json --output -`),
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Validate())
			util.CheckErr(o.Run(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&o.Format, "format", "f", o.Format, "Export format: csv or json.")
	cmd.Flags().StringVarP(&o.Output, "output", "o", o.Output, "Destination file, or - for stdout.")
	cmd.Flags().StringVarP(&o.Search, "search", "s", o.Search, "Only export agents whose name or breed matches.")

	return cmd
}

// NewExportOptions returns options with the CSV format selected.
func NewExportOptions(f util.Factory, ioStreams util.IOStreams) *ExportOptions {
	return &ExportOptions{
		Format:    dashboard.FormatCSV,
		now:       time.Now,
		Factory:   f,
		IOStreams: ioStreams,
	}
}

// Validate checks the format.
func (o *ExportOptions) Validate() error {
	switch o.Format {
	case dashboard.FormatCSV, dashboard.FormatJSON:
		return nil
	default:
		return util.UsageErrorf("spyctl export", "unsupported format %q, must be csv or json", o.Format)
	}
}

// Run loads the roster and writes the export.
func (o *ExportOptions) Run(ctx context.Context) error {
	d := dashboard.New(o.Factory.HQClient())
	if err := d.Load(ctx); err != nil {
		return err
	}
	cats := dashboard.Filter(d.Cats(), o.Search)

	var buf bytes.Buffer
	if err := dashboard.Export(&buf, o.Format, cats); err != nil {
		return err
	}

	if o.Output == "-" {
		buf.WriteByte('\n')
		_, err := buf.WriteTo(o.Out)
		return err
	}

	path := o.Output
	if path == "" {
		path = dashboard.ExportFileName(o.Format, o.now())
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(o.Out, "Exported %d spy cats to %s\n", len(cats), path)
	return nil
}
