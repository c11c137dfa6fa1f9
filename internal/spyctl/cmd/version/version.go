// Package version prints the spyctl build information.
package version

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/kiosk404/spycats/internal/spyctl/cmd/util"
	"github.com/kiosk404/spycats/pkg/utils/json"
	"github.com/kiosk404/spycats/pkg/version"
)

// VersionOptions is an options struct to support the version command.
type VersionOptions struct {
	Short  bool
	Output string

	util.IOStreams
}

// NewCmdVersion returns the "version" command.
func NewCmdVersion(ioStreams util.IOStreams) *cobra.Command {
	o := &VersionOptions{IOStreams: ioStreams}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the spyctl version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Validate())
			util.CheckErr(o.Run())
		},
	}

	cmd.Flags().BoolVar(&o.Short, "short", o.Short, "Print just the version number.")
	cmd.Flags().StringVarP(&o.Output, "output", "o", o.Output, "One of '' or 'json'.")

	return cmd
}

// Validate checks the output format.
func (o *VersionOptions) Validate() error {
	if o.Output != "" && o.Output != "json" {
		return util.UsageErrorf("spyctl version", "--output must be 'json'")
	}
	return nil
}

// Run prints the version.
func (o *VersionOptions) Run() error {
	info := version.Get()

	switch {
	case o.Short:
		fmt.Fprintln(o.Out, info.GitVersion)
	case o.Output == "json":
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(o.Out, string(data))
	default:
		table := uitable.New()
		table.AddRow("gitVersion:", info.GitVersion)
		table.AddRow("gitCommit:", info.GitCommit)
		table.AddRow("buildDate:", info.BuildDate)
		table.AddRow("goVersion:", info.GoVersion)
		table.AddRow("compiler:", info.Compiler)
		table.AddRow("platform:", info.Platform)
		fmt.Fprintln(o.Out, table)
	}
	return nil
}
