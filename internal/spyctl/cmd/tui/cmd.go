// Package tui implements "spyctl dashboard", an interactive roster view.
package tui

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiosk404/spycats/internal/spyctl/cmd/util"
)

// NewCmdDashboard returns the "dashboard" command.
func NewCmdDashboard(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	return &cobra.Command{
		Use:                   "dashboard",
		DisableFlagsInUseLine: true,
		Aliases:               []string{"ui"},
		Short:                 "Open the interactive roster dashboard",
		Long: heredoc.Doc(`
			Open the interactive roster dashboard.

			The dashboard shows headline figures above a searchable table
			of agents. Press / to search, r to reload, d to remove the
			selected agent and q to quit.
		`),
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(Run(f.HQClient(), viper.GetDuration(util.FlagTimeout), ioStreams.In, ioStreams.Out))
		},
	}
}
