// Package stats prints aggregate figures for the agency roster.
package stats

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/kiosk404/spycats/internal/dashboard"
	"github.com/kiosk404/spycats/internal/spyctl/cmd/util"
)

// StatsOptions is an options struct to support the stats command.
type StatsOptions struct {
	Search string

	Factory util.Factory
	util.IOStreams
}

// NewCmdStats returns the "stats" command.
func NewCmdStats(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	o := &StatsOptions{Factory: f, IOStreams: ioStreams}

	cmd := &cobra.Command{
		Use:                   "stats",
		DisableFlagsInUseLine: true,
		Short:                 "Show headcount, payroll and experience figures",
		Example: heredoc.Doc(`
			# Figures for the whole agency
			spyctl stats

			# Figures for Persian agents only
			spyctl stats --search persian`),
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Run(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&o.Search, "search", "s", o.Search, "Only count agents whose name or breed matches.")

	return cmd
}

// Run loads the roster and prints its stats.
func (o *StatsOptions) Run(ctx context.Context) error {
	d := dashboard.New(o.Factory.HQClient())
	if err := d.Load(ctx); err != nil {
		return err
	}
	PrintStats(o.Out, dashboard.ComputeStats(dashboard.Filter(d.Cats(), o.Search)))
	return nil
}

var label = color.New(color.Bold).SprintFunc()

// PrintStats writes s as a two column table.
func PrintStats(out io.Writer, s dashboard.Stats) {
	table := uitable.New()
	table.Separator = "  "
	table.AddRow(label("Total agents:"), strconv.Itoa(s.Total))
	table.AddRow(label("Total payroll:"), dashboard.FormatCurrency(s.Payroll))
	table.AddRow(label("Average salary:"), dashboard.FormatCurrency(s.AverageSalary.Round(0)))
	table.AddRow(label("Average experience:"), dashboard.FormatYears(s.AverageExperience))
	table.AddRow("", "")
	table.AddRow(label("Junior (0-3 years):"), strconv.Itoa(s.Junior))
	table.AddRow(label("Mid (4-6 years):"), strconv.Itoa(s.Mid))
	table.AddRow(label("Senior (7+ years):"), strconv.Itoa(s.Senior))
	fmt.Fprintln(out, table)
}
