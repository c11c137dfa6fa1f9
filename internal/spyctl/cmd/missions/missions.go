// Package missions prints the static mission board.
package missions

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"

	"github.com/kiosk404/spycats/internal/dashboard"
	"github.com/kiosk404/spycats/internal/spyctl/cmd/util"
)

// MissionsOptions is an options struct to support the missions command.
type MissionsOptions struct {
	Status string

	Factory util.Factory
	util.IOStreams
}

// NewCmdMissions returns the "missions" command.
func NewCmdMissions(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	o := &MissionsOptions{Factory: f, IOStreams: ioStreams}

	cmd := &cobra.Command{
		Use:                   "missions",
		DisableFlagsInUseLine: true,
		Short:                 "Show the mission board",
		Long: heredoc.Doc(`
			Show the mission board with the agent assigned to each mission.

			Missions are sample data kept by spyctl; HQ is only asked for
			agent names. When HQ cannot be reached the board is still shown.
		`),
		Example: heredoc.Doc(`
			# Every mission
			spyctl missions

			# Active missions only
			spyctl missions --status active`),
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Run(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&o.Status, "status", o.Status, "Only show missions in this status: pending, active, completed or failed.")

	return cmd
}

// Run prints the board and its summary.
func (o *MissionsOptions) Run(ctx context.Context) error {
	d := dashboard.New(o.Factory.HQClient())
	_ = d.Load(ctx)

	all := dashboard.SampleMissions()
	shown := all[:0:0]
	for _, m := range all {
		if o.Status == "" || string(m.Status) == o.Status {
			shown = append(shown, m)
		}
	}

	width := util.TerminalWidth(o.Out, 80) - 4
	for _, m := range shown {
		printMission(o.Out, m, d.Cats(), width)
	}

	s := dashboard.MissionSummary(all)
	fmt.Fprintf(o.Out, "%d missions: %d active, %d completed, %d pending. Success rate %d%%\n",
		s.Total, s.Active, s.Completed, s.Pending, s.SuccessRate)
	return nil
}

var (
	title        = color.New(color.Bold).SprintFunc()
	statusColors = map[dashboard.MissionStatus]*color.Color{
		dashboard.MissionPending:   color.New(color.FgYellow),
		dashboard.MissionActive:    color.New(color.FgBlue),
		dashboard.MissionCompleted: color.New(color.FgGreen),
		dashboard.MissionFailed:    color.New(color.FgRed),
	}
	priorityColors = map[dashboard.MissionPriority]*color.Color{
		dashboard.PriorityLow:      color.New(color.FgWhite),
		dashboard.PriorityMedium:   color.New(color.FgYellow),
		dashboard.PriorityHigh:     color.New(color.FgRed),
		dashboard.PriorityCritical: color.New(color.FgRed, color.Bold),
	}
)

func printMission(out io.Writer, m dashboard.Mission, cats []dashboard.Cat, width int) {
	if width < 20 {
		width = 20
	}

	fmt.Fprintf(out, "%s  [%s] [%s]\n", title(m.Title),
		statusColors[m.Status].Sprint(strings.ToUpper(string(m.Status))),
		priorityColors[m.Priority].Sprint(strings.ToUpper(string(m.Priority))))
	for _, line := range strings.Split(wordwrap.WrapString(m.Description, uint(width)), "\n") {
		fmt.Fprintf(out, "  %s\n", line)
	}

	agent := "Unassigned"
	if cat, ok := dashboard.AssignedCat(cats, m); ok {
		agent = cat.Name
	} else if m.AssignedCatID != "" {
		agent = "Agent #" + m.AssignedCatID
	}

	fmt.Fprintf(out, "  Location: %s\n", m.Location)
	fmt.Fprintf(out, "  Agent:    %s\n", agent)
	if m.StartDate != "" {
		dates := m.StartDate
		if m.EndDate != "" {
			dates += " to " + m.EndDate
		}
		fmt.Fprintf(out, "  Dates:    %s\n", dates)
	}
	fmt.Fprintf(out, "  Progress: %s %d%%\n\n", progressBar(m.Progress, 20), m.Progress)
}

func progressBar(percent, width int) string {
	percent = max(0, min(100, percent))
	filled := percent * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
