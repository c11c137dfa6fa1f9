// Package cats implements the spyctl commands that read and change agent
// records on HQ.
package cats

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/kiosk404/spycats/internal/dashboard"
	"github.com/kiosk404/spycats/internal/spyctl/cmd/util"
)

// NewCmdCats returns the "cats" command group.
func NewCmdCats(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "cats",
		DisableFlagsInUseLine: true,
		Aliases:               []string{"cat", "agents"},
		Short:                 "Manage spy cat agents",
		Long: heredoc.Doc(`
			Manage the agency roster kept by HQ.

			Every change is sent to HQ first; what is printed is the record
			as HQ stored it.
		`),
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	cmd.AddCommand(NewCmdList(f, ioStreams))
	cmd.AddCommand(NewCmdGet(f, ioStreams))
	cmd.AddCommand(NewCmdCreate(f, ioStreams))
	cmd.AddCommand(NewCmdSalary(f, ioStreams))
	cmd.AddCommand(NewCmdDelete(f, ioStreams))

	return cmd
}

var (
	headerColor = color.New(color.Bold).SprintFunc()
	levelColors = map[string]func(a ...any) string{
		"Junior": color.New(color.FgCyan).SprintFunc(),
		"Mid":    color.New(color.FgYellow).SprintFunc(),
		"Senior": color.New(color.FgMagenta).SprintFunc(),
	}
)

// PrintCats writes cats as a table.
func PrintCats(out io.Writer, cats []dashboard.Cat) {
	if len(cats) == 0 {
		fmt.Fprintln(out, "No spy cats found.")
		return
	}

	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow(
		headerColor("ID"), headerColor("NAME"), headerColor("BREED"),
		headerColor("EXPERIENCE"), headerColor("LEVEL"), headerColor("SALARY"),
	)
	for _, c := range cats {
		level := dashboard.ExperienceLevel(c.YearsOfExperience)
		table.AddRow(
			c.ID, c.Name, c.Breed,
			dashboard.FormatExperience(c.YearsOfExperience),
			levelColors[level](level),
			dashboard.FormatSalary(c.Salary),
		)
	}
	fmt.Fprintln(out, table)
}
