package cats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/kiosk404/spycats/internal/dashboard"
	"github.com/kiosk404/spycats/internal/spyctl/cmd/util"
)

var getExample = heredoc.Doc(`
	# Show the dossier of agent 1
	spyctl cats get 1`)

// GetOptions is an options struct to support the get command.
type GetOptions struct {
	ID string

	Factory util.Factory
	util.IOStreams
}

// NewCmdGet returns the "cats get" command.
func NewCmdGet(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	o := &GetOptions{Factory: f, IOStreams: ioStreams}

	cmd := &cobra.Command{
		Use:                   "get ID",
		DisableFlagsInUseLine: true,
		Aliases:               []string{"show"},
		Short:                 "Show the dossier of one agent",
		Example:               getExample,
		Args:                  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Complete(args))
			util.CheckErr(o.Run(cmd.Context()))
		},
	}

	return cmd
}

// Complete takes the record id from args.
func (o *GetOptions) Complete(args []string) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return util.UsageErrorf("spyctl cats get", "exactly one agent id is required")
	}
	o.ID = args[0]
	return nil
}

// Run fetches the record and renders its dossier.
func (o *GetOptions) Run(ctx context.Context) error {
	cat, err := o.Factory.HQClient().GetCat(ctx, o.ID)
	if err != nil {
		return err
	}
	fmt.Fprintln(o.Out, renderMarkdown(Dossier(cat), util.TerminalWidth(o.Out, 80)-4, util.IsTerminal(o.Out)))
	return nil
}

// Dossier describes cat as markdown.
func Dossier(cat dashboard.Cat) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", cat.Name)
	fmt.Fprintf(&b, "| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| ID | %s |\n", cat.ID)
	fmt.Fprintf(&b, "| Breed | %s |\n", cat.Breed)
	fmt.Fprintf(&b, "| Experience | %s (%s) |\n", dashboard.FormatExperience(cat.YearsOfExperience), dashboard.ExperienceLevel(cat.YearsOfExperience))
	fmt.Fprintf(&b, "| Salary | %s |\n", dashboard.FormatSalary(cat.Salary))
	fmt.Fprintf(&b, "| Recruited | %s |\n", formatTime(cat.CreatedAt))
	fmt.Fprintf(&b, "| Last updated | %s |\n", formatTime(cat.UpdatedAt))
	return b.String()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.UTC().Format("2006-01-02 15:04 UTC")
}

func renderMarkdown(content string, width int, tty bool) string {
	if width <= 0 {
		width = 76
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if tty {
		opts = append(opts, glamour.WithStandardStyle("dark"), glamour.WithColorProfile(termenv.ANSI256))
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}
