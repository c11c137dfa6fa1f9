package cats

import (
	"context"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kiosk404/spycats/internal/dashboard"
	"github.com/kiosk404/spycats/internal/spyctl/cmd/util"
)

var listExample = heredoc.Doc(`
	# List every agent
	spyctl cats list

	# Only agents whose name or breed mentions "siam"
	spyctl cats list --search siam`)

// ListOptions is an options struct to support the list command.
type ListOptions struct {
	Search string

	Factory util.Factory
	util.IOStreams
}

// NewCmdList returns the "cats list" command.
func NewCmdList(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	o := &ListOptions{Factory: f, IOStreams: ioStreams}

	cmd := &cobra.Command{
		Use:                   "list",
		DisableFlagsInUseLine: true,
		Aliases:               []string{"ls"},
		Short:                 "List agents in HQ order",
		Example:               listExample,
		Args:                  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Run(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&o.Search, "search", "s", o.Search, "Case-insensitive filter on name or breed.")

	return cmd
}

// Run loads the roster and prints the filtered table.
func (o *ListOptions) Run(ctx context.Context) error {
	d := dashboard.New(o.Factory.HQClient())
	if err := d.Load(ctx); err != nil {
		return err
	}
	PrintCats(o.Out, dashboard.Filter(d.Cats(), o.Search))
	return nil
}
