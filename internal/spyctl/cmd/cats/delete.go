package cats

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kiosk404/spycats/internal/dashboard"
	"github.com/kiosk404/spycats/internal/spyctl/cmd/util"
)

var deleteExample = heredoc.Doc(`
	# Remove agent 3, asking for confirmation
	spyctl cats delete 3

	# Remove agent 3 without asking
	spyctl cats delete 3 --yes`)

// DeleteOptions is an options struct to support the delete command.
type DeleteOptions struct {
	ID  string
	Yes bool

	Factory util.Factory
	util.IOStreams
}

// NewCmdDelete returns the "cats delete" command.
func NewCmdDelete(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	o := &DeleteOptions{Factory: f, IOStreams: ioStreams}

	cmd := &cobra.Command{
		Use:                   "delete ID",
		DisableFlagsInUseLine: true,
		Aliases:               []string{"rm", "remove"},
		Short:                 "Remove an agent from the agency",
		Example:               deleteExample,
		Args:                  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Complete(args))
			util.CheckErr(o.Run(cmd.Context()))
		},
	}

	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", o.Yes, "Do not ask for confirmation.")

	return cmd
}

// Complete takes the record id from args.
func (o *DeleteOptions) Complete(args []string) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return util.UsageErrorf("spyctl cats delete", "exactly one agent id is required")
	}
	o.ID = args[0]
	return nil
}

// Run confirms and deletes the record.
func (o *DeleteOptions) Run(ctx context.Context) error {
	d := dashboard.New(o.Factory.HQClient(), dashboard.WithNotifier(util.NewNotifier(o.IOStreams)))
	if err := d.Load(ctx); err != nil {
		return util.ErrExit
	}

	cat, ok := d.Cat(o.ID)
	if !ok {
		return &dashboard.NotFoundError{}
	}

	if !o.Yes && !o.confirm(fmt.Sprintf("Are you sure you want to remove %s from the agency?", cat.Name)) {
		fmt.Fprintln(o.Out, "Aborted.")
		return nil
	}

	if err := d.SubmitDelete(ctx, o.ID); err != nil {
		return util.ErrExit
	}
	return nil
}

func (o *DeleteOptions) confirm(question string) bool {
	fmt.Fprintf(o.Out, "%s [y/N] ", question)
	if o.In == nil {
		return false
	}
	answer, _ := bufio.NewReader(o.In).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
