package cats

import (
	"context"
	"fmt"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kiosk404/spycats/internal/dashboard"
	"github.com/kiosk404/spycats/internal/spyctl/cmd/util"
)

var salaryExample = heredoc.Doc(`
	# Give agent 1 a raise
	spyctl cats salary 1 82000`)

// SalaryOptions is an options struct to support the salary command.
type SalaryOptions struct {
	ID     string
	Salary float64

	Factory util.Factory
	util.IOStreams
}

// NewCmdSalary returns the "cats salary" command.
func NewCmdSalary(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	o := &SalaryOptions{Factory: f, IOStreams: ioStreams}

	cmd := &cobra.Command{
		Use:                   "salary ID AMOUNT",
		DisableFlagsInUseLine: true,
		Short:                 "Change the salary of an agent",
		Long:                  "Change the salary of an agent. Salary is the only field that can change after recruitment.",
		Example:               salaryExample,
		Args:                  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Complete(args))
			util.CheckErr(o.Run(cmd.Context()))
		},
	}

	return cmd
}

// Complete parses the id and amount.
func (o *SalaryOptions) Complete(args []string) error {
	if len(args) != 2 {
		return util.UsageErrorf("spyctl cats salary", "an agent id and an amount are required")
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return util.UsageErrorf("spyctl cats salary", "invalid amount %q", args[1])
	}
	o.ID, o.Salary = args[0], amount
	return nil
}

// Run submits the new salary.
func (o *SalaryOptions) Run(ctx context.Context) error {
	d := dashboard.New(o.Factory.HQClient(), dashboard.WithNotifier(util.NewNotifier(o.IOStreams)))
	cat, err := d.SubmitSalaryUpdate(ctx, o.ID, o.Salary)
	if err != nil {
		return util.ErrExit
	}
	fmt.Fprintf(o.Out, "%s now earns %s\n", cat.Name, dashboard.FormatSalary(cat.Salary))
	return nil
}
