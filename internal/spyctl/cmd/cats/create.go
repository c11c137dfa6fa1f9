package cats

import (
	"context"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kiosk404/spycats/internal/dashboard"
	"github.com/kiosk404/spycats/internal/spyctl/cmd/util"
)

var createExample = heredoc.Doc(`
	# Recruit a new agent
	spyctl cats create --name "Agent Whiskers" --breed Siamese --years 5 --salary 75000`)

// CreateOptions is an options struct to support the create command.
type CreateOptions struct {
	Request dashboard.CreateCatRequest

	Factory util.Factory
	util.IOStreams
}

// NewCmdCreate returns the "cats create" command.
func NewCmdCreate(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	o := &CreateOptions{Factory: f, IOStreams: ioStreams}

	cmd := &cobra.Command{
		Use:                   "create --name NAME --breed BREED --years N --salary AMOUNT",
		DisableFlagsInUseLine: true,
		Aliases:               []string{"add", "recruit"},
		Short:                 "Add an agent to the agency",
		Long: heredoc.Doc(`
			Add an agent to the agency.

			HQ validates the record: name and breed must not be blank,
			years of experience must not be negative and salary must be
			positive.
		`),
		Example: createExample,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Run(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&o.Request.Name, "name", o.Request.Name, "Agent name.")
	cmd.Flags().StringVar(&o.Request.Breed, "breed", o.Request.Breed, "Agent breed.")
	cmd.Flags().Float64Var(&o.Request.YearsOfExperience, "years", o.Request.YearsOfExperience, "Years of field experience.")
	cmd.Flags().Float64Var(&o.Request.Salary, "salary", o.Request.Salary, "Annual salary in dollars.")

	return cmd
}

// Run submits the record and prints it as HQ stored it.
func (o *CreateOptions) Run(ctx context.Context) error {
	d := dashboard.New(o.Factory.HQClient(), dashboard.WithNotifier(util.NewNotifier(o.IOStreams)))
	cat, err := d.SubmitCreate(ctx, o.Request)
	if err != nil {
		return util.ErrExit
	}
	PrintCats(o.Out, []dashboard.Cat{cat})
	return nil
}
