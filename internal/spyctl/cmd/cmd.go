// Package cmd assembles the spyctl command tree.
package cmd

import (
	"io"
	"os"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kiosk404/spycats/internal/dashboard"
	"github.com/kiosk404/spycats/internal/spyctl/cmd/cats"
	"github.com/kiosk404/spycats/internal/spyctl/cmd/export"
	"github.com/kiosk404/spycats/internal/spyctl/cmd/missions"
	"github.com/kiosk404/spycats/internal/spyctl/cmd/stats"
	"github.com/kiosk404/spycats/internal/spyctl/cmd/tui"
	"github.com/kiosk404/spycats/internal/spyctl/cmd/util"
	"github.com/kiosk404/spycats/internal/spyctl/cmd/version"
	"github.com/kiosk404/spycats/pkg/utils/cliflag"
)

// EnvServer overrides the HQ address when --server is not given.
const EnvServer = "SPYCATS_API_URL"

// NewDefaultSpyCtlCommand creates the `spyctl` command with default arguments.
func NewDefaultSpyCtlCommand() *cobra.Command {
	return NewSpyCtlCommand(util.NewDefaultFactory(), os.Stdin, os.Stdout, os.Stderr)
}

// NewSpyCtlCommand creates the `spyctl` command and its nested children.
func NewSpyCtlCommand(f util.Factory, in io.Reader, out, err io.Writer) *cobra.Command {
	// Parent command to which all subcommands are added.
	cmds := &cobra.Command{
		Use:   "spyctl",
		Short: "spyctl manages the Spy Cats Agency roster",
		Long: Banner() + heredoc.Doc(`
			spyctl is the dashboard client of the Spy Cats Agency HQ.

			It lists, recruits, re-pays and removes agents, shows roster
			figures and the mission board, exports the roster as CSV or
			JSON, and opens an interactive dashboard.

			HQ is reached at --server, or $SPYCATS_API_URL, or
			http://localhost:8000.
		`),
		Run:           runHelp,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmds.SetIn(in)
	cmds.SetOut(out)
	cmds.SetErr(err)

	flags := cmds.PersistentFlags()
	// Normalize all flags that are coming from other packages or pre-configurations
	flags.SetNormalizeFunc(cliflag.WordSepNormalizeFunc)
	addGlobalFlags(flags)

	_ = viper.BindPFlags(flags)
	_ = viper.BindEnv(util.FlagServer, EnvServer)

	ioStreams := util.IOStreams{In: in, Out: out, ErrOut: err}

	cmds.AddGroup(
		&cobra.Group{ID: "basic", Title: "Basic Commands:"},
		&cobra.Group{ID: "views", Title: "Roster Views:"},
		&cobra.Group{ID: "other", Title: "Other Commands:"},
	)
	addToGroup(cmds, "basic", cats.NewCmdCats(f, ioStreams))
	addToGroup(cmds, "views",
		stats.NewCmdStats(f, ioStreams),
		missions.NewCmdMissions(f, ioStreams),
		export.NewCmdExport(f, ioStreams),
		tui.NewCmdDashboard(f, ioStreams),
	)
	addToGroup(cmds, "other", version.NewCmdVersion(ioStreams))

	return cmds
}

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.String(util.FlagServer, dashboard.DefaultBaseURL, "Address of the Spy Cats HQ API.")
	flags.Duration(util.FlagTimeout, 30*time.Second, "Timeout of each request to HQ.")
}

func addToGroup(parent *cobra.Command, group string, cmds ...*cobra.Command) {
	for _, c := range cmds {
		c.GroupID = group
		parent.AddCommand(c)
	}
}

func runHelp(cmd *cobra.Command, args []string) {
	_ = cmd.Help()
}
