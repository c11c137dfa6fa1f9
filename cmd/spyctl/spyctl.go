// spyctl is the command line dashboard of the Spy Cats Agency.
package main

import (
	"os"

	"github.com/kiosk404/spycats/internal/spyctl/cmd"
)

func main() {
	command := cmd.NewDefaultSpyCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
