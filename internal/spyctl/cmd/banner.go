package cmd

import (
	"fmt"

	"github.com/kiosk404/spycats/pkg/version"
)

const bannerText = `
   ____              ____      _
  / ___| _ __  _   _/ ___|__ _| |_ ___
  \___ \| '_ \| | | | |   / _' | __/ __|
   ___) | |_) | |_| | |__| (_| | |_\__ \
  |____/| .__/ \__, |\____\__,_|\__|___/
        |_|    |___/

        Spy Cats Agency Dashboard
`

// Banner returns the CLI banner string.
func Banner() string {
	return fmt.Sprintf("%s\n  Version: %s\n", bannerText, version.Get().String())
}
