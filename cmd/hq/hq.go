// hq is the Spy Cats Agency resource store server.
package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/kiosk404/spycats/internal/hq"
)

func main() {
	hq.NewApp("hq").Run()
}
