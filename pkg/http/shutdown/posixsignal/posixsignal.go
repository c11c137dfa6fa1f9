// Package posixsignal triggers a graceful shutdown on SIGINT or SIGTERM.
package posixsignal

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/kiosk404/spycats/pkg/http/shutdown"
)

// Name is the name of this shutdown manager.
const Name = "PosixSignalManager"

// PosixSignalManager implements shutdown.Manager for POSIX signals.
type PosixSignalManager struct {
	signals []os.Signal
}

// NewPosixSignalManager listens for the given signals, SIGINT and SIGTERM
// by default.
func NewPosixSignalManager(sig ...os.Signal) *PosixSignalManager {
	if len(sig) == 0 {
		sig = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}
	return &PosixSignalManager{signals: sig}
}

// GetName returns the manager name.
func (m *PosixSignalManager) GetName() string {
	return Name
}

// Start waits for a signal in the background.
func (m *PosixSignalManager) Start(gs shutdown.GSInterface) error {
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, m.signals...)
		<-c
		gs.StartShutdown(m)
	}()
	return nil
}

// ShutdownStart does nothing.
func (m *PosixSignalManager) ShutdownStart() error {
	return nil
}

// ShutdownFinish exits the process.
func (m *PosixSignalManager) ShutdownFinish() error {
	os.Exit(0)
	return nil
}
