// Package shutdown runs registered callbacks when any of its managers
// observes a shutdown request (for example a POSIX signal).
package shutdown

import (
	"sync"
)

// Callback is invoked on shutdown with the name of the manager that
// triggered it.
type Callback interface {
	OnShutdown(string) error
}

// Func adapts a function to a Callback.
type Func func(string) error

// OnShutdown implements Callback.
func (f Func) OnShutdown(manager string) error {
	return f(manager)
}

// Manager listens for a shutdown trigger and reports it to the
// GracefulShutdown that started it.
type Manager interface {
	GetName() string
	Start(gs GSInterface) error
	ShutdownStart() error
	ShutdownFinish() error
}

// ErrorHandler receives errors from managers and callbacks.
type ErrorHandler interface {
	OnError(err error)
}

// ErrorFunc adapts a function to an ErrorHandler.
type ErrorFunc func(err error)

// OnError implements ErrorHandler.
func (f ErrorFunc) OnError(err error) {
	f(err)
}

// GSInterface is what a Manager sees of GracefulShutdown.
type GSInterface interface {
	StartShutdown(sm Manager)
	ReportError(err error)
	AddShutdownCallback(callback Callback)
}

// GracefulShutdown coordinates managers and callbacks.
type GracefulShutdown struct {
	mu           sync.Mutex
	callbacks    []Callback
	managers     []Manager
	errorHandler ErrorHandler
}

// New returns an empty GracefulShutdown.
func New() *GracefulShutdown {
	return &GracefulShutdown{}
}

// Start starts every registered manager.
func (gs *GracefulShutdown) Start() error {
	gs.mu.Lock()
	managers := append([]Manager(nil), gs.managers...)
	gs.mu.Unlock()

	for _, m := range managers {
		if err := m.Start(gs); err != nil {
			return err
		}
	}
	return nil
}

// AddShutdownManager registers a manager.
func (gs *GracefulShutdown) AddShutdownManager(m Manager) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.managers = append(gs.managers, m)
}

// AddShutdownCallback registers a callback. Callbacks run concurrently.
func (gs *GracefulShutdown) AddShutdownCallback(cb Callback) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.callbacks = append(gs.callbacks, cb)
}

// SetErrorHandler sets the handler for errors raised during shutdown.
func (gs *GracefulShutdown) SetErrorHandler(h ErrorHandler) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.errorHandler = h
}

// StartShutdown runs all callbacks and waits for them to finish.
func (gs *GracefulShutdown) StartShutdown(sm Manager) {
	gs.ReportError(sm.ShutdownStart())

	gs.mu.Lock()
	callbacks := append([]Callback(nil), gs.callbacks...)
	gs.mu.Unlock()

	var wg sync.WaitGroup
	for _, cb := range callbacks {
		wg.Add(1)
		go func(cb Callback) {
			defer wg.Done()
			gs.ReportError(cb.OnShutdown(sm.GetName()))
		}(cb)
	}
	wg.Wait()

	gs.ReportError(sm.ShutdownFinish())
}

// ReportError forwards non-nil errors to the error handler.
func (gs *GracefulShutdown) ReportError(err error) {
	gs.mu.Lock()
	h := gs.errorHandler
	gs.mu.Unlock()

	if err != nil && h != nil {
		h.OnError(err)
	}
}
