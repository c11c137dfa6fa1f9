package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// TargetNew is the write target of creation requests. Salary updates and
// deletes target the record id.
const TargetNew = "new"

// maxLoadAttempts bounds how often Load refetches a roster that was
// overtaken by a confirmed write.
const maxLoadAttempts = 3

// ErrRosterChanged is returned by Load when every fetched roster was
// overtaken by a confirmed write. The cache keeps the confirmed writes.
var ErrRosterChanged = errors.New("the roster changed while loading, reload to refresh")

// LoadState describes the outcome of the last Load.
type LoadState struct {
	// Loading is true while a Load is in flight.
	Loading bool
	// Loaded is true once any Load has succeeded.
	Loaded bool
	// Err is the failure of the last Load, nil after a success.
	Err error
}

// Dashboard keeps the local cache in step with HQ. Writes are never
// applied optimistically: the cache only changes after HQ confirms, and
// always to the record HQ returned.
type Dashboard struct {
	api      API
	notifier Notifier
	cache    *Cache

	mu      sync.Mutex
	state   LoadState
	pending map[string]struct{}
	// writes counts confirmed writes applied to the cache. A roster fetched
	// across a change of writes is stale.
	writes uint64
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithNotifier sets the notification surface. The default drops messages.
func WithNotifier(n Notifier) Option {
	return func(d *Dashboard) {
		d.notifier = n
	}
}

// New creates a Dashboard on top of api.
func New(api API, opts ...Option) *Dashboard {
	d := &Dashboard{
		api:      api,
		notifier: NopNotifier{},
		cache:    NewCache(),
		pending:  make(map[string]struct{}),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Load fetches the roster. On failure the cache keeps its last known good
// contents and the error is recorded in State. Retry by calling Load again.
//
// A roster is only applied if no write was confirmed while it was being
// fetched; otherwise it is fetched again so a confirmed write is never
// rolled back by an older snapshot.
func (d *Dashboard) Load(ctx context.Context) error {
	d.mu.Lock()
	d.state.Loading = true
	d.mu.Unlock()

	for attempt := 1; ; attempt++ {
		d.mu.Lock()
		writes := d.writes
		d.mu.Unlock()

		cats, err := d.api.ListCats(ctx)

		d.mu.Lock()
		if err == nil && d.writes != writes {
			if attempt < maxLoadAttempts {
				d.mu.Unlock()
				continue
			}
			err = ErrRosterChanged
		}
		d.state.Loading = false
		if err != nil {
			d.state.Err = err
			d.mu.Unlock()
			d.notifier.Error(Describe(err))
			return err
		}
		d.cache.Replace(cats)
		d.state.Loaded = true
		d.state.Err = nil
		d.mu.Unlock()
		return nil
	}
}

// State returns the outcome of the last Load.
func (d *Dashboard) State() LoadState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Cats returns the cached roster in order.
func (d *Dashboard) Cats() []Cat {
	return d.cache.List()
}

// Cat returns one cached record.
func (d *Dashboard) Cat(id string) (Cat, bool) {
	return d.cache.Get(id)
}

// Pending reports whether a write for target is in flight.
func (d *Dashboard) Pending(target string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[target]
	return ok
}

// SubmitCreate creates a record on HQ and appends the stored record to
// the cache.
func (d *Dashboard) SubmitCreate(ctx context.Context, req CreateCatRequest) (Cat, error) {
	if err := d.begin(TargetNew); err != nil {
		return Cat{}, err
	}
	defer d.end(TargetNew)

	cat, err := d.api.CreateCat(ctx, req)
	if err != nil {
		d.notifier.Error(Describe(err))
		return Cat{}, err
	}
	d.commit(func() { d.cache.Put(cat) })
	d.notifier.Success(fmt.Sprintf("%s has been added to the agency!", cat.Name))
	return cat, nil
}

// SubmitSalaryUpdate changes a salary on HQ and replaces the cached record
// with the one HQ returned.
func (d *Dashboard) SubmitSalaryUpdate(ctx context.Context, id string, salary float64) (Cat, error) {
	if err := d.begin(id); err != nil {
		return Cat{}, err
	}
	defer d.end(id)

	cat, err := d.api.UpdateSalary(ctx, id, salary)
	if err != nil {
		d.notifier.Error(Describe(err))
		return Cat{}, err
	}
	d.commit(func() { d.cache.Put(cat) })
	d.notifier.Success("Salary updated successfully")
	return cat, nil
}

// SubmitDelete removes a record on HQ, then from the cache.
func (d *Dashboard) SubmitDelete(ctx context.Context, id string) error {
	if err := d.begin(id); err != nil {
		return err
	}
	defer d.end(id)

	name := "Spy cat"
	if cat, ok := d.cache.Get(id); ok {
		name = cat.Name
	}

	if _, err := d.api.DeleteCat(ctx, id); err != nil {
		d.notifier.Error(Describe(err))
		return err
	}
	d.commit(func() { d.cache.Delete(id) })
	d.notifier.Success(fmt.Sprintf("%s has been removed from the agency", name))
	return nil
}

// commit applies a confirmed write to the cache.
func (d *Dashboard) commit(apply func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	apply()
	d.writes++
}

func (d *Dashboard) begin(target string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.pending[target]; ok {
		return ErrSubmitting
	}
	d.pending[target] = struct{}{}
	return nil
}

func (d *Dashboard) end(target string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.pending, target)
}
