package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is an API double driven by per-call hooks.
type fakeAPI struct {
	list   func() ([]Cat, error)
	create func(CreateCatRequest) (Cat, error)
	salary func(string, float64) (Cat, error)
	del    func(string) error
	calls  int
}

func (f *fakeAPI) ListCats(context.Context) ([]Cat, error) { f.calls++; return f.list() }
func (f *fakeAPI) GetCat(context.Context, string) (Cat, error) {
	return Cat{}, errors.New("not used")
}
func (f *fakeAPI) CreateCat(_ context.Context, req CreateCatRequest) (Cat, error) {
	f.calls++
	return f.create(req)
}
func (f *fakeAPI) UpdateSalary(_ context.Context, id string, salary float64) (Cat, error) {
	f.calls++
	return f.salary(id, salary)
}
func (f *fakeAPI) DeleteCat(_ context.Context, id string) (DeleteResult, error) {
	f.calls++
	if err := f.del(id); err != nil {
		return DeleteResult{}, err
	}
	return DeleteResult{Message: "Spy cat deleted successfully", ID: id}, nil
}

// recorder collects notifications.
type recorder struct {
	mu       sync.Mutex
	success  []string
	failures []string
}

func (r *recorder) Success(msg string) {
	r.mu.Lock()
	r.success = append(r.success, msg)
	r.mu.Unlock()
}
func (r *recorder) Error(msg string) {
	r.mu.Lock()
	r.failures = append(r.failures, msg)
	r.mu.Unlock()
}

func loaded(t *testing.T, api *fakeAPI) (*Dashboard, *recorder) {
	t.Helper()
	if api.list == nil {
		api.list = func() ([]Cat, error) { return append([]Cat{}, roster...), nil }
	}
	rec := &recorder{}
	d := New(api, WithNotifier(rec))
	require.NoError(t, d.Load(context.Background()))
	return d, rec
}

func TestLoad(t *testing.T) {
	d, rec := loaded(t, &fakeAPI{})
	assert.Equal(t, []string{"1", "2", "3"}, ids(d.Cats()))
	assert.Equal(t, LoadState{Loaded: true}, d.State())
	assert.Empty(t, rec.failures)
}

func TestLoadFailureKeepsLastKnownGood(t *testing.T) {
	fail := false
	api := &fakeAPI{list: func() ([]Cat, error) {
		if fail {
			return nil, &UnexpectedError{Message: "Failed to reach HQ", Err: errors.New("connection refused")}
		}
		return append([]Cat{}, roster...), nil
	}}
	d, rec := loaded(t, api)

	fail = true
	err := d.Load(context.Background())
	require.Error(t, err)
	assert.Len(t, d.Cats(), 3)
	assert.Equal(t, err, d.State().Err)
	assert.True(t, d.State().Loaded)
	assert.Equal(t, []string{"Failed to reach HQ"}, rec.failures)

	// Retry is manual.
	fail = false
	require.NoError(t, d.Load(context.Background()))
	assert.NoError(t, d.State().Err)
}

func TestInitialLoadFailureLeavesCacheEmpty(t *testing.T) {
	d := New(&fakeAPI{list: func() ([]Cat, error) { return nil, &UnexpectedError{StatusCode: 500} }})
	require.Error(t, d.Load(context.Background()))
	assert.Empty(t, d.Cats())
	assert.False(t, d.State().Loaded)
}

func TestLoadOvertakenByDeleteRefetches(t *testing.T) {
	var (
		mu     sync.Mutex
		server = append([]Cat{}, roster...)
		lists  int
	)
	started := make(chan struct{})
	release := make(chan struct{})
	api := &fakeAPI{
		list: func() ([]Cat, error) {
			mu.Lock()
			snapshot := append([]Cat{}, server...)
			lists++
			first := lists == 1
			mu.Unlock()
			if first {
				close(started)
				<-release
			}
			return snapshot, nil
		},
		del: func(id string) error {
			mu.Lock()
			defer mu.Unlock()
			for i, c := range server {
				if c.ID == id {
					server = append(server[:i:i], server[i+1:]...)
					return nil
				}
			}
			return &NotFoundError{}
		},
	}
	d := New(api)

	done := make(chan error, 1)
	go func() { done <- d.Load(context.Background()) }()
	<-started

	require.NoError(t, d.SubmitDelete(context.Background(), "1"))
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, []string{"2", "3"}, ids(d.Cats()))
	_, ok := d.Cat("1")
	assert.False(t, ok)
	assert.Equal(t, 2, lists)
	assert.Equal(t, LoadState{Loaded: true}, d.State())
}

func TestLoadGivesUpWhenEveryRosterIsOvertaken(t *testing.T) {
	var (
		d      *Dashboard
		lists  int
		salary = 80000.0
	)
	api := &fakeAPI{salary: func(id string, s float64) (Cat, error) {
		c := roster[0]
		c.Salary = s
		return c, nil
	}}
	api.list = func() ([]Cat, error) {
		lists++
		salary++
		_, err := d.SubmitSalaryUpdate(context.Background(), "1", salary)
		require.NoError(t, err)
		return append([]Cat{}, roster...), nil
	}
	rec := &recorder{}
	d = New(api, WithNotifier(rec))

	err := d.Load(context.Background())
	assert.ErrorIs(t, err, ErrRosterChanged)
	assert.Equal(t, maxLoadAttempts, lists)
	assert.False(t, d.State().Loaded)
	assert.Contains(t, rec.failures, ErrRosterChanged.Error())

	// The cache holds the confirmed writes, not a stale roster.
	require.Len(t, d.Cats(), 1)
	got, _ := d.Cat("1")
	assert.Equal(t, 80003.0, got.Salary)
}

func TestSubmitCreate(t *testing.T) {
	stored := Cat{ID: "srv-9", Name: "Tom", Breed: "Tabby", YearsOfExperience: 2, Salary: 5000,
		CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}
	d, rec := loaded(t, &fakeAPI{create: func(CreateCatRequest) (Cat, error) { return stored, nil }})

	got, err := d.SubmitCreate(context.Background(), CreateCatRequest{Name: "Tom", Breed: "Tabby", YearsOfExperience: 2, Salary: 5000})
	require.NoError(t, err)
	assert.Equal(t, stored, got)
	assert.Equal(t, []string{"1", "2", "3", "srv-9"}, ids(d.Cats()))

	cached, _ := d.Cat("srv-9")
	assert.Equal(t, stored, cached, "cache holds the server record")
	assert.Equal(t, []string{"Tom has been added to the agency!"}, rec.success)
}

func TestSubmitCreateValidationLeavesCache(t *testing.T) {
	verr := &ValidationError{Message: "Validation failed", Fields: map[string][]string{"salary": {"Salary must be a positive number"}}}
	d, rec := loaded(t, &fakeAPI{create: func(CreateCatRequest) (Cat, error) { return Cat{}, verr }})

	_, err := d.SubmitCreate(context.Background(), CreateCatRequest{Name: "Midnight", Breed: "British Shorthair", YearsOfExperience: 3})
	require.True(t, IsValidation(err))
	assert.Len(t, d.Cats(), 3)
	assert.Equal(t, []string{"Validation failed: Salary must be a positive number"}, rec.failures)
	assert.False(t, d.Pending(TargetNew))
}

func TestSubmitSalaryUpdate(t *testing.T) {
	updatedAt := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d, rec := loaded(t, &fakeAPI{salary: func(id string, salary float64) (Cat, error) {
		c := roster[1]
		c.Salary = salary
		c.UpdatedAt = updatedAt
		return c, nil
	}})

	_, err := d.SubmitSalaryUpdate(context.Background(), "2", 99000)
	require.NoError(t, err)

	got, _ := d.Cat("2")
	assert.Equal(t, 99000.0, got.Salary)
	assert.Equal(t, updatedAt, got.UpdatedAt, "server timestamp, not a local patch")
	assert.Equal(t, []string{"1", "2", "3"}, ids(d.Cats()))
	assert.Equal(t, []string{"Salary updated successfully"}, rec.success)
}

func TestSubmitSalaryUpdateNotFound(t *testing.T) {
	d, rec := loaded(t, &fakeAPI{salary: func(string, float64) (Cat, error) {
		return Cat{}, &NotFoundError{Message: "Spy cat not found"}
	}})

	_, err := d.SubmitSalaryUpdate(context.Background(), "42", 1000)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, ids(roster), ids(d.Cats()))
	assert.Equal(t, []string{"Spy cat not found"}, rec.failures)
}

func TestSubmitDelete(t *testing.T) {
	d, rec := loaded(t, &fakeAPI{del: func(string) error { return nil }})

	require.NoError(t, d.SubmitDelete(context.Background(), "1"))
	assert.Equal(t, []string{"2", "3"}, ids(d.Cats()))
	assert.Equal(t, []string{"Agent Whiskers has been removed from the agency"}, rec.success)
}

func TestSubmitDeleteFailureLeavesCache(t *testing.T) {
	d, _ := loaded(t, &fakeAPI{del: func(string) error { return &UnexpectedError{StatusCode: 500, Message: "Failed to delete spy cat"} }})

	err := d.SubmitDelete(context.Background(), "1")
	require.Error(t, err)
	assert.Len(t, d.Cats(), 3)
}

func TestSecondSubmitWhilePendingIsRejected(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	api := &fakeAPI{salary: func(id string, salary float64) (Cat, error) {
		close(started)
		<-release
		c := roster[0]
		c.Salary = salary
		return c, nil
	}}
	d, _ := loaded(t, api)

	done := make(chan error, 1)
	go func() {
		_, err := d.SubmitSalaryUpdate(context.Background(), "1", 80000)
		done <- err
	}()
	<-started
	assert.True(t, d.Pending("1"))

	callsBefore := api.calls
	_, err := d.SubmitSalaryUpdate(context.Background(), "1", 81000)
	assert.ErrorIs(t, err, ErrSubmitting)
	assert.ErrorIs(t, d.SubmitDelete(context.Background(), "1"), ErrSubmitting)
	assert.Equal(t, callsBefore, api.calls, "no request issued")

	close(release)
	require.NoError(t, <-done)
	assert.False(t, d.Pending("1"))

	got, _ := d.Cat("1")
	assert.Equal(t, 80000.0, got.Salary)
}
