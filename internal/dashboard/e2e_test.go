package dashboard

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/kiosk404/spycats/internal/hq/handler/v1"
	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/service"
	"github.com/kiosk404/spycats/internal/hq/service/cats/store/inmemory"
)

// newHQ serves the real v1 handlers over an in-memory store.
func newHQ(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := inmemory.NewCatStore()
	h := v1.NewCatHandler(service.NewCatService(store))

	r := gin.New()
	g := r.Group("/v1")
	g.GET("/cats", h.List)
	g.GET("/cats/:id", h.Get)
	g.POST("/cats", h.Create)
	g.PATCH("/cats/:id/salary", h.UpdateSalary)
	g.DELETE("/cats/:id", h.Delete)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, srv.Client())
}

func TestEndToEndCreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	d := New(newHQ(t), WithNotifier(rec))

	require.NoError(t, d.Load(ctx))
	assert.Empty(t, d.Cats())

	whiskers, err := d.SubmitCreate(ctx, CreateCatRequest{Name: "Agent Whiskers", Breed: "Siamese", YearsOfExperience: 5, Salary: 75000})
	require.NoError(t, err)
	assert.NotEmpty(t, whiskers.ID)
	assert.False(t, whiskers.CreatedAt.IsZero())
	assert.Equal(t, whiskers.CreatedAt, whiskers.UpdatedAt)

	_, err = d.SubmitCreate(ctx, CreateCatRequest{Name: "Shadow Paws", Breed: "Maine Coon", YearsOfExperience: 8, Salary: 95000})
	require.NoError(t, err)

	updated, err := d.SubmitSalaryUpdate(ctx, whiskers.ID, 82000)
	require.NoError(t, err)
	assert.Equal(t, 82000.0, updated.Salary)
	assert.Equal(t, whiskers.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(whiskers.UpdatedAt))

	require.NoError(t, d.SubmitDelete(ctx, whiskers.ID))

	// A fresh load agrees with the reconciled cache.
	local := d.Cats()
	require.NoError(t, d.Load(ctx))
	assert.Equal(t, ids(local), ids(d.Cats()))
	require.Len(t, local, 1)
	assert.Equal(t, "Shadow Paws", local[0].Name)

	assert.Equal(t, []string{
		"Agent Whiskers has been added to the agency!",
		"Shadow Paws has been added to the agency!",
		"Salary updated successfully",
		"Agent Whiskers has been removed from the agency",
	}, rec.success)
	assert.Empty(t, rec.failures)
}

func TestEndToEndZeroSalaryRejected(t *testing.T) {
	ctx := context.Background()
	d := New(newHQ(t))
	require.NoError(t, d.Load(ctx))

	_, err := d.SubmitCreate(ctx, CreateCatRequest{Name: "Midnight", Breed: "British Shorthair", YearsOfExperience: 3, Salary: 0})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "salary")
	assert.Empty(t, d.Cats())

	require.NoError(t, d.Load(ctx))
	assert.Empty(t, d.Cats())
}

func TestEndToEndUnknownID(t *testing.T) {
	ctx := context.Background()
	d := New(newHQ(t))
	require.NoError(t, d.Load(ctx))

	_, err := d.SubmitSalaryUpdate(ctx, "missing", 1000)
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(d.SubmitDelete(ctx, "missing")))
}
