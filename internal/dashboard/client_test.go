package dashboard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", srv.Client())
}

func TestClientRequests(t *testing.T) {
	type seen struct{ method, path, body string }
	var got seen

	c := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got = seen{r.Method, r.URL.EscapedPath(), string(b)}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v1/cats":
			_, _ = io.WriteString(w, `[{"id":"1","name":"Agent Whiskers","breed":"Siamese","years_of_experience":5,"salary":75000,"created_at":"2024-01-15T10:30:00.000Z","updated_at":"2024-01-15T10:30:00.000Z"}]`)
		case r.Method == http.MethodDelete:
			_, _ = io.WriteString(w, `{"message":"Spy cat deleted successfully","id":"a b"}`)
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":"9","name":"Tom","breed":"Tabby","years_of_experience":2,"salary":5000,"created_at":"2024-01-15T10:30:00.000Z","updated_at":"2024-01-15T10:30:00.000Z"}`)
		default:
			_, _ = io.WriteString(w, `{"id":"1","salary":80000}`)
		}
	})
	ctx := context.Background()

	cats, err := c.ListCats(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Agent Whiskers", cats[0].Name)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), cats[0].CreatedAt.UTC())

	created, err := c.CreateCat(ctx, CreateCatRequest{Name: "Tom", Breed: "Tabby", YearsOfExperience: 2, Salary: 5000})
	require.NoError(t, err)
	assert.Equal(t, "9", created.ID)
	assert.JSONEq(t, `{"name":"Tom","breed":"Tabby","years_of_experience":2,"salary":5000}`, got.body)

	updated, err := c.UpdateSalary(ctx, "1", 80000)
	require.NoError(t, err)
	assert.Equal(t, 80000.0, updated.Salary)
	assert.Equal(t, seen{http.MethodPatch, "/v1/cats/1/salary", `{"salary":80000}`}, got)

	res, err := c.DeleteCat(ctx, "a b")
	require.NoError(t, err)
	assert.Equal(t, "Spy cat deleted successfully", res.Message)
	assert.Equal(t, "/v1/cats/a%20b", got.path)
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "validation",
			status: http.StatusBadRequest,
			body:   `{"code":100002,"message":"Validation failed","errors":{"salary":["Salary must be a positive number"]}}`,
			check: func(t *testing.T, err error) {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, []string{"Salary must be a positive number"}, verr.Fields["salary"])
			},
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   `{"code":100201,"message":"Spy cat not found"}`,
			check: func(t *testing.T, err error) {
				assert.True(t, IsNotFound(err))
				assert.Equal(t, "Spy cat not found", Describe(err))
			},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `{"code":100202,"message":"Failed to fetch spy cats"}`,
			check: func(t *testing.T, err error) {
				var ue *UnexpectedError
				require.ErrorAs(t, err, &ue)
				assert.Equal(t, http.StatusInternalServerError, ue.StatusCode)
				assert.Equal(t, "Failed to fetch spy cats", Describe(err))
			},
		},
		{
			name:   "non json error",
			status: http.StatusBadGateway,
			body:   `<html>bad gateway</html>`,
			check: func(t *testing.T, err error) {
				var ue *UnexpectedError
				require.ErrorAs(t, err, &ue)
				assert.Equal(t, "HTTP 502", ue.Message)
			},
		},
		{
			name:   "malformed success body",
			status: http.StatusOK,
			body:   `{"id":`,
			check: func(t *testing.T, err error) {
				var ue *UnexpectedError
				require.ErrorAs(t, err, &ue)
				assert.Equal(t, "Invalid response from HQ", ue.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := c.GetCat(context.Background(), "1")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, nil).ListCats(context.Background())
	var ue *UnexpectedError
	require.ErrorAs(t, err, &ue)
	assert.Zero(t, ue.StatusCode)
	assert.Equal(t, "Failed to reach HQ", Describe(err))
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", nil)
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.Equal(t, 30*time.Second, c.HTTPClient.Timeout)
}
