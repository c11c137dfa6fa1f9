package core

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/spycats/pkg/errorx"
	"github.com/kiosk404/spycats/pkg/utils/json"
)

const (
	codeTestNotFound   = 910001
	codeTestValidation = 910002
)

type coder struct {
	code int
	http int
	msg  string
}

func (c coder) Code() int         { return c.code }
func (c coder) HTTPStatus() int   { return c.http }
func (c coder) String() string    { return c.msg }
func (c coder) Reference() string { return "" }

type fieldErr map[string][]string

func (f fieldErr) Error() string                        { return "invalid" }
func (f fieldErr) FieldViolations() map[string][]string { return f }

func init() {
	gin.SetMode(gin.TestMode)
	errorx.MustRegister(coder{codeTestNotFound, http.StatusNotFound, "Spy cat not found"})
	errorx.MustRegister(coder{codeTestValidation, http.StatusBadRequest, "Validation failed"})
}

func serve(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, ErrResponse) {
	t.Helper()

	r := gin.New()
	r.GET("/", h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body ErrResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestWriteResponseSuccess(t *testing.T) {
	w, _ := serve(t, func(c *gin.Context) {
		WriteResponse(c, nil, map[string]string{"status": "ok"})
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestWriteResponseCodedError(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		WriteResponse(c, errorx.WrapC(errors.New("no such id"), codeTestNotFound, "get cat"), nil)
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, codeTestNotFound, body.Code)
	assert.Equal(t, "Spy cat not found", body.Message)
	assert.Empty(t, body.Errors)
}

func TestWriteResponseFieldErrors(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		err := fieldErr{"salary": {"Salary must be a positive number"}}
		WriteResponse(c, errorx.WrapC(err, codeTestValidation, "create cat"), nil)
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Equal(t, []string{"Salary must be a positive number"}, body.Errors["salary"])
}

func TestWriteResponseUncodedError(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		WriteResponse(c, errors.New("disk on fire"), nil)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, errorx.UnknownCode, body.Code)
	assert.NotContains(t, w.Body.String(), "disk on fire")
}

func TestWriteStatus(t *testing.T) {
	r := gin.New()
	r.POST("/", func(c *gin.Context) { WriteStatus(c, http.StatusCreated, map[string]string{"id": "1"}) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"1"}`, w.Body.String())
}
