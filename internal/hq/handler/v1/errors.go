package v1

import (
	"net/http"

	"github.com/kiosk404/spycats/pkg/errorx"
)

// HQ handler error codes.
// Code format: 1XXYYZ
//   - 1:  module prefix (hq handler)
//   - XX: resource group (00=common, 02=cat)
//   - YY: sequential error number
//   - Z:  reserved (0)

const (
	// Common request errors (100xxx).
	ErrBind       = 100001
	ErrValidation = 100002

	// Cat errors (1002xx).
	ErrCatNotFound = 100201
	ErrCatList     = 100202
	ErrCatCreate   = 100203
	ErrCatUpdate   = 100204
	ErrCatDelete   = 100205
)

func init() {
	// Common.
	errorx.MustRegister(newCoder(ErrBind, http.StatusBadRequest, "Request body binding failed"))
	errorx.MustRegister(newCoder(ErrValidation, http.StatusBadRequest, "Validation failed"))

	// Cat.
	errorx.MustRegister(newCoder(ErrCatNotFound, http.StatusNotFound, "Spy cat not found"))
	errorx.MustRegister(newCoder(ErrCatList, http.StatusInternalServerError, "Failed to fetch spy cats"))
	errorx.MustRegister(newCoder(ErrCatCreate, http.StatusInternalServerError, "Failed to create spy cat"))
	errorx.MustRegister(newCoder(ErrCatUpdate, http.StatusInternalServerError, "Failed to update spy cat"))
	errorx.MustRegister(newCoder(ErrCatDelete, http.StatusInternalServerError, "Failed to delete spy cat"))
}

type coder struct {
	code int
	http int
	msg  string
}

func newCoder(code, httpStatus int, msg string) *coder {
	return &coder{code: code, http: httpStatus, msg: msg}
}

func (c *coder) Code() int         { return c.code }
func (c *coder) HTTPStatus() int   { return c.http }
func (c *coder) String() string    { return c.msg }
func (c *coder) Reference() string { return "" }
