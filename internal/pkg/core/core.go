// Package core writes API responses. Errors are rendered from their
// registered errorx code; success payloads are written as JSON.
package core

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kiosk404/spycats/pkg/errorx"
	"github.com/kiosk404/spycats/pkg/logger"
)

// ErrResponse defines the return messages when an error occurred.
// Reference will be omitted if it does not exist.
type ErrResponse struct {
	// Code defines the business error code.
	Code int `json:"code"`

	// Message contains the detail of this message.
	// This message is suitable to be exposed to external.
	Message string `json:"message"`

	// Reference returns the reference document which maybe useful to solve this error.
	Reference string `json:"reference,omitempty"`

	// Errors holds per-field validation messages.
	Errors map[string][]string `json:"errors,omitempty"`
}

// WriteResponse writes an error or the response data into the http response
// body. It uses errorx.ParseCoder to parse any error into errorx.Coder.
func WriteResponse(c *gin.Context, err error, data any) {
	if err != nil {
		coder := errorx.ParseCoder(err)
		if coder.HTTPStatus() >= http.StatusInternalServerError {
			logger.Error("[API] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		} else {
			logger.Debug("[API] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		c.JSON(coder.HTTPStatus(), ErrResponse{
			Code:      coder.Code(),
			Message:   coder.String(),
			Reference: coder.Reference(),
			Errors:    errorx.FieldViolations(err),
		})

		return
	}

	c.JSON(http.StatusOK, data)
}

// WriteStatus writes data with an explicit success status such as 201.
func WriteStatus(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
