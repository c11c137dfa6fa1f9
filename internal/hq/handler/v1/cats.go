package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/service"
	"github.com/kiosk404/spycats/internal/hq/service/cats/pkg/errno"
	"github.com/kiosk404/spycats/internal/pkg/core"
	"github.com/kiosk404/spycats/pkg/errorx"
)

// CatHandler handles spy cat REST API endpoints.
type CatHandler struct {
	svc service.CatService
}

// NewCatHandler creates a new CatHandler.
func NewCatHandler(svc service.CatService) *CatHandler {
	return &CatHandler{svc: svc}
}

// List handles GET /v1/cats.
func (h *CatHandler) List(c *gin.Context) {
	cats, err := h.svc.ListCats(c.Request.Context())
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrCatList, "list cats"), nil)
		return
	}

	resp := make([]CatResponse, 0, len(cats))
	for _, cat := range cats {
		resp = append(resp, toCatResponse(cat))
	}
	core.WriteResponse(c, nil, resp)
}

// Get handles GET /v1/cats/:id.
func (h *CatHandler) Get(c *gin.Context) {
	id := c.Param("id")
	cat, err := h.svc.GetCat(c.Request.Context(), id)
	if err != nil {
		core.WriteResponse(c, wrapCatErr(err, ErrCatList, "get cat %q", id), nil)
		return
	}
	core.WriteResponse(c, nil, toCatResponse(cat))
}

// Create handles POST /v1/cats.
func (h *CatHandler) Create(c *gin.Context) {
	var req CreateCatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponse(c, bindErr(err, "bind cat request"), nil)
		return
	}

	cat, err := h.svc.CreateCat(c.Request.Context(), req.toInput())
	if err != nil {
		core.WriteResponse(c, wrapCatErr(err, ErrCatCreate, "create cat"), nil)
		return
	}
	core.WriteStatus(c, http.StatusCreated, toCatResponse(cat))
}

// UpdateSalary handles PATCH /v1/cats/:id/salary.
func (h *CatHandler) UpdateSalary(c *gin.Context) {
	id := c.Param("id")

	var req UpdateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponse(c, bindErr(err, "bind salary request"), nil)
		return
	}

	cat, err := h.svc.UpdateSalary(c.Request.Context(), id, req.toInput())
	if err != nil {
		core.WriteResponse(c, wrapCatErr(err, ErrCatUpdate, "update salary of cat %q", id), nil)
		return
	}
	core.WriteResponse(c, nil, toCatResponse(cat))
}

// Delete handles DELETE /v1/cats/:id.
func (h *CatHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeleteCat(c.Request.Context(), id); err != nil {
		core.WriteResponse(c, wrapCatErr(err, ErrCatDelete, "delete cat %q", id), nil)
		return
	}
	core.WriteResponse(c, nil, DeleteCatResponse{Message: "Spy cat deleted successfully", ID: id})
}

// wrapCatErr maps domain errors to their codes and everything else to fallback.
func wrapCatErr(err error, fallback int, format string, args ...any) error {
	switch {
	case errors.Is(err, errno.ErrCatNotFound):
		return errorx.WrapC(err, ErrCatNotFound, format, args...)
	case errno.IsValidation(err):
		return errorx.WrapC(err, ErrValidation, format, args...)
	default:
		return errorx.WrapC(err, fallback, format, args...)
	}
}

// bindErr wraps a body that is not a JSON object. Wrongly typed fields
// never get here; they are left to validation.
func bindErr(err error, msg string) error {
	if errors.Is(err, io.EOF) {
		err = errors.New("empty request body")
	}
	return errorx.WrapC(err, ErrBind, "%s", msg)
}
