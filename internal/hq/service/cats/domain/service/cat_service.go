package service

import (
	"context"

	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/entity"
)

// CatService is the Resource Store contract for agent records.
//
// Every mutation is validated before it touches the repository and fails
// with *errno.ValidationError listing every offending field. Unknown ids
// fail with errno.ErrCatNotFound.
type CatService interface {
	// ListCats returns all records in insertion order.
	ListCats(ctx context.Context) ([]*entity.Cat, error)
	// GetCat returns one record.
	GetCat(ctx context.Context, id string) (*entity.Cat, error)
	// CreateCat validates in, assigns an id and timestamps, and appends the record.
	CreateCat(ctx context.Context, in entity.CreateCatInput) (*entity.Cat, error)
	// UpdateSalary replaces only the salary and updated_at of a record.
	UpdateSalary(ctx context.Context, id string, in entity.SalaryInput) (*entity.Cat, error)
	// DeleteCat removes a record.
	DeleteCat(ctx context.Context, id string) error
}
