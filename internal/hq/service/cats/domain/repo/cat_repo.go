package repo

import (
	"context"

	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/entity"
)

// CatRepository defines the persistence interface for Cat entities.
//
// Implementations return errno.ErrCatNotFound for absent ids and list
// records in insertion order.
type CatRepository interface {
	// Create appends a new cat. It fails with errno.ErrCatExists on a duplicate id.
	Create(ctx context.Context, cat *entity.Cat) error
	// Get retrieves a cat by ID.
	Get(ctx context.Context, id string) (*entity.Cat, error)
	// Update replaces an existing cat in place, keeping its position.
	Update(ctx context.Context, cat *entity.Cat) error
	// Delete removes a cat by ID.
	Delete(ctx context.Context, id string) error
	// List returns all cats in insertion order.
	List(ctx context.Context) ([]*entity.Cat, error)
}
