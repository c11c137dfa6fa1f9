package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/entity"
	"github.com/kiosk404/spycats/internal/hq/service/cats/pkg/errno"
)

// CatStore implements repo.CatRepository with SQLite.
type CatStore struct {
	db *sql.DB
}

// NewCatStore creates a new SQLite cat store.
func NewCatStore(db *sql.DB) *CatStore {
	return &CatStore{db: db}
}

// Create persists a new cat.
func (s *CatStore) Create(ctx context.Context, cat *entity.Cat) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cats (id, name, breed, years_of_experience, salary, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		cat.ID,
		cat.Name,
		cat.Breed,
		cat.YearsOfExperience,
		cat.Salary,
		formatTime(cat.CreatedAt),
		formatTime(cat.UpdatedAt),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return errno.ErrCatExists
		}
		return fmt.Errorf("failed to create cat: %w", err)
	}
	return nil
}

// Get retrieves a cat by its ID.
func (s *CatStore) Get(ctx context.Context, id string) (*entity.Cat, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, breed, years_of_experience, salary, created_at, updated_at
		 FROM cats WHERE id = ?`, id)

	cat, err := scanCat(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errno.ErrCatNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cat: %w", err)
	}
	return cat, nil
}

// Update overwrites the mutable columns of an existing cat.
func (s *CatStore) Update(ctx context.Context, cat *entity.Cat) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE cats SET name = ?, breed = ?, years_of_experience = ?, salary = ?, updated_at = ?
		 WHERE id = ?`,
		cat.Name,
		cat.Breed,
		cat.YearsOfExperience,
		cat.Salary,
		formatTime(cat.UpdatedAt),
		cat.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update cat: %w", err)
	}
	return mustAffect(res)
}

// Delete removes a cat by ID.
func (s *CatStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cats WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete cat: %w", err)
	}
	return mustAffect(res)
}

// List returns all cats in insertion order.
func (s *CatStore) List(ctx context.Context) ([]*entity.Cat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, breed, years_of_experience, salary, created_at, updated_at
		 FROM cats ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cats: %w", err)
	}
	defer rows.Close()

	cats := []*entity.Cat{}
	for rows.Next() {
		cat, err := scanCat(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cat: %w", err)
		}
		cats = append(cats, cat)
	}
	return cats, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCat(sc scanner) (*entity.Cat, error) {
	var (
		cat                  entity.Cat
		createdAt, updatedAt string
	)
	err := sc.Scan(&cat.ID, &cat.Name, &cat.Breed, &cat.YearsOfExperience, &cat.Salary, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if cat.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("bad created_at %q: %w", createdAt, err)
	}
	if cat.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("bad updated_at %q: %w", updatedAt, err)
	}
	return &cat, nil
}

func mustAffect(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return errno.ErrCatNotFound
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
