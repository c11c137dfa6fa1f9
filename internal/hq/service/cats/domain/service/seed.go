package service

import (
	"context"
	"time"

	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/entity"
	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/repo"
)

// SampleRoster is the agency's starting lineup, keyed by fixed ids.
var SampleRoster = []entity.Cat{
	{ID: "1", Name: "Agent Whiskers", Breed: "Siamese", YearsOfExperience: 5, Salary: 75000},
	{ID: "2", Name: "Shadow Paws", Breed: "Maine Coon", YearsOfExperience: 8, Salary: 95000},
	{ID: "3", Name: "Midnight", Breed: "British Shorthair", YearsOfExperience: 3, Salary: 60000},
}

// SeedRoster loads SampleRoster into catRepo when it holds no records.
// It returns the number of records written.
func SeedRoster(ctx context.Context, catRepo repo.CatRepository, now time.Time) (int, error) {
	existing, err := catRepo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	now = now.UTC().Truncate(timestampPrecision)
	for i := range SampleRoster {
		cat := SampleRoster[i]
		cat.CreatedAt = now
		cat.UpdatedAt = now
		if err := catRepo.Create(ctx, &cat); err != nil {
			return i, err
		}
	}
	return len(SampleRoster), nil
}
