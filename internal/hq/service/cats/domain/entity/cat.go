package entity

import (
	"strings"
	"time"

	"github.com/kiosk404/spycats/internal/hq/service/cats/pkg/errno"
)

// Field names as they appear on the wire and in validation errors.
const (
	FieldName              = "name"
	FieldBreed             = "breed"
	FieldYearsOfExperience = "years_of_experience"
	FieldSalary            = "salary"
)

// Cat is an agent record of the Spy Cats Agency.
//
// ID, Name, Breed, YearsOfExperience and CreatedAt never change after
// creation. Salary and UpdatedAt change together on a salary update.
type Cat struct {
	// ID is assigned by the store and unique across the collection.
	ID string `json:"id" bson:"_id"`

	Name  string `json:"name" bson:"name"`
	Breed string `json:"breed" bson:"breed"`

	// YearsOfExperience is always >= 0 and may be fractional.
	YearsOfExperience float64 `json:"years_of_experience" bson:"years_of_experience"`

	// Salary is always > 0.
	Salary float64 `json:"salary" bson:"salary"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CreateCatInput is the unvalidated input of a creation request.
// Pointer fields distinguish "missing" from zero.
type CreateCatInput struct {
	Name              string
	Breed             string
	YearsOfExperience *float64
	Salary            *float64
}

// Normalize trims the free-text fields.
func (in *CreateCatInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Breed = strings.TrimSpace(in.Breed)
}

// Validate checks every field and reports all problems at once.
func (in CreateCatInput) Validate() error {
	verr := errno.NewValidationError()

	if strings.TrimSpace(in.Name) == "" {
		verr.Add(FieldName, "Name is required")
	}
	if strings.TrimSpace(in.Breed) == "" {
		verr.Add(FieldBreed, "Breed is required")
	}
	// NaN fails the >= 0 comparison.
	if in.YearsOfExperience == nil || !(*in.YearsOfExperience >= 0) {
		verr.Add(FieldYearsOfExperience, "Years of experience must be a non-negative number")
	}
	validateSalary(verr, in.Salary)

	return verr.OrNil()
}

// SalaryInput is the unvalidated input of a salary update.
type SalaryInput struct {
	Salary *float64
}

// Validate checks the new salary.
func (in SalaryInput) Validate() error {
	verr := errno.NewValidationError()
	validateSalary(verr, in.Salary)
	return verr.OrNil()
}

func validateSalary(verr *errno.ValidationError, salary *float64) {
	// NaN fails the > 0 comparison as well.
	if salary == nil || !(*salary > 0) {
		verr.Add(FieldSalary, "Salary must be a positive number")
	}
}
