package v1

import (
	stdjson "encoding/json"
	"time"

	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/entity"
	"github.com/kiosk404/spycats/pkg/utils/json"
)

// --- Cat API Types ---

// CreateCatRequest is the body of POST /v1/cats. Fields are kept raw and
// decoded one by one, so a value of the wrong type only invalidates its
// own field and the rest of the body is still validated.
type CreateCatRequest struct {
	Name              stdjson.RawMessage `json:"name"`
	Breed             stdjson.RawMessage `json:"breed"`
	YearsOfExperience stdjson.RawMessage `json:"years_of_experience"`
	Salary            stdjson.RawMessage `json:"salary"`
}

// UpdateSalaryRequest is the body of PATCH /v1/cats/:id/salary.
type UpdateSalaryRequest struct {
	Salary stdjson.RawMessage `json:"salary"`
}

// CatResponse is the wire form of an agent record.
type CatResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Breed             string  `json:"breed"`
	YearsOfExperience float64 `json:"years_of_experience"`
	Salary            float64 `json:"salary"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// DeleteCatResponse is returned by DELETE /v1/cats/:id.
type DeleteCatResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// FormatTime renders t as RFC3339 in UTC with millisecond precision.
func FormatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func toCatResponse(c *entity.Cat) CatResponse {
	return CatResponse{
		ID:                c.ID,
		Name:              c.Name,
		Breed:             c.Breed,
		YearsOfExperience: c.YearsOfExperience,
		Salary:            c.Salary,
		CreatedAt:         FormatTime(c.CreatedAt),
		UpdatedAt:         FormatTime(c.UpdatedAt),
	}
}

// toInput decodes each field on its own. Missing, null and wrongly typed
// values all come out as their zero value, which validation then reports.
func (r CreateCatRequest) toInput() entity.CreateCatInput {
	return entity.CreateCatInput{
		Name:              rawString(r.Name),
		Breed:             rawString(r.Breed),
		YearsOfExperience: rawNumber(r.YearsOfExperience),
		Salary:            rawNumber(r.Salary),
	}
}

func (r UpdateSalaryRequest) toInput() entity.SalaryInput {
	return entity.SalaryInput{Salary: rawNumber(r.Salary)}
}

func rawString(raw stdjson.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func rawNumber(raw stdjson.RawMessage) *float64 {
	var f *float64
	if len(raw) == 0 || json.Unmarshal(raw, &f) != nil {
		return nil
	}
	return f
}
