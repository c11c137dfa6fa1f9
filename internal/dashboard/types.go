// Package dashboard is the client side of the agency: an HTTP client for
// the HQ API, a local cache reconciled with the server on every write, and
// read-only views derived from that cache.
package dashboard

import (
	"time"
)

// Cat is an agent record as served by HQ.
type Cat struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Breed             string    `json:"breed"`
	YearsOfExperience float64   `json:"years_of_experience"`
	Salary            float64   `json:"salary"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CreateCatRequest is the body of a creation request.
type CreateCatRequest struct {
	Name              string  `json:"name"`
	Breed             string  `json:"breed"`
	YearsOfExperience float64 `json:"years_of_experience"`
	Salary            float64 `json:"salary"`
}

type updateSalaryRequest struct {
	Salary float64 `json:"salary"`
}

// DeleteResult acknowledges a deletion.
type DeleteResult struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// errorBody is the error envelope written by HQ.
type errorBody struct {
	Code      int                 `json:"code"`
	Message   string              `json:"message"`
	Reference string              `json:"reference,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
}
