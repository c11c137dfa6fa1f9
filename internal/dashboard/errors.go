package dashboard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrSubmitting is returned when a write is issued for a target that
// already has one in flight.
var ErrSubmitting = errors.New("a request for this agent is already in progress")

// ValidationError means HQ rejected the input. Nothing was written.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "Validation failed"
	}
	if len(e.Fields) == 0 {
		return msg
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, strings.Join(e.Fields[k], ", "))
	}
	return msg + ": " + strings.Join(parts, "; ")
}

// NotFoundError means the target id does not exist on HQ.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message == "" {
		return "Spy cat not found"
	}
	return e.Message
}

// UnexpectedError covers every other failure: transport faults, bad
// payloads and server errors.
type UnexpectedError struct {
	// StatusCode is 0 when no response was received.
	StatusCode int
	Message    string
	Err        error
}

func (e *UnexpectedError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "An unexpected error occurred"
	}
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", msg, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
	default:
		return msg
	}
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err is a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Describe turns err into a message fit for the notification surface.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var (
		verr *ValidationError
		nf   *NotFoundError
		ue   *UnexpectedError
	)
	switch {
	case errors.As(err, &verr), errors.As(err, &nf):
		return err.Error()
	case errors.As(err, &ue):
		if ue.Message != "" {
			return ue.Message
		}
		return "An unexpected error occurred"
	case errors.Is(err, ErrSubmitting):
		return "Please wait for the current request to finish"
	default:
		return err.Error()
	}
}
