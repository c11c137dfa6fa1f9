package errorx

import (
	"fmt"
	"net/http"
	"sync"
)

// Coder describes a registered error code.
type Coder interface {
	// Code returns the integer error code.
	Code() int

	// HTTPStatus returns the HTTP status that should be used for the code.
	HTTPStatus() int

	// String returns the external (user facing) message.
	String() string

	// Reference returns a documentation link for the code, if any.
	Reference() string
}

// UnknownCode is used for errors without a registered code.
const UnknownCode = 1

type defaultCoder struct {
	code int
	http int
	msg  string
	ref  string
}

func (c defaultCoder) Code() int         { return c.code }
func (c defaultCoder) HTTPStatus() int   { return c.http }
func (c defaultCoder) String() string    { return c.msg }
func (c defaultCoder) Reference() string { return c.ref }

var unknownCoder = defaultCoder{
	code: UnknownCode,
	http: http.StatusInternalServerError,
	msg:  "An internal server error occurred",
}

var (
	codeMux sync.RWMutex
	codes   = map[int]Coder{}
)

// Register registers a coder, replacing any coder with the same code.
func Register(coder Coder) {
	if coder.Code() == UnknownCode {
		panic(fmt.Sprintf("code %d is reserved as the unknown error code", UnknownCode))
	}

	codeMux.Lock()
	defer codeMux.Unlock()
	codes[coder.Code()] = coder
}

// MustRegister registers a coder and panics if the code already exists.
func MustRegister(coder Coder) {
	if coder.Code() == UnknownCode {
		panic(fmt.Sprintf("code %d is reserved as the unknown error code", UnknownCode))
	}

	codeMux.Lock()
	defer codeMux.Unlock()
	if _, ok := codes[coder.Code()]; ok {
		panic(fmt.Sprintf("code %d already exist", coder.Code()))
	}
	codes[coder.Code()] = coder
}

// ParseCoder resolves the coder of err. Errors without a registered code
// resolve to the unknown coder.
func ParseCoder(err error) Coder {
	if err == nil {
		return nil
	}

	if v, ok := err.(*withCode); ok {
		codeMux.RLock()
		defer codeMux.RUnlock()
		if coder, ok := codes[v.code]; ok {
			return coder
		}
	}

	return unknownCoder
}

// IsCode reports whether any error in err's chain carries the given code.
func IsCode(err error, code int) bool {
	for err != nil {
		if v, ok := err.(*withCode); ok {
			if v.code == code {
				return true
			}
			err = v.cause
			continue
		}
		return false
	}
	return false
}
