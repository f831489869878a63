package sheetsclient

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// Kind classifies a Sheets API failure
type Kind string

const (
	KindPermission  Kind = "permission"
	KindNotFound    Kind = "not_found"
	KindTransport   Kind = "transport"
	KindCredentials Kind = "credentials"
)

// Error is returned by every Client operation that fails.
// Its message is the underlying error's message; Op names the failed call for logging.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsPermission reports whether err is an authorization failure from the Sheets API
func IsPermission(err error) bool {
	return KindOf(err) == KindPermission
}

// KindOf returns the Kind of a sheetsclient error, or "" for any other error
func KindOf(err error) Kind {
	var sheetsErr *Error
	if errors.As(err, &sheetsErr) {
		return sheetsErr.Kind
	}
	return ""
}

// classify tags a raw API error. HTTP status decides where available; otherwise a message
// mentioning "permission" is still treated as an authorization failure.
func classify(op string, err error) error {
	kind := KindTransport

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			kind = KindPermission
		case http.StatusNotFound:
			kind = KindNotFound
		}
	}

	if kind == KindTransport && strings.Contains(strings.ToLower(err.Error()), "permission") {
		kind = KindPermission
	}

	return &Error{Kind: kind, Op: op, Err: err}
}
