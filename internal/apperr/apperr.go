// Package apperr holds the error kinds shared by every aggregate. Domain
// packages wrap one of these so the HTTP layer can pick a status code with
// errors.Is without knowing every sentinel.
package apperr

import (
	"errors"
	"strings"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid input")
	ErrConflict = errors.New("conflict")
)

// Message returns the text shown to the caller for invalid or conflicting
// input: everything after the kind, so "add item: invalid input: size is
// required" becomes "size is required".
func Message(err error) string {
	msg := err.Error()
	for _, kind := range []error{ErrInvalid, ErrConflict, ErrNotFound} {
		marker := kind.Error() + ": "
		if i := strings.Index(msg, marker); i >= 0 && len(msg) > i+len(marker) {
			return msg[i+len(marker):]
		}
	}
	return msg
}
