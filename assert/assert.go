// Package assert builds tagged precondition failures. Each failure carries a
// caller-configured tag as both a message prefix and a machine-readable text
// code, so domain-specific checks stay attributable when errors cross
// package boundaries.
package assert

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// Failf constructs a tagged assertion failure. The tag prefixes the message
// and doubles as the error's text code.
func Failf(tag, format string, args ...any) error {
	message := fmt.Sprintf(format, args...)
	return goerrors.New(fmt.Sprintf("%s: %s", tag, message), goerrors.CategoryValidation).
		WithTextCode(tag)
}

// Ensure returns nil when cond holds and a tagged failure otherwise.
// Assertion failures are always hard errors; there is no soft variant.
func Ensure(cond bool, tag, format string, args ...any) error {
	if cond {
		return nil
	}
	return Failf(tag, format, args...)
}

// Is reports whether err is an assertion failure carrying the given tag.
func Is(err error, tag string) bool {
	if err == nil {
		return false
	}
	var tagged *goerrors.Error
	if !errors.As(err, &tagged) {
		return false
	}
	return tagged.TextCode == tag
}
