// Package validate provides input validation for glossd's domain types.
//
// Validation is minimal: we reject empty identifiers, null bytes and
// excessive sizes, and leave formatting to the user. Each function returns
// the normalised value or an error wrapping one of the sentinels in
// errors.go, so callers can use errors.Is:
//
//	if errors.Is(err, validate.ErrInvalidTerm) {
//	    // handle invalid term
//	}
package validate
