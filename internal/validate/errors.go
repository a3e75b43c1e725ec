// errors.go defines sentinel errors for validation failures. Detailed
// messages come from wrapping these with fmt.Errorf in the validation
// functions.

package validate

import "errors"

var (
	ErrInvalidName = errors.New("invalid collection name")
	ErrInvalidTerm = errors.New("invalid term")
	ErrTooLong     = errors.New("value too long")
)
