package query

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable is wrapped around any failure to read a collection
// from its record source.
var ErrSourceUnavailable = errors.New("record source unavailable")

// InvalidParameterError reports a recognized request parameter whose value
// could not be coerced to the parameter's type.
type InvalidParameterError struct {
	Key    string
	Value  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%q: %s", e.Key, e.Value, e.Reason)
}

// IsInvalidParameter reports whether err carries an InvalidParameterError.
func IsInvalidParameter(err error) bool {
	var ipe *InvalidParameterError
	return errors.As(err, &ipe)
}
