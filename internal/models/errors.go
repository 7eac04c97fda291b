package models

import "errors"

// ErrInvalidValue is wrapped by every Parse* function when the input is not
// one of the enumerated values.
var ErrInvalidValue = errors.New("invalid value")
