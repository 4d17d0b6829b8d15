package app

import (
	"errors"
)

// ErrValidation marks errors caused by bad caller input.
var ErrValidation = errors.New("validation failed")

// ErrForbidden is returned when a principal acts outside its scope.
var ErrForbidden = errors.New("operation not permitted for this principal")
