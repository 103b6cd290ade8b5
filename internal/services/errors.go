package services

import "errors"

// ErrValidation marks failures caused by bad input rather than system
// faults. Handlers translate it to a 400.
var ErrValidation = errors.New("validation failed")
