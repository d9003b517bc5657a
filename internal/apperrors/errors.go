package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized indicates the backend rejected the session credential.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNoSession indicates no session is present in the store.
var ErrNoSession = errors.New("no session present")
