package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist under the ownership-scoped filter. A resource owned
// by a different user is indistinguishable from one that does not exist.
// Handlers should map this to HTTP 404 — never 403.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
