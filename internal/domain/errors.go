package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a uniqueness constraint is violated
// (duplicate license plate, license number, or email).
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrInvalidTransition is returned when a lifecycle operation is not legal
// from the entity's current state (e.g. dispatching a non-DRAFT trip, or
// completing an already-completed maintenance log).
// Handlers should map this to HTTP 400.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrPreconditionFailed is returned when the state machine transition itself
// would be legal but a domain rule blocks it (vehicle not available, driver
// not on duty, expired license, cargo over capacity, odometer going backward).
// Handlers should map this to HTTP 400.
var ErrPreconditionFailed = errors.New("precondition failed")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, non-positive cost).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized is returned by the auth service for unknown or mismatched
// credentials. Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")
