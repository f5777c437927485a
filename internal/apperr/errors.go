package apperr

import (
	"errors"
	"fmt"
)

// Error categories. Services wrap these with %w so handlers can map them to
// HTTP statuses without parsing messages.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrBackend            = errors.New("backend failure")
)

// Workflow errors. Each wraps its category so errors.Is matches both the
// specific error and the category.
var (
	ErrUserNotFound      = fmt.Errorf("%w: user", ErrNotFound)
	ErrUserInactive      = fmt.Errorf("%w: user account is inactive", ErrForbidden)
	ErrProductNotFound   = fmt.Errorf("%w: product", ErrNotFound)
	ErrOrderNotFound     = fmt.Errorf("%w: order", ErrNotFound)
	ErrSupplierNotFound  = fmt.Errorf("%w: supplier", ErrNotFound)
	ErrOrderAlreadyFinal = fmt.Errorf("%w: order is already in a terminal status", ErrConflict)
	ErrInsufficientStock = fmt.Errorf("%w: insufficient stock remaining", ErrConflict)
	ErrSupplierInUse     = fmt.Errorf("%w: supplier has products associated with it", ErrConflict)
	ErrDuplicateUser     = fmt.Errorf("%w: username or email already exists", ErrConflict)
)
