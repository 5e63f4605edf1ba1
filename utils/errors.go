package utils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrConfiguration        = errors.New("server configuration incomplete")
	ErrUnauthorized         = errors.New("authorization required")
	ErrForbidden            = errors.New("invalid credentials")
	ErrConversationNotFound = errors.New("conversation not found")

	ErrTenantRequired = fmt.Errorf("%w: tenant id is required", ErrConfiguration)
)

// StoreError wraps a failed read against the record store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// ConfigError reports a missing server setting by name.
func ConfigError(setting string) error {
	return fmt.Errorf("%w: %s is not set", ErrConfiguration, setting)
}

// StatusFor maps an error from the service layer to the HTTP status sent back.
func StatusFor(err error) int {
	var storeErr *StoreError
	var validationErr *ValidationError
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrConversationNotFound):
		return fiber.StatusNotFound
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrConfiguration), errors.As(err, &storeErr):
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}
