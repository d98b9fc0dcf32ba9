package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidName  = errors.New("invalid cookie name")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateCookie(cookie *http.Cookie) error {
	if cookie == nil {
		return fmt.Errorf("%w: cookie", ErrNilParameter)
	}
	if err := validateString(cookie.Name, "cookie.Name"); err != nil {
		return err
	}
	if strings.ContainsAny(cookie.Name, " \t\r\n;=,") {
		return fmt.Errorf("%w: %q", ErrInvalidName, cookie.Name)
	}
	return nil
}
