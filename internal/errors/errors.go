package errors

import (
	"errors"
	"fmt"
)

// Common error types for the token broker
var (
	// Authorization flow errors
	ErrStateNotFound  = errors.New("state not found")
	ErrInvalidState   = errors.New("invalid state")
	ErrCallbackError  = errors.New("authorization callback returned an error")
	ErrExchangeFailed = errors.New("token exchange failed")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidSession  = errors.New("invalid session id")

	// Token errors
	ErrRefreshFailed  = errors.New("token refresh failed")
	ErrNoRefreshToken = errors.New("no refresh token stored")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
