package intelitalk

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeInvalidCredentials = "INVALID_CREDENTIALS"
	textCodeNotAuthenticated   = "NOT_AUTHENTICATED"
	textCodeUpstreamError      = "UPSTREAM_ERROR"
	textCodeUpstreamUnreached  = "UPSTREAM_UNREACHABLE"
)

// ErrInvalidCredentials is returned when the API rejects a login attempt.
var ErrInvalidCredentials = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithTextCode(textCodeInvalidCredentials).
	WithCode(goerrors.CodeUnauthorized)

// ErrNotAuthenticated is returned when an operation that needs an actor
// runs without one. No network call is attempted in that case.
var ErrNotAuthenticated = goerrors.New("no authenticated user", goerrors.CategoryAuth).
	WithTextCode(textCodeNotAuthenticated).
	WithCode(goerrors.CodeUnauthorized)

// NewServerError marks a 5xx or malformed response from the API.
func NewServerError(msg string) *goerrors.Error {
	if msg == "" {
		msg = "unexpected response from the InteliTalk API"
	}
	return goerrors.New(msg, goerrors.CategoryInternal).
		WithTextCode(textCodeUpstreamError).
		WithCode(goerrors.CodeInternal)
}

// WrapNetworkError marks a request that never got a response, which is a
// distinct failure from a well formed rejection.
func WrapNetworkError(err error) *goerrors.Error {
	return goerrors.Wrap(err, goerrors.CategoryOperation, "no response from the InteliTalk API").
		WithTextCode(textCodeUpstreamUnreached)
}

// NewRejectionError carries the human readable message the API sent along
// with a non-2xx status, classified by that status.
func NewRejectionError(status int, message string) *goerrors.Error {
	if status == 401 || status == 403 {
		if message == "" {
			return ErrInvalidCredentials
		}
		return goerrors.New(message, goerrors.CategoryAuth).
			WithTextCode(textCodeInvalidCredentials).
			WithCode(goerrors.CodeUnauthorized)
	}
	if status >= 500 {
		return NewServerError(message)
	}
	if message == "" {
		message = "request rejected by the InteliTalk API"
	}
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(goerrors.CodeBadRequest)
}

func hasTextCode(err error, code string) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == code
}

// IsInvalidCredentials checks for a server classified credential rejection
func IsInvalidCredentials(err error) bool {
	return hasTextCode(err, textCodeInvalidCredentials)
}

// IsNotAuthenticated checks for the missing-actor failure
func IsNotAuthenticated(err error) bool {
	return hasTextCode(err, textCodeNotAuthenticated)
}

// IsNetworkError checks whether the request never got a response
func IsNetworkError(err error) bool {
	return hasTextCode(err, textCodeUpstreamUnreached)
}

// IsServerError checks for a 5xx or malformed upstream response
func IsServerError(err error) bool {
	return hasTextCode(err, textCodeUpstreamError)
}

// UserMessage extracts a message suitable for direct display.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.Message != "" {
		return richErr.Message
	}
	return err.Error()
}
