// SPDX-License-Identifier: GPL-3.0-only

// Package apperrors defines the closed set of failure kinds the API can
// report and their one-and-only mapping to HTTP status codes. Handlers
// build these instead of picking status codes ad hoc.
package apperrors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Kind int

const (
	ValidationFailed Kind = iota
	InvalidEmail
	DuplicateEntry
	RateLimited
	LinkGenerationFailed
	EmailQuotaExceeded
	EmailSendFailed
	Unauthorized
	NotFound
	Internal
)

var kindStatus = map[Kind]int{
	ValidationFailed:     http.StatusBadRequest,
	InvalidEmail:         http.StatusUnprocessableEntity,
	DuplicateEntry:       http.StatusConflict,
	RateLimited:          http.StatusTooManyRequests,
	LinkGenerationFailed: http.StatusServiceUnavailable,
	EmailQuotaExceeded:   http.StatusNotImplemented,
	EmailSendFailed:      http.StatusBadGateway,
	Unauthorized:         http.StatusUnauthorized,
	NotFound:             http.StatusNotFound,
	Internal:             http.StatusInternalServerError,
}

var kindMessage = map[Kind]string{
	ValidationFailed:     "Request validation failed",
	InvalidEmail:         "Please provide a valid email address",
	DuplicateEntry:       "This email is already on the waitlist",
	RateLimited:          "Too many requests, please try again in a couple of minutes",
	LinkGenerationFailed: "You're on the waitlist, but we couldn't generate your dashboard link. Please try again later.",
	EmailQuotaExceeded:   "You're on the waitlist, but our email service is at capacity. Your spot is saved.",
	EmailSendFailed:      "You're on the waitlist, but we couldn't send your confirmation email. Your spot is saved.",
	Unauthorized:         "Invalid or expired authentication token",
	NotFound:             "Resource not found",
	Internal:             "Something went wrong, please try again later",
}

// Error carries a failure kind plus an optional client-facing message
// override. The wrapped cause is for server-side logs only and never
// reaches the client.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return kindMessage[e.Kind]
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// HTTP converts the error into the echo error the router returns. Status
// and message come from the closed mapping above.
func (e *Error) HTTP() *echo.HTTPError {
	status, ok := kindStatus[e.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	return &echo.HTTPError{
		Code:    status,
		Message: e.Error(),
	}
}
