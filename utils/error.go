package utils

import (
	"errors"
	"fmt"
	"net/http"

	"karigar/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies a failure for the HTTP layer.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindNotFound          ErrorKind = "not_found"
	KindUnauthenticated   ErrorKind = "unauthenticated"
	KindAuthorization     ErrorKind = "authorization"
	KindInvalidState      ErrorKind = "invalid_state"
	KindInvalidTransition ErrorKind = "invalid_transition"
	KindConflict          ErrorKind = "conflict"
	KindInternal          ErrorKind = "internal"
)

// AppError is the error type returned by services.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the kind onto a response code.
func (e *AppError) HTTPStatus() int {
	return StatusForKind(e.Kind)
}

func StatusForKind(kind ErrorKind) int {
	switch kind {
	case KindValidation, KindInvalidState, KindInvalidTransition, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func NewValidationError(format string, args ...any) *AppError {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(what string) *AppError {
	return &AppError{Kind: KindNotFound, Message: what + " not found"}
}

func NewUnauthenticatedError(message string) *AppError {
	return &AppError{Kind: KindUnauthenticated, Message: message}
}

func NewAuthorizationError(message string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: message}
}

func NewInvalidStateError(message string) *AppError {
	return &AppError{Kind: KindInvalidState, Message: message}
}

func NewInvalidTransitionError(from, to string) *AppError {
	return &AppError{Kind: KindInvalidTransition, Message: fmt.Sprintf("cannot change status from %s to %s", from, to)}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// NewInternalError wraps an unexpected cause. The message shown to clients stays generic.
func NewInternalError(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal for anything that is not an AppError.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// RespondError writes err using the standard failure envelope. The raw cause is only exposed in development.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternalError("Internal server error", err)
	}

	status := appErr.HTTPStatus()
	resp := ErrorResponse{Success: false, Message: appErr.Message}
	if status == http.StatusInternalServerError {
		GetLogger().Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.String("message", appErr.Message),
			zap.Error(appErr.Err),
		)
	}
	if config.IsDevelopment() && appErr.Err != nil {
		resp.Error = appErr.Err.Error()
	}
	c.AbortWithStatusJSON(status, resp)
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Message: message})
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))
				JSONError(c, http.StatusInternalServerError, "Internal server error")
			}
		}()
		c.Next()
	}
}
