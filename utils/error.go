package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies caller-recoverable failures.
type ErrorKind string

const (
	KindInvalidInput        ErrorKind = "InvalidInput"
	KindNotFound            ErrorKind = "NotFound"
	KindAvailabilityMissing ErrorKind = "AvailabilityMissing"
	KindDoctorUnavailable   ErrorKind = "DoctorUnavailable"
	KindOutsideWorkingHours ErrorKind = "OutsideWorkingHours"
	KindSlotConflict        ErrorKind = "SlotConflict"
	KindInvalidStatus       ErrorKind = "InvalidStatus"
	KindForbidden           ErrorKind = "Forbidden"
	KindUnauthorized        ErrorKind = "Unauthorized"
	KindConflict            ErrorKind = "Conflict"
	KindInternal            ErrorKind = "Internal"
)

// AppError carries a kind and a human readable message.
type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewAppError builds an AppError.
func NewAppError(kind ErrorKind, msg string) error {
	return &AppError{Kind: kind, Message: msg}
}

// KindOf extracts the kind of err, or KindInternal when err is not an AppError.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// StatusForKind maps an error kind to its HTTP status code.
func StatusForKind(kind ErrorKind) int {
	switch kind {
	case KindInvalidInput, KindAvailabilityMissing, KindDoctorUnavailable,
		KindOutsideWorkingHours, KindInvalidStatus:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindSlotConflict, KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details), zap.Int("status", status))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError maps err onto its HTTP status. Internal failures hide their
// cause from the client.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		JSONError(c, StatusForKind(appErr.Kind), appErr.Message, string(appErr.Kind))
		return
	}
	GetLogger().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Server error"})
}
