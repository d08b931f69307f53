package errors

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorInfo is a classified error ready for a response body.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError classifies an unexpected error from the storage layer into a
// response code without leaking driver internals to the client.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "An internal error occurred"}
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	// Unique constraint violation (Postgres 23505, SQLite "UNIQUE constraint failed")
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		if strings.Contains(errStr, "username") {
			return ErrorInfo{Code: AuthUsernameExists, Message: "Username is already taken"}
		}
		if strings.Contains(errStr, "plate") {
			return ErrorInfo{Code: ResourceAlreadyExists, Message: "Car is already registered"}
		}
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Record already exists"}
	}

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "The storage backend is unavailable. Please try again later",
		}
	}

	return ErrorInfo{Code: InternalServerError, Message: "An internal error occurred. Please try again later"}
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "car") {
		return "Car not found"
	}
	if strings.Contains(contextLower, "assignment") {
		return "Assignment not found"
	}
	if strings.Contains(contextLower, "user") || strings.Contains(contextLower, "business") {
		return "Account not found"
	}
	return "Requested resource not found"
}

// ParseAndRespond classifies err and writes the response in one step.
func ParseAndRespond(c *gin.Context, statusCode int, err error, context string) {
	info := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   info.Code,
		Message: info.Message,
	})
}
