package serverutils

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeValidation         = "VALIDATION_ERROR"
	CodeSuspiciousInput    = "SUSPICIOUS_INPUT"
	CodeEmptyQuery         = "EMPTY_QUERY"
	CodeSessionNotFound    = "SESSION_NOT_FOUND"
	CodeInternal           = "INTERNAL_ERROR"
)

// AppError is an error the HTTP layer renders as-is.
type AppError struct {
	Status  int
	Code    string
	Message string
	Details interface{}
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

func NewBadRequestError(code, message string) *AppError {
	return NewAppError(fiber.StatusBadRequest, code, message)
}

func NewNotFoundError(code, message string) *AppError {
	return NewAppError(fiber.StatusNotFound, code, message)
}
