package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorEnvelope is the uniform failure shape every action returns.
// The envelope is the sole error-signaling channel: no handler lets an
// internal error reach the caller.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Status  int    `json:"status"`
	Error   string `json:"error"`
}

// AppError represents a custom application error
type AppError struct {
	Status  int
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

// Predefined error constructors
func NewValidationError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusBadRequest,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusUnauthorized,
		Message: message,
	}
}

func NewDeniedError(status int, message string) *AppError {
	return &AppError{
		Status:  status,
		Message: message,
	}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusNotFound,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Status:  fiber.StatusInternalServerError,
		Message: "Internal Server Error",
		Err:     err,
	}
}

// RespondWithError writes the failure envelope for err. Internal causes
// stay out of the response body; callers log them separately.
func RespondWithError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if appErr, ok := err.(*AppError); ok {
		status = appErr.Status
		message = appErr.Message
	}

	return c.Status(status).JSON(ErrorEnvelope{
		Success: false,
		Status:  status,
		Error:   message,
	})
}
