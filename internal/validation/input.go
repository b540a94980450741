// Package validation declares the input schemas for every server action and
// reports the first violation, mirroring safeParse-style semantics: one
// message, pre-written per field, never a reflection dump.
package validation

import (
	"github.com/go-playground/validator/v10"

	"inkwell/internal/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RegisterInput is the registration form payload.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput is the login form payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// PostInput is the blog post creation payload.
type PostInput struct {
	Title      string `json:"title" validate:"required"`
	Content    string `json:"content" validate:"required"`
	Category   string `json:"category" validate:"required"`
	CoverImage string `json:"coverImage" validate:"required"`
}

// CommentInput is the comment creation payload.
type CommentInput struct {
	Content string `json:"content" validate:"required"`
}

// PrePaymentInput is the payment preflight payload.
type PrePaymentInput struct {
	Email string `json:"email" validate:"required,email"`
}

var messages = map[string]string{
	"RegisterInput.Name":     "Name must be at least 2 characters long.",
	"RegisterInput.Email":    "Please enter a valid email.",
	"RegisterInput.Password": "Password must be at least 6 characters long.",
	"LoginInput.Email":       "Please enter a valid email.",
	"LoginInput.Password":    "Password must be at least 6 characters long.",
	"PostInput.Title":        "Title is required",
	"PostInput.Content":      "Content is required",
	"PostInput.Category":     "Category is required",
	"PostInput.CoverImage":   "Image is required",
	"CommentInput.Content":   "Comment is required",
	"PrePaymentInput.Email":  "Please enter a valid email.",
}

// FirstViolation checks the input against its schema and returns the first
// violation as a validation error, or nil when the input is well-formed.
func FirstViolation(in any) *models.AppError {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	violations, ok := err.(validator.ValidationErrors)
	if !ok || len(violations) == 0 {
		return models.NewValidationError("Invalid input")
	}

	first := violations[0]
	if msg, found := messages[first.StructNamespace()]; found {
		return models.NewValidationError(msg)
	}
	return models.NewValidationError("Invalid value for " + first.Field())
}
