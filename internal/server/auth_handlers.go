package server

import (
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/protection"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var in validation.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return s.fail(c, models.NewValidationError("Invalid request body"))
	}
	if vErr := validation.FirstViolation(in); vErr != nil {
		return s.fail(c, vErr)
	}

	if _, appErr := s.checkProtection(c, protection.Params{
		Rules: protection.RulesRegister,
		Email: in.Email,
	}, activityShield); appErr != nil {
		return s.fail(c, appErr)
	}

	user, err := s.userService.Register(c.UserContext(), in.Name, in.Email, in.Password)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"status":  fiber.StatusCreated,
		"user":    user,
	})
}

// Login handles POST /api/auth/login. A successful login answers with the
// session cookie set; every failure leaves the cookie jar untouched.
func (s *Server) Login(c *fiber.Ctx) error {
	var in validation.LoginInput
	if err := c.BodyParser(&in); err != nil {
		return s.fail(c, models.NewValidationError("Invalid request body"))
	}
	if vErr := validation.FirstViolation(in); vErr != nil {
		return s.fail(c, vErr)
	}

	if _, appErr := s.checkProtection(c, protection.Params{
		Rules: protection.RulesLogin,
		Email: in.Email,
	}, activityShield); appErr != nil {
		return s.fail(c, appErr)
	}

	user, err := s.userService.Authenticate(c.UserContext(), in.Email, in.Password)
	if err != nil {
		return s.fail(c, err)
	}

	token, err := s.authenticator.Issue(user.ID, user.Email, user.Name, user.IsPremiumUser)
	if err != nil {
		return s.fail(c, models.NewInternalError(err))
	}
	s.setSessionCookie(c, token)
	observability.SessionsIssued.WithLabelValues("login").Inc()

	return c.JSON(fiber.Map{
		"success": true,
		"status":  fiber.StatusOK,
		"user":    user,
	})
}

// Logout handles POST /api/auth/logout. Clearing the cookie is
// unconditional; there is no server-side session to tear down.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.clearSessionCookie(c)

	return c.JSON(fiber.Map{
		"success": true,
		"status":  fiber.StatusOK,
		"message": "Logged out successfully",
	})
}
