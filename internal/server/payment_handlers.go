package server

import (
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/protection"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// premiumCheckoutFlag gates the upgrade flow so checkout can be rolled out
// gradually or switched off without a deploy.
const premiumCheckoutFlag = "premium_checkout"

// PrePayment handles POST /api/payment/preflight. It runs before the user
// authenticates with the payment provider: the payment rule set screens the
// attempt, and the decision's correlation ID is handed to the checkout
// widget. Nothing is persisted.
func (s *Server) PrePayment(c *fiber.Ctx) error {
	if !s.featureFlags.Enabled(premiumCheckoutFlag, 0) {
		return s.fail(c, models.NewDeniedError(fiber.StatusForbidden,
			"Premium checkout is not available"))
	}

	var in validation.PrePaymentInput
	if err := c.BodyParser(&in); err != nil {
		return s.fail(c, models.NewValidationError("Invalid request body"))
	}
	if vErr := validation.FirstViolation(in); vErr != nil {
		return s.fail(c, vErr)
	}

	decision, appErr := s.checkProtection(c, protection.Params{
		Rules: protection.RulesPayment,
		Email: in.Email,
	}, activityShield)
	if appErr != nil {
		return s.fail(c, appErr)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"status":     fiber.StatusOK,
		"decisionId": decision.ID,
	})
}

// CapturePremium handles POST /api/payment/capture. It flips the premium
// flag and reissues the session cookie so the new claim takes effect
// immediately instead of at natural token expiry.
func (s *Server) CapturePremium(c *fiber.Ctx) error {
	claims := middleware.SessionClaims(c)

	if !s.featureFlags.Enabled(premiumCheckoutFlag, claims.UserID) {
		return s.fail(c, models.NewDeniedError(fiber.StatusForbidden,
			"Premium checkout is not available"))
	}

	var in struct {
		DecisionID      string `json:"decisionId"`
		PaymentMethodID string `json:"paymentMethodId"`
	}
	if err := c.BodyParser(&in); err != nil {
		return s.fail(c, models.NewValidationError("Invalid request body"))
	}

	// TODO: verify in.PaymentMethodID against the payment provider before
	// flipping the flag; capture details are currently trusted as sent.
	user, err := s.userService.UpgradeToPremium(c.UserContext(), claims.UserID)
	if err != nil {
		return s.fail(c, err)
	}

	token, err := s.authenticator.Issue(user.ID, user.Email, user.Name, user.IsPremiumUser)
	if err != nil {
		return s.fail(c, models.NewInternalError(err))
	}
	s.setSessionCookie(c, token)
	observability.SessionsIssued.WithLabelValues("premium_upgrade").Inc()

	return c.JSON(fiber.Map{
		"success": true,
		"status":  fiber.StatusOK,
		"user":    user,
	})
}
