package server

import (
	"strconv"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/protection"

	"github.com/gofiber/fiber/v2"
)

// shieldFlavor selects the denial message for a shield verdict: account and
// payment actions report suspicious activity, content-bearing actions report
// suspicious content.
type shieldFlavor int

const (
	activityShield shieldFlavor = iota
	contentShield
)

// requestInfo assembles the request context handed to the protection
// service. Nothing here comes from ambient state; handlers pass it on
// explicitly.
func requestInfo(c *fiber.Ctx) protection.RequestInfo {
	return protection.RequestInfo{
		IP:         c.IP(),
		Method:     c.Method(),
		Path:       c.Path(),
		UserAgent:  c.Get("User-Agent"),
		Suspicious: c.Get("X-Suspicious") == "true",
	}
}

// checkProtection consults the decision service and translates a non-allow
// verdict into the action's failure envelope. A nil error means proceed.
func (s *Server) checkProtection(c *fiber.Ctx, p protection.Params, flavor shieldFlavor) (protection.Decision, *models.AppError) {
	decision := s.protector.Protect(c.UserContext(), requestInfo(c), p)

	switch decision.Conclusion {
	case protection.Allow:
		return decision, nil
	case protection.Deny:
		return decision, denialError(decision, flavor)
	default:
		// The service itself failed; the caller gets a generic envelope and
		// the cause stays in the logs.
		return decision, models.NewDeniedError(fiber.StatusInternalServerError, "An error occurred")
	}
}

// denialError maps a deny verdict onto the fixed status/message table.
func denialError(d protection.Decision, flavor shieldFlavor) *models.AppError {
	switch reason := d.Reason.(type) {
	case protection.RateLimitReason:
		return models.NewDeniedError(fiber.StatusTooManyRequests,
			"Too many requests! Please try again after some time.")
	case protection.BotReason:
		return models.NewDeniedError(fiber.StatusForbidden, "Bot activity detected")
	case protection.ShieldReason:
		if flavor == contentShield {
			return models.NewDeniedError(fiber.StatusForbidden, "Suspicious or malicious content detected.")
		}
		return models.NewDeniedError(fiber.StatusForbidden, "Suspicious activity detected.")
	case protection.EmailReason:
		return models.NewDeniedError(fiber.StatusForbidden, emailDenialMessage(reason))
	default:
		return models.NewDeniedError(fiber.StatusForbidden, "Request Denied.")
	}
}

func emailDenialMessage(reason protection.EmailReason) string {
	switch {
	case reason.Has(protection.EmailDisposable):
		return "Disposable email addresses are not allowed"
	case reason.Has(protection.EmailInvalid):
		return "Invalid email address"
	case reason.Has(protection.EmailNoMXRecords):
		return "Email does not have valid MX records."
	default:
		return "Email address not accepted! Please try with a different email."
	}
}

// fail logs the internal cause (when there is one) and writes the failure
// envelope. Handlers never serialize a raw error.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*models.AppError); !ok || appErr.Err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed internally",
			"path", c.Path(), "error", err.Error())
	}
	return models.RespondWithError(c, err)
}

// parseID reads the :id route parameter.
func parseID(c *fiber.Ctx) (uint, *models.AppError) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid post ID")
	}
	return uint(id), nil
}

// setSessionCookie installs the signed session token. SameSite=Strict keeps
// the cookie off cross-site requests; Secure follows the deployment
// environment.
func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL.Seconds()),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// clearSessionCookie expires the session cookie immediately.
func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// authorRef is the author slice of the listing shape.
type authorRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// postSummary is the reduced listing shape: no content body, no comments,
// no internal fields.
type postSummary struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	CoverImage string    `json:"coverImage"`
	Category   string    `json:"category"`
	Author     authorRef `json:"author"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toPostSummary(p *models.Post) postSummary {
	return postSummary{
		ID:         p.ID,
		Title:      p.Title,
		CoverImage: p.CoverImage,
		Category:   p.Category,
		Author:     authorRef{ID: p.User.ID, Name: p.User.Name},
		CreatedAt:  p.CreatedAt,
	}
}

func toPostSummaries(posts []*models.Post) []postSummary {
	out := make([]postSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostSummary(p))
	}
	return out
}
