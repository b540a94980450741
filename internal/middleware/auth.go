package middleware

import (
	"context"

	"inkwell/internal/auth"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ClaimsKey is the Fiber local under which verified session claims are stored.
const ClaimsKey = "claims"

// AuthRequired enforces a valid session cookie on protected routes. The
// token is read from the `token` cookie; any verification failure (missing
// cookie, bad signature, malformed payload, expiry) answers the same
// 401 envelope so callers cannot tell a forged token from an expired one.
func AuthRequired(a *auth.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := a.Verify(c.Cookies(auth.CookieName))
		if claims == nil {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Access Denied"))
		}

		c.Locals(ClaimsKey, claims)
		// Enrich the request context so every log record downstream,
		// including the final request summary, carries the user.
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, claims.UserID))
		return c.Next()
	}
}

// SessionClaims returns the verified claims stored by AuthRequired, or nil
// when the route is unauthenticated.
func SessionClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(ClaimsKey).(*auth.Claims)
	return claims
}
