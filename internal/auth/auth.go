// Package auth implements the stateless session authenticator: issuing and
// verifying the signed, expiring token that rides in the session cookie.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// CookieName is the session cookie holding the signed token.
	CookieName = "token"
	// TokenTTL bounds the exposure of a stolen token. Privilege changes
	// (the premium upgrade) reissue the token rather than waiting it out.
	TokenTTL = 2 * time.Hour
)

// Claims is the payload embedded in every session token. Claim validity
// means the values were true at issuance time; they can go stale until the
// token expires or is reissued.
type Claims struct {
	UserID        uint   `json:"userId"`
	Email         string `json:"email"`
	UserName      string `json:"userName"`
	IsPremiumUser bool   `json:"isPremiumUser"`
	jwt.RegisteredClaims
}

// Authenticator signs and verifies session tokens with a single symmetric
// secret held in process configuration.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
}

// NewAuthenticator builds an authenticator from the configured secret.
// An empty secret is a startup error; Issue and Verify never fail on it.
func NewAuthenticator(secret string) (*Authenticator, error) {
	if secret == "" {
		return nil, errors.New("auth: JWT secret is not configured")
	}
	return &Authenticator{
		secret: []byte(secret),
		ttl:    TokenTTL,
	}, nil
}

// Issue produces a compact signed token for the given identity.
func (a *Authenticator) Issue(userID uint, email, userName string, isPremiumUser bool) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:        userID,
		Email:         email,
		UserName:      userName,
		IsPremiumUser: isPremiumUser,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Verify decodes and checks the token. It returns nil for a missing token,
// a bad signature, a malformed payload, a wrong algorithm, or an elapsed
// expiry. Callers treat all of these uniformly as "unauthenticated" and
// never learn which one it was.
func (a *Authenticator) Verify(token string) *Claims {
	if token == "" {
		return nil
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !parsed.Valid {
		return nil
	}

	return claims
}
