// Package token implements the stateless session credential: a signed,
// time-bounded JWT carried in a cookie. Verification is a pure decode of the
// claims, there is no lookup against the user store.
package token

import (
	"errors"
	"net/http"
	"time"

	"readinglist-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie carrying the session token.
const CookieName = "token"

// Principal is the authenticated caller of the current request. It lives for
// the duration of one request and is never persisted.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type sessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Service issues and verifies session tokens and owns the cookie lifecycle
// attributes. The secret is read once at startup and read-only afterwards.
type Service struct {
	secret   []byte
	validity time.Duration
	secure   bool
}

func NewService(secret string, validity time.Duration, secure bool) *Service {
	return &Service{
		secret:   []byte(secret),
		validity: validity,
		secure:   secure,
	}
}

// Validity returns the token validity window, which is also the cookie
// max-age.
func (s *Service) Validity() time.Duration {
	return s.validity
}

// Issue signs a token embedding the principal's identity claims.
func (s *Service) Issue(p Principal) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.validity)

	claims := sessionClaims{
		Email: p.Email,
		Name:  p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperror.Internal(err)
	}
	return signed, expiresAt, nil
}

// Verify decodes and checks the token. The returned principal is trusted
// as-is: a deleted identity keeps passing verification until the token's
// natural expiry (known limitation, carried from the source design).
func (s *Service) Verify(tokenString string) (Principal, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, apperror.Unauthenticated("Token expired")
		}
		return Principal{}, apperror.Unauthenticated("Invalid token")
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || claims.Subject == "" {
		return Principal{}, apperror.Unauthenticated("Invalid token")
	}

	return Principal{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}

// SetCookie attaches the session token with its lifecycle attributes. The
// cookie lifetime equals the token validity window.
func (s *Service) SetCookie(c *gin.Context, tokenString string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, tokenString, int(s.validity.Seconds()), "/", "", s.secure, true)
}

// ClearCookie removes the session cookie.
func (s *Service) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", s.secure, true)
}
