package usecase

import (
	"context"
	"time"

	authdomain "readinglist-backend/internal/auth/domain"
	authdto "readinglist-backend/internal/auth/dto"
)

// AuthUsecase is the identity bridge: it turns a successful provider
// callback into a local user identity and a session token.
type AuthUsecase interface {
	HandleGoogleCallback(ctx context.Context, profile authdto.ProviderProfile) (*authdomain.User, string, time.Time, error)
}
