package usecase

import (
	"context"
	"time"

	authdomain "readinglist-backend/internal/auth/domain"
	authdto "readinglist-backend/internal/auth/dto"
	"readinglist-backend/internal/auth/repository"
	"readinglist-backend/pkg/apperror"
	"readinglist-backend/pkg/database"
	"readinglist-backend/pkg/token"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	tokens   *token.Service
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, tokens *token.Service) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// HandleGoogleCallback finds or creates the user identity keyed by
// (provider, providerId) and issues a session token for it. An existing
// identity is reused untouched: the profile is only read on first creation.
// Store failures abort the callback with no cookie set; nothing is retried.
func (u *authUsecase) HandleGoogleCallback(ctx context.Context, profile authdto.ProviderProfile) (*authdomain.User, string, time.Time, error) {
	user, err := database.WithTimeout(ctx, database.DefaultTimeout, "Request timed out while resolving identity", func() (*authdomain.User, error) {
		return u.userRepo.FindByProviderID("google", profile.ProviderID)
	})
	if err != nil {
		return nil, "", time.Time{}, apperror.From(err)
	}

	if user == nil {
		user = &authdomain.User{
			Provider:   "google",
			ProviderID: profile.ProviderID,
			Email:      profile.Email,
			Name:       profile.Name,
			AvatarURL:  profile.AvatarURL,
		}
		if _, err := database.WithTimeout(ctx, database.DefaultTimeout, "Request timed out while creating identity", func() (struct{}, error) {
			return struct{}{}, u.userRepo.Create(user)
		}); err != nil {
			return nil, "", time.Time{}, apperror.From(err)
		}
	}

	signed, expiresAt, err := u.tokens.Issue(token.Principal{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	})
	if err != nil {
		return nil, "", time.Time{}, err
	}

	return user, signed, expiresAt, nil
}
