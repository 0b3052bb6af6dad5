package delivery

import (
	"encoding/json"
	"net/http"

	authdto "readinglist-backend/internal/auth/dto"
	"readinglist-backend/internal/auth/usecase"
	"readinglist-backend/pkg/apperror"
	"readinglist-backend/pkg/config"
	"readinglist-backend/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	stateCookie = "oauth_state"
	userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// AuthHandler runs the provider handshake and the session endpoints. The
// OAuth mechanics stay here; the usecase only ever sees the resulting
// ProviderProfile.
type AuthHandler struct {
	authUsecase      usecase.AuthUsecase
	tokens           *token.Service
	oauth            *oauth2.Config
	postAuthRedirect string
	secure           bool
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, tokens *token.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		tokens:      tokens,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		postAuthRedirect: cfg.PostAuthRedirect,
		secure:           cfg.IsProduction(),
	}
}

// GoogleLogin starts the OAuth handshake.
// GET /auth/google
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state := uuid.New().String()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, 600, "/", "", h.secure, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthCodeURL(state))
}

// GoogleCallback completes the handshake, bridges the provider profile into
// a local identity and sets the session cookie.
// GET /auth/google/callback
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		c.Error(apperror.Unauthenticated("Invalid OAuth state"))
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", h.secure, true)

	exchanged, err := h.oauth.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		c.Error(apperror.Unauthenticated("OAuth exchange failed"))
		return
	}

	profile, err := h.fetchProfile(c, exchanged)
	if err != nil {
		c.Error(err)
		return
	}

	_, signed, _, err := h.authUsecase.HandleGoogleCallback(c.Request.Context(), profile)
	if err != nil {
		c.Error(err)
		return
	}

	h.tokens.SetCookie(c, signed)
	c.Redirect(http.StatusFound, h.postAuthRedirect)
}

func (h *AuthHandler) fetchProfile(c *gin.Context, tok *oauth2.Token) (authdto.ProviderProfile, error) {
	resp, err := h.oauth.Client(c.Request.Context(), tok).Get(userInfoURL)
	if err != nil {
		return authdto.ProviderProfile{}, apperror.Internal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return authdto.ProviderProfile{}, apperror.Unauthenticated("Failed to fetch provider profile")
	}

	var profile authdto.ProviderProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return authdto.ProviderProfile{}, apperror.Internal(err)
	}
	return profile, nil
}

// Me returns the current principal.
// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := PrincipalFrom(c)
	if !ok {
		c.Error(apperror.Unauthenticated("Unauthorized"))
		return
	}
	c.JSON(http.StatusOK, authdto.MeResponse{
		ID:    principal.ID,
		Email: principal.Email,
		Name:  principal.Name,
	})
}

// Logout clears the session cookie.
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.tokens.ClearCookie(c)
	c.Status(http.StatusNoContent)
}
