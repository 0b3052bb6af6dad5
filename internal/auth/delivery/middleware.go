package delivery

import (
	"context"
	"time"

	authdomain "readinglist-backend/internal/auth/domain"
	"readinglist-backend/pkg/apperror"
	"readinglist-backend/pkg/database"
	"readinglist-backend/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	principalKey = "principal"
	resourceKey  = "resource"
)

// ResourceFinder loads one resource by id, returning (nil, nil) when it does
// not exist.
type ResourceFinder func(ctx context.Context, id string) (authdomain.OwnedResource, error)

// Registry maps each resource kind to its store accessor. Adding a kind is
// one entry here, no per-kind middleware.
type Registry map[authdomain.ResourceKind]ResourceFinder

// Guard provides the request authorization middleware.
type Guard struct {
	tokens   *token.Service
	registry Registry
	timeout  time.Duration
}

func NewGuard(tokens *token.Service, registry Registry) *Guard {
	return &Guard{
		tokens:   tokens,
		registry: registry,
		timeout:  database.DefaultTimeout,
	}
}

// AuthRequired gates the request on a valid session cookie and attaches the
// verified principal to the context. The reason string distinguishes a
// missing, expired and malformed token; the status is 401 either way.
func (g *Guard) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(token.CookieName)
		if err != nil || cookie == "" {
			c.Error(apperror.Unauthenticated("Unauthorized"))
			c.Abort()
			return
		}

		principal, err := g.tokens.Verify(cookie)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// OwnerOption overrides how the resource id is resolved. Param names a path
// parameter; Extract, when set, wins over Param.
type OwnerOption struct {
	Param   string
	Extract func(c *gin.Context) string
}

// OwnerRequired gates the request on the current principal owning the
// resource. The existence check deliberately precedes the owner comparison,
// so a missing resource is 404 for everyone and only owners of an existing
// resource distinguish 403 from success. The fetched resource is attached to
// the context so handlers don't re-fetch it.
func (g *Guard) OwnerRequired(kind authdomain.ResourceKind, opts ...OwnerOption) gin.HandlerFunc {
	opt := OwnerOption{Param: "id"}
	if len(opts) > 0 {
		if opts[0].Param != "" {
			opt.Param = opts[0].Param
		}
		opt.Extract = opts[0].Extract
	}

	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			c.Error(apperror.Unauthenticated("Unauthorized"))
			c.Abort()
			return
		}

		id := c.Param(opt.Param)
		if opt.Extract != nil {
			id = opt.Extract(c)
		}
		if _, err := uuid.Parse(id); err != nil {
			c.Error(apperror.InvalidID())
			c.Abort()
			return
		}

		finder, ok := g.registry[kind]
		if !ok {
			c.Error(apperror.Internal(nil))
			c.Abort()
			return
		}

		resource, err := database.WithTimeout(c.Request.Context(), g.timeout, "Request timed out while checking ownership", func() (authdomain.OwnedResource, error) {
			return finder(c.Request.Context(), id)
		})
		if err != nil {
			c.Error(apperror.From(err))
			c.Abort()
			return
		}
		if resource == nil {
			c.Error(apperror.NotFound())
			c.Abort()
			return
		}

		if resource.ResourceOwner() != principal.ID {
			c.Error(apperror.Forbidden())
			c.Abort()
			return
		}

		c.Set(resourceKey, resource)
		c.Next()
	}
}

// PrincipalFrom returns the principal attached by AuthRequired.
func PrincipalFrom(c *gin.Context) (token.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return token.Principal{}, false
	}
	principal, ok := v.(token.Principal)
	return principal, ok
}

// ResourceFrom returns the resource attached by OwnerRequired.
func ResourceFrom(c *gin.Context) (authdomain.OwnedResource, bool) {
	v, ok := c.Get(resourceKey)
	if !ok {
		return nil, false
	}
	resource, ok := v.(authdomain.OwnedResource)
	return resource, ok
}
