package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/domains/user"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"
)

const principalKey = "principal"

var errNoToken = errors.New("missing authorization header")

// TokenValidator is satisfied by *jwt.Manager.
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// PrincipalLoader reloads the caller on each request so role changes apply immediately.
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, userID uuid.UUID) (*user.Principal, error)
}

// AuthMiddleware requires a valid bearer token and stores the Principal in the context.
func AuthMiddleware(tokens TokenValidator, loader PrincipalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := authenticate(c, tokens, loader)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
			return
		}

		SetPrincipal(c, principal)
		c.Next()
	}
}

// OptionalAuth attaches the Principal when a valid token is sent and lets
// anonymous requests through. An invalid token is still rejected.
func OptionalAuth(tokens TokenValidator, loader PrincipalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := authenticate(c, tokens, loader)
		if errors.Is(err, errNoToken) {
			c.Next()
			return
		}
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
			return
		}

		SetPrincipal(c, principal)
		c.Next()
	}
}

func authenticate(c *gin.Context, tokens TokenValidator, loader PrincipalLoader) (*user.Principal, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errNoToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return nil, errors.New("invalid authorization header format")
	}

	claims, err := tokens.ValidateAccessToken(parts[1])
	if err != nil {
		return nil, errors.New("invalid token")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, errors.New("invalid user ID in token")
	}

	principal, err := loader.LoadPrincipal(c.Request.Context(), userID)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			logger.Error("failed to load principal", err)
		}
		return nil, errors.New("user no longer exists")
	}
	return principal, nil
}

// SetPrincipal stores p as the authenticated caller.
func SetPrincipal(c *gin.Context, p *user.Principal) {
	c.Set(principalKey, p)
}

// GetPrincipal returns the authenticated caller, if any.
func GetPrincipal(c *gin.Context) (*user.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*user.Principal)
	return p, ok && p != nil
}
