package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"blog-backend/internal/domains/user"
	"blog-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeTokens map[string]string // token -> user id

func (f fakeTokens) ValidateAccessToken(token string) (*jwt.Claims, error) {
	id, ok := f[token]
	if !ok {
		return nil, errors.New("bad token")
	}
	return &jwt.Claims{UserID: id}, nil
}

type fakeLoader map[uuid.UUID]*user.Principal

func (f fakeLoader) LoadPrincipal(_ context.Context, id uuid.UUID) (*user.Principal, error) {
	p, ok := f[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return p, nil
}

func setup() (fakeTokens, fakeLoader, *user.Principal, *user.Principal) {
	santa := &user.Principal{UserID: uuid.New(), UserName: "nick", Roles: []user.Role{user.RoleSanta}}
	plain := &user.Principal{UserID: uuid.New(), UserName: "bob"}
	tokens := fakeTokens{
		"santa-token": santa.UserID.String(),
		"plain-token": plain.UserID.String(),
		"ghost-token": uuid.NewString(),
		"junk-token":  "not-a-uuid",
	}
	loader := fakeLoader{santa.UserID: santa, plain.UserID: plain}
	return tokens, loader, santa, plain
}

func do(r *gin.Engine, method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens, loader, santa, _ := setup()

	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens, loader), func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		require.True(t, ok)
		c.String(http.StatusOK, p.UserName)
	})

	tests := []struct {
		name   string
		auth   string
		status int
	}{
		{"valid", "Bearer santa-token", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic santa-token", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"bad user id", "Bearer junk-token", http.StatusUnauthorized},
		{"deleted user", "Bearer ghost-token", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodGet, "/me", tt.auth)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, santa.UserName, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"UNAUTHORIZED"`)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	tokens, loader, _, _ := setup()

	r := gin.New()
	r.GET("/x", OptionalAuth(tokens, loader), func(c *gin.Context) {
		if p, ok := GetPrincipal(c); ok {
			c.String(http.StatusOK, p.UserName)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	assert.Equal(t, "anonymous", do(r, http.MethodGet, "/x", "").Body.String())
	assert.Equal(t, "bob", do(r, http.MethodGet, "/x", "Bearer plain-token").Body.String())
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/x", "Bearer nope").Code)
}

func TestRequireRoles(t *testing.T) {
	tokens, loader, _, _ := setup()

	r := gin.New()
	r.POST("/edit", AuthMiddleware(tokens, loader), RequireRoles(user.RoleAdmin, user.RoleSanta), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.POST("/unauthenticated", RequireRoles(user.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/edit", "Bearer santa-token").Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/edit", "Bearer plain-token").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/unauthenticated", "").Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	w := do(r, http.MethodGet, "/", "")
	generated := w.Header().Get(requestIDHeader)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("nil article") })

	w := do(r, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://blog.example"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://blog.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://blog.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestIPRateLimiter(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := NewIPRateLimiter(rate.Every(time.Minute), 2, 10*time.Minute)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("2.2.2.2"), "buckets are per IP")

	now = now.Add(time.Minute)
	assert.True(t, l.Allow("1.1.1.1"), "one token refilled")

	now = now.Add(time.Hour)
	l.Allow("3.3.3.3")
	assert.Len(t, l.visitors, 1, "idle visitors evicted")
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.POST("/login", RateLimit(NewIPRateLimiter(rate.Every(time.Hour), 1, time.Hour)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/login", "").Code)
	w := do(r, http.MethodPost, "/login", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestClientIPMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(ClientIPMiddleware())
	r.GET("/ip", func(c *gin.Context) {
		c.String(http.StatusOK, GetClientIPFromContext(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.RemoteAddr = "203.0.113.7:4711"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "203.0.113.7", w.Body.String())
	assert.Empty(t, GetClientIPFromContext(context.Background()))
}

func TestRateLimitMiddleware_KeyedByClientIP(t *testing.T) {
	r := gin.New()
	r.Use(ClientIPMiddleware())
	r.POST("/login", RateLimit(NewIPRateLimiter(rate.Every(time.Hour), 1, time.Hour)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	post := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, post("198.51.100.1:1000"))
	assert.Equal(t, http.StatusTooManyRequests, post("198.51.100.1:1001"))
	assert.Equal(t, http.StatusOK, post("198.51.100.2:1000"))
}
