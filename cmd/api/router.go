package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"blog-backend/internal/domains/article"
	"blog-backend/internal/domains/user"
	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/container"
)

// login attempts: 5 per minute per IP
const (
	loginRate  = rate.Limit(5.0 / 60.0)
	loginBurst = 5
	limiterTTL = 10 * time.Minute
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.CORSOrigins),
		middleware.ClientIPMiddleware(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupCategoryRoutes(v1, c)
		setupArticleRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	loginLimiter := middleware.NewIPRateLimiter(loginRate, loginBurst, limiterTTL)

	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", middleware.RateLimit(loginLimiter), c.UserHandler.Login)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager, c.UserService))
	{
		users.GET("/me", c.UserHandler.GetProfile)
	}
}

// ========================================
// CATEGORY ROUTES
// ========================================
func setupCategoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/categories", c.CategoryHandler.List)
}

// ========================================
// ARTICLE ROUTES
// ========================================
func setupArticleRoutes(v1 *gin.RouterGroup, c *container.Container) {
	h := c.ArticleHandler
	auth := middleware.AuthMiddleware(c.JWTManager, c.UserService)
	optionalAuth := middleware.OptionalAuth(c.JWTManager, c.UserService)
	editors := middleware.RequireRoles(article.EditorRoles...)
	admins := middleware.RequireRoles(user.RoleAdmin)

	articles := v1.Group("/articles")
	{
		articles.GET("", h.Index)
		articles.GET("/list", h.List)
		articles.GET("/incorrect-santa", h.IncorrectSanta)

		articles.GET("/details/", h.MissingID)
		articles.GET("/details/:id", h.Details)

		articles.GET("/create", auth, h.CreateForm)
		articles.POST("/create", auth, h.Create)

		articles.GET("/delete/", h.MissingID)
		articles.GET("/delete/:id", optionalAuth, h.DeleteConfirmation)
		articles.POST("/delete/", h.MissingID)
		articles.POST("/delete/:id", auth, editors, h.Delete)

		articles.GET("/edit/", h.MissingID)
		articles.GET("/edit/:id", auth, editors, h.EditForm)
		articles.POST("/edit/", h.MissingID)
		articles.POST("/edit/:id", auth, editors, h.Update)

		articles.GET("/export", auth, admins, h.Export)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		redisStatus := "ok"
		if appCtx.Redis == nil {
			redisStatus = "disconnected"
		} else if err := appCtx.Redis.HealthCheck(c.Request.Context()); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
