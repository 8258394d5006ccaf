package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"blog-backend/internal/config"
	infraCache "blog-backend/internal/infrastructure/cache"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"

	"blog-backend/internal/domains/article"
	articleHandler "blog-backend/internal/domains/article/handler"
	articleRepo "blog-backend/internal/domains/article/repository"
	articleService "blog-backend/internal/domains/article/service"
	"blog-backend/internal/domains/category"
	categoryHandler "blog-backend/internal/domains/category/handler"
	categoryRepo "blog-backend/internal/domains/category/repository"
	categoryService "blog-backend/internal/domains/category/service"
	"blog-backend/internal/domains/user"
	userHandler "blog-backend/internal/domains/user/handler"
	userRepo "blog-backend/internal/domains/user/repository"
	userService "blog-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph, shared by cmd/api and cmd/worker.
type Container struct {
	// Infrastructure (singletons)
	Config         *config.Config
	DB             *database.PostgresDB
	Redis          *infraCache.RedisClient
	Cache          cache.Cache
	Storage        *storage.MinIOStorage
	ImageProcessor *storage.ImageProcessor
	AsynqClient    *asynq.Client
	JWTManager     *jwt.Manager

	// Repositories
	UserRepo     user.Repository
	CategoryRepo category.CategoryRepository
	ArticleRepo  article.Repository

	// Services
	UserService     user.Service
	AvatarService   user.AvatarService
	CategoryService category.CategoryService
	ArticleService  article.Service

	// HTTP handlers
	UserHandler     *userHandler.UserHandler
	CategoryHandler *categoryHandler.CategoryHandler
	ArticleHandler  *articleHandler.ArticleHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the dependency graph in order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	logger.Info("initializing container", nil)

	c := &Container{}

	// ----------------------------------------
	// STEP 1: CONFIGURATION
	// ----------------------------------------
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	// ----------------------------------------
	// STEP 2: DATABASE
	// ----------------------------------------
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// ----------------------------------------
	// STEP 3: REDIS CACHE
	// ----------------------------------------
	// Redis is not critical for the API: cache misses fall back to Postgres.
	c.Redis = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		logger.Warn("redis connection failed, continuing without warm cache", map[string]interface{}{"error": err.Error()})
	}
	c.Cache = infraCache.NewRedisCache(c.Redis.Client)

	// ----------------------------------------
	// STEP 4: OBJECT STORAGE + QUEUE
	// ----------------------------------------
	c.Storage, err = storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init minio: %w", err)
	}
	c.ImageProcessor = storage.NewImageProcessor(cfg.Upload.MaxAvatarBytes)

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.AccessTokenTTL())

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", map[string]interface{}{"env": cfg.App.Environment})
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool, c.Cache)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.ArticleRepo = articleRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.JWTManager,
		c.Storage,
		c.ImageProcessor,
		c.AsynqClient,
	)
	c.AvatarService = userService.NewAvatarService(c.UserRepo, c.Storage, c.ImageProcessor)

	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.Cache)

	// article depends on user (author/santa lookups, role grant) and category
	c.ArticleService = articleService.NewArticleService(
		c.ArticleRepo,
		c.UserRepo,
		c.CategoryService,
		c.AsynqClient,
		c.Config.App.BaseURL,
	)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService, c.Config.Upload.MaxAvatarBytes)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.ArticleHandler = articleHandler.NewArticleHandler(c.ArticleService)
}

// Cleanup releases every resource the container opened.
// Safe to call on a partially built container.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("failed to close asynq client", err)
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("failed to close database", err)
		}
	}

	logger.Info("container cleanup completed", nil)
}
