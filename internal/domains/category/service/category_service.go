package service

import (
	"context"
	"time"

	"blog-backend/internal/domains/category"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/logger"
)

const (
	listCacheKey = "categories:all"
	listCacheTTL = 10 * time.Minute
)

type categoryService struct {
	repo  category.CategoryRepository
	cache cache.Cache
}

func NewCategoryService(repo category.CategoryRepository, cache cache.Cache) category.CategoryService {
	return &categoryService{repo: repo, cache: cache}
}

func (s *categoryService) List(ctx context.Context) ([]category.Category, error) {
	var cached []category.Category
	found, err := s.cache.Get(ctx, listCacheKey, &cached)
	if err == nil && found {
		return cached, nil
	}
	if err != nil {
		logger.Warn("category cache read failed", map[string]interface{}{"error": err.Error()})
	}

	categories, err := s.repo.ListOrderedByName(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, listCacheKey, categories, listCacheTTL); err != nil {
		logger.Warn("category cache write failed", map[string]interface{}{"error": err.Error()})
	}
	return categories, nil
}

func (s *categoryService) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.ExistsByID(ctx, id)
}
