package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"blog-backend/internal/domains/category"
)

type stubService struct {
	categories []category.Category
	err        error
}

func (s stubService) List(context.Context) ([]category.Category, error) { return s.categories, s.err }
func (s stubService) Exists(context.Context, int64) (bool, error)      { return true, nil }

func TestList(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/ok", NewCategoryHandler(stubService{categories: []category.Category{{ID: 1, Name: "Christmas"}}}).List)
	r.GET("/fail", NewCategoryHandler(stubService{err: errors.New("db down")}).List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[{"id":1,"name":"Christmas"}],"meta":{"total":1}}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
