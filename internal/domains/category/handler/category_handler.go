package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/domains/category"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/logger"
)

type CategoryHandler struct {
	svc category.CategoryService
}

func NewCategoryHandler(svc category.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List handles GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.svc.List(c.Request.Context())
	if err != nil {
		logger.Error("failed to list categories", err)
		response.ErrorResponse(c, category.GetHTTPStatusCode(err), "INTERNAL_SERVER_ERROR", "Failed to load categories")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, categories, &response.Meta{Total: len(categories)})
}
