package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/domains/article"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/logger"
)

const (
	listPath    = "/api/v1/articles/list"
	detailsPath = "/api/v1/articles/details/"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ArticleHandler struct {
	service article.Service
}

func NewArticleHandler(service article.Service) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// Index handles GET /articles
func (h *ArticleHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, listPath)
}

// List handles GET /articles/list
func (h *ArticleHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, items, &response.Meta{Total: len(items)})
}

// Details handles GET /articles/details/:id
func (h *ArticleHandler) Details(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.service.Details(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// CreateForm handles GET /articles/create
func (h *ArticleHandler) CreateForm(c *gin.Context) {
	form, err := h.service.NewForm(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, form)
}

// Create handles POST /articles/create
func (h *ArticleHandler) Create(c *gin.Context) {
	form, ok := bindForm(c)
	if !ok {
		return
	}

	principal, _ := middleware.GetPrincipal(c)
	resp, err := h.service.Create(c.Request.Context(), principal, form)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", detailsPath+strconv.FormatInt(resp.ID, 10))
	response.Success(c, http.StatusCreated, resp)
}

// IncorrectSanta handles GET /articles/incorrect-santa
func (h *ArticleHandler) IncorrectSanta(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"message": article.IncorrectSantaMessage})
}

// DeleteConfirmation handles GET /articles/delete/:id
func (h *ArticleHandler) DeleteConfirmation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	principal, _ := middleware.GetPrincipal(c)
	resp, err := h.service.DeleteConfirmation(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Delete handles POST /articles/delete/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	principal, _ := middleware.GetPrincipal(c)
	if err := h.service.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Article deleted", "redirect": listPath})
}

// EditForm handles GET /articles/edit/:id
func (h *ArticleHandler) EditForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	principal, _ := middleware.GetPrincipal(c)
	form, err := h.service.EditForm(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, form)
}

// Update handles POST /articles/edit/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	form, ok := bindForm(c)
	if !ok {
		return
	}

	principal, _ := middleware.GetPrincipal(c)
	resp, err := h.service.Update(c.Request.Context(), principal, id, form)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Export handles GET /articles/export
func (h *ArticleHandler) Export(c *gin.Context) {
	data, err := h.service.ExportExcel(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	filename := "articles-" + time.Now().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// MissingID answers routes reached without an id segment.
func (h *ArticleHandler) MissingID(c *gin.Context) {
	response.BadRequest(c, "Article id is required")
}

func parseID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	if raw == "" {
		response.BadRequest(c, "Article id is required")
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", article.ErrInvalidID.Error())
		return 0, false
	}
	return id, true
}

// bindForm accepts JSON and form encodings.
func bindForm(c *gin.Context) (article.ArticleForm, bool) {
	var form article.ArticleForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, "Invalid article form")
		return form, false
	}
	form.Categories = nil
	return form, true
}

func (h *ArticleHandler) handleError(c *gin.Context, err error) {
	status := article.GetHTTPStatusCode(err)

	var formErr *article.FormError
	if errors.As(err, &formErr) {
		response.ErrorWithDetails(c, status, "VALIDATION_ERROR", "Invalid article form", formErr)
		return
	}

	if status == http.StatusInternalServerError {
		logger.Error("article request failed", err)
		response.InternalServerError(c, "Internal server error")
		return
	}
	response.ErrorResponse(c, status, article.GetErrorCode(err), err.Error())
}
