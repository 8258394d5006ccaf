package handler

import (
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"

	"blog-backend/internal/domains/user"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/logger"
)

const profilePictureField = "user_profile_picture"

type UserHandler struct {
	service        user.Service
	maxAvatarBytes int64
}

func NewUserHandler(service user.Service, maxAvatarBytes int64) *UserHandler {
	return &UserHandler{service: service, maxAvatarBytes: maxAvatarBytes}
}

// Register handles POST /auth/register (multipart/form-data).
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid registration form")
		return
	}

	picture, err := h.readProfilePicture(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	req.ProfilePicture = picture

	req.Normalize()
	if err := req.Validate(); err != nil {
		h.validationError(c, err)
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/users/me")
	response.Success(c, http.StatusCreated, dto)
}

// readProfilePicture returns nil when no file was sent.
func (h *UserHandler) readProfilePicture(c *gin.Context) ([]byte, error) {
	fh, err := c.FormFile(profilePictureField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, user.ErrInvalidProfilePicture
	}
	if fh.Size > h.maxAvatarBytes {
		return nil, user.ErrProfilePictureTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, user.ErrInvalidProfilePicture
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxAvatarBytes+1))
	if err != nil {
		return nil, user.ErrInvalidProfilePicture
	}
	if int64(len(data)) > h.maxAvatarBytes {
		return nil, user.ErrProfilePictureTooLarge
	}
	return data, nil
}

// Login handles POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.validationError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetProfile handles GET /users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	dto, err := h.service.GetProfile(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

func (h *UserHandler) validationError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", verrs)
		return
	}
	response.BadRequest(c, err.Error())
}

func (h *UserHandler) handleError(c *gin.Context, err error) {
	status := user.GetHTTPStatusCode(err)
	if status == http.StatusInternalServerError {
		logger.Error("user request failed", err)
		response.InternalServerError(c, "Internal server error")
		return
	}
	response.ErrorResponse(c, status, user.GetErrorCode(err), err.Error())
}
