package article

import (
	"errors"
	"net/http"
)

const IncorrectSantaMessage = "Incorrect Santa! Try again, please!"

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrAuthorNotFound  = errors.New("current user no longer exists")
	ErrForbidden       = errors.New("not allowed to modify this article")
	ErrInvalidID       = errors.New("article id must be a positive integer")
)

// FormError rejects a submitted form. The form is returned with its
// categories repopulated so the client can redisplay it.
type FormError struct {
	Fields map[string]string `json:"fields"`
	Form   *ArticleForm      `json:"form"`
}

func (e *FormError) Error() string {
	return "invalid article form"
}

// GetHTTPStatusCode maps domain errors to HTTP status codes
func GetHTTPStatusCode(err error) int {
	var formErr *FormError
	switch {
	case errors.As(err, &formErr),
		errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, ErrArticleNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAuthorNotFound):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorCode maps domain errors to response error codes
func GetErrorCode(err error) string {
	var formErr *FormError
	switch {
	case errors.As(err, &formErr):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrInvalidID):
		return "BAD_REQUEST"
	case errors.Is(err, ErrArticleNotFound):
		return "ARTICLE_NOT_FOUND"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, ErrAuthorNotFound):
		return "UNAUTHORIZED"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
