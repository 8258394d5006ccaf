package user

import (
	"errors"
	"net/http"
)

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrUserNameAlreadyExists  = errors.New("user name already exists")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidRole            = errors.New("invalid user role")
	ErrInvalidProfilePicture  = errors.New("profile picture must be a jpeg or png image")
	ErrProfilePictureTooLarge = errors.New("profile picture is too large")
	ErrInvalidDateOfBirth     = errors.New("date of birth must be YYYY-MM-DD")
)

// GetHTTPStatusCode maps domain errors to HTTP status codes
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmailAlreadyExists),
		errors.Is(err, ErrUserNameAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrInvalidProfilePicture),
		errors.Is(err, ErrInvalidDateOfBirth):
		return http.StatusBadRequest
	case errors.Is(err, ErrProfilePictureTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorCode maps domain errors to response error codes
func GetErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "USER_NOT_FOUND"
	case errors.Is(err, ErrEmailAlreadyExists):
		return "EMAIL_TAKEN"
	case errors.Is(err, ErrUserNameAlreadyExists):
		return "USER_NAME_TAKEN"
	case errors.Is(err, ErrInvalidCredentials):
		return "INVALID_CREDENTIALS"
	case errors.Is(err, ErrInvalidProfilePicture),
		errors.Is(err, ErrProfilePictureTooLarge):
		return "INVALID_PROFILE_PICTURE"
	case errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrInvalidDateOfBirth):
		return "BAD_REQUEST"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
