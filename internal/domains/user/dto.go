package user

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

const DateOfBirthLayout = "2006-01-02"

var userNamePattern = regexp.MustCompile(`^[A-Za-z0-9._@+-]+$`)

// RegisterRequest is the multipart registration form.
// ProfilePicture holds the uploaded file bytes, filled by the handler.
type RegisterRequest struct {
	Email           string `form:"email" json:"email"`
	UserName        string `form:"user_name" json:"user_name"`
	FullName        string `form:"full_name" json:"full_name"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
	City            string `form:"city" json:"city"`
	DateOfBirth     string `form:"date_of_birth" json:"date_of_birth"`
	ProfilePicture  []byte `form:"-" json:"-"`
}

// Normalize trims the text fields. Call it before Validate.
func (r *RegisterRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.UserName = strings.TrimSpace(r.UserName)
	r.FullName = strings.TrimSpace(r.FullName)
	r.City = strings.TrimSpace(r.City)
	r.DateOfBirth = strings.TrimSpace(r.DateOfBirth)
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.UserName,
			validation.Required.Error("user name is required"),
			validation.Length(3, 64),
			validation.Match(userNamePattern).Error("user name may only contain letters, digits and ._@+-"),
		),
		validation.Field(&r.FullName,
			validation.Required.Error("full name is required"),
			validation.Length(2, 100),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(6, 100).Error("password must be 6-100 characters"),
		),
		validation.Field(&r.ConfirmPassword,
			validation.Required.Error("confirm password is required"),
			validation.In(r.Password).Error("the password and confirmation password do not match"),
		),
		validation.Field(&r.City, validation.Length(0, 100)),
		validation.Field(&r.DateOfBirth,
			validation.When(r.DateOfBirth != "",
				validation.Date(DateOfBirthLayout).Error("date of birth must be YYYY-MM-DD"),
			),
		),
	)
}

// ParsedDateOfBirth returns nil for an empty value.
func (r RegisterRequest) ParsedDateOfBirth() (*time.Time, error) {
	if r.DateOfBirth == "" {
		return nil, nil
	}
	t, err := time.Parse(DateOfBirthLayout, r.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateOfBirth
	}
	return &t, nil
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserDTO   `json:"user"`
}

// UserDTO is the public view of a user.
type UserDTO struct {
	ID             uuid.UUID `json:"id"`
	UserName       string    `json:"user_name"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	City           string    `json:"city,omitempty"`
	DateOfBirth    string    `json:"date_of_birth,omitempty"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	Roles          []Role    `json:"roles"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToUserDTO(u *User) *UserDTO {
	dto := &UserDTO{
		ID:             u.ID,
		UserName:       u.UserName,
		Email:          u.Email,
		FullName:       u.FullName,
		City:           u.City,
		ProfilePicture: u.ProfilePicture,
		Roles:          u.Roles,
		CreatedAt:      u.CreatedAt,
	}
	if dto.Roles == nil {
		dto.Roles = []Role{}
	}
	if u.DateOfBirth != nil {
		dto.DateOfBirth = u.DateOfBirth.Format(DateOfBirthLayout)
	}
	return dto
}
