package user

import (
	"time"

	"github.com/google/uuid"
)

// User maps to the users table plus its granted roles.
type User struct {
	ID             uuid.UUID  `json:"id"`
	UserName       string     `json:"user_name"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name"`
	PasswordHash   string     `json:"-"`
	City           string     `json:"city"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	ProfilePicture *string    `json:"profile_picture,omitempty"`
	Roles          []Role     `json:"roles"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Role is a closed set of role names stored in the roles table.
type Role string

const (
	RoleAdmin Role = "Admin" // full access
	RoleSanta Role = "Santa" // granted when named as an article's Santa
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSanta:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID   uuid.UUID
	UserName string
	Roles    []Role
}

// NewPrincipal builds the principal from a freshly loaded user.
func NewPrincipal(u *User) *Principal {
	roles := make([]Role, len(u.Roles))
	copy(roles, u.Roles)
	return &Principal{UserID: u.ID, UserName: u.UserName, Roles: roles}
}

// HasAnyRole reports whether the principal holds at least one of roles.
// A nil principal has no roles.
func (p *Principal) HasAnyRole(roles ...Role) bool {
	if p == nil {
		return false
	}
	for _, have := range p.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

func (p *Principal) IsAdmin() bool {
	return p.HasAnyRole(RoleAdmin)
}

// ProfilePictureKey is the object key of a user's uploaded original picture.
func ProfilePictureKey(userID uuid.UUID, ext string) string {
	return "avatars/" + userID.String() + "/original." + ext
}

// ProfilePictureVariantKey is the object key of a processed picture variant.
func ProfilePictureVariantKey(userID uuid.UUID, variant string) string {
	return "avatars/" + userID.String() + "/" + variant + ".jpg"
}

// ProfilePicturePrefix is the folder holding all of a user's pictures.
func ProfilePicturePrefix(userID uuid.UUID) string {
	return "avatars/" + userID.String() + "/"
}
