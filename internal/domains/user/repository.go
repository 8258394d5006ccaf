package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository is the data access contract for users and their roles.
type Repository interface {
	// Create inserts the user and fills ID and timestamps.
	// Returns ErrEmailAlreadyExists or ErrUserNameAlreadyExists on unique violations.
	Create(ctx context.Context, u *User) error

	// FindByID is served from cache when possible.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUserName(ctx context.Context, userName string) (*User, error)

	// FindByUserNameOrFullName matches either column exactly.
	// A user-name match wins when both exist.
	FindByUserNameOrFullName(ctx context.Context, value string) (*User, error)

	ExistsByEmailOrUserName(ctx context.Context, email, userName string) (emailTaken, userNameTaken bool, err error)

	// GrantRoleWithTx adds role to the user. Granting an existing role is a no-op.
	GrantRoleWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, role Role) error

	UpdateProfilePicture(ctx context.Context, userID uuid.UUID, url string) error

	// InvalidateCache drops the cached copy of the user.
	InvalidateCache(ctx context.Context, userID uuid.UUID)
}
