package user

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)

	// LoadPrincipal reloads the user so role grants apply without re-login.
	LoadPrincipal(ctx context.Context, userID uuid.UUID) (*Principal, error)
}

// AvatarService builds resized variants of an uploaded profile picture.
type AvatarService interface {
	ProcessAvatar(ctx context.Context, userID uuid.UUID, originalKey string) error
}
