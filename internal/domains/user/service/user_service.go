package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"golang.org/x/crypto/bcrypt"

	"blog-backend/internal/domains/user"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/internal/shared"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"
)

const bcryptCost = 12

// ImageValidator checks an uploaded picture and returns its format.
type ImageValidator interface {
	ValidateImage(data []byte) (string, error)
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	GenerateAccessToken(userID, userName string) (string, error)
	AccessTTL() time.Duration
}

var _ TokenIssuer = (*jwt.Manager)(nil)

type userService struct {
	repo    user.Repository
	tokens  TokenIssuer
	storage storage.ObjectStorage
	images  ImageValidator
	queue   shared.TaskEnqueuer
}

func NewUserService(
	repo user.Repository,
	tokens TokenIssuer,
	objectStorage storage.ObjectStorage,
	images ImageValidator,
	queue shared.TaskEnqueuer,
) user.Service {
	return &userService{
		repo:    repo,
		tokens:  tokens,
		storage: objectStorage,
		images:  images,
		queue:   queue,
	}
}

// Register creates the account and, when a picture was sent, stores it and
// schedules variant generation. A failed upload does not fail registration.
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	req.Normalize()
	dob, err := req.ParsedDateOfBirth()
	if err != nil {
		return nil, err
	}

	var format string
	if len(req.ProfilePicture) > 0 {
		format, err = s.images.ValidateImage(req.ProfilePicture)
		if err != nil {
			if errors.Is(err, storage.ErrImageTooLarge) {
				return nil, user.ErrProfilePictureTooLarge
			}
			return nil, fmt.Errorf("%w: %v", user.ErrInvalidProfilePicture, err)
		}
	}

	emailTaken, userNameTaken, err := s.repo.ExistsByEmailOrUserName(ctx, req.Email, req.UserName)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, user.ErrEmailAlreadyExists
	}
	if userNameTaken {
		return nil, user.ErrUserNameAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		UserName:     req.UserName,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		City:         req.City,
		DateOfBirth:  dob,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	if format != "" {
		if url, err := s.storeProfilePicture(ctx, u.ID, req.ProfilePicture, format); err != nil {
			logger.Error("failed to store profile picture", err)
		} else {
			u.ProfilePicture = &url
		}
	}

	logger.Info("user registered", map[string]interface{}{"user_id": u.ID.String(), "user_name": u.UserName})
	return user.ToUserDTO(u), nil
}

func (s *userService) storeProfilePicture(ctx context.Context, userID uuid.UUID, data []byte, format string) (string, error) {
	key := user.ProfilePictureKey(userID, storage.Extension(format))

	url, err := s.storage.Upload(ctx, key, data, storage.ContentType(format))
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdateProfilePicture(ctx, userID, url); err != nil {
		if derr := s.storage.DeleteByPrefix(ctx, user.ProfilePicturePrefix(userID)); derr != nil {
			logger.Error("failed to remove orphaned profile picture", derr)
		}
		return "", err
	}

	payload, err := json.Marshal(shared.ProcessAvatarPayload{UserID: userID.String(), OriginalKey: key})
	if err != nil {
		return "", err
	}
	task := asynq.NewTask(shared.TypeProcessAvatar, payload)
	if _, err := s.queue.EnqueueContext(ctx, task, asynq.Queue(shared.QueueLow), asynq.MaxRetry(3)); err != nil {
		// the original stays usable; only the resized variants are missing
		logger.Error("failed to enqueue avatar processing", err)
	}
	return url, nil
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(u.ID.String(), u.UserName)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &user.LoginResponse{
		AccessToken: token,
		ExpiresAt:   time.Now().Add(s.tokens.AccessTTL()),
		User:        *user.ToUserDTO(u),
	}, nil
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.ToUserDTO(u), nil
}

func (s *userService) LoadPrincipal(ctx context.Context, userID uuid.UUID) (*user.Principal, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.NewPrincipal(u), nil
}
