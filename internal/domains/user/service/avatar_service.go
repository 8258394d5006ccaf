package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"blog-backend/internal/domains/user"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/pkg/logger"
)

// AvatarProcessor renders the picture variants.
type AvatarProcessor interface {
	ProcessAvatar(data []byte) (map[string][]byte, error)
}

// profileVariant is the variant stored as the user's profile picture.
const profileVariant = "medium"

type avatarService struct {
	repo      user.Repository
	storage   storage.ObjectStorage
	processor AvatarProcessor
}

func NewAvatarService(repo user.Repository, objectStorage storage.ObjectStorage, processor AvatarProcessor) user.AvatarService {
	return &avatarService{repo: repo, storage: objectStorage, processor: processor}
}

func (s *avatarService) ProcessAvatar(ctx context.Context, userID uuid.UUID, originalKey string) error {
	original, err := s.storage.Download(ctx, originalKey)
	if err != nil {
		return fmt.Errorf("download original: %w", err)
	}

	variants, err := s.processor.ProcessAvatar(original)
	if err != nil {
		return fmt.Errorf("process avatar: %w", err)
	}

	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)

	var profileURL string
	uploaded := make([]string, 0, len(names))
	for _, name := range names {
		key := user.ProfilePictureVariantKey(userID, name)
		url, err := s.storage.Upload(ctx, key, variants[name], "image/jpeg")
		if err != nil {
			s.removeObjects(ctx, uploaded)
			return fmt.Errorf("upload %s: %w", name, err)
		}
		uploaded = append(uploaded, key)
		if name == profileVariant {
			profileURL = url
		}
	}
	if profileURL == "" {
		return fmt.Errorf("variant %q was not produced", profileVariant)
	}

	if err := s.repo.UpdateProfilePicture(ctx, userID, profileURL); err != nil {
		return err
	}

	logger.Info("avatar processed", map[string]interface{}{
		"user_id":  userID.String(),
		"variants": len(variants),
	})
	return nil
}

// removeObjects drops variants of a failed run so a retry starts clean.
func (s *avatarService) removeObjects(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			logger.Error("failed to remove avatar variant "+key, err)
		}
	}
}
