package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/user"
	"blog-backend/internal/shared"
)

// ProcessAvatarHandler resizes an uploaded profile picture.
type ProcessAvatarHandler struct {
	avatarService user.AvatarService
}

func NewProcessAvatarHandler(avatarService user.AvatarService) *ProcessAvatarHandler {
	return &ProcessAvatarHandler{avatarService: avatarService}
}

func (h *ProcessAvatarHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ProcessAvatarPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ProcessAvatar payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", payload.UserID, asynq.SkipRetry)
	}

	log.Info().
		Str("user_id", payload.UserID).
		Str("key", payload.OriginalKey).
		Msg("Processing profile picture")

	if err := h.avatarService.ProcessAvatar(ctx, userID, payload.OriginalKey); err != nil {
		log.Error().
			Err(err).
			Str("user_id", payload.UserID).
			Msg("Failed to process profile picture")
		return fmt.Errorf("process avatar: %w", err)
	}
	return nil
}
