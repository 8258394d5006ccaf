package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/infrastructure/email"
	"blog-backend/internal/shared"
)

// SantaAssignedEmailHandler sends the "you are the Santa" notification.
type SantaAssignedEmailHandler struct {
	emailService email.EmailService
}

func NewSantaAssignedEmailHandler(emailService email.EmailService) *SantaAssignedEmailHandler {
	return &SantaAssignedEmailHandler{emailService: emailService}
}

func (h *SantaAssignedEmailHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.SantaAssignedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal SantaAssigned payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Str("email", payload.SantaEmail).
		Int64("article_id", payload.ArticleID).
		Msg("Processing santa assigned email")

	if err := h.emailService.SendSantaAssignedEmail(ctx, payload); err != nil {
		log.Error().Err(err).Msg("Failed to send santa assigned email")
		return fmt.Errorf("send santa assigned email: %w", err)
	}

	log.Info().
		Str("email", payload.SantaEmail).
		Msg("Santa assigned email sent successfully")
	return nil
}
