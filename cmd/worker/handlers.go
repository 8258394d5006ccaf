package main

import (
	"github.com/hibiken/asynq"

	userJob "blog-backend/internal/domains/user/job"
	"blog-backend/internal/infrastructure/email"
	emailJob "blog-backend/internal/infrastructure/email/job"
	"blog-backend/internal/shared"
	"blog-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	santaAssigned *emailJob.SantaAssignedEmailHandler
	processAvatar *userJob.ProcessAvatarHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	emailSvc := email.NewSMTPEmailService(c.Config.SMTP)

	return &HandlerRegistry{
		santaAssigned: emailJob.NewSantaAssignedEmailHandler(emailSvc),
		processAvatar: userJob.NewProcessAvatarHandler(c.AvatarService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSendSantaAssignedEmail, h.santaAssigned.ProcessTask)
	mux.HandleFunc(shared.TypeProcessAvatar, h.processAvatar.ProcessTask)
}
