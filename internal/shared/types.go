package shared

import (
	"context"

	"github.com/hibiken/asynq"
)

// Asynq task types
const (
	TypeSendSantaAssignedEmail = "email:santa_assigned"
	TypeProcessAvatar          = "user:process_avatar"
)

// Asynq queues
const (
	QueueDefault = "default"
	QueueLow     = "low"
)

// SantaAssignedPayload is enqueued after an article names its Santa.
type SantaAssignedPayload struct {
	SantaEmail   string `json:"santaEmail"`
	SantaName    string `json:"santaName"`
	AuthorName   string `json:"authorName"`
	ArticleID    int64  `json:"articleId"`
	ArticleTitle string `json:"articleTitle"`
	ArticleURL   string `json:"articleUrl"`
}

// ProcessAvatarPayload points the worker at an uploaded original.
type ProcessAvatarPayload struct {
	UserID      string `json:"userId"`
	OriginalKey string `json:"originalKey"`
}

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
