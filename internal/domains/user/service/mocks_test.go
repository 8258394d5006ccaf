package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"blog-backend/internal/domains/user"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockRepo) FindByUserName(ctx context.Context, userName string) (*user.User, error) {
	args := m.Called(ctx, userName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockRepo) FindByUserNameOrFullName(ctx context.Context, value string) (*user.User, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockRepo) ExistsByEmailOrUserName(ctx context.Context, email, userName string) (bool, bool, error) {
	args := m.Called(ctx, email, userName)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *mockRepo) GrantRoleWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, role user.Role) error {
	return m.Called(ctx, tx, userID, role).Error(0)
}

func (m *mockRepo) UpdateProfilePicture(ctx context.Context, userID uuid.UUID, url string) error {
	return m.Called(ctx, userID, url).Error(0)
}

func (m *mockRepo) InvalidateCache(ctx context.Context, userID uuid.UUID) {
	m.Called(ctx, userID)
}

type mockTokens struct {
	mock.Mock
}

func (m *mockTokens) GenerateAccessToken(userID, userName string) (string, error) {
	args := m.Called(userID, userName)
	return args.String(0), args.Error(1)
}

func (m *mockTokens) AccessTTL() time.Duration {
	return time.Hour
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) Download(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockStorage) DeleteByPrefix(ctx context.Context, prefix string) error {
	return m.Called(ctx, prefix).Error(0)
}

type mockImages struct {
	mock.Mock
}

func (m *mockImages) ValidateImage(data []byte) (string, error) {
	args := m.Called(data)
	return args.String(0), args.Error(1)
}

type mockQueue struct {
	mock.Mock
}

func (m *mockQueue) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task.Type(), task.Payload())
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asynq.TaskInfo), args.Error(1)
}
