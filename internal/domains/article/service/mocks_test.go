package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"blog-backend/internal/domains/article"
	"blog-backend/internal/domains/category"
	"blog-backend/internal/domains/user"
	"blog-backend/pkg/database"
)

type mockArticleRepo struct {
	mock.Mock
}

func (m *mockArticleRepo) List(ctx context.Context) ([]article.Article, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]article.Article), args.Error(1)
}

func (m *mockArticleRepo) FindByID(ctx context.Context, id int64) (*article.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*article.Article), args.Error(1)
}

func (m *mockArticleRepo) ListForExport(ctx context.Context) ([]article.Article, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]article.Article), args.Error(1)
}

// RunInTx calls fn with a nil tx unless an error is configured.
func (m *mockArticleRepo) RunInTx(ctx context.Context, fn database.TxFunc) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return err
	}
	return fn(nil)
}

func (m *mockArticleRepo) CreateWithTx(ctx context.Context, tx pgx.Tx, a *article.Article) error {
	args := m.Called(ctx, tx, a)
	if args.Error(0) == nil {
		a.ID = 42
	}
	return args.Error(0)
}

func (m *mockArticleRepo) UpdateWithTx(ctx context.Context, tx pgx.Tx, a *article.Article) error {
	return m.Called(ctx, tx, a).Error(0)
}

func (m *mockArticleRepo) ReplaceTagsWithTx(ctx context.Context, tx pgx.Tx, articleID int64, names []string) ([]article.Tag, error) {
	args := m.Called(ctx, tx, articleID, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]article.Tag), args.Error(1)
}

func (m *mockArticleRepo) DeleteWithTx(ctx context.Context, tx pgx.Tx, id int64) error {
	return m.Called(ctx, tx, id).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *mockUserRepo) FindByUserName(ctx context.Context, userName string) (*user.User, error) {
	return m.user(m.Called(ctx, userName))
}

func (m *mockUserRepo) FindByUserNameOrFullName(ctx context.Context, value string) (*user.User, error) {
	return m.user(m.Called(ctx, value))
}

func (m *mockUserRepo) user(args mock.Arguments) (*user.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmailOrUserName(ctx context.Context, email, userName string) (bool, bool, error) {
	args := m.Called(ctx, email, userName)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *mockUserRepo) GrantRoleWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, role user.Role) error {
	return m.Called(ctx, tx, userID, role).Error(0)
}

func (m *mockUserRepo) UpdateProfilePicture(ctx context.Context, userID uuid.UUID, url string) error {
	return m.Called(ctx, userID, url).Error(0)
}

func (m *mockUserRepo) InvalidateCache(ctx context.Context, userID uuid.UUID) {
	m.Called(ctx, userID)
}

type mockCategories struct {
	mock.Mock
}

func (m *mockCategories) List(ctx context.Context) ([]category.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]category.Category), args.Error(1)
}

func (m *mockCategories) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
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
