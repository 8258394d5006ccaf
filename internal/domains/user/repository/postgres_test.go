package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/user"
	infracache "blog-backend/internal/infrastructure/cache"
)

var userColumns = []string{
	"id", "user_name", "email", "full_name", "password_hash",
	"city", "date_of_birth", "profile_picture", "created_at", "updated_at", "roles",
}

func newTestRepo(t *testing.T) (user.Repository, pgxmock.PgxPoolIface, *miniredis.Miniredis) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewPostgresRepository(mock, infracache.NewRedisCache(client)), mock, mr
}

func TestCreate_ReturnsGeneratedFields(t *testing.T) {
	repo, mock, _ := newTestRepo(t)
	id := uuid.New()
	now := time.Now()

	u := &user.User{UserName: "alice", Email: "alice@example.com", FullName: "Alice Liddell", PasswordHash: "hash"}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("alice", "alice@example.com", "Alice Liddell", "hash", "", (*time.Time)(nil), (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id, now, now))

	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, id, u.ID)
	assert.Equal(t, []user.Role{}, u.Roles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_MapsUniqueViolations(t *testing.T) {
	tests := []struct {
		constraint string
		want       error
	}{
		{"users_email_key", user.ErrEmailAlreadyExists},
		{"users_user_name_key", user.ErrUserNameAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			repo, mock, _ := newTestRepo(t)
			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
				WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: tt.constraint})

			err := repo.Create(context.Background(), &user.User{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFindByID_CachesResult(t *testing.T) {
	repo, mock, mr := newTestRepo(t)
	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE u.id = $1")).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(
			id, "nick", "nick@north.pole", "Saint Nick", "hash",
			"Rovaniemi", nil, nil, now, now, []string{"Santa"},
		))

	u, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []user.Role{user.RoleSanta}, u.Roles)
	assert.True(t, mr.Exists("user:"+id.String()))

	// second read is served from cache, no new query expected
	again, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "nick", again.UserName)
	assert.Empty(t, again.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, _ := newTestRepo(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE u.id = $1")).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(userColumns))

	_, err := repo.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestFindByUserNameOrFullName(t *testing.T) {
	repo, mock, _ := newTestRepo(t)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE u.user_name = $1 OR u.full_name = $1")).
		WithArgs("Saint Nick").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(
			id, "nick", "nick@north.pole", "Saint Nick", "hash",
			"", nil, nil, now, now, []string{},
		))

	u, err := repo.FindByUserNameOrFullName(context.Background(), "Saint Nick")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Empty(t, u.Roles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsByEmailOrUserName(t *testing.T) {
	repo, mock, _ := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs("a@b.c", "alice").
		WillReturnRows(pgxmock.NewRows([]string{"email", "user_name"}).AddRow(true, false))

	emailTaken, nameTaken, err := repo.ExistsByEmailOrUserName(context.Background(), "a@b.c", "alice")
	require.NoError(t, err)
	assert.True(t, emailTaken)
	assert.False(t, nameTaken)
}

func TestGrantRoleWithTx(t *testing.T) {
	repo, mock, _ := newTestRepo(t)
	ctx := context.Background()
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_roles")).
		WithArgs(id, "Santa").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	tx, err := mock.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.GrantRoleWithTx(ctx, tx, id, user.RoleSanta))
	require.NoError(t, tx.Commit(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrantRoleWithTx_RejectsUnknownRole(t *testing.T) {
	repo, _, _ := newTestRepo(t)
	err := repo.GrantRoleWithTx(context.Background(), nil, uuid.New(), user.Role("Elf"))
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestUpdateProfilePicture_InvalidatesCache(t *testing.T) {
	repo, mock, mr := newTestRepo(t)
	id := uuid.New()
	require.NoError(t, mr.Set("user:"+id.String(), `{"id":"`+id.String()+`"}`))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET profile_picture")).
		WithArgs(id, "http://minio/blog/avatars/x/medium.jpg").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.UpdateProfilePicture(context.Background(), id, "http://minio/blog/avatars/x/medium.jpg"))
	assert.False(t, mr.Exists("user:"+id.String()))
}

func TestUpdateProfilePicture_Errors(t *testing.T) {
	repo, mock, _ := newTestRepo(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, repo.UpdateProfilePicture(context.Background(), id, "u"), user.ErrUserNotFound)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("conn reset"))
	assert.ErrorContains(t, repo.UpdateProfilePicture(context.Background(), id, "u"), "conn reset")
}
