package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"blog-backend/internal/domains/user"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/database"
	"blog-backend/pkg/logger"
)

const (
	userCacheTTL = 15 * time.Minute

	uniqueViolation = "23505"
)

// selectUser loads a user with its roles aggregated into a text array.
const selectUser = `
	SELECT
		u.id, u.user_name, u.email, u.full_name, u.password_hash,
		u.city, u.date_of_birth, u.profile_picture, u.created_at, u.updated_at,
		COALESCE(array_agg(r.name ORDER BY r.name) FILTER (WHERE r.name IS NOT NULL), '{}') AS roles
	FROM users u
	LEFT JOIN user_roles ur ON ur.user_id = u.id
	LEFT JOIN roles r ON r.id = ur.role_id
`

type postgresRepository struct {
	pool  database.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool database.Pool, cache cache.Cache) user.Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

func cacheKey(id uuid.UUID) string {
	return "user:" + id.String()
}

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			user_name, email, full_name, password_hash,
			city, date_of_birth, profile_picture
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		u.UserName,
		u.Email,
		u.FullName,
		u.PasswordHash,
		u.City,
		u.DateOfBirth,
		u.ProfilePicture,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			switch pgErr.ConstraintName {
			case "users_email_key":
				return user.ErrEmailAlreadyExists
			case "users_user_name_key":
				return user.ErrUserNameAlreadyExists
			}
		}
		return fmt.Errorf("create user: %w", err)
	}

	if u.Roles == nil {
		u.Roles = []user.Role{}
	}
	return nil
}

// FindByID uses the cache-aside pattern.
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var cached user.User
	if found, err := r.cache.Get(ctx, cacheKey(id), &cached); err == nil && found {
		return &cached, nil
	} else if err != nil {
		logger.Warn("user cache read failed", map[string]interface{}{"user_id": id.String(), "error": err.Error()})
	}

	u, err := r.findOne(ctx, selectUser+` WHERE u.id = $1 GROUP BY u.id`, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, cacheKey(id), u, userCacheTTL); err != nil {
		logger.Warn("user cache write failed", map[string]interface{}{"user_id": id.String(), "error": err.Error()})
	}
	return u, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, selectUser+` WHERE lower(u.email) = lower($1) GROUP BY u.id`, email)
}

func (r *postgresRepository) FindByUserName(ctx context.Context, userName string) (*user.User, error) {
	return r.findOne(ctx, selectUser+` WHERE u.user_name = $1 GROUP BY u.id`, userName)
}

func (r *postgresRepository) FindByUserNameOrFullName(ctx context.Context, value string) (*user.User, error) {
	query := selectUser + `
		WHERE u.user_name = $1 OR u.full_name = $1
		GROUP BY u.id
		ORDER BY (u.user_name = $1) DESC, u.created_at
		LIMIT 1
	`
	return r.findOne(ctx, query, value)
}

func (r *postgresRepository) findOne(ctx context.Context, query string, arg any) (*user.User, error) {
	var (
		u     user.User
		roles []string
	)

	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.UserName,
		&u.Email,
		&u.FullName,
		&u.PasswordHash,
		&u.City,
		&u.DateOfBirth,
		&u.ProfilePicture,
		&u.CreatedAt,
		&u.UpdatedAt,
		&roles,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	u.Roles = make([]user.Role, 0, len(roles))
	for _, name := range roles {
		u.Roles = append(u.Roles, user.Role(name))
	}
	return &u, nil
}

func (r *postgresRepository) ExistsByEmailOrUserName(ctx context.Context, email, userName string) (bool, bool, error) {
	query := `
		SELECT
			EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1)),
			EXISTS (SELECT 1 FROM users WHERE user_name = $2)
	`

	var emailTaken, userNameTaken bool
	if err := r.pool.QueryRow(ctx, query, email, userName).Scan(&emailTaken, &userNameTaken); err != nil {
		return false, false, fmt.Errorf("check user uniqueness: %w", err)
	}
	return emailTaken, userNameTaken, nil
}

// GrantRoleWithTx relies on the (user_id, role_id) primary key for idempotency.
func (r *postgresRepository) GrantRoleWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, role user.Role) error {
	if !role.IsValid() {
		return user.ErrInvalidRole
	}

	query := `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE name = $2
		ON CONFLICT (user_id, role_id) DO NOTHING
	`
	if _, err := tx.Exec(ctx, query, userID, string(role)); err != nil {
		return fmt.Errorf("grant role %s: %w", role, err)
	}
	return nil
}

func (r *postgresRepository) UpdateProfilePicture(ctx context.Context, userID uuid.UUID, url string) error {
	query := `UPDATE users SET profile_picture = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, userID, url)
	if err != nil {
		return fmt.Errorf("update profile picture: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	r.InvalidateCache(ctx, userID)
	return nil
}

func (r *postgresRepository) InvalidateCache(ctx context.Context, userID uuid.UUID) {
	if err := r.cache.Delete(ctx, cacheKey(userID)); err != nil {
		logger.Warn("user cache invalidation failed", map[string]interface{}{"user_id": userID.String(), "error": err.Error()})
	}
}
