package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/teamcollab/teamcollab-backend-go/internal/domain/user"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{
		db: db,
	}
}

const userSelect = `
	SELECT u.id, u.email, u.name, u.password_hash, u.role, u.department_id, u.slack_user_id,
		   u.is_active, u.login_ip, u.last_login, u.created_at, u.updated_at,
		   d.name AS department_name
	FROM users u
	LEFT JOIN departments d ON d.id = u.department_id
`

func (r *userRepositoryImpl) getOne(ctx context.Context, where string, arg any) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	var u user.User
	err := q.QueryRow(ctx, userSelect+" WHERE "+where+" AND u.is_active = TRUE", arg).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.Role,
		&u.DepartmentID,
		&u.SlackUserID,
		&u.IsActive,
		&u.LoginIP,
		&u.LastLogin,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.DepartmentName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getOne(ctx, "u.id = $1", id)
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, "LOWER(u.email) = LOWER($1)", email)
}

// GetBySlackUserID implements user.UserRepository.
func (r *userRepositoryImpl) GetBySlackUserID(ctx context.Context, slackUserID string) (user.User, error) {
	return r.getOne(ctx, "u.slack_user_id = $1", slackUserID)
}

// CountActive implements user.UserRepository.
func (r *userRepositoryImpl) CountActive(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_active = TRUE`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active users: %w", err)
	}

	return count, nil
}

// UpdateLastLogin implements user.UserRepository.
func (r *userRepositoryImpl) UpdateLastLogin(ctx context.Context, id string, ip string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE users
		SET login_ip = $2, last_login = NOW(), updated_at = NOW()
		WHERE id = $1
	`, id, ip)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}
