package user

import (
	"context"
)

// UserRepository reads only active users; inactive rows behave as missing.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetBySlackUserID(ctx context.Context, slackUserID string) (User, error)
	CountActive(ctx context.Context) (int, error)
	UpdateLastLogin(ctx context.Context, id string, ip string) error
}
