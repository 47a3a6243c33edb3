package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (LoginResponse, error)
	Me(ctx context.Context, userID string) (UserResponse, error)
	Logout(ctx context.Context, token string) error
}
