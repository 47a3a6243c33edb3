package middleware

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
	"github.com/teamcollab/teamcollab-backend-go/internal/domain/auth"
	"github.com/teamcollab/teamcollab-backend-go/internal/domain/user"
)

// Principal is the identity handlers act on behalf of.
type Principal struct {
	ID   string
	Role user.Role
}

// CurrentUser extracts the authenticated principal from verified token claims.
func CurrentUser(ctx context.Context) (Principal, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Principal{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Principal{}, auth.ErrInvalidToken
	}

	role, ok := claims["role"].(string)
	if !ok {
		return Principal{}, auth.ErrInvalidToken
	}

	return Principal{ID: userID, Role: user.Role(role)}, nil
}
