package middleware

import (
	"net/http"

	"github.com/teamcollab/teamcollab-backend-go/internal/domain/user"
	"github.com/teamcollab/teamcollab-backend-go/internal/handler/http/response"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current, err := CurrentUser(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if current.Role != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
