package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/teamcollab/teamcollab-backend-go/internal/domain/auth"
	"github.com/teamcollab/teamcollab-backend-go/internal/handler/http/response"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/jwt"
)

// TokenFromAccessCookie reads the session token set at login.
func TokenFromAccessCookie(r *http.Request) string {
	cookie, err := r.Cookie(jwt.AccessTokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// TokenFromRequest returns the raw token the same way Verifier finds it.
func TokenFromRequest(r *http.Request) string {
	if token := jwtauth.TokenFromHeader(r); token != "" {
		return token
	}
	return TokenFromAccessCookie(r)
}

// Verifier looks for a token in the Authorization header first, then the access cookie.
func Verifier(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return jwtauth.Verify(ja, jwtauth.TokenFromHeader, TokenFromAccessCookie)
}

func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(TokenFromRequest(r)) {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
