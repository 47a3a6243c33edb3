package response

import (
	"errors"
	"net/http"

	"github.com/teamcollab/teamcollab-backend-go/internal/domain/analytics"
	"github.com/teamcollab/teamcollab-backend-go/internal/domain/attendance"
	"github.com/teamcollab/teamcollab-backend-go/internal/domain/auth"
	"github.com/teamcollab/teamcollab-backend-go/internal/domain/user"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrNoCheckIn):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, err.Error())

	// Analytics domain errors
	case errors.Is(err, analytics.ErrPersistence):
		InternalServerError(w, "Failed to load visitor analytics")

	// Persistence and interval failures fall through to 500
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
