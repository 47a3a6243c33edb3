package attendance

import (
	"errors"

	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/workhours"
)

// Attendance domain errors
var (
	// Lifecycle errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNoCheckIn         = errors.New("no check-in record for today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidStatus      = errors.New("invalid attendance status")
	ErrPersistence        = errors.New("attendance store failure")

	// ErrInvalidInterval means clock-out was not after clock-in; a defect, not user error.
	ErrInvalidInterval = workhours.ErrInvalidInterval
)
