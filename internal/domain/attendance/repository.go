package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceRepository is the Attendance Store. At most one record exists per
// (user_id, date); the storage layer enforces it with a unique constraint.
type AttendanceRepository interface {
	// GetByUserAndDate returns nil, nil when the user has no record for date
	GetByUserAndDate(ctx context.Context, userID string, date string) (*Attendance, error)

	// Create inserts a record, returning ErrAlreadyCheckedIn on a (user, date) conflict
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// UpdateClockOut closes an open record. ErrAlreadyCheckedOut when the record
	// is already closed, ErrAttendanceNotFound when it does not exist.
	UpdateClockOut(ctx context.Context, id string, clockOut time.Time, workHours decimal.Decimal) error

	// ListByUserAndMonth returns the user's records ordered by date desc
	ListByUserAndMonth(ctx context.Context, userID string, month string) ([]Attendance, error)

	// ListByMonth returns all users' records ordered by date desc, user name asc
	ListByMonth(ctx context.Context, month string, status *Status) ([]Attendance, error)

	AggregateByUserAndMonth(ctx context.Context, userID string, month string) (MonthlyAggregate, error)
	AggregateByDate(ctx context.Context, date string) (DailyAggregate, error)

	// ListUsersWithoutRecord returns active user IDs that have no record for date
	ListUsersWithoutRecord(ctx context.Context, date string) ([]string, error)
}
