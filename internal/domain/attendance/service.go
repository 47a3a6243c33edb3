package attendance

import (
	"context"
)

// AttendanceService owns the check-in/check-out lifecycle and the reporting reads
type AttendanceService interface {
	// CheckIn opens today's record for the user
	CheckIn(ctx context.Context, userID string) (CheckInResponse, error)

	// CheckOut closes today's record and stores the work hours
	CheckOut(ctx context.Context, userID string) (CheckOutResponse, error)

	// GetTodayStatus reports today's state with live work hours for an open session
	GetTodayStatus(ctx context.Context, userID string) (TodayStatusResponse, error)

	// GetByDate returns a single day's record for the user, nil when there is none
	GetByDate(ctx context.Context, userID string, date string) (*AttendanceResponse, error)

	GetMyAttendance(ctx context.Context, userID string, filter MonthFilter) ([]AttendanceResponse, error)
	GetMyStats(ctx context.Context, userID string, filter MonthFilter) (MyStatsResponse, error)

	// ListAll and GetAllStats are admin scope
	ListAll(ctx context.Context, filter AllAttendanceFilter) ([]AttendanceResponse, error)
	GetAllStats(ctx context.Context, filter MonthFilter) (AllStatsResponse, error)

	// ExportAll renders ListAll as an xlsx workbook
	ExportAll(ctx context.Context, filter AllAttendanceFilter) ([]byte, error)
}
