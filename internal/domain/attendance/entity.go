package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attendance is one record per (user, calendar day).
// WorkHours is set exactly when ClockOut is set.
type Attendance struct {
	ID        string
	UserID    string
	Date      string // YYYY-MM-DD in the deployment timezone
	ClockIn   *time.Time
	ClockOut  *time.Time
	WorkHours *decimal.Decimal
	Status    Status
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	UserName       *string
	DepartmentName *string
}

// IsWorking reports whether the user has clocked in and not yet out.
func (a *Attendance) IsWorking() bool {
	return a.ClockIn != nil && a.ClockOut == nil
}

// IsCompleted reports whether the day's lifecycle is finished.
func (a *Attendance) IsCompleted() bool {
	return a.ClockOut != nil
}

// MonthlyAggregate is derived per user and month, never stored.
type MonthlyAggregate struct {
	WorkDays     int
	AvgWorkHours decimal.Decimal
	LateCount    int
	AbsentCount  int
}

// DailyAggregate is the organization-wide snapshot for one day.
type DailyAggregate struct {
	PresentCount int
	LateCount    int
	AbsentCount  int
}
