package attendance

import (
	"strings"

	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/validator"
)

// ========================================
// FILTER DTOs
// ========================================

type MonthFilter struct {
	Month string `json:"month"` // YYYY-MM, empty means current month
}

func (f *MonthFilter) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(f.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AllAttendanceFilter struct {
	Month  string  `json:"month"`
	Status *string `json:"status,omitempty"` // nil or "all" means no filter
}

func (f *AllAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(f.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if f.Status != nil {
		normalized := strings.ToLower(strings.TrimSpace(*f.Status))
		if normalized == "" || normalized == "all" {
			f.Status = nil
		} else if status, err := ParseStatus(normalized); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: err.Error() + ": must be one of all, present, absent, late, half_day, leave, remote",
			})
		} else {
			value := status.String()
			f.Status = &value
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// StatusFilter returns the typed status, nil when every status is wanted.
func (f *AllAttendanceFilter) StatusFilter() *Status {
	if f.Status == nil {
		return nil
	}
	s := Status(*f.Status)
	return &s
}

// ========================================
// RESPONSE DTOs
// ========================================

type CheckInResponse struct {
	CheckIn string `json:"checkIn"` // HH:MM
	Date    string `json:"date"`
}

type CheckOutResponse struct {
	CheckOut       string `json:"checkOut"`
	WorkHours      string `json:"workHours"` // "9h 30m"
	WorkHoursValue string `json:"workHoursValue"`
}

type TodayStatusResponse struct {
	IsWorking bool    `json:"isWorking"`
	CheckIn   *string `json:"checkIn"`
	CheckOut  *string `json:"checkOut"`
	WorkHours *string `json:"workHours"`
}

type AttendanceResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	Department string `json:"department"`
	Date       string `json:"date"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
	WorkHours  string `json:"workHours"`
	Status     string `json:"status"`
	StatusCode Status `json:"statusCode"`
}

type MyStatsResponse struct {
	Month        string `json:"month"`
	WorkDays     int    `json:"workDays"`
	AvgWorkHours string `json:"avgWorkHours"`
	LateCount    int    `json:"lateCount"`
	AbsentCount  int    `json:"absentCount"`
}

type AllStatsResponse struct {
	Month      string `json:"month"`
	Date       string `json:"date"`
	TotalUsers int    `json:"totalUsers"`
	Present    int    `json:"present"`
	Late       int    `json:"late"`
	Absent     int    `json:"absent"`
}
