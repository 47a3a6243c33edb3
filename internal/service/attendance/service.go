package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/teamcollab/teamcollab-backend-go/internal/domain/attendance"
	"github.com/teamcollab/teamcollab-backend-go/internal/domain/user"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/clock"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/export"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/validator"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/workhours"
)

const placeholder = "-"

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	user.UserRepository
	clock  clock.Clock
	labels attendance.LabelTable
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	clk clock.Clock,
	locale string,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		UserRepository:       userRepo,
		clock:                clk,
		labels:               attendance.Labels(locale),
	}
}

// storeError wraps a store failure as ErrPersistence. Lifecycle sentinels pass through.
func storeError(op, userID, date string, err error) error {
	for _, sentinel := range []error{
		attendance.ErrAlreadyCheckedIn,
		attendance.ErrAlreadyCheckedOut,
		attendance.ErrAttendanceNotFound,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	slog.Error("Attendance store failure", "operation", op, "user_id", userID, "date", date, "error", err)
	return fmt.Errorf("%w: %s: %w", attendance.ErrPersistence, op, err)
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, userID string) (attendance.CheckInResponse, error) {
	today := s.clock.Today()

	existing, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.CheckInResponse{}, storeError("check_in", userID, today, err)
	}
	if existing != nil {
		return attendance.CheckInResponse{}, attendance.ErrAlreadyCheckedIn
	}

	now := s.clock.Now()
	created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		UserID:  userID,
		Date:    today,
		ClockIn: &now,
		Status:  attendance.StatusPresent,
	})
	if err != nil {
		// ErrAlreadyCheckedIn here means a concurrent check-in won the unique constraint
		return attendance.CheckInResponse{}, storeError("check_in", userID, today, err)
	}

	slog.Info("User checked in", "user_id", userID, "date", today, "attendance_id", created.ID)

	return attendance.CheckInResponse{
		CheckIn: clock.FormatTime(s.clock, now),
		Date:    today,
	}, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, userID string) (attendance.CheckOutResponse, error) {
	today := s.clock.Today()

	existing, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.CheckOutResponse{}, storeError("check_out", userID, today, err)
	}
	if existing == nil || existing.ClockIn == nil {
		return attendance.CheckOutResponse{}, attendance.ErrNoCheckIn
	}
	if existing.IsCompleted() {
		return attendance.CheckOutResponse{}, attendance.ErrAlreadyCheckedOut
	}

	now := s.clock.Now()
	hours, err := workhours.Compute(*existing.ClockIn, now)
	if err != nil {
		slog.Error("Invalid attendance interval", "user_id", userID, "date", today, "attendance_id", existing.ID, "error", err)
		return attendance.CheckOutResponse{}, err
	}

	if err := s.AttendanceRepository.UpdateClockOut(ctx, existing.ID, now, hours); err != nil {
		return attendance.CheckOutResponse{}, storeError("check_out", userID, today, err)
	}

	slog.Info("User checked out", "user_id", userID, "date", today, "work_hours", hours.StringFixed(2))

	return attendance.CheckOutResponse{
		CheckOut:       clock.FormatTime(s.clock, now),
		WorkHours:      workhours.Format(hours),
		WorkHoursValue: hours.StringFixed(2),
	}, nil
}

// GetTodayStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetTodayStatus(ctx context.Context, userID string) (attendance.TodayStatusResponse, error) {
	today := s.clock.Today()

	record, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.TodayStatusResponse{}, storeError("get_today_status", userID, today, err)
	}
	if record == nil {
		return attendance.TodayStatusResponse{IsWorking: false}, nil
	}

	var response attendance.TodayStatusResponse
	response.IsWorking = record.IsWorking()
	response.CheckIn = s.formatTimePtr(record.ClockIn)
	response.CheckOut = s.formatTimePtr(record.ClockOut)

	switch {
	case record.WorkHours != nil:
		formatted := workhours.Format(*record.WorkHours)
		response.WorkHours = &formatted
	case record.IsWorking():
		// Live figure for an open session, never persisted
		formatted := workhours.Format(workhours.Live(*record.ClockIn, s.clock.Now()))
		response.WorkHours = &formatted
	}

	return response, nil
}

// GetByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetByDate(ctx context.Context, userID string, date string) (*attendance.AttendanceResponse, error) {
	if _, ok := validator.IsValidDate(date); !ok {
		return nil, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}

	record, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, storeError("get_by_date", userID, date, err)
	}
	if record == nil {
		return nil, nil
	}

	response := s.toResponse(*record)
	return &response, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, userID string, filter attendance.MonthFilter) ([]attendance.AttendanceResponse, error) {
	if err := s.resolveMonth(&filter); err != nil {
		return nil, err
	}

	records, err := s.AttendanceRepository.ListByUserAndMonth(ctx, userID, filter.Month)
	if err != nil {
		return nil, storeError("list_mine", userID, filter.Month, err)
	}

	return s.toResponses(records), nil
}

// GetMyStats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyStats(ctx context.Context, userID string, filter attendance.MonthFilter) (attendance.MyStatsResponse, error) {
	if err := s.resolveMonth(&filter); err != nil {
		return attendance.MyStatsResponse{}, err
	}

	agg, err := s.AttendanceRepository.AggregateByUserAndMonth(ctx, userID, filter.Month)
	if err != nil {
		return attendance.MyStatsResponse{}, storeError("list_mine_stats", userID, filter.Month, err)
	}

	return attendance.MyStatsResponse{
		Month:        filter.Month,
		WorkDays:     agg.WorkDays,
		AvgWorkHours: workhours.Format(agg.AvgWorkHours),
		LateCount:    agg.LateCount,
		AbsentCount:  agg.AbsentCount,
	}, nil
}

// ListAll implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAll(ctx context.Context, filter attendance.AllAttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if filter.Month == "" {
		filter.Month = clock.CurrentMonth(s.clock)
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.AttendanceRepository.ListByMonth(ctx, filter.Month, filter.StatusFilter())
	if err != nil {
		return nil, storeError("list_all", "", filter.Month, err)
	}

	return s.toResponses(records), nil
}

// GetAllStats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAllStats(ctx context.Context, filter attendance.MonthFilter) (attendance.AllStatsResponse, error) {
	if err := s.resolveMonth(&filter); err != nil {
		return attendance.AllStatsResponse{}, err
	}
	today := s.clock.Today()

	totalUsers, err := s.UserRepository.CountActive(ctx)
	if err != nil {
		return attendance.AllStatsResponse{}, storeError("list_all_stats", "", today, err)
	}

	// Counts are today's snapshot regardless of the requested month
	daily, err := s.AttendanceRepository.AggregateByDate(ctx, today)
	if err != nil {
		return attendance.AllStatsResponse{}, storeError("list_all_stats", "", today, err)
	}

	return attendance.AllStatsResponse{
		Month:      filter.Month,
		Date:       today,
		TotalUsers: totalUsers,
		Present:    daily.PresentCount,
		Late:       daily.LateCount,
		Absent:     daily.AbsentCount,
	}, nil
}

// ExportAll implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportAll(ctx context.Context, filter attendance.AllAttendanceFilter) ([]byte, error) {
	if filter.Month == "" {
		filter.Month = clock.CurrentMonth(s.clock)
	}

	rows, err := s.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	data, err := export.AttendanceWorkbook(filter.Month, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to export attendance: %w", err)
	}
	return data, nil
}

func (s *AttendanceServiceImpl) resolveMonth(filter *attendance.MonthFilter) error {
	if filter.Month == "" {
		filter.Month = clock.CurrentMonth(s.clock)
	}
	return filter.Validate()
}

func (s *AttendanceServiceImpl) toResponses(records []attendance.Attendance) []attendance.AttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, s.toResponse(record))
	}
	return responses
}

func (s *AttendanceServiceImpl) toResponse(record attendance.Attendance) attendance.AttendanceResponse {
	response := attendance.AttendanceResponse{
		ID:         record.ID,
		UserID:     record.UserID,
		Department: s.labels.Unassigned,
		Date:       record.Date,
		CheckIn:    placeholder,
		CheckOut:   placeholder,
		WorkHours:  placeholder,
		Status:     s.labels.Status(record.Status),
		StatusCode: record.Status,
	}
	if record.UserName != nil {
		response.UserName = *record.UserName
	}
	if record.DepartmentName != nil && *record.DepartmentName != "" {
		response.Department = *record.DepartmentName
	}
	if record.ClockIn != nil {
		response.CheckIn = clock.FormatTime(s.clock, *record.ClockIn)
	}
	if record.ClockOut != nil {
		response.CheckOut = clock.FormatTime(s.clock, *record.ClockOut)
	}
	if record.WorkHours != nil {
		response.WorkHours = workhours.Format(*record.WorkHours)
	}
	return response
}

func (s *AttendanceServiceImpl) formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := clock.FormatTime(s.clock, *t)
	return &formatted
}
