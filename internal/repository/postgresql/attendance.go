package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/teamcollab/teamcollab-backend-go/internal/domain/attendance"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/clock"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/database"
)

const uniqueViolation = "23505"

const attendanceColumns = `
	a.id, a.user_id, to_char(a.date, 'YYYY-MM-DD'), a.clock_in, a.clock_out, a.work_hours::text,
	a.status, a.notes, a.created_at, a.updated_at`

const attendanceJoinedColumns = attendanceColumns + `,
	u.name AS user_name,
	d.name AS department_name`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row, joined bool) (attendance.Attendance, error) {
	var att attendance.Attendance
	var workHours *string
	dest := []any{
		&att.ID, &att.UserID, &att.Date, &att.ClockIn, &att.ClockOut, &workHours,
		&att.Status, &att.Notes, &att.CreatedAt, &att.UpdatedAt,
	}
	if joined {
		dest = append(dest, &att.UserName, &att.DepartmentName)
	}
	if err := row.Scan(dest...); err != nil {
		return attendance.Attendance{}, err
	}
	if workHours != nil {
		hours, err := decimal.NewFromString(*workHours)
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("invalid work_hours %q: %w", *workHours, err)
		}
		att.WorkHours = &hours
	}
	return att, nil
}

func collectAttendances(rows pgx.Rows, joined bool) ([]attendance.Attendance, error) {
	defer rows.Close()

	attendances := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows, joined)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return attendances, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceJoinedColumns + `
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		LEFT JOIN departments d ON d.id = u.department_id
		WHERE a.user_id = $1
		  AND a.date = $2::date
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, date), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No record for that day
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	return &att, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	if newAttendance.ID == "" {
		newAttendance.ID = uuid.New().String()
	}

	var workHours *string
	if newAttendance.WorkHours != nil {
		s := newAttendance.WorkHours.StringFixed(2)
		workHours = &s
	}

	query := `
		INSERT INTO attendances (
			id, user_id, date, clock_in, clock_out, work_hours, status, notes, created_at, updated_at
		) VALUES (
			$1, $2, $3::date, $4, $5, $6::numeric, $7, $8, NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.UserID,
		newAttendance.Date,
		newAttendance.ClockIn,
		newAttendance.ClockOut,
		workHours,
		newAttendance.Status,
		newAttendance.Notes,
	).Scan(&newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// UpdateClockOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateClockOut(ctx context.Context, id string, clockOut time.Time, workHours decimal.Decimal) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET clock_out = $2, work_hours = $3::numeric, updated_at = NOW()
		WHERE id = $1
		  AND clock_out IS NULL
	`

	tag, err := q.Exec(ctx, query, id, clockOut, workHours.StringFixed(2))
	if err != nil {
		return fmt.Errorf("failed to update clock out: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// Nothing updated: the record is either gone or was closed by a concurrent call
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM attendances WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check attendance existence: %w", err)
	}
	if !exists {
		return attendance.ErrAttendanceNotFound
	}
	return attendance.ErrAlreadyCheckedOut
}

// ListByUserAndMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUserAndMonth(ctx context.Context, userID string, month string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	start, end, err := clock.MonthRange(month)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + attendanceJoinedColumns + `
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		LEFT JOIN departments d ON d.id = u.department_id
		WHERE a.user_id = $1
		  AND a.date >= $2::date
		  AND a.date < $3::date
		ORDER BY a.date DESC
	`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}

	return collectAttendances(rows, true)
}

// ListByMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByMonth(ctx context.Context, month string, status *attendance.Status) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	start, end, err := clock.MonthRange(month)
	if err != nil {
		return nil, err
	}

	baseWhere := "a.date >= $1::date AND a.date < $2::date"
	args := []interface{}{start, end}
	if status != nil {
		baseWhere += " AND a.status = $3"
		args = append(args, *status)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		LEFT JOIN departments d ON d.id = u.department_id
		WHERE %s
		ORDER BY a.date DESC, u.name ASC
	`, attendanceJoinedColumns, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}

	return collectAttendances(rows, true)
}

// AggregateByUserAndMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) AggregateByUserAndMonth(ctx context.Context, userID string, month string) (attendance.MonthlyAggregate, error) {
	q := GetQuerier(ctx, a.db)

	start, end, err := clock.MonthRange(month)
	if err != nil {
		return attendance.MonthlyAggregate{}, err
	}

	query := `
		SELECT
			COUNT(*) FILTER (WHERE clock_out IS NOT NULL),
			COALESCE(AVG(work_hours) FILTER (WHERE clock_out IS NOT NULL), 0)::text,
			COUNT(*) FILTER (WHERE status = 'late'),
			COUNT(*) FILTER (WHERE status = 'absent')
		FROM attendances
		WHERE user_id = $1
		  AND date >= $2::date
		  AND date < $3::date
	`

	var agg attendance.MonthlyAggregate
	var avg string
	err = q.QueryRow(ctx, query, userID, start, end).Scan(&agg.WorkDays, &avg, &agg.LateCount, &agg.AbsentCount)
	if err != nil {
		return attendance.MonthlyAggregate{}, fmt.Errorf("failed to aggregate attendances: %w", err)
	}

	agg.AvgWorkHours, err = decimal.NewFromString(avg)
	if err != nil {
		return attendance.MonthlyAggregate{}, fmt.Errorf("invalid average work hours %q: %w", avg, err)
	}

	return agg, nil
}

// AggregateByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) AggregateByDate(ctx context.Context, date string) (attendance.DailyAggregate, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE a.clock_in IS NOT NULL),
			COUNT(*) FILTER (WHERE a.status = 'late'),
			COUNT(*) FILTER (WHERE a.status = 'absent')
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE a.date = $1::date
		  AND u.is_active = TRUE
	`

	var agg attendance.DailyAggregate
	if err := q.QueryRow(ctx, query, date).Scan(&agg.PresentCount, &agg.LateCount, &agg.AbsentCount); err != nil {
		return attendance.DailyAggregate{}, fmt.Errorf("failed to aggregate daily attendances: %w", err)
	}

	return agg, nil
}

// ListUsersWithoutRecord implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListUsersWithoutRecord(ctx context.Context, date string) ([]string, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT u.id
		FROM users u
		WHERE u.is_active = TRUE
		  AND NOT EXISTS (
			SELECT 1 FROM attendances a
			WHERE a.user_id = u.id AND a.date = $1::date
		  )
		ORDER BY u.id
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query users without attendance: %w", err)
	}

	userIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan user ids: %w", err)
	}

	return userIDs, nil
}
