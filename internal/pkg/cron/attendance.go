package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/teamcollab/teamcollab-backend-go/internal/domain/attendance"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/clock"
)

const MarkAbsentUsersJob = "mark_absent_users"

type transactor interface {
	WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	tx             transactor
	clock          clock.Clock
}

func NewAttendanceJobs(attendanceRepo attendance.AttendanceRepository, tx transactor, clk clock.Clock) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		tx:             tx,
		clock:          clk,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob(MarkAbsentUsersJob, 1*time.Hour, j.MarkAbsentUsers)
}

// MarkAbsentUsers closes out yesterday. It only acts during the first hour of
// the local day so the hourly tick fires it once.
func (j *AttendanceJobs) MarkAbsentUsers(ctx context.Context) error {
	if j.clock.Now().Hour() != 0 {
		return nil
	}

	_, err := j.MarkAbsentForDate(ctx, clock.Yesterday(j.clock))
	return err
}

// MarkAbsentForDate inserts an absent record for every active user with no
// record on date. Absent records carry no clock-in, clock-out or work hours.
func (j *AttendanceJobs) MarkAbsentForDate(ctx context.Context, date string) (int, error) {
	slog.Info("Cron: Starting mark absent users job", "date", date)

	marked := 0
	err := j.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		userIDs, err := j.attendanceRepo.ListUsersWithoutRecord(txCtx, date)
		if err != nil {
			return fmt.Errorf("failed to list users without attendance: %w", err)
		}

		for _, userID := range userIDs {
			_, err := j.attendanceRepo.Create(txCtx, attendance.Attendance{
				UserID: userID,
				Date:   date,
				Status: attendance.StatusAbsent,
			})
			if err != nil {
				return fmt.Errorf("failed to mark user %s absent: %w", userID, err)
			}
			marked++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("Cron: Mark absent users job completed", "date", date, "marked", marked)
	return marked, nil
}
