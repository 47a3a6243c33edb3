package postgresql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamcollab/teamcollab-backend-go/internal/domain/attendance"
	"github.com/teamcollab/teamcollab-backend-go/internal/domain/user"
	"github.com/teamcollab/teamcollab-backend-go/internal/repository/postgresql"
)

func setupDB(t *testing.T) *TestDatabaseSetup {
	t.Helper()
	ctx := context.Background()

	setup, ok, err := NewTestDatabase(ctx)
	if !ok {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, err)
	require.NoError(t, setup.TruncateAllTables(ctx))
	t.Cleanup(setup.Close)
	return setup
}

func createDepartment(t *testing.T, setup *TestDatabaseSetup, id, name string) {
	_, err := setup.DB.Exec(context.Background(),
		`INSERT INTO departments (id, name) VALUES ($1, $2)`, id, name)
	require.NoError(t, err)
}

func createUser(t *testing.T, setup *TestDatabaseSetup, id, name string, departmentID *string, active bool) {
	_, err := setup.DB.Exec(context.Background(), `
		INSERT INTO users (id, email, name, role, department_id, slack_user_id, is_active)
		VALUES ($1, $1 || '@example.com', $2, $3, $4, 'U-' || $1, $5)
	`, id, name, string(user.RoleMember), departmentID, active)
	require.NoError(t, err)
}

func ptr[T any](v T) *T { return &v }

func TestAttendanceRepository_CreateAndGet(t *testing.T) {
	setup := setupDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB)

	createDepartment(t, setup, "dep-1", "Engineering")
	createUser(t, setup, "user-1", "Kim", ptr("dep-1"), true)

	clockIn := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, attendance.Attendance{
		UserID:  "user-1",
		Date:    "2025-01-15",
		ClockIn: &clockIn,
		Status:  attendance.StatusPresent,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := repo.GetByUserAndDate(ctx, "user-1", "2025-01-15")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "2025-01-15", got.Date)
	assert.True(t, clockIn.Equal(*got.ClockIn))
	assert.Nil(t, got.ClockOut)
	assert.Nil(t, got.WorkHours)
	assert.Equal(t, "Kim", *got.UserName)
	assert.Equal(t, "Engineering", *got.DepartmentName)

	missing, err := repo.GetByUserAndDate(ctx, "user-1", "2025-01-16")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAttendanceRepository_CreateConflict(t *testing.T) {
	setup := setupDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB)
	createUser(t, setup, "user-1", "Kim", nil, true)

	clockIn := time.Now()
	record := attendance.Attendance{UserID: "user-1", Date: "2025-01-15", ClockIn: &clockIn, Status: attendance.StatusPresent}

	// Two racing check-ins: exactly one insert wins
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(ctx, record)
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
			failures++
		}
	}
	assert.Equal(t, 1, failures)
}

func TestAttendanceRepository_UpdateClockOut(t *testing.T) {
	setup := setupDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB)
	createUser(t, setup, "user-1", "Kim", nil, true)

	clockIn := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, attendance.Attendance{UserID: "user-1", Date: "2025-01-15", ClockIn: &clockIn, Status: attendance.StatusPresent})
	require.NoError(t, err)

	clockOut := clockIn.Add(9*time.Hour + 30*time.Minute)
	require.NoError(t, repo.UpdateClockOut(ctx, created.ID, clockOut, decimal.RequireFromString("9.50")))

	err = repo.UpdateClockOut(ctx, created.ID, clockOut.Add(time.Hour), decimal.RequireFromString("10.50"))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	got, err := repo.GetByUserAndDate(ctx, "user-1", "2025-01-15")
	require.NoError(t, err)
	require.NotNil(t, got.WorkHours)
	assert.Equal(t, "9.50", got.WorkHours.StringFixed(2))
	assert.True(t, clockOut.Equal(*got.ClockOut))

	err = repo.UpdateClockOut(ctx, "does-not-exist", clockOut, decimal.Zero)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_MonthQueriesAndAggregates(t *testing.T) {
	setup := setupDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB)
	createUser(t, setup, "user-a", "Alice", nil, true)
	createUser(t, setup, "user-b", "Bob", nil, true)
	createUser(t, setup, "user-c", "Carol", nil, false)

	insert := func(userID, date string, status attendance.Status, hours *string) {
		rec := attendance.Attendance{UserID: userID, Date: date, Status: status}
		if status != attendance.StatusAbsent {
			in := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
			rec.ClockIn = &in
		}
		created, err := repo.Create(ctx, rec)
		require.NoError(t, err)
		if hours != nil {
			out := rec.ClockIn.Add(time.Hour)
			require.NoError(t, repo.UpdateClockOut(ctx, created.ID, out, decimal.RequireFromString(*hours)))
		}
	}

	insert("user-a", "2025-01-02", attendance.StatusPresent, ptr("8.00"))
	insert("user-a", "2025-01-03", attendance.StatusLate, ptr("9.00"))
	insert("user-a", "2025-01-06", attendance.StatusAbsent, nil)
	insert("user-a", "2025-01-07", attendance.StatusPresent, nil)
	insert("user-a", "2025-02-01", attendance.StatusPresent, ptr("4.00"))
	insert("user-b", "2025-01-03", attendance.StatusPresent, ptr("7.00"))
	insert("user-c", "2025-01-03", attendance.StatusLate, nil)

	mine, err := repo.ListByUserAndMonth(ctx, "user-a", "2025-01")
	require.NoError(t, err)
	require.Len(t, mine, 4)
	assert.Equal(t, "2025-01-07", mine[0].Date)
	assert.Equal(t, "2025-01-02", mine[3].Date)

	agg, err := repo.AggregateByUserAndMonth(ctx, "user-a", "2025-01")
	require.NoError(t, err)
	assert.Equal(t, 2, agg.WorkDays)
	assert.Equal(t, "8.50", agg.AvgWorkHours.StringFixed(2))
	assert.Equal(t, 1, agg.LateCount)
	assert.Equal(t, 1, agg.AbsentCount)

	empty, err := repo.AggregateByUserAndMonth(ctx, "user-b", "2024-12")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.WorkDays)
	assert.True(t, empty.AvgWorkHours.IsZero())

	all, err := repo.ListByMonth(ctx, "2025-01", nil)
	require.NoError(t, err)
	require.Len(t, all, 7)
	assert.Equal(t, "2025-01-07", all[0].Date)
	// Same day ordered by user name
	var jan3 []string
	for _, a := range all {
		if a.Date == "2025-01-03" {
			jan3 = append(jan3, *a.UserName)
		}
	}
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, jan3)

	late := attendance.StatusLate
	lateOnly, err := repo.ListByMonth(ctx, "2025-01", &late)
	require.NoError(t, err)
	assert.Len(t, lateOnly, 2)

	daily, err := repo.AggregateByDate(ctx, "2025-01-03")
	require.NoError(t, err)
	// Inactive Carol is excluded
	assert.Equal(t, attendance.DailyAggregate{PresentCount: 2, LateCount: 1, AbsentCount: 0}, daily)

	missing, err := repo.ListUsersWithoutRecord(ctx, "2025-01-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"user-b"}, missing)
}

func TestUserRepository(t *testing.T) {
	setup := setupDB(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(setup.DB)
	createDepartment(t, setup, "dep-1", "Design")
	createUser(t, setup, "user-1", "Kim", ptr("dep-1"), true)
	createUser(t, setup, "user-2", "Lee", nil, false)

	u, err := repo.GetBySlackUserID(ctx, "U-user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)
	assert.Equal(t, "Design", *u.DepartmentName)

	u, err = repo.GetByEmail(ctx, "USER-1@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Kim", u.Name)

	_, err = repo.GetByID(ctx, "user-2")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	count, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, repo.UpdateLastLogin(ctx, "user-1", "127.0.0.1"))
	u, err = repo.GetByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", *u.LoginIP)
	assert.NotNil(t, u.LastLogin)
}
