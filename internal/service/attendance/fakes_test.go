package attendance

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/teamcollab/teamcollab-backend-go/internal/domain/attendance"
	"github.com/teamcollab/teamcollab-backend-go/internal/domain/user"
)

// memoryAttendanceRepo mirrors the Postgres store semantics in memory.
type memoryAttendanceRepo struct {
	mu      sync.Mutex
	records map[string]*attendance.Attendance // key: userID|date
	users   map[string]user.User

	failWith error
	creates  int
	updates  int
}

func newMemoryAttendanceRepo(users ...user.User) *memoryAttendanceRepo {
	r := &memoryAttendanceRepo{
		records: make(map[string]*attendance.Attendance),
		users:   make(map[string]user.User),
	}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func key(userID, date string) string { return userID + "|" + date }

func (r *memoryAttendanceRepo) joined(a attendance.Attendance) attendance.Attendance {
	if u, ok := r.users[a.UserID]; ok {
		name := u.Name
		a.UserName = &name
		a.DepartmentName = u.DepartmentName
	}
	return a
}

func (r *memoryAttendanceRepo) put(a attendance.Attendance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	r.records[key(a.UserID, a.Date)] = &a
}

func (r *memoryAttendanceRepo) GetByUserAndDate(ctx context.Context, userID string, date string) (*attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	a, ok := r.records[key(userID, date)]
	if !ok {
		return nil, nil
	}
	copied := r.joined(*a)
	return &copied, nil
}

func (r *memoryAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return attendance.Attendance{}, r.failWith
	}
	if _, exists := r.records[key(a.UserID, a.Date)]; exists {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	a.ID = uuid.New().String()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.records[key(a.UserID, a.Date)] = &a
	r.creates++
	return a, nil
}

func (r *memoryAttendanceRepo) UpdateClockOut(ctx context.Context, id string, clockOut time.Time, workHours decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	for _, a := range r.records {
		if a.ID != id {
			continue
		}
		if a.ClockOut != nil {
			return attendance.ErrAlreadyCheckedOut
		}
		a.ClockOut = &clockOut
		a.WorkHours = &workHours
		r.updates++
		return nil
	}
	return attendance.ErrAttendanceNotFound
}

func (r *memoryAttendanceRepo) inMonth(month string, keep func(a *attendance.Attendance) bool) []attendance.Attendance {
	var out []attendance.Attendance
	for _, a := range r.records {
		if strings.HasPrefix(a.Date, month+"-") && keep(a) {
			out = append(out, r.joined(*a))
		}
	}
	return out
}

func (r *memoryAttendanceRepo) ListByUserAndMonth(ctx context.Context, userID string, month string) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := r.inMonth(month, func(a *attendance.Attendance) bool { return a.UserID == userID })
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (r *memoryAttendanceRepo) ListByMonth(ctx context.Context, month string, status *attendance.Status) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := r.inMonth(month, func(a *attendance.Attendance) bool { return status == nil || a.Status == *status })
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return *out[i].UserName < *out[j].UserName
	})
	return out, nil
}

func (r *memoryAttendanceRepo) AggregateByUserAndMonth(ctx context.Context, userID string, month string) (attendance.MonthlyAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return attendance.MonthlyAggregate{}, r.failWith
	}
	var agg attendance.MonthlyAggregate
	total := decimal.Zero
	for _, a := range r.inMonth(month, func(a *attendance.Attendance) bool { return a.UserID == userID }) {
		if a.ClockOut != nil {
			agg.WorkDays++
			total = total.Add(*a.WorkHours)
		}
		switch a.Status {
		case attendance.StatusLate:
			agg.LateCount++
		case attendance.StatusAbsent:
			agg.AbsentCount++
		}
	}
	agg.AvgWorkHours = decimal.Zero
	if agg.WorkDays > 0 {
		agg.AvgWorkHours = total.Div(decimal.NewFromInt(int64(agg.WorkDays)))
	}
	return agg, nil
}

func (r *memoryAttendanceRepo) AggregateByDate(ctx context.Context, date string) (attendance.DailyAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return attendance.DailyAggregate{}, r.failWith
	}
	var agg attendance.DailyAggregate
	for _, a := range r.records {
		if a.Date != date || !r.users[a.UserID].IsActive {
			continue
		}
		if a.ClockIn != nil {
			agg.PresentCount++
		}
		switch a.Status {
		case attendance.StatusLate:
			agg.LateCount++
		case attendance.StatusAbsent:
			agg.AbsentCount++
		}
	}
	return agg, nil
}

func (r *memoryAttendanceRepo) ListUsersWithoutRecord(ctx context.Context, date string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for id, u := range r.users {
		if _, ok := r.records[key(id, date)]; u.IsActive && !ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type memoryUserRepo struct {
	users    []user.User
	failWith error
}

func (r *memoryUserRepo) find(match func(u user.User) bool) (user.User, error) {
	for _, u := range r.users {
		if u.IsActive && match(u) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.find(func(u user.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.find(func(u user.User) bool { return u.ID == id })
}

func (r *memoryUserRepo) GetBySlackUserID(ctx context.Context, slackUserID string) (user.User, error) {
	return r.find(func(u user.User) bool { return u.SlackUserID != nil && *u.SlackUserID == slackUserID })
}

func (r *memoryUserRepo) CountActive(ctx context.Context) (int, error) {
	if r.failWith != nil {
		return 0, r.failWith
	}
	n := 0
	for _, u := range r.users {
		if u.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *memoryUserRepo) UpdateLastLogin(ctx context.Context, id string, ip string) error {
	return nil
}
