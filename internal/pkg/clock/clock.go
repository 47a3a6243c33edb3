package clock

import (
	"fmt"
	"sync"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
	TimeLayout  = "15:04"
)

// Clock supplies the current instant and the business day in one fixed timezone.
// Attendance code asks the Clock instead of calling time.Now so that every
// component agrees on day boundaries.
type Clock interface {
	Now() time.Time
	Today() string
	Location() *time.Location
}

type systemClock struct {
	loc *time.Location
}

// New returns the wall clock pinned to loc.
func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &systemClock{loc: loc}
}

// Load resolves an IANA zone name into a system clock.
func Load(timezone string) (Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return New(loc), nil
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *systemClock) Today() string {
	return c.Now().Format(DateLayout)
}

func (c *systemClock) Location() *time.Location {
	return c.loc
}

// FixedClock is a settable Clock for tests.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
	loc *time.Location
}

func NewFixed(now time.Time, loc *time.Location) *FixedClock {
	if loc == nil {
		loc = time.UTC
	}
	return &FixedClock{now: now, loc: loc}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.In(c.loc)
}

func (c *FixedClock) Today() string {
	return c.Now().Format(DateLayout)
}

func (c *FixedClock) Location() *time.Location {
	return c.loc
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// FormatTime renders t as HH:MM in the clock's zone.
func FormatTime(c Clock, t time.Time) string {
	return t.In(c.Location()).Format(TimeLayout)
}

// CurrentMonth returns the clock's month as YYYY-MM.
func CurrentMonth(c Clock) string {
	return c.Now().Format(MonthLayout)
}

// Yesterday returns the calendar day before Today.
func Yesterday(c Clock) string {
	return c.Now().AddDate(0, 0, -1).Format(DateLayout)
}

// MonthRange returns the half-open day range [start, end) covering month (YYYY-MM).
func MonthRange(month string) (start string, end string, err error) {
	first, err := time.Parse(MonthLayout, month)
	if err != nil {
		return "", "", fmt.Errorf("invalid month %q: %w", month, err)
	}
	return first.Format(DateLayout), first.AddDate(0, 1, 0).Format(DateLayout), nil
}
