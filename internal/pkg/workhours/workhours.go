package workhours

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const millisPerHour = int64(time.Hour / time.Millisecond)

var ErrInvalidInterval = errors.New("clock-out must be after clock-in")

// Compute returns the hours between clockIn and clockOut rounded half-up to two
// decimals. The rounding is done on integer hundredths so the result never
// depends on float representation.
func Compute(clockIn, clockOut time.Time) (decimal.Decimal, error) {
	ms := clockOut.Sub(clockIn).Milliseconds()
	if ms <= 0 {
		return decimal.Zero, fmt.Errorf("%w: clock_in=%s clock_out=%s", ErrInvalidInterval,
			clockIn.Format(time.RFC3339Nano), clockOut.Format(time.RFC3339Nano))
	}
	hundredths := (ms*100 + millisPerHour/2) / millisPerHour
	return decimal.New(hundredths, -2), nil
}

// Live is Compute for an open session: a now that is not after clockIn yields zero.
func Live(clockIn, now time.Time) decimal.Decimal {
	hours, err := Compute(clockIn, now)
	if err != nil {
		return decimal.Zero
	}
	return hours
}

// Split decomposes decimal hours into whole hours and rounded minutes.
func Split(hours decimal.Decimal) (int, int) {
	whole := hours.Floor()
	minutes := hours.Sub(whole).Mul(decimal.NewFromInt(60)).Round(0).IntPart()
	h := int(whole.IntPart())
	if minutes == 60 {
		h++
		minutes = 0
	}
	return h, int(minutes)
}

// Format renders decimal hours as "Xh Ym".
func Format(hours decimal.Decimal) string {
	h, m := Split(hours)
	return fmt.Sprintf("%dh %dm", h, m)
}
