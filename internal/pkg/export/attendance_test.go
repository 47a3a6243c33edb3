package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamcollab/teamcollab-backend-go/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

func TestAttendanceWorkbook(t *testing.T) {
	rows := []attendance.AttendanceResponse{
		{Date: "2025-01-15", UserName: "Kim", Department: "Engineering", CheckIn: "09:00", CheckOut: "18:30", WorkHours: "9h 30m", Status: "출근"},
		{Date: "2025-01-14", UserName: "Lee", Department: "미배정", CheckIn: "-", CheckOut: "-", WorkHours: "-", Status: "결근"},
	}

	data, err := AttendanceWorkbook("2025-01", rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{attendanceSheet}, f.GetSheetList())

	got, err := f.GetRows(attendanceSheet)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "Attendance 2025-01", got[0][0])
	assert.Equal(t, attendanceHeaders, got[2])
	assert.Equal(t, []string{"2025-01-15", "Kim", "Engineering", "09:00", "18:30", "9h 30m", "출근"}, got[3])
	assert.Equal(t, "결근", got[4][6])
}

func TestAttendanceWorkbook_Empty(t *testing.T) {
	data, err := AttendanceWorkbook("2025-02", nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(attendanceSheet)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestAttendanceFilename(t *testing.T) {
	assert.Equal(t, "attendance_2025-01.xlsx", AttendanceFilename("2025-01"))
}
