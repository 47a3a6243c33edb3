package export

import (
	"bytes"
	"fmt"

	"github.com/teamcollab/teamcollab-backend-go/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const attendanceSheet = "Attendance"

var attendanceHeaders = []string{"Date", "Name", "Department", "Check In", "Check Out", "Work Hours", "Status"}

// AttendanceFilename is the download name for a month's export.
func AttendanceFilename(month string) string {
	return fmt.Sprintf("attendance_%s.xlsx", month)
}

// AttendanceWorkbook renders formatted attendance rows as an xlsx workbook.
func AttendanceWorkbook(month string, rows []attendance.AttendanceResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(attendanceSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetCellValue(attendanceSheet, "A1", fmt.Sprintf("Attendance %s", month)); err != nil {
		return nil, err
	}

	for i, header := range attendanceHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		if err := f.SetCellValue(attendanceSheet, cell, header); err != nil {
			return nil, err
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(attendanceHeaders), 3)
	if err := f.SetCellStyle(attendanceSheet, "A3", lastHeader, headerStyle); err != nil {
		return nil, err
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+4)
		values := []interface{}{r.Date, r.UserName, r.Department, r.CheckIn, r.CheckOut, r.WorkHours, r.Status}
		if err := f.SetSheetRow(attendanceSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := f.SetColWidth(attendanceSheet, "A", "G", 16); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
