package http

import (
	"log/slog"
	"net/http"

	"github.com/teamcollab/teamcollab-backend-go/internal/domain/attendance"
	"github.com/teamcollab/teamcollab-backend-go/internal/handler/http/middleware"
	"github.com/teamcollab/teamcollab-backend-go/internal/handler/http/response"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/export"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	GetMyStats(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	GetAllStats(w http.ResponseWriter, r *http.Request)
	ExportAll(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

func allFilterFromQuery(r *http.Request) attendance.AllAttendanceFilter {
	query := r.URL.Query()
	filter := attendance.AllAttendanceFilter{Month: query.Get("month")}
	if query.Has("status") {
		status := query.Get("status")
		filter.Status = &status
	}
	return filter
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	current, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	checkIn, err := h.attendanceService.CheckIn(r.Context(), current.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked in", checkIn)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	current, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	checkOut, err := h.attendanceService.CheckOut(r.Context(), current.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", checkOut)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	current, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	status, err := h.attendanceService.GetTodayStatus(r.Context(), current.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	current, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.GetMyAttendance(r.Context(), current.ID, attendance.MonthFilter{Month: r.URL.Query().Get("month")})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// GetMyStats implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyStats(w http.ResponseWriter, r *http.Request) {
	current, err := middleware.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.attendanceService.GetMyStats(r.Context(), current.ID, attendance.MonthFilter{Month: r.URL.Query().Get("month")})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// ListAll implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.ListAll(r.Context(), allFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// GetAllStats implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetAllStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.attendanceService.GetAllStats(r.Context(), attendance.MonthFilter{Month: r.URL.Query().Get("month")})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// ExportAll implements AttendanceHandler.
func (h *attendanceHandlerImpl) ExportAll(w http.ResponseWriter, r *http.Request) {
	filter := allFilterFromQuery(r)

	data, err := h.attendanceService.ExportAll(r.Context(), filter)
	if err != nil {
		slog.Error("Failed to export attendance", "month", filter.Month, "error", err)
		response.HandleError(w, err)
		return
	}

	month := filter.Month
	if month == "" {
		month = "current"
	}
	response.File(w, export.ContentTypeXLSX, export.AttendanceFilename(month), data)
}
