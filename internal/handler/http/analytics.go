package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/teamcollab/teamcollab-backend-go/internal/domain/analytics"
	"github.com/teamcollab/teamcollab-backend-go/internal/handler/http/response"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/validator"
)

type AnalyticsHandler interface {
	Track(w http.ResponseWriter, r *http.Request)
	GetStats(w http.ResponseWriter, r *http.Request)
	GetRecentVisitors(w http.ResponseWriter, r *http.Request)
}

type analyticsHandlerImpl struct {
	analyticsService analytics.AnalyticsService
}

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &analyticsHandlerImpl{
		analyticsService: analyticsService,
	}
}

// intQuery reads an optional positive integer; absent means zero.
func intQuery(r *http.Request, field string) (int, error) {
	raw := r.URL.Query().Get(field)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validator.ValidationErrors{{Field: field, Message: field + " must be an integer"}}
	}
	return value, nil
}

// Track implements AnalyticsHandler. Tracking is best effort, so the caller
// always gets 200.
func (h *analyticsHandlerImpl) Track(w http.ResponseWriter, r *http.Request) {
	var req analytics.TrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Warn("Ignoring malformed track body", "error", err)
	}
	if req.PageURL == "" {
		req.PageURL = r.URL.Query().Get("page_url")
	}

	referrer := r.Referer()
	if referrer == "" {
		referrer = r.Header.Get("Referrer")
	}

	err := h.analyticsService.Track(r.Context(), req, analytics.VisitorContext{
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
		Referrer:  referrer,
	})
	if err != nil {
		response.Fail(w, http.StatusOK, "Tracking failed")
		return
	}

	response.SuccessWithMessage(w, "Tracked", nil)
}

// GetStats implements AnalyticsHandler.
func (h *analyticsHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	days, err := intQuery(r, "days")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.analyticsService.GetStats(r.Context(), analytics.StatsFilter{Days: days})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// GetRecentVisitors implements AnalyticsHandler.
func (h *analyticsHandlerImpl) GetRecentVisitors(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	visitors, err := h.analyticsService.GetRecentVisitors(r.Context(), analytics.RecentFilter{Limit: limit})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, visitors)
}
