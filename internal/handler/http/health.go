package http

import (
	"net/http"
	"time"

	"github.com/teamcollab/teamcollab-backend-go/internal/handler/http/response"
)

type HealthHandler interface {
	Health(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	startedAt time.Time
	version   string
}

func NewHealthHandler(startedAt time.Time, version string) HealthHandler {
	return &healthHandlerImpl{startedAt: startedAt, version: version}
}

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	StartedAt string `json:"startedAt"`
	Uptime    string `json:"uptime"`
}

// Health implements HealthHandler.
func (h *healthHandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, healthResponse{
		Status:    "ok",
		Version:   h.version,
		StartedAt: h.startedAt.Format(time.RFC3339),
		Uptime:    time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}
