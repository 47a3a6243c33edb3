package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/teamcollab/teamcollab-backend-go/internal/domain/analytics"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/clock"
)

type AnalyticsServiceImpl struct {
	analytics.VisitorRepository
	locator analytics.Locator
	clock   clock.Clock
}

// NewAnalyticsService builds the service; a nil locator records every visit
// with an Unknown location.
func NewAnalyticsService(visitorRepo analytics.VisitorRepository, locator analytics.Locator, clk clock.Clock) analytics.AnalyticsService {
	return &AnalyticsServiceImpl{
		VisitorRepository: visitorRepo,
		locator:           locator,
		clock:             clk,
	}
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func (s *AnalyticsServiceImpl) locate(ctx context.Context, ip string) analytics.Location {
	if s.locator == nil {
		return analytics.UnknownLocation()
	}
	location, err := s.locator.Locate(ctx, ip)
	if err != nil {
		slog.Warn("Visitor location lookup failed", "ip", ip, "error", err)
		return analytics.UnknownLocation()
	}
	return location
}

// Track implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) Track(ctx context.Context, req analytics.TrackRequest, visitor analytics.VisitorContext) error {
	ip := orDefault(visitor.IPAddress, analytics.UnknownValue)
	userAgent := orDefault(visitor.UserAgent, analytics.UnknownValue)
	location := s.locate(ctx, ip)

	visit, err := s.VisitorRepository.Create(ctx, analytics.Visit{
		IPAddress:  ip,
		UserAgent:  userAgent,
		Referrer:   orDefault(visitor.Referrer, analytics.DirectReferrer),
		PageURL:    orDefault(req.PageURL, analytics.DefaultPageURL),
		Country:    location.Country,
		City:       location.City,
		DeviceType: analytics.ClassifyDevice(userAgent),
		VisitedAt:  s.clock.Now(),
	})
	if err != nil {
		slog.Error("Failed to store visit", "ip", ip, "page_url", req.PageURL, "error", err)
		return fmt.Errorf("%w: track: %w", analytics.ErrPersistence, err)
	}

	slog.Debug("Visit tracked", "visit_id", visit.ID, "country", visit.Country, "device_type", visit.DeviceType)
	return nil
}

// GetStats implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) GetStats(ctx context.Context, filter analytics.StatsFilter) (analytics.VisitorStatsResponse, error) {
	if err := filter.Validate(); err != nil {
		return analytics.VisitorStatsResponse{}, err
	}

	since := s.clock.Now().Add(-time.Duration(filter.Days) * 24 * time.Hour)
	stats, err := s.VisitorRepository.Stats(ctx, since, s.clock.Location().String())
	if err != nil {
		slog.Error("Failed to aggregate visits", "days", filter.Days, "error", err)
		return analytics.VisitorStatsResponse{}, fmt.Errorf("%w: stats: %w", analytics.ErrPersistence, err)
	}

	resp := analytics.VisitorStatsResponse{
		Period:         fmt.Sprintf("%d days", filter.Days),
		Days:           filter.Days,
		TotalVisits:    stats.TotalVisits,
		UniqueVisitors: stats.UniqueVisitors,
		ByCountry:      make([]analytics.CountryCount, 0, len(stats.ByCountry)),
		ByDevice:       make([]analytics.DeviceCount, 0, len(stats.ByDevice)),
		ByPage:         make([]analytics.PageCount, 0, len(stats.ByPage)),
		DailyTrend:     make([]analytics.DailyTrend, 0, len(stats.DailyTrend)),
	}
	for _, b := range stats.ByCountry {
		resp.ByCountry = append(resp.ByCountry, analytics.CountryCount{Country: b.Key, Count: b.Count})
	}
	for _, b := range stats.ByDevice {
		resp.ByDevice = append(resp.ByDevice, analytics.DeviceCount{DeviceType: b.Key, Count: b.Count})
	}
	for _, b := range stats.ByPage {
		resp.ByPage = append(resp.ByPage, analytics.PageCount{PageURL: b.Key, Count: b.Count})
	}
	for _, d := range stats.DailyTrend {
		resp.DailyTrend = append(resp.DailyTrend, analytics.DailyTrend{Date: d.Date, Visits: d.Visits, UniqueVisitors: d.UniqueVisitors})
	}

	return resp, nil
}

// GetRecentVisitors implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) GetRecentVisitors(ctx context.Context, filter analytics.RecentFilter) ([]analytics.VisitorResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	visits, err := s.VisitorRepository.ListRecent(ctx, filter.Limit)
	if err != nil {
		slog.Error("Failed to list recent visits", "limit", filter.Limit, "error", err)
		return nil, fmt.Errorf("%w: recent: %w", analytics.ErrPersistence, err)
	}

	responses := make([]analytics.VisitorResponse, 0, len(visits))
	for _, v := range visits {
		responses = append(responses, analytics.VisitorResponse{
			ID:         v.ID,
			IPAddress:  v.IPAddress,
			UserAgent:  v.UserAgent,
			Referrer:   v.Referrer,
			PageURL:    v.PageURL,
			Country:    v.Country,
			City:       v.City,
			DeviceType: string(v.DeviceType),
			VisitedAt:  v.VisitedAt.In(s.clock.Location()).Format(time.RFC3339),
		})
	}

	return responses, nil
}
