package analytics

import "context"

// AnalyticsService records page views and reports on them for admins
type AnalyticsService interface {
	// Track stores one visit; location lookup failures degrade to Unknown
	Track(ctx context.Context, req TrackRequest, visitor VisitorContext) error

	GetStats(ctx context.Context, filter StatsFilter) (VisitorStatsResponse, error)
	GetRecentVisitors(ctx context.Context, filter RecentFilter) ([]VisitorResponse, error)
}
