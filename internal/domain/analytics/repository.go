package analytics

import (
	"context"
	"time"
)

type VisitorRepository interface {
	Create(ctx context.Context, visit Visit) (Visit, error)

	// Stats aggregates visits at or after since; daily buckets use timezone.
	Stats(ctx context.Context, since time.Time, timezone string) (VisitorStats, error)

	// ListRecent returns the newest visits first
	ListRecent(ctx context.Context, limit int) ([]Visit, error)
}

// Locator resolves an IP address to a location.
type Locator interface {
	Locate(ctx context.Context, ip string) (Location, error)
}
