package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/teamcollab/teamcollab-backend-go/internal/domain/analytics"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/database"
)

type visitorRepository struct {
	db *database.DB
}

func NewVisitorRepository(db *database.DB) analytics.VisitorRepository {
	return &visitorRepository{db: db}
}

// Create implements analytics.VisitorRepository.
func (v *visitorRepository) Create(ctx context.Context, visit analytics.Visit) (analytics.Visit, error) {
	q := GetQuerier(ctx, v.db)

	if visit.ID == "" {
		visit.ID = uuid.New().String()
	}

	query := `
		INSERT INTO visitor_logs (id, ip_address, user_agent, referrer, page_url, country, city, device_type, visited_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, NOW()))
		RETURNING visited_at
	`

	var visitedAt *time.Time
	if !visit.VisitedAt.IsZero() {
		visitedAt = &visit.VisitedAt
	}

	err := q.QueryRow(ctx, query,
		visit.ID, visit.IPAddress, visit.UserAgent, visit.Referrer, visit.PageURL,
		visit.Country, visit.City, string(visit.DeviceType), visitedAt,
	).Scan(&visit.VisitedAt)
	if err != nil {
		return analytics.Visit{}, fmt.Errorf("failed to create visitor log: %w", err)
	}

	return visit, nil
}

func collectBuckets(rows pgx.Rows) ([]analytics.Bucket, error) {
	defer rows.Close()

	buckets := make([]analytics.Bucket, 0)
	for rows.Next() {
		var b analytics.Bucket
		if err := rows.Scan(&b.Key, &b.Count); err != nil {
			return nil, fmt.Errorf("failed to scan bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate buckets: %w", err)
	}
	return buckets, nil
}

func (v *visitorRepository) buckets(ctx context.Context, column string, limit int, since time.Time) ([]analytics.Bucket, error) {
	q := GetQuerier(ctx, v.db)

	query := fmt.Sprintf(`
		SELECT %[1]s, COUNT(*)
		FROM visitor_logs
		WHERE visited_at >= $1
		GROUP BY %[1]s
		ORDER BY COUNT(*) DESC, %[1]s ASC
	`, column)
	args := []any{since}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to group visitor logs by %s: %w", column, err)
	}
	return collectBuckets(rows)
}

// Stats implements analytics.VisitorRepository.
func (v *visitorRepository) Stats(ctx context.Context, since time.Time, timezone string) (analytics.VisitorStats, error) {
	q := GetQuerier(ctx, v.db)

	var stats analytics.VisitorStats
	err := q.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT ip_address)
		FROM visitor_logs
		WHERE visited_at >= $1
	`, since).Scan(&stats.TotalVisits, &stats.UniqueVisitors)
	if err != nil {
		return analytics.VisitorStats{}, fmt.Errorf("failed to count visitor logs: %w", err)
	}

	if stats.ByCountry, err = v.buckets(ctx, "country", analytics.TopBucketsLimit, since); err != nil {
		return analytics.VisitorStats{}, err
	}
	if stats.ByDevice, err = v.buckets(ctx, "device_type", 0, since); err != nil {
		return analytics.VisitorStats{}, err
	}
	if stats.ByPage, err = v.buckets(ctx, "page_url", analytics.TopBucketsLimit, since); err != nil {
		return analytics.VisitorStats{}, err
	}

	rows, err := q.Query(ctx, `
		SELECT to_char((visited_at AT TIME ZONE $2)::date, 'YYYY-MM-DD') AS day,
		       COUNT(*),
		       COUNT(DISTINCT ip_address)
		FROM visitor_logs
		WHERE visited_at >= $1
		GROUP BY day
		ORDER BY day DESC
	`, since, timezone)
	if err != nil {
		return analytics.VisitorStats{}, fmt.Errorf("failed to query daily visits: %w", err)
	}
	defer rows.Close()

	stats.DailyTrend = make([]analytics.DailyVisits, 0)
	for rows.Next() {
		var d analytics.DailyVisits
		if err := rows.Scan(&d.Date, &d.Visits, &d.UniqueVisitors); err != nil {
			return analytics.VisitorStats{}, fmt.Errorf("failed to scan daily visits: %w", err)
		}
		stats.DailyTrend = append(stats.DailyTrend, d)
	}
	if err := rows.Err(); err != nil {
		return analytics.VisitorStats{}, fmt.Errorf("failed to iterate daily visits: %w", err)
	}

	return stats, nil
}

// ListRecent implements analytics.VisitorRepository.
func (v *visitorRepository) ListRecent(ctx context.Context, limit int) ([]analytics.Visit, error) {
	q := GetQuerier(ctx, v.db)

	query := `
		SELECT id, ip_address, user_agent, referrer, page_url, country, city, device_type, visited_at
		FROM visitor_logs
		ORDER BY visited_at DESC, id ASC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list visitor logs: %w", err)
	}
	defer rows.Close()

	visits := make([]analytics.Visit, 0)
	for rows.Next() {
		var visit analytics.Visit
		var deviceType string
		if err := rows.Scan(&visit.ID, &visit.IPAddress, &visit.UserAgent, &visit.Referrer, &visit.PageURL,
			&visit.Country, &visit.City, &deviceType, &visit.VisitedAt); err != nil {
			return nil, fmt.Errorf("failed to scan visitor log: %w", err)
		}
		visit.DeviceType = analytics.DeviceType(deviceType)
		visits = append(visits, visit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate visitor logs: %w", err)
	}

	return visits, nil
}
