package analytics

import (
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/validator"
)

const (
	DefaultStatsDays   = 7
	MaxStatsDays       = 365
	DefaultRecentLimit = 50
	MaxRecentLimit     = 500
)

// ========================================
// REQUEST DTOs
// ========================================

type TrackRequest struct {
	PageURL string `json:"page_url"`
}

// VisitorContext carries what the transport knows about the caller.
type VisitorContext struct {
	IPAddress string
	UserAgent string
	Referrer  string
}

type StatsFilter struct {
	Days int `json:"days"` // zero means DefaultStatsDays
}

func (f *StatsFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Days == 0 {
		f.Days = DefaultStatsDays
	}
	if f.Days < 1 || f.Days > MaxStatsDays {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "days must be between 1 and 365",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecentFilter struct {
	Limit int `json:"limit"` // zero means DefaultRecentLimit
}

func (f *RecentFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Limit == 0 {
		f.Limit = DefaultRecentLimit
	}
	if f.Limit < 1 || f.Limit > MaxRecentLimit {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be between 1 and 500",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// RESPONSE DTOs
// ========================================

type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

type DeviceCount struct {
	DeviceType string `json:"deviceType"`
	Count      int    `json:"count"`
}

type PageCount struct {
	PageURL string `json:"pageUrl"`
	Count   int    `json:"count"`
}

type DailyTrend struct {
	Date           string `json:"date"`
	Visits         int    `json:"visits"`
	UniqueVisitors int    `json:"uniqueVisitors"`
}

type VisitorStatsResponse struct {
	Period         string         `json:"period"`
	Days           int            `json:"days"`
	TotalVisits    int            `json:"totalVisits"`
	UniqueVisitors int            `json:"uniqueVisitors"`
	ByCountry      []CountryCount `json:"byCountry"`
	ByDevice       []DeviceCount  `json:"byDevice"`
	ByPage         []PageCount    `json:"byPage"`
	DailyTrend     []DailyTrend   `json:"dailyTrend"`
}

type VisitorResponse struct {
	ID         string `json:"id"`
	IPAddress  string `json:"ipAddress"`
	UserAgent  string `json:"userAgent"`
	Referrer   string `json:"referrer"`
	PageURL    string `json:"pageUrl"`
	Country    string `json:"country"`
	City       string `json:"city"`
	DeviceType string `json:"deviceType"`
	VisitedAt  string `json:"visitedAt"` // RFC3339 in the deployment timezone
}
