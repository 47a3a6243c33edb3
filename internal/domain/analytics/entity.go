package analytics

import (
	"regexp"
	"strings"
	"time"
)

type DeviceType string

const (
	DeviceDesktop DeviceType = "desktop"
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
)

const (
	UnknownValue    = "Unknown"
	DirectReferrer  = "Direct"
	DefaultPageURL  = "/"
	TopBucketsLimit = 10
)

var (
	tabletPattern = regexp.MustCompile(`(?i)tablet|ipad|playbook|silk`)
	mobilePattern = regexp.MustCompile(`(?i)mobile|android|ip(hone|od)|iemobile|blackberry|kindle|silk-accelerated|(hpw|web)os|opera m(obi|ini)`)
)

// ClassifyDevice buckets a User-Agent header. Android without "mobi" is a tablet.
func ClassifyDevice(userAgent string) DeviceType {
	ua := strings.ToLower(userAgent)
	if tabletPattern.MatchString(ua) || (strings.Contains(ua, "android") && !strings.Contains(ua, "mobi")) {
		return DeviceTablet
	}
	if mobilePattern.MatchString(ua) {
		return DeviceMobile
	}
	return DeviceDesktop
}

// Visit is one tracked page view.
type Visit struct {
	ID         string
	IPAddress  string
	UserAgent  string
	Referrer   string
	PageURL    string
	Country    string
	City       string
	DeviceType DeviceType
	VisitedAt  time.Time
}

// Location is the coarse geography of an IP address.
type Location struct {
	Country string
	City    string
}

func UnknownLocation() Location {
	return Location{Country: UnknownValue, City: UnknownValue}
}

type Bucket struct {
	Key   string
	Count int
}

type DailyVisits struct {
	Date           string // YYYY-MM-DD in the deployment timezone
	Visits         int
	UniqueVisitors int
}

// VisitorStats is derived over a trailing window, never stored.
type VisitorStats struct {
	TotalVisits    int
	UniqueVisitors int
	ByCountry      []Bucket
	ByDevice       []Bucket
	ByPage         []Bucket
	DailyTrend     []DailyVisits
}
