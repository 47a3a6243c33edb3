package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/teamcollab/teamcollab-backend-go/internal/domain/analytics"
)

const DefaultBaseURL = "https://ipapi.co"

// Client looks up IP locations through the ipapi.co JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type ipapiResponse struct {
	CountryName string `json:"country_name"`
	City        string `json:"city"`
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
}

// Locate implements analytics.Locator. Private and unparseable addresses are
// never sent upstream.
func (c *Client) Locate(ctx context.Context, ip string) (analytics.Location, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil || parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() {
		return analytics.UnknownLocation(), nil
	}

	endpoint := fmt.Sprintf("%s/%s/json/", c.baseURL, url.PathEscape(parsed.String()))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return analytics.UnknownLocation(), fmt.Errorf("%w: %w", analytics.ErrLookupFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return analytics.UnknownLocation(), fmt.Errorf("%w: %w", analytics.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return analytics.UnknownLocation(), fmt.Errorf("%w: status %d", analytics.ErrLookupFailed, resp.StatusCode)
	}

	var body ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return analytics.UnknownLocation(), fmt.Errorf("%w: decode: %w", analytics.ErrLookupFailed, err)
	}
	if body.Error {
		return analytics.UnknownLocation(), fmt.Errorf("%w: %s", analytics.ErrLookupFailed, body.Reason)
	}

	location := analytics.UnknownLocation()
	if body.CountryName != "" {
		location.Country = body.CountryName
	}
	if body.City != "" {
		location.City = body.City
	}
	return location, nil
}
