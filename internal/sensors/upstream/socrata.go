package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker"

	"github.com/i474232898/road-conditions/internal/sensors"
)

// DefaultEndpoint is the City of Austin road weather information dataset.
const DefaultEndpoint = "https://data.austintexas.gov/resource/ypbq-i42h.json"

const floatingLayout = "2006-01-02T15:04:05"

// SocrataSource implements sensors.Source against a Socrata SoQL endpoint.
type SocrataSource struct {
	name     string
	endpoint string
	appToken string
	loc      *time.Location
	client   *http.Client
	backoff  BackoffConfig
	circuit  *gobreaker.CircuitBreaker
}

// Option customizes a SocrataSource.
type Option func(*SocrataSource)

// WithAppToken sends the token as X-App-Token, which raises rate limits.
func WithAppToken(token string) Option {
	return func(s *SocrataSource) { s.appToken = token }
}

// WithLocation sets the zone the dataset's floating timestamps are in.
func WithLocation(loc *time.Location) Option {
	return func(s *SocrataSource) { s.loc = loc }
}

// WithBackoff overrides DefaultBackoff.
func WithBackoff(b BackoffConfig) Option {
	return func(s *SocrataSource) { s.backoff = b }
}

func NewSocrataSource(client *http.Client, endpoint string, opts ...Option) *SocrataSource {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	s := &SocrataSource{
		name:     "socrata",
		endpoint: endpoint,
		loc:      time.UTC,
		client:   client,
		backoff:  DefaultBackoff,
		circuit:  newCircuitBreaker("socrata"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SocrataSource) Name() string {
	return s.name
}

// BuildQuery returns the SoQL query selecting readings newer than since.
// Rows with a dirty lens or an error/unavailable condition are excluded.
func BuildQuery(since time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	var b strings.Builder
	b.WriteString("SELECT id, sensor_id, location_name, location, timestamp, temp_surface, ")
	b.WriteString("air_temp_primary, condition_code_displayed, grip_text, relative_humidity ")
	b.WriteString("WHERE dirty_lens_score NOT IN (2, 6, 8) ")
	b.WriteString("AND condition_code_displayed NOT IN (15, 9, 10) ")
	fmt.Fprintf(&b, "AND (timestamp > %q :: floating_timestamp) ", since.In(loc).Format(floatingLayout))
	b.WriteString("ORDER BY timestamp DESC")
	return b.String()
}

// Fetch queries the dataset for readings newer than since.
func (s *SocrataSource) Fetch(ctx context.Context, since time.Time) ([]sensors.RawReading, error) {
	u := s.endpoint + "?$query=" + url.QueryEscape(BuildQuery(since, s.loc))

	newRequest := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if s.appToken != "" {
			req.Header.Set("X-App-Token", s.appToken)
		}
		return req, nil
	}

	resp, err := doRequest(ctx, s.client, s.backoff, s.circuit, newRequest)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}
	defer resp.Body.Close()

	var rows []sensors.RawReading
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", s.name, err)
	}
	if rows == nil {
		rows = []sensors.RawReading{}
	}
	return rows, nil
}
