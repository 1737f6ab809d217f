package footballdata

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/matchpulse/season-compare/internal/domain/fixture"
	"github.com/matchpulse/season-compare/internal/domain/mapping"
	"github.com/matchpulse/season-compare/internal/platform/logging"
	"github.com/matchpulse/season-compare/internal/platform/resilience"
	"github.com/matchpulse/season-compare/internal/usecase"
)

const (
	defaultBaseURL   = "https://api.football-data.org/v4"
	topFlightCode    = "PL"
	secondTierCode   = "ELC"
	totalTableType   = "TOTAL"
	maxResponseBytes = 6 << 20
	defaultTimeout   = 20 * time.Second
	defaultPerMinute = 10
)

var errFootballDataTransient = crerr.New("football-data transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int

	// RequestsPerMinute throttles outbound calls. The free tier allows
	// 10 requests per minute.
	RequestsPerMinute int
	Logger            *logging.Logger
	CircuitBreaker    resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	limiter        *rate.Limiter
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	perMinute := cfg.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = defaultPerMinute
	}
	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     max(cfg.MaxRetries, 0),
		limiter:        rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

// SeasonFixtures returns every top-flight fixture of the season starting
// in the given year, unplayed rounds included.
func (c *Client) SeasonFixtures(ctx context.Context, season int) ([]fixture.Fixture, error) {
	if season <= 0 {
		return nil, fmt.Errorf("season must be a positive starting year")
	}

	path := fmt.Sprintf("/competitions/%s/matches", topFlightCode)
	query := map[string]string{"season": strconv.Itoa(season)}

	var envelope matchesEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch season %s matches: %w", fixture.SeasonLabel(season), err)
	}

	fixtures := make([]fixture.Fixture, 0, len(envelope.Matches))
	for _, item := range envelope.Matches {
		if item.ID <= 0 {
			continue
		}
		mapped, err := mapMatch(item, season)
		if err != nil {
			return nil, fmt.Errorf("season %s match id=%d: %w", fixture.SeasonLabel(season), item.ID, err)
		}
		fixtures = append(fixtures, mapped)
	}
	return fixtures, nil
}

// SecondaryStandings returns the second-tier table for the season starting
// in the given year. Only the overall table counts; home and away splits
// are ignored. An unknown season comes back empty rather than as an error.
func (c *Client) SecondaryStandings(ctx context.Context, season int) ([]mapping.DivisionStanding, error) {
	if season <= 0 {
		return nil, fmt.Errorf("season must be a positive starting year")
	}

	path := fmt.Sprintf("/competitions/%s/standings", secondTierCode)
	query := map[string]string{"season": strconv.Itoa(season)}

	var envelope standingsEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch season %s standings: %w", fixture.SeasonLabel(season), err)
	}

	table := totalTable(envelope.Standings)
	out := make([]mapping.DivisionStanding, 0, len(table))
	for _, entry := range table {
		name := strings.TrimSpace(entry.Team.Name)
		if name == "" {
			continue
		}
		out = append(out, mapping.DivisionStanding{
			Position:       entry.Position,
			TeamName:       name,
			TeamRefID:      entry.Team.ID,
			Points:         entry.Points,
			GoalDifference: entry.GoalDifference,
			Season:         season,
		})
	}
	return out, nil
}

func mapMatch(item matchItem, season int) (fixture.Fixture, error) {
	kickoff, err := time.Parse(time.RFC3339, strings.TrimSpace(item.UTCDate))
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("invalid utcDate %q", item.UTCDate)
	}
	return fixture.Fixture{
		RefID:         item.ID,
		Season:        season,
		Matchday:      item.Matchday,
		KickoffAt:     kickoff.UTC(),
		Status:        fixture.NormalizeStatus(item.Status),
		HomeTeam:      strings.TrimSpace(item.HomeTeam.Name),
		AwayTeam:      strings.TrimSpace(item.AwayTeam.Name),
		HomeTeamRefID: item.HomeTeam.ID,
		AwayTeamRefID: item.AwayTeam.ID,
		HomeScore:     item.Score.FullTime.Home,
		AwayScore:     item.Score.FullTime.Away,
	}, nil
}

func totalTable(groups []standingGroup) []tableEntry {
	for _, group := range groups {
		if strings.EqualFold(strings.TrimSpace(group.Type), totalTableType) {
			return group.Table
		}
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: fixture provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isTransientFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("throttle request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		if c.token != "" {
			req.Header.Set("X-Auth-Token", c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errFootballDataTransient, sanitizeToken(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errFootballDataTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errFootballDataTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isTransientFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errFootballDataTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// sanitizeToken scrubs the API token from transport error text. The token
// travels in a header, not the URL, so this only matters when a proxy or
// redirect echoes it back.
func sanitizeToken(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" || token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

type matchesEnvelope struct {
	Matches []matchItem `json:"matches"`
}

type matchItem struct {
	ID       int64      `json:"id"`
	Matchday int        `json:"matchday"`
	UTCDate  string     `json:"utcDate"`
	Status   string     `json:"status"`
	HomeTeam teamRef    `json:"homeTeam"`
	AwayTeam teamRef    `json:"awayTeam"`
	Score    matchScore `json:"score"`
}

type teamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type matchScore struct {
	FullTime scorePair `json:"fullTime"`
}

type scorePair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type standingsEnvelope struct {
	Standings []standingGroup `json:"standings"`
}

type standingGroup struct {
	Type  string       `json:"type"`
	Table []tableEntry `json:"table"`
}

type tableEntry struct {
	Position       int     `json:"position"`
	Team           teamRef `json:"team"`
	Points         int     `json:"points"`
	GoalDifference int     `json:"goalDifference"`
}
