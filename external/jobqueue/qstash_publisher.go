package jobqueue

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
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/matchpulse/season-compare/internal/platform/id"
	"github.com/matchpulse/season-compare/internal/platform/logging"
	"github.com/matchpulse/season-compare/internal/platform/resilience"
	"github.com/matchpulse/season-compare/internal/usecase"
)

const (
	refreshJobPath   = "/v1/internal/jobs/refresh"
	warmCacheJobPath = "/v1/internal/jobs/warm-cache"
)

var errQStashTransient = crerr.New("qstash transient failure")

type QStashPublisherConfig struct {
	BaseURL          string
	Token            string
	TargetBaseURL    string
	Retries          int
	InternalJobToken string
	Timeout          time.Duration
	CircuitBreaker   resilience.CircuitBreakerConfig
}

// QStashPublisher schedules HTTP callbacks against this service's own
// internal job routes. The queue forwards the internal job token, so the
// callback passes the same guard as a direct internal call.
type QStashPublisher struct {
	client           *http.Client
	baseURL          string
	token            string
	targetBaseURL    string
	retries          int
	internalJobToken string
	ids              id.Generator
	logger           *logging.Logger
	breaker          *resilience.CircuitBreaker
	circuitEnabled   bool
}

func NewQStashPublisher(cfg QStashPublisherConfig, logger *logging.Logger) *QStashPublisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &QStashPublisher{
		client:           &http.Client{Timeout: timeout},
		baseURL:          strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:            strings.TrimSpace(cfg.Token),
		targetBaseURL:    strings.TrimRight(strings.TrimSpace(cfg.TargetBaseURL), "/"),
		retries:          cfg.Retries,
		internalJobToken: strings.TrimSpace(cfg.InternalJobToken),
		ids:              id.NewRandomGenerator("job"),
		logger:           logger,
		breaker:          resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled:   cfg.CircuitBreaker.Enabled,
	}
}

type refreshJobPayload struct {
	JobID  string `json:"job_id"`
	Season int    `json:"season"`
}

type warmCacheJobPayload struct {
	JobID string               `json:"job_id"`
	Pairs []usecase.SeasonPair `json:"pairs"`
}

// EnqueueSeasonRefresh schedules one season refresh callback and returns
// the minted job id. Requests landing on the same due day for the same
// season collapse through the deduplication id.
func (p *QStashPublisher) EnqueueSeasonRefresh(ctx context.Context, season int, delay time.Duration) (string, error) {
	if season <= 0 {
		return "", crerr.New("season must be a positive starting year")
	}
	jobID, err := p.ids.NewID()
	if err != nil {
		return "", crerr.Wrap(err, "mint job id")
	}

	dueDay := time.Now().UTC().Add(delay).Format("2006-01-02")
	dedupID := fmt.Sprintf("refresh-%d-%s", season, dueDay)
	payload := refreshJobPayload{JobID: jobID, Season: season}
	if err := p.Enqueue(ctx, refreshJobPath, payload, delay, dedupID); err != nil {
		return "", err
	}
	return jobID, nil
}

// EnqueueCacheWarm schedules a comparison pre-warm callback for the given
// season pairs. One warm per due day is enough, so later requests that
// day deduplicate away.
func (p *QStashPublisher) EnqueueCacheWarm(ctx context.Context, pairs []usecase.SeasonPair, delay time.Duration) (string, error) {
	if len(pairs) == 0 {
		return "", crerr.New("at least one season pair is required")
	}
	jobID, err := p.ids.NewID()
	if err != nil {
		return "", crerr.Wrap(err, "mint job id")
	}

	dueDay := time.Now().UTC().Add(delay).Format("2006-01-02")
	dedupID := "warm-cache-" + dueDay
	payload := warmCacheJobPayload{JobID: jobID, Pairs: pairs}
	if err := p.Enqueue(ctx, warmCacheJobPath, payload, delay, dedupID); err != nil {
		return "", err
	}
	return jobID, nil
}

// Enqueue publishes one delayed callback to targetBaseURL+path.
func (p *QStashPublisher) Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error {
	if p.circuitEnabled {
		if err := p.breaker.Allow(); err != nil {
			p.logger.WarnContext(ctx, "qstash circuit breaker rejected request", "state", p.breaker.State())
			return fmt.Errorf("qstash is temporarily unavailable: %w", err)
		}
	}

	path = "/" + strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "/" {
		return crerr.New("job path is required")
	}

	baseURL, err := validateHTTPBaseURL(p.baseURL)
	if err != nil {
		return crerr.Wrap(err, "invalid QSTASH_BASE_URL")
	}
	targetBaseURL, err := validateHTTPBaseURL(p.targetBaseURL)
	if err != nil {
		return crerr.Wrap(err, "invalid QSTASH_TARGET_BASE_URL")
	}

	targetURL := targetBaseURL + path
	publishURL := baseURL + "/v2/publish/" + targetURL
	if payload == nil {
		payload = map[string]any{}
	}

	body, err := sonic.Marshal(payload)
	if err != nil {
		return crerr.Wrap(err, "marshal job payload")
	}
	preview := publishPreview(publishURL, clip(string(body), 4096), delay, p.retries, deduplicationID, p.internalJobToken != "")

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("qstash.publish_url", publishURL),
			attribute.String("qstash.target_url", targetURL),
			attribute.String("qstash.request_preview", preview),
		)
	}
	p.logger.InfoContext(ctx, "qstash publish request",
		"path", path, "target_url", targetURL, "preview", preview)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, publishURL, strings.NewReader(string(body)))
	if err != nil {
		return crerr.Wrap(err, "create qstash request")
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Upstash-Method", http.MethodPost)
	if p.retries > 0 {
		req.Header.Set("Upstash-Retries", strconv.Itoa(p.retries))
	}
	if delay > 0 {
		req.Header.Set("Upstash-Delay", normalizeDelay(delay))
	}
	if strings.TrimSpace(deduplicationID) != "" {
		req.Header.Set("Upstash-Deduplication-Id", strings.TrimSpace(deduplicationID))
	}
	if p.internalJobToken != "" {
		req.Header.Set("Upstash-Forward-X-Internal-Job-Token", p.internalJobToken)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		callErr := fmt.Errorf("%w: publish qstash job target_url=%s: %v", errQStashTransient, targetURL, err)
		p.recordCircuitResult(callErr)
		return callErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		detail := strings.TrimSpace(string(raw))
		var callErr error
		if isQStashRetryableStatus(resp.StatusCode) {
			callErr = fmt.Errorf("%w: publish qstash job status=%d target_url=%s body=%s",
				errQStashTransient, resp.StatusCode, targetURL, detail)
		} else {
			callErr = fmt.Errorf("publish qstash job status=%d target_url=%s body=%s",
				resp.StatusCode, targetURL, detail)
		}
		p.recordCircuitResult(callErr)
		return callErr
	}

	p.logger.InfoContext(ctx, "qstash job published",
		"path", path, "delay", normalizeDelay(delay), "deduplication_id", deduplicationID)
	p.recordCircuitResult(nil)
	return nil
}

func normalizeDelay(delay time.Duration) string {
	if delay <= 0 {
		return "0s"
	}
	seconds := int(delay.Round(time.Second).Seconds())
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%ds", seconds)
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

// publishPreview renders the publish call as a copy-pasteable curl line
// with both secrets masked.
func publishPreview(publishURL, body string, delay time.Duration, retries int, deduplicationID string, withForwardToken bool) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	part := func(value string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(value)
	}
	header := func(value string) {
		part("-H")
		part(shellQuote(value))
	}

	part("curl -X POST")
	part(shellQuote(publishURL))
	header("Authorization: Bearer ***")
	header("Content-Type: application/json")
	header("Upstash-Method: POST")
	if retries > 0 {
		header("Upstash-Retries: " + strconv.Itoa(retries))
	}
	if delay > 0 {
		header("Upstash-Delay: " + normalizeDelay(delay))
	}
	if strings.TrimSpace(deduplicationID) != "" {
		header("Upstash-Deduplication-Id: " + strings.TrimSpace(deduplicationID))
	}
	if withForwardToken {
		header("Upstash-Forward-X-Internal-Job-Token: ***")
	}
	part("-d")
	part(shellQuote(body))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func clip(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}

func (p *QStashPublisher) recordCircuitResult(err error) {
	if !p.circuitEnabled || p.breaker == nil {
		return
	}
	if err == nil {
		p.breaker.RecordSuccess()
		return
	}
	if stderrors.Is(err, errQStashTransient) {
		p.breaker.RecordFailure()
		return
	}
	p.breaker.RecordSuccess()
}

func isQStashRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
