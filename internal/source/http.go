package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/XavierBriggs/fortuna/services/omnibet/internal/config"
	"github.com/XavierBriggs/fortuna/services/omnibet/internal/metrics"
	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
)

// ClientOptions carries the optional collaborators of OddsAPIClient
type ClientOptions struct {
	HTTPClient *http.Client
	Location   *time.Location // for payloads with year-less dates
	Metrics    *metrics.Metrics
	Logger     *zap.Logger
	Now        func() time.Time
}

// OddsAPIClient reads matchups from the odds-aggregation HTTP API
type OddsAPIClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	retry      *RetryPolicy
	location   *time.Location
	metrics    *metrics.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// NewOddsAPIClient creates a new odds API client
func NewOddsAPIClient(cfg config.UpstreamConfig, opts ClientOptions) *OddsAPIClient {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	c := &OddsAPIClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
		retry:      NewRetryPolicy(cfg.MaxAttempts, cfg.InitialBackoff),
		location:   opts.Location,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
		now:        opts.Now,
	}
	if c.location == nil {
		c.location = time.Local
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// FetchMatchups calls GET {base}/api/odds/{sport}
func (c *OddsAPIClient) FetchMatchups(ctx context.Context, sport string) ([]models.Matchup, error) {
	var payload []wireMatchup

	err := c.retry.Execute(ctx, func() error {
		var err error
		payload, err = c.fetchOnce(ctx, sport)
		if err != nil {
			c.logger.Warn("odds request failed", zap.String("sport", sport), zap.Error(err))
		}
		return err
	})
	if err != nil {
		c.metrics.RecordUpstream(sport, "error")
		return nil, fmt.Errorf("fetch %s odds: %w", sport, err)
	}
	c.metrics.RecordUpstream(sport, "ok")

	now := c.now()
	matchups := make([]models.Matchup, 0, len(payload))
	for i, w := range payload {
		m, err := w.toMatchup(sport, now, c.location)
		if err != nil {
			// left with a zero datetime; validation downstream rejects it
			c.logger.Warn("unparseable matchup datetime",
				zap.String("sport", sport), zap.Int("index", i), zap.Error(err))
		}
		matchups = append(matchups, m)
	}

	return matchups, nil
}

func (c *OddsAPIClient) fetchOnce(ctx context.Context, sport string) ([]wireMatchup, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	endpoint := c.baseURL + "/api/odds/" + url.PathEscape(sport)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
	}

	var payload []wireMatchup
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return payload, nil
}
