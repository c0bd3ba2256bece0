package bbc

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/MrG-Man/Acca-Tracker/internal/platform/logging"
	"github.com/MrG-Man/Acca-Tracker/internal/platform/resilience"
)

const (
	defaultBaseURL     = "https://www.bbc.co.uk"
	defaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	maxResponseBytes   = 6 << 20
	defaultHTTPTimeout = 15 * time.Second
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	RateInterval   time.Duration
	Logger         *logging.Logger
	CircuitEnabled bool
	CircuitBreaker resilience.BreakerConfig
}

// Client fetches scores-fixtures pages from BBC Sport. All requests
// pass through one process-wide rate gate so concurrent callers share
// the politeness budget instead of timing themselves independently.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	logger         *logging.Logger
	gate           *resilience.RateGate
	breaker        *resilience.Breaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = timeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	rateInterval := cfg.RateInterval
	if rateInterval < 0 {
		rateInterval = 0
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		userAgent:      userAgent,
		logger:         logger,
		gate:           resilience.NewRateGate(rateInterval),
		breaker:        resilience.NewBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitEnabled,
	}
}

// Fetch retrieves one page and returns its raw bytes. A failed fetch
// reports a typed FetchError; retrying is up to the caller.
func (c *Client) Fetch(ctx context.Context, path string) ([]byte, error) {
	fullURL := c.baseURL + path

	if err := c.gate.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "wait for rate gate")
	}

	var raw []byte
	do := func() error {
		defer c.gate.Done()
		var reqErr error
		raw, reqErr = c.doRequest(ctx, fullURL)
		return reqErr
	}

	var err error
	if c.circuitEnabled {
		err = c.breaker.Execute(do)
	} else {
		err = do()
	}
	if err != nil {
		c.logger.WarnContext(ctx, "source fetch failed", "url", fullURL, "error", err)
		return nil, err
	}

	return raw, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: classifyTransportError(err), URL: fullURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, &FetchError{Kind: FetchStatus, URL: fullURL, StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &FetchError{Kind: FetchConnection, URL: fullURL, Err: err}
	}

	return raw, nil
}

func classifyTransportError(err error) FetchErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return FetchTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FetchTimeout
	}
	return FetchConnection
}
