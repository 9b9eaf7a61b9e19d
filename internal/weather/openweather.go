package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"weathersearch/internal/domain"
)

const (
	findPath = "/data/2.5/find"

	// MaxCityLength bounds the query the way the service does
	MaxCityLength = 100

	maxErrorBody = 4 << 10
)

// Config holds what the client needs from the application config
type Config struct {
	APIKey  string
	BaseURL string
	Units   domain.Units
	Lang    string
	Limit   int
	Timeout time.Duration
}

var _ Service = (*Client)(nil)

// Client queries OpenWeatherMap's city search endpoint
type Client struct {
	config  Config
	client  *http.Client
	baseURL *url.URL
	logger  *slog.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithLogger sets the client logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient validates cfg and builds a client. The API key is checked per
// request so a client can exist before the user configures one.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, newError(ErrTypeConfiguration, fmt.Sprintf("invalid base URL %q", cfg.BaseURL), err)
	}
	if cfg.Units == "" {
		cfg.Units = domain.UnitsMetric
	}
	if !cfg.Units.Valid() {
		return nil, newError(ErrTypeConfiguration, fmt.Sprintf("unsupported units %q", cfg.Units), nil)
	}

	c := &Client{
		config:  cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: baseURL,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewSearchRequest validates a city query against the client configuration
func (c *Client) NewSearchRequest(city string) (*SearchRequest, error) {
	if c.config.APIKey == "" {
		return nil, newError(ErrTypeConfiguration, "no API key configured", nil)
	}

	city = strings.TrimSpace(city)
	if city == "" {
		return nil, newError(ErrTypeValidation, "city must not be empty", nil)
	}
	if utf8.RuneCountInString(city) > MaxCityLength {
		return nil, newError(ErrTypeValidation, fmt.Sprintf("city must be at most %d characters", MaxCityLength), nil)
	}

	return &SearchRequest{
		City:  city,
		Units: c.config.Units,
		Lang:  c.config.Lang,
		Limit: c.config.Limit,
	}, nil
}

// Execute runs the lookup. A "city not found" answer is reported as an empty
// result rather than an error.
func (c *Client) Execute(ctx context.Context, req *SearchRequest) ([]domain.CityWeather, error) {
	if req == nil {
		return nil, newError(ErrTypeValidation, "search request is required", nil)
	}

	endpoint := c.endpoint(req)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, newError(ErrTypeNetwork, "failed to create request", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("weather lookup finished",
		slog.String("city", req.City),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return []domain.CityWeather{}, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, statusError(resp)
	}

	var body findResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, newError(ErrTypeDecode, "failed to decode find response", err)
	}

	items := make([]domain.CityWeather, 0, len(body.List))
	for _, entry := range body.List {
		items = append(items, entry.toDomain())
	}
	return items, nil
}

func (c *Client) endpoint(req *SearchRequest) string {
	u := c.baseURL.JoinPath(findPath)

	q := url.Values{}
	q.Set("q", req.City)
	q.Set("appid", c.config.APIKey)
	q.Set("units", string(req.Units))
	if req.Lang != "" {
		q.Set("lang", req.Lang)
	}
	if req.Limit > 0 {
		q.Set("cnt", strconv.Itoa(req.Limit))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func statusError(resp *http.Response) error {
	message := http.StatusText(resp.StatusCode)
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body errorResponse
	if json.Unmarshal(data, &body) == nil && body.Message != "" {
		message = body.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return newStatusError(ErrTypeAuthentication, resp.StatusCode, message)
	case http.StatusTooManyRequests:
		return newStatusError(ErrTypeRateLimit, resp.StatusCode, message)
	default:
		return newStatusError(ErrTypeUpstream, resp.StatusCode, message)
	}
}

// classifyTransportError drops the *url.Error wrapper because its message
// carries the request URL, API key included.
func classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return newError(ErrTypeNetwork, "lookup cancelled", context.Canceled)
	}
	timeout := errors.Is(err, context.DeadlineExceeded)
	var ue *url.Error
	if errors.As(err, &ue) {
		timeout = timeout || ue.Timeout()
		err = ue.Err
	}
	if timeout {
		return newError(ErrTypeTimeout, "lookup timed out", err)
	}
	return newError(ErrTypeNetwork, "request failed", err)
}
