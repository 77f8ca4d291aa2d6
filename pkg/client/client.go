// Package client provides the IGDB HTTP client: typed endpoint methods, raw
// and decoded fetches, and scroll pagination through the X-Next-Page and
// X-Count response headers.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Sternrassler/igdb-api-client/pkg/params"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for IGDB client operations.
var (
	igdbRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "igdb_requests_total",
		Help: "Total IGDB requests by endpoint and status",
	}, []string{"endpoint", "status"})

	igdbRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "igdb_request_duration_seconds",
		Help:    "IGDB request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	igdbErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "igdb_errors_total",
		Help: "Total IGDB errors by class",
	}, []string{"class"})

	igdbScrollHeaderMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "igdb_scroll_header_misses_total",
		Help: "Total scroll header lookups that found no header",
	}, []string{"header"})
)

// ErrorClass represents a classification of request failures.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents transport failures.
	ErrorClassNetwork ErrorClass = "network"
)

// DefaultTimeout is the timeout of the default transport.
const DefaultTimeout = 30 * time.Second

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the IGDB API client.
//
// The client remembers the last response it received so scroll headers can be
// read without passing the response around. That slot is shared by every call
// on the client: use one client per scroll chain, or pagination.Scroller which
// carries the cursor explicitly.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  Doer
	collections *params.Registry
	logger      zerolog.Logger

	mu       sync.Mutex
	response *Response
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the IGDB API (REQUIRED), e.g. "https://api-endpoint.igdb.com"
	BaseURL string

	// APIKey sent as the user-key header (REQUIRED)
	APIKey string

	// HTTPClient used to send requests. Defaults to an *http.Client with DefaultTimeout.
	HTTPClient Doer

	// Collections resolves named parameter presets (optional)
	Collections *params.Registry

	// Logger overrides the component logger (optional)
	Logger *zerolog.Logger
}

// DefaultConfig returns a configuration using the default transport.
func DefaultConfig(baseURL, apiKey string) Config {
	return Config{
		BaseURL: baseURL,
		APIKey:  apiKey,
	}
}

// New creates a new IGDB client.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrMissingBaseURL
	}

	logger := log.With().Str("component", "igdb-client").Logger()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		httpClient:  httpClient,
		collections: cfg.Collections,
		logger:      logger,
	}, nil
}

// BaseURL returns the configured base URL without trailing slashes.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Endpoint returns the URL of the named endpoint, ending with a slash.
func (c *Client) Endpoint(name string) string {
	return c.baseURL + "/" + name + "/"
}

// FetchResponse requests endpoint with the builder's parameters and returns
// the response without decoding it. A nil builder requests all fields.
func (c *Client) FetchResponse(ctx context.Context, endpoint string, b *params.Builder) (*Response, error) {
	if b == nil {
		b = params.NewBuilder()
	}
	return c.SendRequest(ctx, c.Endpoint(endpoint)+b.BuildQueryString())
}

// FetchData requests endpoint with the builder's parameters and decodes the body.
func (c *Client) FetchData(ctx context.Context, endpoint string, b *params.Builder) (Result, error) {
	resp, err := c.FetchResponse(ctx, endpoint, b)
	if err != nil {
		return nil, err
	}
	return c.ProcessResponse(resp), nil
}

// FetchDataAsJSON requests endpoint with the builder's parameters and returns
// the raw body.
func (c *Client) FetchDataAsJSON(ctx context.Context, endpoint string, b *params.Builder) (string, error) {
	resp, err := c.FetchResponse(ctx, endpoint, b)
	if err != nil {
		return "", err
	}
	return string(resp.Body), nil
}

// Search sets the search term on the builder and fetches endpoint.
func (c *Client) Search(ctx context.Context, search, endpoint string, b *params.Builder) (Result, error) {
	if b == nil {
		b = params.NewBuilder()
	}
	b.SetSearch(search)
	return c.FetchData(ctx, endpoint, b)
}

// ScrollResponse requests a continuation path as returned in X-Next-Page
// and returns the response without decoding it.
func (c *Client) ScrollResponse(ctx context.Context, path string) (*Response, error) {
	return c.SendRequest(ctx, c.baseURL+path)
}

// Scroll requests a continuation path as returned in X-Next-Page
// (e.g. "/games/?scroll=1&limit=10") and decodes the body.
func (c *Client) Scroll(ctx context.Context, path string) (Result, error) {
	resp, err := c.ScrollResponse(ctx, path)
	if err != nil {
		return nil, err
	}
	return c.ProcessResponse(resp), nil
}

// ScrollJSON is like Scroll but returns the raw body.
func (c *Client) ScrollJSON(ctx context.Context, path string) (string, error) {
	resp, err := c.ScrollResponse(ctx, path)
	if err != nil {
		return "", err
	}
	return string(resp.Body), nil
}

// ScrollNext continues a scroll from resp, or from the last response when
// resp is nil, by following its X-Next-Page header.
func (c *Client) ScrollNext(ctx context.Context, resp *Response) (Result, error) {
	next, err := c.ScrollNextPage(resp)
	if err != nil {
		return nil, err
	}
	return c.Scroll(ctx, next)
}

// ScrollNextPage returns the X-Next-Page header of resp, or of the last
// response when resp is nil.
func (c *Client) ScrollNextPage(resp *Response) (string, error) {
	resp, err := c.responseOrLast(resp)
	if err != nil {
		return "", err
	}
	return c.ScrollHeader(resp, HeaderNextPage)
}

// ScrollCount returns the X-Count header of resp, or of the last response
// when resp is nil.
func (c *Client) ScrollCount(resp *Response) (int, error) {
	resp, err := c.responseOrLast(resp)
	if err != nil {
		return 0, err
	}

	value, err := c.ScrollHeader(resp, HeaderCount)
	if err != nil {
		return 0, err
	}

	count, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("parse %s header: %w", HeaderCount, err)
	}
	return count, nil
}

// ScrollHeader returns the first value of header on resp.
// It fails with a *ScrollHeaderError when the header is absent or empty.
func (c *Client) ScrollHeader(resp *Response, header string) (string, error) {
	if resp == nil {
		return "", ErrNoResponse
	}

	values := resp.HeaderValues(header)
	if len(values) == 0 || values[0] == "" {
		igdbScrollHeaderMissesTotal.WithLabelValues(header).Inc()
		c.logger.Debug().
			Str("header", header).
			Str("url", resp.URL).
			Msg("Scroll header not found")
		return "", &ScrollHeaderError{Header: header}
	}
	return values[0], nil
}

// LastResponse returns the response stored by the most recent request, or nil.
func (c *Client) LastResponse() *Response {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.response
}

// Collection creates the named parameter collection from the configured registry.
func (c *Client) Collection(name string) (params.Collection, error) {
	if c.collections == nil {
		return nil, ErrNoRegistry
	}
	return c.collections.Create(name)
}

func (c *Client) responseOrLast(resp *Response) (*Response, error) {
	if resp != nil {
		return resp, nil
	}
	if last := c.LastResponse(); last != nil {
		return last, nil
	}
	return nil, ErrNoResponse
}

// SendRequest performs a GET on rawURL with the API key attached.
//
// Responses with a 4xx or 5xx status are returned with a nil error. Only
// transport failures are returned as errors, wrapping ErrTransport. Every
// response becomes the client's last response. A body that cannot be read
// counts as a transport failure and leaves the last response unchanged.
func (c *Client) SendRequest(ctx context.Context, rawURL string) (*Response, error) {
	endpoint := endpointLabel(c.baseURL, rawURL)

	startTime := time.Now()
	defer func() {
		igdbRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	// IGDB values are sent unencoded; only spaces would break the request line
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.ReplaceAll(rawURL, " ", "%20"), nil)
	if err != nil {
		return nil, c.transportError(endpoint, rawURL, fmt.Errorf("create request: %w", err))
	}

	req.Header.Set("user-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("url", rawURL).
		Msg("Executing IGDB request")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(endpoint, rawURL, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, c.transportError(endpoint, rawURL, fmt.Errorf("read response body: %w", err))
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header.Clone(),
		Body:       body,
		URL:        rawURL,
	}

	c.mu.Lock()
	c.response = resp
	c.mu.Unlock()

	igdbRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.IsError() {
		errClass := classifyStatus(resp.StatusCode)
		igdbErrorsTotal.WithLabelValues(string(errClass)).Inc()
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("IGDB request error")
		return resp, nil
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(startTime)).
		Msg("IGDB request completed")

	return resp, nil
}

func (c *Client) transportError(endpoint, rawURL string, err error) error {
	igdbErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
	igdbRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
	c.logger.Error().
		Err(err).
		Str("endpoint", endpoint).
		Str("url", rawURL).
		Str("error_class", string(ErrorClassNetwork)).
		Msg("IGDB request failed")
	return fmt.Errorf("%w: %w", ErrTransport, err)
}

// classifyStatus categorizes an HTTP status for observability.
func classifyStatus(status int) ErrorClass {
	switch {
	case status >= 400 && status < 500:
		return ErrorClassClient
	case status >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}

// endpointLabel extracts the resource name from a request URL for metric labels,
// e.g. "https://host/games/1,2?fields=*" -> "games". Anything that is not a
// known endpoint is labelled "unknown" so the label set stays bounded.
func endpointLabel(baseURL, rawURL string) string {
	name := firstSegment(strings.TrimPrefix(rawURL, baseURL))
	if !IsEndpoint(name) {
		return "unknown"
	}
	return name
}

// firstSegment returns the first path segment of path, e.g. "/games/1?x" -> "games".
func firstSegment(path string) string {
	path = strings.TrimLeft(path, "/")
	if i := strings.IndexAny(path, "/?"); i >= 0 {
		path = path[:i]
	}
	return path
}

// IsScrollPath reports whether next looks like an X-Next-Page value: a
// server-relative path whose first segment is a known endpoint.
func IsScrollPath(next string) bool {
	return strings.HasPrefix(next, "/") && IsEndpoint(firstSegment(next))
}
