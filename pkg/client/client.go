package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/robert-malhotra/go-quake-client/pkg/quake"
)

const (
	// DefaultBaseURL is the USGS event service root.
	DefaultBaseURL = "http://earthquake.usgs.gov"
	// QueryPath is the FDSN event query endpoint below the service root.
	QueryPath = "/fdsnws/event/1/query"

	defaultUserAgent = "go-quake-client/0.1"
	maxErrorBody     = 1 << 20
)

// Client queries an FDSN event service. It only holds immutable
// configuration and is safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	transport http.RoundTripper
	timeout   time.Duration
	logger    Logger
	userAgent string
}

// New constructs a Client with provided options.
func New(opts ...ClientOption) (*Client, error) {
	base, _ := url.Parse(DefaultBaseURL)
	c := &Client{
		baseURL:   base,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// -----------------------------------------------------------------------------
// URL building
// -----------------------------------------------------------------------------

type queryParam struct {
	key   string
	value string
}

// buildURL returns the query URL with format=geojson followed by params in
// the order given. url.Values is avoided since it sorts keys.
func (c *Client) buildURL(params []queryParam) string {
	u := *c.baseURL
	u.Path = path.Join("/", c.baseURL.Path, QueryPath)
	u.RawPath = ""
	u.Fragment = ""

	var b strings.Builder
	b.WriteString("format=geojson")
	for _, p := range params {
		b.WriteByte('&')
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	u.RawQuery = b.String()
	return u.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05")
}

// -----------------------------------------------------------------------------
// fetch + decode
// -----------------------------------------------------------------------------

func (c *Client) query(ctx context.Context, params []queryParam) (*quake.QueryResult, error) {
	rawURL := c.buildURL(params)

	body, err := c.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	var res *quake.QueryResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, &DeserializationError{URL: rawURL, Err: err}
	}
	if res == nil {
		return nil, &DeserializationError{URL: rawURL, Err: errors.New("empty document")}
	}
	if res.Features == nil {
		res.Features = []quake.Feature{}
	}
	return res, nil
}

// newHTTPClient returns a client scoped to a single call and a release func
// that drops its idle connections when the client owns the transport.
func (c *Client) newHTTPClient() (*http.Client, func()) {
	if c.transport != nil {
		return &http.Client{Transport: c.transport, Timeout: c.timeout}, func() {}
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &http.Client{Transport: transport, Timeout: c.timeout}, transport.CloseIdleConnections
}

// fetch issues one GET and returns the body of a 2xx response. Transport
// failures are returned as net/http reports them.
func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request for %s: %w", rawURL, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	httpClient, release := c.newHTTPClient()
	defer release()

	if c.logger != nil {
		c.logger.Debugf("quakeclient: %s %s", req.Method, req.URL)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if c.logger != nil {
			c.logger.Errorf("quakeclient: request failed status=%d url=%s", resp.StatusCode, rawURL)
		}
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Method:     req.Method,
			URL:        rawURL,
			Body:       data,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response from %s: %w", rawURL, err)
	}
	return body, nil
}
