package client

import (
	"net/http"
	"net/url"
	"time"
)

// Logger represents the minimal logging interface used by the client.
// logrus.FieldLogger satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

// ClientOption configures a Client during construction.
type ClientOption func(*Client) error

// WithBaseURL sets the service root, e.g. "https://earthquake.usgs.gov".
// The event query path is appended to it.
func WithBaseURL(raw string) ClientOption {
	return func(c *Client) error {
		if raw == "" {
			return ErrInvalidBaseURL
		}
		u, err := url.Parse(raw)
		if err != nil {
			return err
		}
		if !u.IsAbs() || u.Host == "" {
			return ErrInvalidBaseURL
		}
		c.baseURL = u
		return nil
	}
}

// WithTransport sets the round tripper used by every per-call HTTP client.
// The client never closes connections held by a supplied transport.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) error {
		if rt == nil {
			return ErrNilTransport
		}
		c.transport = rt
		return nil
	}
}

// WithTimeout bounds each query. Zero, the default, means no timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) error {
		if timeout < 0 {
			timeout = 0
		}
		c.timeout = timeout
		return nil
	}
}

// WithLogger registers a logger used for request lifecycle events.
func WithLogger(logger Logger) ClientOption {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) error {
		if ua != "" {
			c.userAgent = ua
		}
		return nil
	}
}
