package cfapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/programme-lv/cfwatch/logger"
)

const (
	DefaultBaseURL = "https://codeforces.com/api"
	DefaultTimeout = 10 * time.Second

	// maxBodyBytes caps how much of a response is read; user.status
	// with a small count is a few kilobytes.
	maxBodyBytes = 4 << 20
)

// Client talks to the public, unauthenticated part of the Codeforces API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: gzhttp.Transport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LatestSubmissions returns up to count most recent submissions of the
// given handle, newest first.
func (c *Client) LatestSubmissions(ctx context.Context, handle string, count int) ([]Submission, error) {
	if count <= 0 {
		return nil, newErrInvalidCount(count)
	}

	query := url.Values{}
	query.Set("handle", handle)
	query.Set("count", strconv.Itoa(count))

	var subms []Submission
	if err := c.get(ctx, "user.status", query, &subms); err != nil {
		return nil, err
	}
	return subms, nil
}

func (c *Client) get(ctx context.Context, method string, query url.Values, result any) error {
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, method, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return newErrNetworkFailure(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	log := logger.FromContext(ctx)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return newErrNetworkFailure(err)
	}
	defer resp.Body.Close()

	log.Debug("codeforces api call",
		slog.String("method", method),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return newErrNetworkFailure(fmt.Errorf("read body: %w", err))
	}

	// FAILED responses come with 400 and a readable comment, so try the
	// envelope before looking at the status code.
	var env envelope[json.RawMessage]
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return newErrUnexpectedStatus(resp.StatusCode)
		}
		return newErrNetworkFailure(fmt.Errorf("decode envelope: %w", err))
	}

	switch {
	case env.Status == statusFailed:
		return newErrApiFailure(env.Comment)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return newErrUnexpectedStatus(resp.StatusCode)
	case env.Status != statusOK:
		return newErrNetworkFailure(fmt.Errorf("unexpected envelope status %q", env.Status))
	}

	if len(env.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Result, result); err != nil {
		return newErrNetworkFailure(fmt.Errorf("decode %s result: %w", method, err))
	}
	return nil
}
