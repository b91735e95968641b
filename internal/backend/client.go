package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// Observer receives one call per backend request. endpoint is a static label,
// status is 0 when the request never got a response.
type Observer interface {
	ObserveBackend(endpoint string, status int, elapsed time.Duration)
}

// Client talks to the booking REST backend. Public endpoints are methods on
// Client; token-authenticated endpoints hang off the role scopes.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	observer   Observer

	redis    *redis.Client
	cacheTTL time.Duration
}

func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "backend").Logger(),
	}
}

// UseRedisCache enables caching of reference-data GETs (cities, services by
// position). Slot lookups are never cached.
func (c *Client) UseRedisCache(rdb *redis.Client, ttl time.Duration) {
	c.redis = rdb
	c.cacheTTL = ttl
}

func (c *Client) SetObserver(o Observer) {
	c.observer = o
}

// StatusError is returned for any non-2xx backend reply.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend %s %s: http %d", e.Method, e.Path, e.Status)
}

type call struct {
	endpoint string
	method   string
	path     string
	token    string
	body     any
}

func (c *Client) do(ctx context.Context, cl call, out any) error {
	var reader io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", cl.endpoint, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", cl.endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(cl.endpoint, 0, start)
		c.logger.Warn().Err(err).Str("endpoint", cl.endpoint).Str("path", cl.path).Msg("backend request failed")
		return fmt.Errorf("backend %s %s: %w", cl.method, cl.path, err)
	}
	defer resp.Body.Close()
	c.observe(cl.endpoint, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Debug().
			Str("endpoint", cl.endpoint).
			Str("path", cl.path).
			Int("status", resp.StatusCode).
			Msg("backend returned error status")
		return &StatusError{Method: cl.method, Path: cl.path, Status: resp.StatusCode, Body: string(body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", cl.endpoint, err)
	}
	return nil
}

func (c *Client) observe(endpoint string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveBackend(endpoint, status, time.Since(start))
	}
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(val, out) == nil
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.cacheTTL).Err(); err != nil {
		c.logger.Debug().Err(err).Str("key", key).Msg("cache write failed")
	}
}
