package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	DefaultAPIPrefix = "/api"
	DefaultTimeout   = 10 * time.Second
	RequestIDHeader  = "X-Request-ID"
)

// ErrNoGame is returned by game-scoped calls made without a game id.
var ErrNoGame = errors.New("load or create a game first")

// StatusError is a non-2xx response.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.Code, strings.TrimSpace(string(e.Body)))
}

// Client talks to the game server. Reads degrade to Unavailable; commands
// return *CommandError.
type Client struct {
	baseURL string
	prefix  string
	client  *http.Client
	headers map[string]string
}

func NewClient(baseURL, prefix string) *Client {
	if prefix == "" {
		prefix = DefaultAPIPrefix
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		prefix:  "/" + strings.Trim(prefix, "/"),
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
		headers: map[string]string{
			"Accept": "application/json",
		},
	}
}

func (c *Client) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		c.client.Timeout = timeout
	}
}

// do sends one request and returns the response body. Non-2xx responses
// come back as *StatusError together with their body.
func (c *Client) do(ctx context.Context, method, endpoint string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+c.prefix+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("request_id", reqID).Str("method", method).Str("path", endpoint).Msg("request failed")
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	log.Debug().
		Str("request_id", reqID).
		Str("method", method).
		Str("path", endpoint).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return data, &StatusError{Code: resp.StatusCode, Body: data}
	}
	return data, nil
}

// getJSON performs a best-effort read into a Result.
func getJSON[T any](ctx context.Context, c *Client, endpoint string) Result[T] {
	data, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Unavailable[T](err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return Unavailable[T](fmt.Errorf("decoding %s: %w", endpoint, err))
	}
	return Available(v)
}
