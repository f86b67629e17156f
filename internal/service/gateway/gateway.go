// Package gateway relays a single conversational turn from the browser to the
// backend conversational service, carrying the session cookie both ways.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/zhouzirui/quote-chat/internal/session"
)

const maxBackendBody = 1 << 20

// Reply is a successful backend turn.
type Reply struct {
	// Text is the assistant reply extracted from the backend body; may be empty.
	Text string
	// Body is the backend response body exactly as received.
	Body []byte
	// SetCookies holds the backend's Set-Cookie values to relay unchanged.
	SetCookies []string
}

type backendRequest struct {
	Message string `json:"message"`
	SID     string `json:"sid,omitempty"`
}

type backendResponse struct {
	Message string `json:"message"`
}

// Gateway forwards turns to the backend. It holds no per-session state and is
// safe for concurrent use.
type Gateway struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
	logger   zerolog.Logger
}

// Option customises a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the outbound HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) {
		if c != nil {
			g.client = c
		}
	}
}

// WithTimeout bounds each backend call. Zero leaves calls unbounded. The
// bound is applied per call, so a client passed to WithHTTPClient is never
// modified.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithLogger sets the logger used for upstream diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Gateway) {
		g.logger = l
	}
}

// New creates a gateway targeting {baseURL}/chat.
func New(baseURL string, opts ...Option) *Gateway {
	g := &Gateway{
		endpoint: strings.TrimRight(baseURL, "/") + "/chat",
		client:   &http.Client{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Endpoint returns the backend URL turns are posted to.
func (g *Gateway) Endpoint() string {
	return g.endpoint
}

// ParseTurn extracts the turn text from a browser request body of the form
// {"message": "..."}. Anything other than a non-empty JSON string yields
// ErrInvalidInput.
func ParseTurn(body []byte) (string, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", ErrInvalidInput
	}
	raw, ok := payload["message"]
	if !ok {
		return "", ErrInvalidInput
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", ErrInvalidInput
	}
	if text == "" {
		return "", ErrInvalidInput
	}
	return text, nil
}

// Forward relays text and the caller's session token to the backend.
func (g *Gateway) Forward(ctx context.Context, text string, token session.Token) (Reply, error) {
	if text == "" {
		return Reply{}, ErrInvalidInput
	}

	body, err := json.Marshal(backendRequest{Message: text, SID: string(token)})
	if err != nil {
		return Reply{}, fmt.Errorf("encode backend request: %w", err)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return Reply{}, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	session.Attach(req, token)

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error().Err(err).Str("endpoint", g.endpoint).Msg("backend request failed")
		return Reply{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBackendBody+1))
	if err != nil {
		g.logger.Error().Err(err).Int("status", resp.StatusCode).Msg("failed to read backend response")
		return Reply{}, &TransportError{Err: err}
	}
	if len(raw) > maxBackendBody {
		g.logger.Warn().
			Int("status", resp.StatusCode).
			Int("limit", maxBackendBody).
			Msg("backend response exceeds size limit")
		return Reply{}, &UpstreamError{
			Status: resp.StatusCode,
			Body:   fmt.Sprintf("response exceeds %d bytes", maxBackendBody),
			Err:    ErrResponseTooLarge,
		}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		g.logger.Warn().
			Int("status", resp.StatusCode).
			Str("body", string(raw)).
			Msg("backend returned non-success status")
		return Reply{}, &UpstreamError{Status: resp.StatusCode, Body: string(raw)}
	}

	var decoded backendResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		g.logger.Warn().Err(err).Str("body", string(raw)).Msg("backend returned malformed body")
		return Reply{}, &UpstreamError{Status: resp.StatusCode, Body: string(raw)}
	}

	return Reply{
		Text:       decoded.Message,
		Body:       raw,
		SetCookies: session.SetCookies(resp.Header),
	}, nil
}
