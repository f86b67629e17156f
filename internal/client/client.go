// Package client talks to the gateway's /api/chat endpoint the way a browser
// does: JSON bodies and a cookie jar that keeps whatever session cookie the
// gateway relays.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// StatusError is returned for any non-success gateway response.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Message string `json:"message"`
}

// Client posts turns to a gateway. A Client carries one conversation's
// cookies and is meant to be driven by a single chat.Store.
type Client struct {
	endpoint string
	http     *http.Client
}

// New creates a client for the gateway at baseURL with a fresh cookie jar.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return NewWithHTTPClient(baseURL, &http.Client{Jar: jar}), nil
}

// NewWithHTTPClient uses hc as is; hc.Jar must be set for session continuity.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + "/api/chat",
		http:     hc,
	}
}

// SendTurn posts text and returns the assistant reply, which may be empty.
func (c *Client) SendTurn(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(chatRequest{Message: text})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("post chat request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &StatusError{Status: resp.StatusCode, Body: string(raw)}
	}

	var decoded chatResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	return decoded.Message, nil
}
