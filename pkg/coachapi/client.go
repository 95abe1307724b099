// Package coachapi is the HTTP boundary to the career coach backend.
// Each call wraps exactly one request and normalises every failure into a
// typed error with a message fit for showing to the user.
package coachapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 30 * time.Second

	chatEndpoint   = "/api/chat"
	exportEndpoint = "/api/export-pdf"
)

type Client struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Timeout: timeout,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// post sends payload as JSON and returns the raw body of a 2xx response.
// No retries are attempted.
func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, *failure) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, &failure{message: fmt.Sprintf("marshal request: %v", err), err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, &failure{message: fmt.Sprintf("create request: %v", err), err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, c.transportFailure(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		f := c.transportFailure(err)
		f.status = resp.StatusCode
		return nil, f
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &failure{
			status:  resp.StatusCode,
			message: extractErrorMessage(resp.StatusCode, bodyBytes),
		}
	}

	return bodyBytes, nil
}

// transportFailure turns a network-level error into a failure, keeping the
// underlying cause's message and flagging timeouts.
func (c *Client) transportFailure(err error) *failure {
	if isTimeout(err) {
		return &failure{
			message:  fmt.Sprintf("Request timed out after %s", c.Timeout),
			err:      err,
			timedOut: true,
		}
	}

	msg := err.Error()
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		msg = urlErr.Err.Error()
	}
	return &failure{message: msg, err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
