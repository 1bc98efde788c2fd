// internal/common/http/client.go
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bizcoach-workers/internal/common/errors"
)

// maxErrorBody bounds how much of an error response is kept in details.
const maxErrorBody = 512

// Client calls one external JSON REST collaborator.
type Client struct {
	httpClient *http.Client
	baseURL    string
	service    string
}

func NewClient(baseURL, service string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		service: service,
	}
}

// GetJSON issues GET baseURL+path with a bearer token and decodes the body
// into dest. Failures come back as StandardErrors: 401/403 are not retryable,
// 5xx and 429 are.
func (c *Client) GetJSON(ctx context.Context, path, token string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.NewInternalError(err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return errors.NewTimeoutError(c.service, err)
		}
		return errors.NewExternalServiceError(c.service, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.NewConnectorAuthFailedError(resp.StatusCode)
	case resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		stdErr := errors.NewExternalServiceError(c.service,
			fmt.Errorf("%s %s: %d %s", req.Method, path, resp.StatusCode, strings.TrimSpace(string(body))))
		stdErr.Retryable = resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return stdErr.WithMetadata("httpStatus", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return errors.NewExternalServiceError(c.service, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
