package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kc31/smsrelay/internal/common"
	"github.com/kc31/smsrelay/internal/models"
)

const (
	authenticatePath = "/api/v1/auth/authenticate"
	sendMessagePath  = "/api/v1/genAi"
)

// HTTPClient talks to the remote service over plain HTTP+JSON.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient returns a client bound to baseURL. A zero timeout disables
// the client-side deadline.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Authenticate posts credentials and returns the decoded response.
// Transport failures map to common.ErrNetwork, non-2xx statuses and empty
// bodies to common.ErrAuth.
func (c *HTTPClient) Authenticate(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	payload, err := json.Marshal(models.AuthRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+authenticatePath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrNetwork, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", common.ErrAuth, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrNetwork, err.Error())
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: response is empty", common.ErrAuth)
	}

	var authResp models.AuthResponse
	if err := json.Unmarshal(body, &authResp); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrAuth, err.Error())
	}

	return &authResp, nil
}

// SendMessage posts body as plain text with a bearer token. Any 2xx status is
// success; no response body is required.
func (c *HTTPClient) SendMessage(ctx context.Context, token, body string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendMessagePath, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build send request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", common.ErrNetwork, err.Error())
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("server returned %s", resp.Status)
	}

	return nil
}
