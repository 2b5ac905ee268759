package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	apperrors "wedmarket/pkg/errors"
)

const (
	EnvAPIBaseURL     = "WEDMARKET_API_BASE_URL"
	DefaultAPIBaseURL = "http://localhost:5000"
	DefaultTimeout    = 10 * time.Second
)

// BaseURLFromEnv returns the marketplace API base URL, falling back to the local default.
func BaseURLFromEnv() string {
	if v := strings.TrimSpace(os.Getenv(EnvAPIBaseURL)); v != "" {
		return strings.TrimSuffix(v, "/")
	}
	return DefaultAPIBaseURL
}

type HttpClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewHttpClient(baseURL string) *HttpClient {
	if baseURL == "" {
		baseURL = BaseURLFromEnv()
	}
	return &HttpClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

type Response struct {
	*http.Response
	Body []byte
}

func (r *Response) DecodeJSON(target any) error {
	return json.Unmarshal(r.Body, target)
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (c *HttpClient) GET(ctx context.Context, path string) (*Response, error) {
	return c.request(ctx, http.MethodGet, path, nil)
}

func (c *HttpClient) POST(ctx context.Context, path string, body any) (*Response, error) {
	return c.request(ctx, http.MethodPost, path, body)
}

func (c *HttpClient) PUT(ctx context.Context, path string, body any) (*Response, error) {
	return c.request(ctx, http.MethodPut, path, body)
}

func (c *HttpClient) DELETE(ctx context.Context, path string) (*Response, error) {
	return c.request(ctx, http.MethodDelete, path, nil)
}

func (c *HttpClient) request(ctx context.Context, method, path string, body any) (*Response, error) {
	var reqBody io.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		Response: resp,
		Body:     respBody,
	}, nil
}

// Call performs a JSON request and classifies every failure as an AppError: transport
// problems become TIMEOUT or SERVICE_UNAVAILABLE, non-2xx statuses are mapped from the
// status code, and an undecodable body becomes MALFORMED_RESPONSE. out may be nil.
func (c *HttpClient) Call(ctx context.Context, method, path string, body, out any) (*Response, error) {
	resp, err := c.request(ctx, method, path, body)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if !resp.OK() {
		return resp, apperrors.FromStatus(resp.StatusCode, GetErrorMessage(resp))
	}

	if out != nil && len(bytes.TrimSpace(resp.Body)) > 0 {
		if err := resp.DecodeJSON(out); err != nil {
			return resp, apperrors.Malformed(fmt.Sprintf("Malformed response from %s %s", method, path), err)
		}
	}
	return resp, nil
}

func classifyTransportError(err error) *apperrors.AppError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperrors.Wrap(err, apperrors.CodeTimeout, "Request to marketplace API timed out", http.StatusGatewayTimeout)
	}
	if errors.Is(err, context.Canceled) {
		return apperrors.Wrap(err, apperrors.CodeUnavailable, "Request to marketplace API was cancelled", http.StatusServiceUnavailable)
	}
	return apperrors.Wrap(err, apperrors.CodeUnavailable, "Marketplace API is unreachable", http.StatusServiceUnavailable)
}

// GetErrorMessage extracts the human readable error from an error body, or "" when the
// body carries none.
func GetErrorMessage(resp *Response) string {
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if err := resp.DecodeJSON(&errResp); err != nil {
		return ""
	}

	if errResp.Error != "" {
		return errResp.Error
	}
	if errResp.Message != "" {
		return errResp.Message
	}
	return ""
}

func (c *HttpClient) WaitForHealthy(ctx context.Context, maxWait time.Duration) error {
	deadline := time.Now().Add(maxWait)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for time.Now().Before(deadline) {
		resp, err := c.GET(ctx, "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return fmt.Errorf("service did not become healthy within %v", maxWait)
}
