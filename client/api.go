package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultRequestTimeout = 30 * time.Second

// ApiClient is a thin HTTP client bound to one Configuration copy. It lives
// for the duration of a single Session and must be released with Close.
type ApiClient struct {
	config Configuration
	http   *http.Client
}

// NewApiClient constructs a client from a configuration copy.
func NewApiClient(config Configuration) *ApiClient {
	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &ApiClient{
		config: config,
		http:   &http.Client{Timeout: timeout},
	}
}

// Close releases the underlying connections.
func (c *ApiClient) Close() {
	c.http.CloseIdleConnections()
}

// createRequest creates an HTTP request with authorization when the
// configuration carries an access token.
func (c *ApiClient) createRequest(ctx context.Context, method, path string, form url.Values) (*http.Request, error) {
	urlStr := strings.TrimRight(c.config.Host, "/") + path
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, urlStr, body)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("url", urlStr).Msg("Failed to create HTTP request object")
		return nil, err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.config.AccessToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.AccessToken))
	}
	return req, nil
}

// sendRequest sends an HTTP request and checks its status. Non-2xx responses
// come back as *APIError with the body attached.
func (c *ApiClient) sendRequest(req *http.Request) ([]byte, error) {
	log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Msg("Sending HTTP request")
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Str("url", req.URL.String()).Msg("Failed to read response body")
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(body)}
		log.Error().Str("method", req.Method).Str("url", req.URL.String()).
			Int("status", resp.StatusCode).Str("body", apiErr.Body).
			Msg("HTTP request returned non-OK status")
		return nil, apiErr
	}

	log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status", resp.StatusCode).Msg("HTTP request successful")
	return body, nil
}

// getJSON performs a GET request and decodes the JSON response into out.
func (c *ApiClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := c.createRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	body, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	return parseJSON(body, out)
}

// submitForm performs a form-encoded request and decodes the JSON response into out.
func (c *ApiClient) submitForm(ctx context.Context, method, path string, form url.Values, out interface{}) error {
	req, err := c.createRequest(ctx, method, path, form)
	if err != nil {
		return err
	}
	body, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	return parseJSON(body, out)
}

func parseJSON(body []byte, out interface{}) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		log.Error().Err(err).Str("body_preview", string(body[:min(len(body), 200)])).Msg("Failed to parse response JSON")
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}
	return nil
}
