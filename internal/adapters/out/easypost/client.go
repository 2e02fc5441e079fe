// Package easypost is the HTTP client for the EasyPost carrier aggregator.
// One client serves three ports: address validation, rate shopping, and
// label issuance. Every call carries a bounded timeout, and transport-level
// trouble including that timeout is reported as ports.ErrNetworkOrTimeout so
// the application layer can distinguish "the carrier said no" from "we never
// got an answer".
package easypost

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"shiplabel/internal/core/ports"

	gojson "github.com/goccy/go-json"
)

const (
	ratesTimeout    = 15 * time.Second
	labelTimeout    = 60 * time.Second
	validateTimeout = 10 * time.Second
)

// Client talks to the EasyPost REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

// NewClient creates a carrier API client. The http.Client has no timeout of
// its own; each call sets a per-operation deadline via context.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger.With(slog.String("infra", "easypost")),
	}
}

// apiError is the provider's error envelope for non-2xx answers.
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// post sends a JSON request and decodes the JSON answer into out. A nil out
// discards the body. 5xx answers and transport faults map to
// ports.ErrNetworkOrTimeout; 4xx answers surface the provider's message.
func (c *Client) post(ctx context.Context, timeout time.Duration, path string, payload, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		encoded, err := gojson.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.apiKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("carrier request failed", slog.String("path", path), slog.Any("error", err))
		return mapTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusInternalServerError {
		c.logger.Error("carrier returned server error",
			slog.String("path", path), slog.Int("status_code", resp.StatusCode))
		return fmt.Errorf("%w: carrier returned %d", ports.ErrNetworkOrTimeout, resp.StatusCode)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var envelope apiError
		if decodeErr := gojson.NewDecoder(resp.Body).Decode(&envelope); decodeErr != nil {
			return fmt.Errorf("carrier returned %d", resp.StatusCode)
		}
		c.logger.Warn("carrier rejected request",
			slog.String("path", path),
			slog.Int("status_code", resp.StatusCode),
			slog.String("code", envelope.Error.Code))
		return fmt.Errorf("carrier rejected request: %s", envelope.Error.Message)
	}

	if out == nil {
		return nil
	}
	if err := gojson.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode carrier response: %w", err)
	}
	return nil
}

func mapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", ports.ErrNetworkOrTimeout, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %w", ports.ErrNetworkOrTimeout, err)
	}
	return err
}
