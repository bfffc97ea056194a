// Package catalog is an HTTP client for the parts catalog service.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrUnreachable indicates the catalog service did not answer the
// reachability check.
var ErrUnreachable = errors.New("catalog service unreachable")

// maxBodyBytes bounds how much of an error body is kept.
const maxBodyBytes = 64 << 10

// duplicateSignatures are error body fragments produced by the catalog's
// unique constraint on part numbers.
var duplicateSignatures = []string{"unique constraint", "already exists", "duplicate", "partno"}

// APIError is a non-2xx response from the catalog service.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d - %s", e.StatusCode, e.Body)
}

// IsDuplicate reports whether the response rejects an existing part number.
func (e *APIError) IsDuplicate() bool {
	if e.StatusCode == http.StatusConflict {
		return true
	}
	body := strings.ToLower(e.Body)
	for _, sig := range duplicateSignatures {
		if strings.Contains(body, sig) {
			return true
		}
	}
	return false
}

// IsDuplicate reports whether err is a duplicate part rejection.
func IsDuplicate(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsDuplicate()
}

// Client calls the catalog service HTTP API
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
	// observe receives the duration of each call, keyed by operation.
	observe func(op string, d time.Duration)
}

// NewClient creates a new Client
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// OnRequest registers a callback that receives each call's duration.
func (c *Client) OnRequest(fn func(op string, d time.Duration)) {
	c.observe = fn
}

// Ping verifies the service answers a lightweight parts query.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, "ping", http.MethodGet, "/parts?limit=1", nil)
	if err != nil {
		return fmt.Errorf("%w at %s: %v", ErrUnreachable, c.baseURL, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w at %s: status %d", ErrUnreachable, c.baseURL, resp.StatusCode)
	}
	return nil
}

// CreatePart creates one part. Non-2xx responses are returned as *APIError.
func (c *Client) CreatePart(ctx context.Context, part PartRequest) (*Part, error) {
	resp, err := c.do(ctx, "create_part", http.MethodPost, "/parts", part)
	if err != nil {
		c.logger.Warn("catalog CreatePart call failed", zap.String("part_no", part.PartNo), zap.Error(err))
		return nil, fmt.Errorf("create part request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read create part response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: errorMessage(body)}
	}

	return decodePart(body)
}

// CreateStockMovement records an inbound stock movement for a part.
func (c *Client) CreateStockMovement(ctx context.Context, mv StockMovementRequest) error {
	resp, err := c.do(ctx, "stock_movement", http.MethodPost, "/inventory/stock-movements", mv)
	if err != nil {
		c.logger.Warn("catalog CreateStockMovement call failed", zap.String("part_id", mv.PartID), zap.Error(err))
		return fmt.Errorf("stock movement request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: errorMessage(body)}
	}
	return nil
}

// do sends one JSON request.
func (c *Client) do(ctx context.Context, op, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if c.observe != nil {
		c.observe(op, time.Since(start))
	}
	return resp, err
}

// decodePart reads the created part, accepting string or numeric ids.
func decodePart(body []byte) (*Part, error) {
	var raw struct {
		ID     json.RawMessage `json:"id"`
		PartNo string          `json:"part_no"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode create part response: %w", err)
	}

	part := &Part{PartNo: raw.PartNo}
	if len(raw.ID) > 0 {
		var s string
		if err := json.Unmarshal(raw.ID, &s); err == nil {
			part.ID = s
		} else if n, err := strconv.ParseFloat(string(raw.ID), 64); err == nil {
			part.ID = strconv.FormatFloat(n, 'f', -1, 64)
		}
	}
	return part, nil
}

// errorMessage extracts the error text from a JSON error body, falling
// back to the raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Error != "":
			return payload.Error
		case payload.Message != "":
			return payload.Message
		}
	}
	return strings.TrimSpace(string(body))
}
