package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jayscottaf/pairscout/internal/model"
)

// maxResponseBytes bounds how much of a search response is read
const maxResponseBytes = 8 << 20

// Client queries a hosted pairing corpus over HTTP
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *zap.Logger
}

// NewClient creates a search client for the given base URL
func NewClient(baseURL string, timeout time.Duration, userAgent string, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: userAgent,
		logger:    logger,
	}
}

// Search posts the spec to the corpus search endpoint and decodes the
// matching pairings. All failures wrap *model.SearchError.
func (c *Client) Search(ctx context.Context, spec model.SearchSpec) ([]model.Pairing, error) {
	body, err := json.Marshal(spec)
	if err != nil {
		return nil, &model.SearchError{Err: fmt.Errorf("marshal spec: %w", err)}
	}

	url := c.baseURL + "/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &model.SearchError{Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("pairing search request failed", zap.String("url", url), zap.Error(err))
		return nil, &model.SearchError{Err: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &model.SearchError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("pairing search returned error status",
			zap.String("url", url), zap.Int("status", resp.StatusCode))
		return nil, &model.SearchError{Err: fmt.Errorf("unexpected status: %d", resp.StatusCode)}
	}

	var pairings []model.Pairing
	if err := json.Unmarshal(respBody, &pairings); err != nil {
		return nil, &model.SearchError{Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	return pairings, nil
}
