package scorecli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ttr "github.com/okian/boardscore/internal/domain/tickettoride"
	"github.com/okian/boardscore/pkg/logger"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// NewHTTPClient creates a client for the server at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// scoreRequest is the body of POST /api/score.
type scoreRequest struct {
	Players []ttr.PlayerInfo `json:"players"`
}

// Score evaluates players on the server.
func (c *HTTPClient) Score(ctx context.Context, players []ttr.PlayerInfo) (ttr.Result, error) {
	var result ttr.Result

	body, err := json.Marshal(scoreRequest{Players: players})
	if err != nil {
		return result, fmt.Errorf("%w: marshal request: %w", ErrRemote, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/score", bytes.NewReader(body))
	if err != nil {
		return result, fmt.Errorf("%w: create request: %w", ErrRemote, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrRemote, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return result, fmt.Errorf("%w: read response: %w", ErrRemote, err)
	}
	if resp.StatusCode != http.StatusOK {
		return result, fmt.Errorf("%w: status %d: %s", ErrRemote, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("%w: decode response: %w", ErrRemote, err)
	}
	return result, nil
}
