package musicapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/veselicnik/srecke-backend/internal/models"
)

const (
	requestsPath = "/music/requests"
	// maxErrorBody bounds how much of a failed response is echoed into the error
	maxErrorBody = 256
)

// Client represents a music request service client
type Client struct {
	BaseURL string
	client  *http.Client
}

// NewClient creates a new music service client
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// CreateRequest submits a song request on behalf of the bearer of bearerToken
// and returns the decoded response body
func (c *Client) CreateRequest(ctx context.Context, bearerToken string, req *models.MusicRequest) (interface{}, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+requestsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build music request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if bearerToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("music service unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read music service response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := strings.TrimSpace(string(raw))
		if detail == "" {
			return nil, fmt.Errorf("music service returned %d", resp.StatusCode)
		}
		if len(detail) > maxErrorBody {
			detail = detail[:maxErrorBody] + "..."
		}
		return nil, fmt.Errorf("music service returned %d: %s", resp.StatusCode, detail)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode music service response: %w", err)
	}
	return out, nil
}
