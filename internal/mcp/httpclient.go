package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mikevelosports/velosched/internal/models"
	"github.com/mikevelosports/velosched/internal/storage"
)

// HTTPClient implements DataSource by calling the velosched REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but data
// lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. The API
// key is sent on mutating calls only.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}
	return body, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("httpclient: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}
	return body, nil
}

func (c *HTTPClient) ListPlayers(ctx context.Context) ([]storage.Player, error) {
	body, err := c.get(ctx, "/api/v1/players")
	if err != nil {
		return nil, err
	}

	var players []storage.Player
	if err := json.Unmarshal(body, &players); err != nil {
		return nil, fmt.Errorf("httpclient: decode players: %w", err)
	}
	return players, nil
}

func (c *HTTPClient) GetProgression(ctx context.Context, playerID uuid.UUID) (models.ProgressionState, error) {
	body, err := c.get(ctx, "/api/v1/players/"+playerID.String()+"/progression")
	if err != nil {
		return models.ProgressionState{}, err
	}

	var state models.ProgressionState
	if err := json.Unmarshal(body, &state); err != nil {
		return models.ProgressionState{}, fmt.Errorf("httpclient: decode progression: %w", err)
	}
	return state, nil
}

func (c *HTTPClient) LatestSchedule(ctx context.Context, playerID uuid.UUID) (*storage.StoredSchedule, error) {
	body, err := c.get(ctx, "/api/v1/players/"+playerID.String()+"/schedules/latest")
	if err != nil {
		return nil, err
	}

	var sched storage.StoredSchedule
	if err := json.Unmarshal(body, &sched); err != nil {
		return nil, fmt.Errorf("httpclient: decode schedule: %w", err)
	}
	return &sched, nil
}

func (c *HTTPClient) GenerateSchedule(ctx context.Context, playerID uuid.UUID, cfg models.Config) (*models.Schedule, error) {
	body, err := c.post(ctx, "/api/v1/players/"+playerID.String()+"/schedule", map[string]any{
		"config": cfg,
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Schedule *models.Schedule `json:"schedule"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode schedule: %w", err)
	}
	return resp.Schedule, nil
}

func (c *HTTPClient) TransitionPhase(ctx context.Context, playerID uuid.UUID, command, date string) (models.ProgressionState, error) {
	body, err := c.post(ctx, "/api/v1/players/"+playerID.String()+"/phase", map[string]string{
		"command": command,
		"date":    date,
	})
	if err != nil {
		return models.ProgressionState{}, err
	}

	var state models.ProgressionState
	if err := json.Unmarshal(body, &state); err != nil {
		return models.ProgressionState{}, fmt.Errorf("httpclient: decode progression: %w", err)
	}
	return state, nil
}
