// Package coach backs the offline coaching CLI: it talks to the velosched
// server when a connection is available and caches progression snapshots
// locally so schedules can still be generated at the field.
package coach

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mikevelosports/velosched/internal/models"
)

// rosterPlayer mirrors storage.Player without importing the storage package
// (which would pull in pgx and other server-side dependencies).
type rosterPlayer struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Age  int       `json:"age"`
}

// Client sends requests to the velosched server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new HTTP client for the velosched server.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: serverURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// ResolvePlayer looks up a player by name on the server and returns the ID
// and age.
func (c *Client) ResolvePlayer(name string) (uuid.UUID, int, error) {
	resp, err := c.httpClient.Get(c.serverURL + "/api/v1/players")
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("fetching players: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return uuid.Nil, 0, fmt.Errorf("players request failed (status %d): %s", resp.StatusCode, body)
	}

	var players []rosterPlayer
	if err := json.NewDecoder(resp.Body).Decode(&players); err != nil {
		return uuid.Nil, 0, fmt.Errorf("decoding players: %w", err)
	}

	for _, p := range players {
		if p.Name == name {
			return p.ID, p.Age, nil
		}
	}
	return uuid.Nil, 0, fmt.Errorf("player %q not found on server", name)
}

// FetchProgression retrieves a player's progression state from the server.
func (c *Client) FetchProgression(playerID uuid.UUID) (models.ProgressionState, error) {
	resp, err := c.httpClient.Get(c.serverURL + "/api/v1/players/" + playerID.String() + "/progression")
	if err != nil {
		return models.ProgressionState{}, fmt.Errorf("fetching progression: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return models.ProgressionState{}, fmt.Errorf("progression request failed (status %d): %s", resp.StatusCode, body)
	}

	var state models.ProgressionState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return models.ProgressionState{}, fmt.Errorf("decoding progression: %w", err)
	}
	return state, nil
}

// PushProgression uploads locally recorded progression state to the server.
// Retries up to 3 times with exponential backoff on failure.
func (c *Client) PushProgression(playerID uuid.UUID, state models.ProgressionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshaling progression: %w", err)
	}

	url := c.serverURL + "/api/v1/players/" + playerID.String() + "/progression"

	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			return nil
		}
		lastErr = fmt.Errorf("push failed (status %d): %s", resp.StatusCode, body)
	}

	return fmt.Errorf("after 3 attempts: %w", lastErr)
}
