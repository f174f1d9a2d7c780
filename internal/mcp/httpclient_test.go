package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/mikevelosports/velosched/internal/models"
	"github.com/mikevelosports/velosched/internal/storage"
)

// newTestServer creates an httptest server that routes requests to handler
// functions keyed by path. Verifies the HTTP client sends correct paths.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

var testPlayerID = uuid.MustParse("11111111-2222-3333-4444-555555555555")

// TestListPlayers verifies the HTTP client parses the roster array.
func TestListPlayers(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/players": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []storage.Player{
				{ID: testPlayerID, Name: "Casey", Age: 16},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	players, err := client.ListPlayers(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(players) != 1 {
		t.Fatalf("got %d players, want 1", len(players))
	}
	if players[0].Name != "Casey" {
		t.Errorf("name=%q, want Casey", players[0].Name)
	}
}

// TestGetProgressionRemote verifies the client hits the per-player
// progression path and decodes the persisted snake_case form.
func TestGetProgressionRemote(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/players/" + testPlayerID.String() + "/progression": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, models.ProgressionState{
				Phase:          models.PhaseC1Primary,
				TotalOverspeed: 12,
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	state, err := client.GetProgression(context.Background(), testPlayerID)
	if err != nil {
		t.Fatal(err)
	}
	if state.Phase != models.PhaseC1Primary {
		t.Errorf("phase=%q, want c1_primary", state.Phase)
	}
	if state.TotalOverspeed != 12 {
		t.Errorf("total_overspeed=%d, want 12", state.TotalOverspeed)
	}
}

// TestGenerateScheduleRemote verifies the client posts the config with the
// API key and unwraps the schedule from the response envelope.
func TestGenerateScheduleRemote(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/players/" + testPlayerID.String() + "/schedule": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method=%s, want POST", r.Method)
			}
			if got := r.Header.Get("X-API-Key"); got != "secret" {
				t.Errorf("X-API-Key=%q, want secret", got)
			}

			var req struct {
				Config models.Config `json:"config"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatal(err)
			}
			if req.Config.HorizonWeeks != 4 {
				t.Errorf("horizon_weeks=%d, want 4", req.Config.HorizonWeeks)
			}

			writeTestJSON(t, w, map[string]any{
				"scheduleId": uuid.New(),
				"schedule": models.Schedule{
					StartDate:    "2026-03-02",
					HorizonWeeks: 4,
				},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "secret")
	sched, err := client.GenerateSchedule(context.Background(), testPlayerID, models.Config{
		StartDate:    "2026-03-02",
		HorizonWeeks: 4,
	})
	if err != nil {
		t.Fatal(err)
	}
	if sched.StartDate != "2026-03-02" {
		t.Errorf("startDate=%q, want 2026-03-02", sched.StartDate)
	}
}

// TestTransitionPhaseRemote verifies the phase command round trip.
func TestTransitionPhaseRemote(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/players/" + testPlayerID.String() + "/phase": func(w http.ResponseWriter, r *http.Request) {
			var req map[string]string
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatal(err)
			}
			if req["command"] != "begin_next_ramp" {
				t.Errorf("command=%q, want begin_next_ramp", req["command"])
			}
			if req["date"] != "2026-06-01" {
				t.Errorf("date=%q, want 2026-06-01", req["date"])
			}

			writeTestJSON(t, w, models.ProgressionState{
				Phase:      models.PhaseC2Ramp,
				PhaseStart: "2026-06-01",
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "secret")
	state, err := client.TransitionPhase(context.Background(), testPlayerID, "begin_next_ramp", "2026-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if state.Phase != models.PhaseC2Ramp {
		t.Errorf("phase=%q, want c2_ramp", state.Phase)
	}
}

// TestHTTPClientServerError verifies the client returns an error on
// non-200 responses and surfaces the body.
func TestHTTPClientServerError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/players": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"database down"}`))
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "")
	_, err := client.ListPlayers(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}
