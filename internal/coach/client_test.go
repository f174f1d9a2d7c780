package coach

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/mikevelosports/velosched/internal/models"
)

// TestResolvePlayer verifies name lookup against the roster endpoint.
func TestResolvePlayer(t *testing.T) {
	wantID := uuid.New()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/players" {
			t.Errorf("path = %s, want /api/v1/players", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]rosterPlayer{
			{ID: uuid.New(), Name: "Jordan", Age: 12},
			{ID: wantID, Name: "Casey", Age: 16},
		})
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "")
	id, age, err := client.ResolvePlayer("Casey")
	if err != nil {
		t.Fatal(err)
	}
	if id != wantID {
		t.Errorf("id = %s, want %s", id, wantID)
	}
	if age != 16 {
		t.Errorf("age = %d, want 16", age)
	}

	if _, _, err := client.ResolvePlayer("nobody"); err == nil {
		t.Error("expected error for unknown player")
	}
}

// TestFetchProgression verifies the progression fetch path and decoding.
func TestFetchProgression(t *testing.T) {
	playerID := uuid.New()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		want := "/api/v1/players/" + playerID.String() + "/progression"
		if r.URL.Path != want {
			t.Errorf("path = %s, want %s", r.URL.Path, want)
		}
		json.NewEncoder(w).Encode(models.ProgressionState{
			Phase:         models.PhaseC2Ramp,
			TotalLongToss: 7,
		})
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "")
	state, err := client.FetchProgression(playerID)
	if err != nil {
		t.Fatal(err)
	}
	if state.Phase != models.PhaseC2Ramp {
		t.Errorf("phase = %q, want c2_ramp", state.Phase)
	}
	if state.TotalLongToss != 7 {
		t.Errorf("total_long_toss = %d, want 7", state.TotalLongToss)
	}
}

// TestPushProgression verifies the PUT carries the API key and retries stop
// on success.
func TestPushProgression(t *testing.T) {
	playerID := uuid.New()
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if got := r.Header.Get("X-API-Key"); got != "secret" {
			t.Errorf("X-API-Key = %q, want secret", got)
		}
		var state models.ProgressionState
		if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
			t.Fatal(err)
		}
		json.NewEncoder(w).Encode(state)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "secret")
	err := client.PushProgression(playerID, models.ProgressionState{TotalOverspeed: 3})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
