package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mikevelosports/velosched/internal/models"
	"github.com/mikevelosports/velosched/internal/storage"
)

// fakeSource is a DataSource stub for exercising tool handlers without a
// database or network.
type fakeSource struct {
	players   []storage.Player
	err       error
	gotConfig models.Config
}

func (f *fakeSource) ListPlayers(_ context.Context) ([]storage.Player, error) {
	return f.players, f.err
}

func (f *fakeSource) GetProgression(_ context.Context, _ uuid.UUID) (models.ProgressionState, error) {
	return models.ProgressionState{}, f.err
}

func (f *fakeSource) LatestSchedule(_ context.Context, _ uuid.UUID) (*storage.StoredSchedule, error) {
	return nil, f.err
}

func (f *fakeSource) GenerateSchedule(_ context.Context, _ uuid.UUID, cfg models.Config) (*models.Schedule, error) {
	f.gotConfig = cfg
	return &models.Schedule{}, f.err
}

func (f *fakeSource) TransitionPhase(_ context.Context, _ uuid.UUID, _, _ string) (models.ProgressionState, error) {
	return models.ProgressionState{}, f.err
}

func testHandlers(ds DataSource) *handlers {
	return &handlers{ds: ds, log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// TestSplitDays verifies weekday list parsing used by generate_schedule.
func TestSplitDays(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"mon", []string{"mon"}},
		{"mon,wed,fri", []string{"mon", "wed", "fri"}},
		{" mon , wed ", []string{"mon", "wed"}},
		{"mon,,fri", []string{"mon", "fri"}},
	}
	for _, tc := range cases {
		if got := splitDays(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("splitDays(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

// TestListPlayersTool verifies the tool returns roster data from the source.
func TestListPlayersTool(t *testing.T) {
	h := testHandlers(&fakeSource{players: []storage.Player{
		{ID: uuid.New(), Name: "Casey", Age: 16},
	}})

	result, err := h.listPlayers(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
}

// TestGenerateScheduleSessionsDefault verifies an omitted sessions count
// expands to the full training-day set, so every configured day stays
// usable instead of collapsing to one session per week.
func TestGenerateScheduleSessionsDefault(t *testing.T) {
	src := &fakeSource{}
	h := testHandlers(src)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"player":        uuid.New().String(),
		"start_date":    "2026-03-02",
		"horizon_weeks": 2,
		"training_days": "mon,wed,fri",
	}

	result, err := h.generateSchedule(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
	if src.gotConfig.SessionsPerWeek != 3 {
		t.Errorf("sessions_per_week = %d, want 3 (one per training day)", src.gotConfig.SessionsPerWeek)
	}
}

// TestGenerateScheduleSessionsExplicit verifies an explicit sessions count
// is passed through untouched.
func TestGenerateScheduleSessionsExplicit(t *testing.T) {
	src := &fakeSource{}
	h := testHandlers(src)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"player":            uuid.New().String(),
		"start_date":        "2026-03-02",
		"horizon_weeks":     2,
		"training_days":     "mon,wed,fri",
		"sessions_per_week": 2,
	}

	result, err := h.generateSchedule(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
	if src.gotConfig.SessionsPerWeek != 2 {
		t.Errorf("sessions_per_week = %d, want 2", src.gotConfig.SessionsPerWeek)
	}
}

// TestListPlayersToolError verifies source failures surface as tool errors,
// not Go errors.
func TestListPlayersToolError(t *testing.T) {
	h := testHandlers(&fakeSource{err: errors.New("database down")})

	result, err := h.listPlayers(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("expected tool error result")
	}
}
