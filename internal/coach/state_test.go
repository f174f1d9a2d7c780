package coach

import (
	"testing"

	"github.com/google/uuid"

	"github.com/mikevelosports/velosched/internal/models"
)

// TestSnapshotRoundTrip verifies a saved snapshot comes back intact by name.
func TestSnapshotRoundTrip(t *testing.T) {
	db, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	playerID := uuid.New()
	state := models.ProgressionState{
		Phase:          models.PhaseC1Primary,
		TotalOverspeed: 12,
		GroundForce:    map[int]int{1: 5, 2: 2},
	}

	if err := db.SaveSnapshot(playerID, "Casey", 16, state); err != nil {
		t.Fatal(err)
	}

	gotID, age, got, ok, err := db.LoadSnapshot("Casey")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("snapshot not found")
	}
	if gotID != playerID {
		t.Errorf("player_id = %s, want %s", gotID, playerID)
	}
	if age != 16 {
		t.Errorf("age = %d, want 16", age)
	}
	if got.Phase != models.PhaseC1Primary {
		t.Errorf("phase = %q, want c1_primary", got.Phase)
	}
	if got.GroundForce[2] != 2 {
		t.Errorf("ground_force[2] = %d, want 2", got.GroundForce[2])
	}
}

// TestSnapshotOverwrite verifies re-saving replaces the previous snapshot.
func TestSnapshotOverwrite(t *testing.T) {
	db, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	playerID := uuid.New()
	if err := db.SaveSnapshot(playerID, "Casey", 16, models.ProgressionState{TotalOverspeed: 5}); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveSnapshot(playerID, "Casey", 17, models.ProgressionState{TotalOverspeed: 9}); err != nil {
		t.Fatal(err)
	}

	_, age, got, ok, err := db.LoadSnapshot("Casey")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("snapshot not found")
	}
	if age != 17 {
		t.Errorf("age = %d, want 17", age)
	}
	if got.TotalOverspeed != 9 {
		t.Errorf("total_overspeed = %d, want 9", got.TotalOverspeed)
	}
}

// TestSnapshotMissing verifies lookup of an unknown player reports absence
// without error.
func TestSnapshotMissing(t *testing.T) {
	db, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	_, _, _, ok, err := db.LoadSnapshot("nobody")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected no snapshot for unknown player")
	}
}
