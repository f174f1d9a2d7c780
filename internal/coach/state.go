package coach

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mikevelosports/velosched/internal/models"
)

// StateDB caches progression snapshots locally so the CLI can generate
// schedules without reaching the server.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (or creates) the SQLite cache at dir/state.db.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "state.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS progression_cache (
		player_id  TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		age        INTEGER NOT NULL,
		state_json TEXT NOT NULL,
		cached_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// SaveSnapshot records a player's progression state fetched from the server.
func (s *StateDB) SaveSnapshot(playerID uuid.UUID, name string, age int, state models.ProgressionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO progression_cache (player_id, name, age, state_json, cached_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		playerID.String(), name, age, string(data),
	)
	return err
}

// LoadSnapshot returns the cached state for a player by name. The bool is
// false when no snapshot exists.
func (s *StateDB) LoadSnapshot(name string) (uuid.UUID, int, models.ProgressionState, bool, error) {
	var (
		idStr string
		age   int
		data  string
	)
	err := s.db.QueryRow(
		`SELECT player_id, age, state_json FROM progression_cache WHERE name = ?`,
		name,
	).Scan(&idStr, &age, &data)
	if err == sql.ErrNoRows {
		return uuid.Nil, 0, models.ProgressionState{}, false, nil
	}
	if err != nil {
		return uuid.Nil, 0, models.ProgressionState{}, false, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, 0, models.ProgressionState{}, false, fmt.Errorf("corrupt cache entry for %q: %w", name, err)
	}

	var state models.ProgressionState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return uuid.Nil, 0, models.ProgressionState{}, false, fmt.Errorf("decoding cached state: %w", err)
	}
	return id, age, state, true, nil
}

// Close closes the cache database.
func (s *StateDB) Close() error {
	return s.db.Close()
}
