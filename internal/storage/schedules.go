package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mikevelosports/velosched/internal/models"
)

// StoredSchedule is a generated schedule with its storage envelope.
type StoredSchedule struct {
	ID           uuid.UUID        `json:"id"`
	PlayerID     uuid.UUID        `json:"player_id"`
	StartDate    string           `json:"start_date"`
	HorizonWeeks int              `json:"horizon_weeks"`
	Schedule     *models.Schedule `json:"schedule"`
	CreatedAt    time.Time        `json:"created_at"`
}

// InsertSchedule stores a generated schedule for a player and returns its ID.
func (db *DB) InsertSchedule(ctx context.Context, playerID uuid.UUID, sched *models.Schedule) (uuid.UUID, error) {
	payload, err := json.Marshal(sched)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encoding schedule: %w", err)
	}

	id := uuid.New()
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO schedules (id, player_id, start_date, horizon_weeks, payload)
		VALUES ($1, $2, $3, $4, $5)
	`, id, playerID, sched.StartDate, sched.HorizonWeeks, payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting schedule: %w", err)
	}
	return id, nil
}

// GetSchedule retrieves one stored schedule by ID.
func (db *DB) GetSchedule(ctx context.Context, id uuid.UUID) (*StoredSchedule, error) {
	var (
		s       StoredSchedule
		payload []byte
	)
	err := db.Pool.QueryRow(ctx, `
		SELECT id, player_id, start_date, horizon_weeks, payload, created_at
		FROM schedules WHERE id = $1
	`, id).Scan(&s.ID, &s.PlayerID, &s.StartDate, &s.HorizonWeeks, &payload, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying schedule: %w", err)
	}
	if err := json.Unmarshal(payload, &s.Schedule); err != nil {
		return nil, fmt.Errorf("decoding schedule payload: %w", err)
	}
	return &s, nil
}

// LatestSchedule retrieves a player's most recently generated schedule.
func (db *DB) LatestSchedule(ctx context.Context, playerID uuid.UUID) (*StoredSchedule, error) {
	var (
		s       StoredSchedule
		payload []byte
	)
	err := db.Pool.QueryRow(ctx, `
		SELECT id, player_id, start_date, horizon_weeks, payload, created_at
		FROM schedules WHERE player_id = $1
		ORDER BY created_at DESC LIMIT 1
	`, playerID).Scan(&s.ID, &s.PlayerID, &s.StartDate, &s.HorizonWeeks, &payload, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying latest schedule: %w", err)
	}
	if err := json.Unmarshal(payload, &s.Schedule); err != nil {
		return nil, fmt.Errorf("decoding schedule payload: %w", err)
	}
	return &s, nil
}

// QuerySchedules lists a player's stored schedules, newest first, without
// their full payloads.
func (db *DB) QuerySchedules(ctx context.Context, playerID uuid.UUID, limit int) ([]StoredSchedule, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Pool.Query(ctx, `
		SELECT id, player_id, start_date, horizon_weeks, created_at
		FROM schedules WHERE player_id = $1
		ORDER BY created_at DESC LIMIT $2
	`, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying schedules: %w", err)
	}
	defer rows.Close()

	var out []StoredSchedule
	for rows.Next() {
		var s StoredSchedule
		if err := rows.Scan(&s.ID, &s.PlayerID, &s.StartDate, &s.HorizonWeeks, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning schedule: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
