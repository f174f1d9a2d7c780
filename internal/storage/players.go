package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Player is one athlete the scheduler plans for.
type Player struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}

// GetOrCreatePlayer finds or creates a player by name. Age is refreshed on
// each call so birthdays recorded upstream propagate.
func (db *DB) GetOrCreatePlayer(ctx context.Context, name string, age int) (*Player, error) {
	var p Player
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO players (id, name, age)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
			SET age = EXCLUDED.age
		RETURNING id, name, age, created_at
	`, uuid.New(), name, age).Scan(&p.ID, &p.Name, &p.Age, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("upserting player: %w", err)
	}
	return &p, nil
}

// GetPlayer retrieves a player by ID.
func (db *DB) GetPlayer(ctx context.Context, id uuid.UUID) (*Player, error) {
	var p Player
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, age, created_at FROM players WHERE id = $1`,
		id).Scan(&p.ID, &p.Name, &p.Age, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying player: %w", err)
	}
	return &p, nil
}

// ListPlayers retrieves all players, newest first.
func (db *DB) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, age, created_at FROM players ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
