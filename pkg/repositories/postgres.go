package repositories

import (
	"context"
	"errors"
	"fmt"

	gametypes "github.com/cbodonnell/pixelquest/pkg/game/types"
	"github.com/cbodonnell/pixelquest/pkg/log"
	"github.com/cbodonnell/pixelquest/pkg/messages"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects to the database and runs the embedded migrations.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (Repository, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %v", err)
	}

	var username string
	var database string
	if err := pool.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to query database: %v", err)
	}
	log.Info("Connected to %s as %s", database, username)

	migrations, err := readMigrations("postgres")
	if err != nil {
		pool.Close()
		return nil, err
	}
	for _, m := range migrations {
		if _, err := pool.Exec(ctx, m.sql); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to execute migration %s: %v", m.name, err)
		}
	}

	return &PostgresRepository{
		pool: pool,
	}, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) SaveGameState(ctx context.Context, slot string, gameState *gametypes.GameState) error {
	snapshot, err := messages.SerializeGameState(gameState)
	if err != nil {
		return fmt.Errorf("failed to serialize game state: %v", err)
	}

	q := `
	INSERT INTO save_slots (slot, version, snapshot, updated_at) VALUES ($1, $2, $3, NOW())
	ON CONFLICT (slot) DO UPDATE SET version = $2, snapshot = $3, updated_at = NOW();
	`
	if _, err := r.pool.Exec(ctx, q, slot, int64(gameState.Version), snapshot); err != nil {
		return fmt.Errorf("failed to save slot %s: %v", slot, err)
	}

	return nil
}

func (r *PostgresRepository) LoadGameState(ctx context.Context, slot string) (*gametypes.GameState, error) {
	q := `
	SELECT snapshot FROM save_slots WHERE slot = $1;
	`
	var snapshot []byte
	if err := r.pool.QueryRow(ctx, q, slot).Scan(&snapshot); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{Slot: slot}
		}
		return nil, fmt.Errorf("failed to scan slot %s: %v", slot, err)
	}

	gameState, err := messages.DeserializeGameState(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize slot %s: %v", slot, err)
	}
	return gameState, nil
}

func (r *PostgresRepository) DeleteGameState(ctx context.Context, slot string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM save_slots WHERE slot = $1;`, slot)
	if err != nil {
		return fmt.Errorf("failed to delete slot %s: %v", slot, err)
	}
	if tag.RowsAffected() == 0 {
		return &ErrNotFound{Slot: slot}
	}
	return nil
}

func (r *PostgresRepository) ListSlots(ctx context.Context) ([]SaveSlot, error) {
	rows, err := r.pool.Query(ctx, `SELECT slot, version, updated_at FROM save_slots ORDER BY slot;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query save slots: %v", err)
	}
	defer rows.Close()

	slots := []SaveSlot{}
	for rows.Next() {
		var slot SaveSlot
		var version int64
		if err := rows.Scan(&slot.Name, &version, &slot.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan save slot: %v", err)
		}
		slot.Version = uint64(version)
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate save slots: %v", err)
	}
	return slots, nil
}
