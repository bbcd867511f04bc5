package repositories

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"time"

	gametypes "github.com/cbodonnell/pixelquest/pkg/game/types"
	"github.com/cbodonnell/pixelquest/pkg/messages"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations
var migrationsFS embed.FS

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(ctx context.Context, dbPath string) (Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	migrations, err := readMigrations("sqlite")
	if err != nil {
		db.Close()
		return nil, err
	}
	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m.sql); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute migration %s: %v", m.name, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveGameState(ctx context.Context, slot string, gameState *gametypes.GameState) error {
	snapshot, err := messages.SerializeGameState(gameState)
	if err != nil {
		return fmt.Errorf("failed to serialize game state: %v", err)
	}

	q := `
	INSERT OR REPLACE INTO save_slots (slot, version, snapshot, updated_at)
	VALUES (?, ?, ?, ?);
	`
	if _, err := r.db.ExecContext(ctx, q, slot, int64(gameState.Version), snapshot, time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("failed to save slot %s: %v", slot, err)
	}

	return nil
}

func (r *SQLiteRepository) LoadGameState(ctx context.Context, slot string) (*gametypes.GameState, error) {
	q := `
	SELECT snapshot FROM save_slots WHERE slot = ?;
	`
	var snapshot []byte
	if err := r.db.QueryRowContext(ctx, q, slot).Scan(&snapshot); err != nil {
		if err == sql.ErrNoRows {
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

func (r *SQLiteRepository) DeleteGameState(ctx context.Context, slot string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM save_slots WHERE slot = ?;`, slot)
	if err != nil {
		return fmt.Errorf("failed to delete slot %s: %v", slot, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %v", err)
	}
	if n == 0 {
		return &ErrNotFound{Slot: slot}
	}
	return nil
}

func (r *SQLiteRepository) ListSlots(ctx context.Context) ([]SaveSlot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT slot, version, updated_at FROM save_slots ORDER BY slot;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query save slots: %v", err)
	}
	defer rows.Close()

	slots := []SaveSlot{}
	for rows.Next() {
		var slot SaveSlot
		var updatedAt int64
		if err := rows.Scan(&slot.Name, &slot.Version, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan save slot: %v", err)
		}
		slot.UpdatedAt = time.UnixMilli(updatedAt)
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate save slots: %v", err)
	}
	return slots, nil
}

type migration struct {
	name string
	sql  string
}

// readMigrations returns the embedded migrations for dialect in file name order.
func readMigrations(dialect string) ([]migration, error) {
	dir := path.Join("migrations", dialect)
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %v", err)
	}

	migrations := make([]migration, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		migrationPath := path.Join(dir, entry.Name())
		b, err := fs.ReadFile(migrationsFS, migrationPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %v", migrationPath, err)
		}
		migrations = append(migrations, migration{name: entry.Name(), sql: string(b)})
	}
	return migrations, nil
}
