package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	gametypes "github.com/cbodonnell/pixelquest/pkg/game/types"
)

// Repository stores game-state snapshots in named save slots.
type Repository interface {
	Close(ctx context.Context) error
	SaveGameState(ctx context.Context, slot string, gameState *gametypes.GameState) error
	LoadGameState(ctx context.Context, slot string) (*gametypes.GameState, error)
	DeleteGameState(ctx context.Context, slot string) error
	ListSlots(ctx context.Context) ([]SaveSlot, error)
}

// SaveSlot describes a stored snapshot.
type SaveSlot struct {
	Name      string    `json:"name"`
	Version   uint64    `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewRepository opens the repository named by url. Supported schemes are
// sqlite:// (followed by a file path) and postgres:// or postgresql://.
func NewRepository(ctx context.Context, url string) (Repository, error) {
	switch {
	case strings.HasPrefix(url, "sqlite://"):
		return NewSQLiteRepository(ctx, strings.TrimPrefix(url, "sqlite://"))
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return NewPostgresRepository(ctx, url)
	default:
		return nil, fmt.Errorf("unsupported database url: %s", url)
	}
}
