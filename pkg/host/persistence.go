package host

import (
	"context"
	"fmt"

	"github.com/cbodonnell/pixelquest/pkg/log"
	"github.com/cbodonnell/pixelquest/pkg/repositories"
)

// SaveGameState writes the current game state to the save slot.
func (h *Host) SaveGameState(ctx context.Context) error {
	game := h.Game()
	if game == nil {
		return ErrNotInitialized
	}
	if h.repository == nil {
		return ErrNoRepository
	}
	h.stateLock.Lock()
	state := currentState(game).Copy()
	h.stateLock.Unlock()

	if err := h.repository.SaveGameState(ctx, h.saveSlot, state); err != nil {
		return fmt.Errorf("failed to save game state: %w", err)
	}
	log.Info("Game state saved to slot %s", h.saveSlot)
	return nil
}

// LoadGameState replaces the game state with the one in the save slot and
// emits the change.
func (h *Host) LoadGameState(ctx context.Context) error {
	game := h.Game()
	if game == nil {
		return ErrNotInitialized
	}
	if h.repository == nil {
		return ErrNoRepository
	}
	state, err := h.repository.LoadGameState(ctx, h.saveSlot)
	if err != nil {
		return fmt.Errorf("failed to load game state: %w", err)
	}
	h.replaceState(game, state)
	log.Info("Game state loaded from slot %s", h.saveSlot)
	return nil
}

// SaveSlot is the repository slot used for saving and loading.
func (h *Host) SaveSlot() string {
	return h.saveSlot
}

// ListSaveSlots returns every slot in the repository. It does not need an engine.
func (h *Host) ListSaveSlots(ctx context.Context) ([]repositories.SaveSlot, error) {
	if h.repository == nil {
		return nil, ErrNoRepository
	}
	slots, err := h.repository.ListSlots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list save slots: %w", err)
	}
	return slots, nil
}
