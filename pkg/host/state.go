package host

import (
	"github.com/cbodonnell/pixelquest/pkg/engine"
	"github.com/cbodonnell/pixelquest/pkg/game/constants"
	"github.com/cbodonnell/pixelquest/pkg/game/types"
)

// GameState returns a copy of the shared game state, or the empty state if
// none has been stored yet. It returns nil when there is no engine.
func (h *Host) GameState() *types.GameState {
	game := h.requireGame()
	if game == nil {
		return nil
	}
	return currentState(game).Copy()
}

// UpdateGameState merges the patch into the game state and emits
// constants.EventGameStateChanged with the new state. Fields present in the
// patch replace the stored value wholesale, including Stats; use UpdateStats
// to change single stats.
func (h *Host) UpdateGameState(p types.StatePatch) {
	h.mutateState(func(state *types.GameState) *types.GameState {
		return state.Apply(p)
	})
}

// UpdateStats sets the given stats and keeps the others.
func (h *Host) UpdateStats(stats map[string]int) {
	h.mutateState(func(state *types.GameState) *types.GameState {
		return state.MergeStats(stats)
	})
}

func (h *Host) mutateState(mutate func(*types.GameState) *types.GameState) {
	game := h.requireGame()
	if game == nil {
		return
	}
	h.stateLock.Lock()
	next := mutate(currentState(game))
	game.Registry().Set(constants.GameStateRegistryKey, next)
	h.stateLock.Unlock()

	game.Events().Emit(constants.EventGameStateChanged, next.Copy())
}

func (h *Host) replaceState(game *engine.Engine, state *types.GameState) {
	h.stateLock.Lock()
	game.Registry().Set(constants.GameStateRegistryKey, state)
	h.stateLock.Unlock()

	game.Events().Emit(constants.EventGameStateChanged, state.Copy())
}

func currentState(game *engine.Engine) *types.GameState {
	if v, ok := game.Registry().Get(constants.GameStateRegistryKey); ok {
		if state, ok := v.(*types.GameState); ok && state != nil {
			return state
		}
	}
	return types.NewGameState()
}
