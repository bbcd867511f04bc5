package host

import (
	"github.com/cbodonnell/pixelquest/pkg/engine"
)

// OnGameEvent subscribes l to name. The returned handle is passed to
// OffGameEvent to unsubscribe.
func (h *Host) OnGameEvent(name string, l engine.Listener) engine.ListenerID {
	game := h.requireGame()
	if game == nil {
		return engine.NilListenerID
	}
	return game.Events().On(name, l)
}

func (h *Host) EmitGameEvent(name string, data any) {
	game := h.requireGame()
	if game == nil {
		return
	}
	game.Events().Emit(name, data)
}

func (h *Host) OffGameEvent(name string, id engine.ListenerID) {
	game := h.requireGame()
	if game == nil {
		return
	}
	game.Events().Off(name, id)
}
