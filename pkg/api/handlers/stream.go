package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/cbodonnell/pixelquest/pkg/engine"
	"github.com/cbodonnell/pixelquest/pkg/game/constants"
	"github.com/cbodonnell/pixelquest/pkg/host"
	"github.com/cbodonnell/pixelquest/pkg/log"
	"github.com/cbodonnell/pixelquest/pkg/messages"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	streamBufferSize = 64
	writeTimeout     = 5 * time.Second
)

// HandleEventStream upgrades to a websocket and forwards the events named
// by the name query parameters as messages.EventMessage JSON. It forwards
// constants.EventGameStateChanged when no name is given.
func HandleEventStream(h *host.Host) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game := h.Game()
		if game == nil {
			http.Error(w, "Game not initialized", http.StatusConflict)
			return
		}
		names := r.URL.Query()["name"]
		if len(names) == 0 {
			names = []string{constants.EventGameStateChanged}
		}

		// Subscribe before accepting so no event emitted after the
		// handshake is missed.
		events := make(chan *messages.EventMessage, streamBufferSize)
		destroyed := make(chan struct{})
		bus := game.Events()
		ids := make(map[string]engine.ListenerID, len(names))
		for _, name := range names {
			name := name
			ids[name] = bus.On(name, func(data any) {
				msg, err := messages.NewEventMessage(name, data, time.Now())
				if err != nil {
					msg = messages.NewErrorMessage(err.Error(), time.Now())
				}
				select {
				case events <- msg:
				default:
					log.Warn("Dropping %s event for slow stream client", name)
				}
			})
		}
		destroyID := bus.Once(engine.EventDestroy, func(any) { close(destroyed) })
		defer func() {
			for name, id := range ids {
				bus.Off(name, id)
			}
			bus.Off(engine.EventDestroy, destroyID)
		}()
		// Destroy marks the engine before emitting EventDestroy, so an engine
		// not yet marked here still reaches the listener above.
		if game.IsDestroyed() {
			http.Error(w, "Game destroyed", http.StatusConflict)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			log.Error("Failed to accept websocket: %v", err)
			return
		}
		defer conn.CloseNow()
		log.Debug("Event stream opened for %v", names)

		ctx := conn.CloseRead(r.Context())
		for {
			select {
			case <-ctx.Done():
				log.Trace("Event stream closed by client")
				return
			case <-destroyed:
				conn.Close(websocket.StatusGoingAway, "game destroyed")
				return
			case msg := <-events:
				if err := writeMessage(ctx, conn, msg); err != nil {
					log.Debug("Failed to write stream message: %v", err)
					return
				}
			}
		}
	}
}

func writeMessage(ctx context.Context, conn *websocket.Conn, msg *messages.EventMessage) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, msg)
}
