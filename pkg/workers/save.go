package workers

import (
	"context"
	"errors"
	"time"

	"github.com/cbodonnell/pixelquest/pkg/host"
	"github.com/cbodonnell/pixelquest/pkg/log"
)

// Saver persists the current game state.
type Saver interface {
	SaveGameState(ctx context.Context) error
}

// SaveRequest asks the worker for an immediate save. Done, when set,
// receives the result.
type SaveRequest struct {
	Timestamp int64
	Done      chan<- error
}

type SaveGameStateWorker struct {
	saver        Saver
	saveRequests <-chan SaveRequest
	interval     time.Duration
}

type NewSaveGameStateWorkerOptions struct {
	Saver        Saver
	SaveRequests <-chan SaveRequest
	// Interval between automatic saves. Zero disables them.
	Interval time.Duration
}

// NewSaveGameStateWorker creates a new SaveGameStateWorker.
// The worker processes save requests from the status API and
// periodically saves the game state to the repository.
func NewSaveGameStateWorker(opts NewSaveGameStateWorkerOptions) *SaveGameStateWorker {
	return &SaveGameStateWorker{
		saver:        opts.Saver,
		saveRequests: opts.SaveRequests,
		interval:     opts.Interval,
	}
}

// Start blocks until ctx is done.
func (w *SaveGameStateWorker) Start(ctx context.Context) {
	var tick <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case req := <-w.saveRequests:
			err := w.saveGameState(ctx)
			if req.Done != nil {
				req.Done <- err
			}
		case <-tick:
			if err := w.saveGameState(ctx); errors.Is(err, host.ErrNotInitialized) {
				log.Debug("Skipping autosave: %v", err)
			}
		}
	}
}

func (w *SaveGameStateWorker) saveGameState(ctx context.Context) error {
	err := w.saver.SaveGameState(ctx)
	if err != nil && !errors.Is(err, host.ErrNotInitialized) {
		log.Error("Failed to save game state: %v", err)
	}
	return err
}
