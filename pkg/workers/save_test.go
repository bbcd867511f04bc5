package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cbodonnell/pixelquest/pkg/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSaver struct {
	calls atomic.Int32
	err   error
}

func (s *fakeSaver) SaveGameState(ctx context.Context) error {
	s.calls.Add(1)
	return s.err
}

func TestSaveRequest(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "saved"},
		{name: "no engine", err: host.ErrNotInitialized, wantErr: host.ErrNotInitialized},
		{name: "no repository", err: host.ErrNoRepository, wantErr: host.ErrNoRepository},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saver := &fakeSaver{err: tt.err}
			requests := make(chan SaveRequest)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			w := NewSaveGameStateWorker(NewSaveGameStateWorkerOptions{Saver: saver, SaveRequests: requests})
			go w.Start(ctx)

			done := make(chan error, 1)
			requests <- SaveRequest{Timestamp: time.Now().UnixMilli(), Done: done}

			select {
			case err := <-done:
				assert.ErrorIs(t, err, tt.wantErr)
			case <-time.After(time.Second):
				t.Fatal("save request not answered")
			}
			assert.Equal(t, int32(1), saver.calls.Load())
		})
	}
}

func TestAutosave(t *testing.T) {
	saver := &fakeSaver{}
	ctx, cancel := context.WithCancel(context.Background())

	w := NewSaveGameStateWorker(NewSaveGameStateWorkerOptions{Saver: saver, Interval: 10 * time.Millisecond})
	stopped := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(stopped)
	}()

	require.Eventually(t, func() bool { return saver.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
