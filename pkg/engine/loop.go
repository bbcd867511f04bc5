package engine

import (
	"sync"
	"time"
)

// maxDelta is the longest frame delta passed on to scenes and physics.
// Longer gaps (a stalled window, a debugger) count as a single target frame.
const maxDelta = 250 * time.Millisecond

// Loop tracks frame timing against a target frame rate.
type Loop struct {
	lock        sync.RWMutex
	target      int
	frame       uint64
	last        time.Time
	windowStart time.Time
	frames      int
	actualFPS   float64
}

func NewLoop(target int) *Loop {
	return &Loop{
		target:    target,
		actualFPS: float64(target),
	}
}

// Tick records a frame at now and returns the delta since the previous
// frame in seconds.
func (l *Loop) Tick(now time.Time) float64 {
	l.lock.Lock()
	defer l.lock.Unlock()

	targetDelta := 1.0 / float64(l.target)
	l.frame++
	if l.last.IsZero() {
		l.last = now
		l.windowStart = now
		return targetDelta
	}

	delta := now.Sub(l.last)
	l.last = now
	l.frames++
	if elapsed := now.Sub(l.windowStart); elapsed >= time.Second {
		l.actualFPS = float64(l.frames) / elapsed.Seconds()
		l.frames = 0
		l.windowStart = now
	}

	if delta <= 0 || delta > maxDelta {
		return targetDelta
	}
	return delta.Seconds()
}

// ActualFPS is the frame rate measured over the last full second. It
// equals the target until a second has been measured.
func (l *Loop) ActualFPS() float64 {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.actualFPS
}

func (l *Loop) Target() int {
	return l.target
}

// Frame is the number of ticks so far.
func (l *Loop) Frame() uint64 {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.frame
}
