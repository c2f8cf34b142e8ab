package commands

import (
	"context"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"
)

// Heartbeat periodically logs a timestamped liveness line so a supervising CI
// system does not kill the session during long-running steps. It is a pure
// output signal: it touches no shared state and gives no ordering guarantees
// relative to the main task's output.
type Heartbeat struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// StartHeartbeat spawns the heartbeat goroutine. A non-positive interval
// returns a disabled heartbeat whose Stop is a no-op, so callers can always
// defer Stop unconditionally.
func StartHeartbeat(interval time.Duration) *Heartbeat {
	if interval <= 0 {
		return &Heartbeat{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	hb := &Heartbeat{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(hb.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case tick := <-ticker.C:
				logger.Infof("heartbeat: still alive at %s", tick.Format(time.RFC3339))
			}
		}
	}()

	return hb
}

// Stop cancels the heartbeat goroutine and waits for it to exit. Safe to call
// more than once; only the first call does anything.
func (it *Heartbeat) Stop() {
	it.once.Do(func() {
		if it.cancel == nil {
			return
		}
		it.cancel()
		<-it.done
	})
}
