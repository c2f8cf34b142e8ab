//go:build unit

package commands_test

import (
	"strings"
	"testing"
	"time"

	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monorepo-ci/affected/internal/domain/commands"
)

func countHeartbeats(hook *logrustest.Hook) int {
	count := 0
	for _, entry := range hook.AllEntries() {
		if strings.HasPrefix(entry.Message, "heartbeat:") {
			count++
		}
	}
	return count
}

func TestHeartbeat(t *testing.T) {
	// Uses the global logger hook, so no t.Parallel here.

	t.Run("should emit liveness lines until stopped", func(t *testing.T) {
		// given
		hook := logrustest.NewGlobal()
		defer hook.Reset()

		// when
		heartbeat := commands.StartHeartbeat(10 * time.Millisecond)
		time.Sleep(60 * time.Millisecond)
		heartbeat.Stop()

		// then
		require.Positive(t, countHeartbeats(hook))
	})

	t.Run("should stop emitting after Stop returns", func(t *testing.T) {
		// given
		hook := logrustest.NewGlobal()
		defer hook.Reset()

		heartbeat := commands.StartHeartbeat(10 * time.Millisecond)
		time.Sleep(30 * time.Millisecond)

		// when
		heartbeat.Stop()
		after := countHeartbeats(hook)
		time.Sleep(50 * time.Millisecond)

		// then
		assert.Equal(t, after, countHeartbeats(hook))
	})

	t.Run("should tolerate multiple Stop calls", func(t *testing.T) {
		// given
		heartbeat := commands.StartHeartbeat(10 * time.Millisecond)

		// when / then
		heartbeat.Stop()
		heartbeat.Stop()
	})

	t.Run("should be a no-op when disabled", func(t *testing.T) {
		// given
		hook := logrustest.NewGlobal()
		defer hook.Reset()

		// when
		heartbeat := commands.StartHeartbeat(0)
		time.Sleep(20 * time.Millisecond)
		heartbeat.Stop()

		// then
		assert.Zero(t, countHeartbeats(hook))
	})
}
