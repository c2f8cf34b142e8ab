//go:build unit

package controllers_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monorepo-ci/affected/internal/infrastructure/controllers"
	commanddoubles "github.com/monorepo-ci/affected/test/domain/commanddoubles"
)

// newTestCommand mirrors the flag set the binary registers, as cobra presents
// it to a controller after persistent-flag merging.
func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "affected"}
	cmd.Flags().StringP("config", "c", "", "")
	cmd.Flags().String("changed-from", "", "")
	cmd.Flags().StringP("dir", "C", ".", "")
	cmd.Flags().String("heartbeat", "", "")
	cmd.Flags().Bool("dry-run", false, "")
	cmd.Flags().BoolP("verbose", "v", false, "")
	return cmd
}

func TestRunControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should pass changed files and options to the command", func(t *testing.T) {
		// given
		stub := &commanddoubles.StubRunCommand{}
		controller := controllers.NewRunController(stub)

		cmd := newTestCommand()
		require.NoError(t, cmd.Flags().Set("dry-run", "true"))
		require.NoError(t, cmd.Flags().Set("heartbeat", "0"))

		// when
		err := controller.Execute(cmd, []string{"lib/node_modules/@stdlib/foo/lib/main.js"})

		// then
		require.NoError(t, err)
		require.Len(t, stub.Calls, 1)
		assert.Equal(t, []string{"lib/node_modules/@stdlib/foo/lib/main.js"}, stub.Calls[0].ChangedFiles)
		assert.True(t, stub.Calls[0].DryRun)
		assert.Zero(t, stub.Calls[0].HeartbeatInterval)
	})

	t.Run("should reject file arguments combined with --changed-from", func(t *testing.T) {
		// given
		stub := &commanddoubles.StubRunCommand{}
		controller := controllers.NewRunController(stub)

		cmd := newTestCommand()
		require.NoError(t, cmd.Flags().Set("changed-from", "origin/develop"))

		// when
		err := controller.Execute(cmd, []string{"some/file.js"})

		// then
		require.Error(t, err)
		assert.Empty(t, stub.Calls)
	})

	t.Run("should reject an invalid heartbeat flag", func(t *testing.T) {
		// given
		stub := &commanddoubles.StubRunCommand{}
		controller := controllers.NewRunController(stub)

		cmd := newTestCommand()
		require.NoError(t, cmd.Flags().Set("heartbeat", "soon"))

		// when
		err := controller.Execute(cmd, []string{"some/file.js"})

		// then
		require.Error(t, err)
		assert.Empty(t, stub.Calls)
	})

	t.Run("should expose the run bind", func(t *testing.T) {
		// given
		controller := controllers.NewRunController(&commanddoubles.StubRunCommand{})

		// when
		bind := controller.GetBind()

		// then
		assert.Equal(t, "run [files...]", bind.Use)
		assert.NotEmpty(t, bind.Short)
	})
}
