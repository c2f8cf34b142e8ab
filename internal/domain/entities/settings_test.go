//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monorepo-ci/affected/internal/domain/entities"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewSettings(t *testing.T) {
	// Several cases use t.Setenv, so no t.Parallel here.

	t.Run("should return defaults for an empty path", func(t *testing.T) {
		// when
		settings, err := entities.NewSettings("")

		// then
		require.NoError(t, err)
		assert.Equal(t, "lib/node_modules/@stdlib", settings.Root)
		assert.Equal(t, "@stdlib/", settings.Scope)
		assert.Equal(t, "make", settings.Runner.Command)
		assert.Equal(t, "FILES", settings.Runner.FilesVar)
		assert.Contains(t, settings.StripDirs, "benchmark")
		assert.Contains(t, settings.StripDirs, "test")
	})

	t.Run("should load a YAML config and keep defaults for unset fields", func(t *testing.T) {
		// given
		path := writeConfig(t, "affected.yaml", `
root: packages
scope: "@acme/"
runner:
  test_target: check
`)

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "packages", settings.Root)
		assert.Equal(t, "@acme/", settings.Scope)
		assert.Equal(t, "check", settings.Runner.TestTarget)
		assert.Equal(t, "make", settings.Runner.Command)
		assert.Equal(t, "test*.js", settings.TestPattern)
	})

	t.Run("should expand environment variable references", func(t *testing.T) {
		// given
		t.Setenv("AFFECTED_TEST_ROOT", "vendor/pkgs")
		path := writeConfig(t, "affected.yaml", "root: ${AFFECTED_TEST_ROOT}\n")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "vendor/pkgs", settings.Root)
	})

	t.Run("should load an HCL config with env interpolation", func(t *testing.T) {
		// given
		t.Setenv("AFFECTED_TEST_SCOPE", "@acme/")
		path := writeConfig(t, "affected.hcl", `
root  = "packages"
scope = env.AFFECTED_TEST_SCOPE

runner {
  command     = "gmake"
  test_target = "check"
}
`)

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "packages", settings.Root)
		assert.Equal(t, "@acme/", settings.Scope)
		assert.Equal(t, "gmake", settings.Runner.Command)
		assert.Equal(t, "check", settings.Runner.TestTarget)
		assert.Equal(t, "FILES", settings.Runner.FilesVar)
	})

	t.Run("should reject an invalid heartbeat interval", func(t *testing.T) {
		// given
		path := writeConfig(t, "affected.yaml", "heartbeat_interval: soon\n")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
	})

	t.Run("should fail for an unreadable config file", func(t *testing.T) {
		// when
		_, err := entities.NewSettings(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.Error(t, err)
	})
}

func TestSettingsHeartbeatDuration(t *testing.T) {
	t.Parallel()

	t.Run("should default to thirty seconds", func(t *testing.T) {
		// given
		settings := entities.DefaultSettings()

		// when / then
		assert.Equal(t, 30*time.Second, settings.HeartbeatDuration())
	})

	t.Run("should parse the configured interval", func(t *testing.T) {
		// given
		settings := entities.DefaultSettings()
		settings.HeartbeatInterval = "2m"

		// when / then
		assert.Equal(t, 2*time.Minute, settings.HeartbeatDuration())
	})
}
