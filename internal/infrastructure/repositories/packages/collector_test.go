//go:build unit

package packages_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monorepo-ci/affected/internal/domain/entities"
	"github.com/monorepo-ci/affected/internal/infrastructure/repositories/packages"
	builders "github.com/monorepo-ci/affected/test/domain/entitybuilders"
)

func TestTestCollectorCollect(t *testing.T) {
	t.Parallel()

	sinPkg := entities.Package{
		Dir:  "lib/node_modules/@stdlib/math/base/special/sin",
		Name: "math/base/special/sin",
	}

	t.Run("should collect files matching the test pattern", func(t *testing.T) {
		// given
		baseDir := t.TempDir()
		settings := builders.NewSettingsBuilder().BuildSettings()
		writeFile(t, baseDir, sinPkg.Dir+"/test/test.js", "tape tests\n")
		writeFile(t, baseDir, sinPkg.Dir+"/test/test.native.js", "tape tests\n")
		writeFile(t, baseDir, sinPkg.Dir+"/test/runner.js", "not a test\n")

		collector := packages.NewTestCollector(settings, baseDir)

		// when
		files, err := collector.Collect([]entities.Package{sinPkg})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{
			sinPkg.Dir + "/test/test.js",
			sinPkg.Dir + "/test/test.native.js",
		}, files)
	})

	t.Run("should exclude anything under a fixtures directory", func(t *testing.T) {
		// given
		baseDir := t.TempDir()
		settings := builders.NewSettingsBuilder().BuildSettings()
		writeFile(t, baseDir, sinPkg.Dir+"/test/test.js", "tape tests\n")
		writeFile(t, baseDir, sinPkg.Dir+"/test/fixtures/test.js", "fixture, not a test\n")
		writeFile(t, baseDir, sinPkg.Dir+"/test/fixtures/deep/test.js", "fixture, not a test\n")

		collector := packages.NewTestCollector(settings, baseDir)

		// when
		files, err := collector.Collect([]entities.Package{sinPkg})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{sinPkg.Dir + "/test/test.js"}, files)
	})

	t.Run("should not cross into a nested package root", func(t *testing.T) {
		// given
		baseDir := t.TempDir()
		settings := builders.NewSettingsBuilder().BuildSettings()
		writeFile(t, baseDir, sinPkg.Dir+"/test/test.js", "tape tests\n")
		writeFile(t, baseDir, sinPkg.Dir+"/test/nested/package.json", "{}\n")
		writeFile(t, baseDir, sinPkg.Dir+"/test/nested/test.js", "belongs to another package\n")

		collector := packages.NewTestCollector(settings, baseDir)

		// when
		files, err := collector.Collect([]entities.Package{sinPkg})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{sinPkg.Dir + "/test/test.js"}, files)
	})

	t.Run("should contribute nothing for a package without a tests directory", func(t *testing.T) {
		// given
		baseDir := t.TempDir()
		settings := builders.NewSettingsBuilder().BuildSettings()
		writeFile(t, baseDir, sinPkg.Dir+"/lib/main.js", "no tests here\n")

		collector := packages.NewTestCollector(settings, baseDir)

		// when
		files, err := collector.Collect([]entities.Package{sinPkg})

		// then
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("should deduplicate and sort across packages", func(t *testing.T) {
		// given
		baseDir := t.TempDir()
		settings := builders.NewSettingsBuilder().BuildSettings()
		zerosPkg := entities.Package{
			Dir:  "lib/node_modules/@stdlib/array/base/zeros",
			Name: "array/base/zeros",
		}
		writeFile(t, baseDir, sinPkg.Dir+"/test/test.js", "tape tests\n")
		writeFile(t, baseDir, zerosPkg.Dir+"/test/test.js", "tape tests\n")

		collector := packages.NewTestCollector(settings, baseDir)

		// when
		files, err := collector.Collect([]entities.Package{sinPkg, zerosPkg, sinPkg})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{
			zerosPkg.Dir + "/test/test.js",
			sinPkg.Dir + "/test/test.js",
		}, files)
	})
}
