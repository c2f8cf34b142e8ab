//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/monorepo-ci/affected/internal/domain/entities"
	"github.com/monorepo-ci/affected/internal/domain/repositories"
)

// SpyTestRunnerRepository implements repositories.TestRunnerRepository as a
// configurable spy.
type SpyTestRunnerRepository struct {
	// --- RunTests ---
	RunErr   error
	RunCalls []RunTestsCall

	// --- BuildAddon ---
	AddonErr   error
	AddonCalls []BuildAddonCall
}

// RunTestsCall records a single invocation of RunTests.
type RunTestsCall struct {
	Runner entities.RunnerSettings
	Files  []string
}

// BuildAddonCall records a single invocation of BuildAddon.
type BuildAddonCall struct {
	Runner      entities.RunnerSettings
	PackageName string
}

var _ repositories.TestRunnerRepository = (*SpyTestRunnerRepository)(nil)

func (it *SpyTestRunnerRepository) RunTests(
	_ context.Context, runner entities.RunnerSettings, files []string,
) error {
	it.RunCalls = append(it.RunCalls, RunTestsCall{Runner: runner, Files: files})
	return it.RunErr
}

func (it *SpyTestRunnerRepository) BuildAddon(
	_ context.Context, runner entities.RunnerSettings, packageName string,
) error {
	it.AddonCalls = append(it.AddonCalls, BuildAddonCall{Runner: runner, PackageName: packageName})
	return it.AddonErr
}
