package repositories

import (
	"context"

	"github.com/monorepo-ci/affected/internal/domain/entities"
)

// TestRunnerRepository abstracts the external build/test driver the pipeline
// shells out to at the end of a run.
type TestRunnerRepository interface {
	// RunTests invokes the test target with the space-joined file list.
	// A non-zero exit status is returned as an error wrapping the
	// underlying exec failure so the exit code can be propagated.
	RunTests(ctx context.Context, runner entities.RunnerSettings, files []string) error

	// BuildAddon invokes the native-addon build step scoped to one package.
	BuildAddon(ctx context.Context, runner entities.RunnerSettings, packageName string) error
}
