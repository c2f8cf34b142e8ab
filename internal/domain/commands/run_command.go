package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/monorepo-ci/affected/internal/domain/entities"
	"github.com/monorepo-ci/affected/internal/domain/repositories"
	infraRepos "github.com/monorepo-ci/affected/internal/infrastructure/repositories"
	"github.com/monorepo-ci/affected/internal/infrastructure/repositories/packages"
)

const runLockName = ".affected.lock"

// Run is the interface for the run command (select and execute affected tests).
type Run interface {
	Execute(ctx context.Context, settings *entities.Settings, opts RunOptions) error
}

// RunOptions holds runtime options for a single run.
type RunOptions struct {
	// ChangedFiles are the changed paths given on the command line.
	ChangedFiles []string
	// ChangedFrom is a git revision; when ChangedFiles is empty, the change
	// set is derived by diffing HEAD against it.
	ChangedFrom string
	// RepoDir is the repository root the package tree lives under.
	RepoDir string
	// HeartbeatInterval of zero disables the heartbeat.
	HeartbeatInterval time.Duration
	DryRun            bool
	Verbose           bool
}

// RunCommand orchestrates the full pipeline: changed files -> changed
// packages -> dependents -> test files -> native add-on builds -> runner.
type RunCommand struct {
	runner  repositories.TestRunnerRepository
	changes repositories.ChangeListerRepository
}

// NewRunCommand creates a new RunCommand with the given repositories.
func NewRunCommand(
	runner repositories.TestRunnerRepository,
	changes repositories.ChangeListerRepository,
) *RunCommand {
	return &RunCommand{
		runner:  runner,
		changes: changes,
	}
}

// Execute runs the selection pipeline and invokes the test runner. The
// heartbeat is started before any work and stopped exactly once on every exit
// path. "No packages affected" is a success, not an error; the first failing
// external step aborts the run and its error carries the exit status.
func (it *RunCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts RunOptions,
) error {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}
	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		logger.Debugf("LOG_FILE is set to %s", logFile)
	}

	changed, err := it.changedFiles(ctx, opts)
	if err != nil {
		return err
	}

	heartbeat := StartHeartbeat(opts.HeartbeatInterval)
	defer heartbeat.Stop()

	selector := packages.NewSelector(settings, opts.RepoDir)

	selection, selectErr := selector.Select(changed)
	if selectErr != nil {
		return selectErr
	}

	if selection.Empty() {
		logger.Info("No packages affected, nothing to test.")
		return nil
	}

	logger.Infof(
		"Affected: %d changed packages, %d in working set, %d test files",
		len(selection.Changed), len(selection.WorkingSet), len(selection.TestFiles),
	)
	for _, pkg := range selection.WorkingSet {
		logger.Debugf("  %s", pkg.Dir)
	}

	if buildErr := it.buildAddons(ctx, settings, selector, selection, opts); buildErr != nil {
		return buildErr
	}

	if len(selection.TestFiles) == 0 {
		logger.Info("Working set contains no test files, skipping runner.")
		return nil
	}

	if opts.DryRun {
		logger.Infof(
			"[dry-run] Would run: %s %s %s=<%d files>",
			settings.Runner.Command, settings.Runner.TestTarget,
			settings.Runner.FilesVar, len(selection.TestFiles),
		)
		return nil
	}

	lock, lockErr := infraRepos.AcquireRunLock(filepath.Join(settings.Runner.Dir, runLockName))
	if lockErr != nil {
		return lockErr
	}
	defer lock.Release()

	if runErr := it.runner.RunTests(ctx, settings.Runner, selection.TestFiles); runErr != nil {
		return runErr
	}

	logger.Infof("Affected tests completed: %d test files across %d packages",
		len(selection.TestFiles), len(selection.WorkingSet))
	return nil
}

// changedFiles resolves the change set from the options: explicit paths win,
// then the git diff fallback.
func (it *RunCommand) changedFiles(ctx context.Context, opts RunOptions) ([]string, error) {
	if len(opts.ChangedFiles) > 0 {
		return opts.ChangedFiles, nil
	}
	if opts.ChangedFrom == "" {
		return nil, nil
	}

	logger.Infof("Deriving changed files from git diff against %s...", opts.ChangedFrom)

	changed, err := it.changes.ChangedFiles(ctx, opts.RepoDir, opts.ChangedFrom)
	if err != nil {
		return nil, fmt.Errorf("failed to list changed files: %w", err)
	}

	logger.Debugf("Found %d changed files", len(changed))
	return changed, nil
}

// buildAddons runs the native-addon build for every directly changed package
// carrying a build descriptor. The first failure is fatal.
func (it *RunCommand) buildAddons(
	ctx context.Context,
	settings *entities.Settings,
	selector *packages.Selector,
	selection entities.Selection,
	opts RunOptions,
) error {
	for _, pkg := range selection.Changed {
		if !selector.HasAddon(pkg) {
			continue
		}

		if opts.DryRun {
			logger.Infof("[dry-run] Would build native add-on for %s", pkg.Name)
			continue
		}

		if err := it.runner.BuildAddon(ctx, settings.Runner, pkg.Name); err != nil {
			return err
		}
	}
	return nil
}
