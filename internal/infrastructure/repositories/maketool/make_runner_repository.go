package maketool

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/monorepo-ci/affected/internal/domain/entities"
	"github.com/monorepo-ci/affected/internal/domain/repositories"
)

// MakeRunnerRepository invokes the build/test driver as an external command
// (make by default). The driver's stdout and stderr pass straight through so
// CI output ordering is preserved.
type MakeRunnerRepository struct{}

var _ repositories.TestRunnerRepository = (*MakeRunnerRepository)(nil)

// NewMakeRunnerRepository creates a new MakeRunnerRepository.
func NewMakeRunnerRepository() *MakeRunnerRepository {
	return &MakeRunnerRepository{}
}

// RunTests runs `<command> <test_target> <files_var>=<space-joined files>`.
// File paths must not contain spaces; they are joined with a single space.
func (it *MakeRunnerRepository) RunTests(
	ctx context.Context,
	runner entities.RunnerSettings,
	files []string,
) error {
	arg := runner.FilesVar + "=" + strings.Join(files, " ")

	logger.Infof("Running: %s %s %s", runner.Command, runner.TestTarget, arg)

	if err := it.run(ctx, runner, runner.TestTarget, arg); err != nil {
		return fmt.Errorf("test run failed: %w", err)
	}
	return nil
}

// BuildAddon runs `<command> <addons_target> <addons_var>=<package name>`.
func (it *MakeRunnerRepository) BuildAddon(
	ctx context.Context,
	runner entities.RunnerSettings,
	packageName string,
) error {
	arg := runner.AddonsVar + "=" + packageName

	logger.Infof("Building native add-on: %s %s %s", runner.Command, runner.AddonsTarget, arg)

	if err := it.run(ctx, runner, runner.AddonsTarget, arg); err != nil {
		return fmt.Errorf("native add-on build failed for %q: %w", packageName, err)
	}
	return nil
}

func (it *MakeRunnerRepository) run(
	ctx context.Context,
	runner entities.RunnerSettings,
	args ...string,
) error {
	cmd := exec.CommandContext(ctx, runner.Command, args...)
	cmd.Dir = runner.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", runner.Command, strings.Join(args, " "), err)
	}
	return nil
}
