package controllers

import (
	"context"
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/monorepo-ci/affected/internal/domain/commands"
	"github.com/monorepo-ci/affected/internal/domain/entities"
)

// RunController handles the "run" subcommand (and the bare root invocation
// with file arguments).
type RunController struct {
	command commands.Run
}

// NewRunController creates a new RunController.
func NewRunController(command commands.Run) *RunController {
	return &RunController{command: command}
}

// GetBind returns the Cobra command metadata for the run controller.
func (it *RunController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "run [files...]",
		Short: "Run the tests affected by a set of changed files",
		Long: `Map changed files to package directories, include packages that
depend on them, collect their test files, and invoke the test runner.

Changed files are given as positional arguments (the usual CI setup) or
derived from a git diff with --changed-from. With no packages affected the
command succeeds without running anything.`,
	}
}

// Execute runs the affected-test pipeline. The returned error carries the
// runner's exit status when an external step failed.
func (it *RunController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	opts, err := runOptions(cmd, args, settings)
	if err != nil {
		return err
	}

	return it.command.Execute(ctx, settings, opts)
}

func runOptions(
	cmd *cobra.Command,
	args []string,
	settings *entities.Settings,
) (commands.RunOptions, error) {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	changedFrom, _ := cmd.Flags().GetString("changed-from")
	repoDir, _ := cmd.Flags().GetString("dir")

	if len(args) > 0 && changedFrom != "" {
		return commands.RunOptions{}, fmt.Errorf(
			"positional file arguments and --changed-from are mutually exclusive",
		)
	}

	interval, err := heartbeatInterval(cmd, settings)
	if err != nil {
		return commands.RunOptions{}, err
	}

	return commands.RunOptions{
		ChangedFiles:      args,
		ChangedFrom:       changedFrom,
		RepoDir:           repoDir,
		HeartbeatInterval: interval,
		DryRun:            dryRun,
		Verbose:           verbose,
	}, nil
}

// heartbeatInterval resolves the heartbeat period: flag over config over
// default; "0" disables it.
func heartbeatInterval(cmd *cobra.Command, settings *entities.Settings) (time.Duration, error) {
	raw, _ := cmd.Flags().GetString("heartbeat")
	if raw == "" {
		return settings.HeartbeatDuration(), nil
	}
	if raw == "0" {
		return 0, nil
	}

	interval, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid --heartbeat value %q: %w", raw, err)
	}
	return interval, nil
}

// loadSettings resolves the config file (flag, then search locations) and
// parses it; a missing config falls back to the stdlib-convention defaults.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debug("No config file found, using defaults.")
			return entities.NewSettings("")
		}
		cfgPath = found
	}

	logger.Infof("Using config file: %s", cfgPath)

	settings, err := entities.NewSettings(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return settings, nil
}
