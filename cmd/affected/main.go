package main

import (
	"errors"
	"os"
	"os/exec"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/monorepo-ci/affected/internal"
	"github.com/monorepo-ci/affected/internal/infrastructure/controllers"
)

func buildRootCommand(runController *controllers.RunController) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "affected [files...]",
		Short: "Select and run the tests affected by a set of changed files",
		Long: `A CI helper that selects which test files to run for a change set:
changed files are mapped to package directories, packages that depend on them
are included (single-level textual scan), their test files are collected, and
the test runner is invoked with the result.

Usage modes:
  affected file1 file2 ...        Run tests affected by the given changed files
  affected run --changed-from X   Derive the change set from a git diff
  affected list file1 ...         Print the affected test files without running`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, args []string) error {
			changedFrom, _ := command.Flags().GetString("changed-from")
			if len(args) == 0 && changedFrom == "" {
				return command.Help()
			}
			return runController.Execute(command, args)
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().String("changed-from", "",
		"Git revision to diff HEAD against for the change set")
	cmd.PersistentFlags().StringP("dir", "C", ".",
		"Repository root the package tree lives under")
	cmd.PersistentFlags().String("heartbeat", "",
		"Heartbeat interval (e.g. 30s); 0 disables it")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be done without making changes")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, app *internal.App) {
	for _, controller := range app.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}

		rootCmd.AddCommand(subCmd)
	}
}

// exitStatus surfaces the exit code of a failed external step so CI sees the
// same status the runner produced. Anything else maps to 1.
func exitStatus(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
	}
	return 1
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stderr)
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	runController := injectRunController()
	cobraRoot := buildRootCommand(runController)

	// Add all subcommands
	app := injectApp()
	addSubcommands(cobraRoot, app)

	if err := cobraRoot.Execute(); err != nil {
		logger.Errorf("Error executing 'affected': %s", err)
		os.Exit(exitStatus(err))
	}
}
