package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/monorepo-ci/affected/internal/domain/commands"
	"github.com/monorepo-ci/affected/internal/domain/entities"
)

// ListController handles the "list" subcommand.
type ListController struct {
	command commands.List
}

// NewListController creates a new ListController.
func NewListController(command commands.List) *ListController {
	return &ListController{command: command}
}

// GetBind returns the Cobra command metadata for the list controller.
func (it *ListController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "list [files...]",
		Short: "Print the affected test files without running them",
		Long: `Resolve the changed files to affected test files and print them,
one per line, without invoking the test runner, native add-on builds, or the
heartbeat. Useful for wiring the selection into another driver.`,
	}
}

// Execute resolves and prints the affected test files.
func (it *ListController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	changedFrom, _ := cmd.Flags().GetString("changed-from")
	repoDir, _ := cmd.Flags().GetString("dir")

	if len(args) > 0 && changedFrom != "" {
		return fmt.Errorf("positional file arguments and --changed-from are mutually exclusive")
	}

	files, err := it.command.Execute(ctx, settings, commands.ListOptions{
		ChangedFiles: args,
		ChangedFrom:  changedFrom,
		RepoDir:      repoDir,
		Verbose:      verbose,
	})
	if err != nil {
		return err
	}

	for _, file := range files {
		fmt.Fprintln(cmd.OutOrStdout(), file)
	}
	return nil
}
