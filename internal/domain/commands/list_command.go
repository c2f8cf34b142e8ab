package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/monorepo-ci/affected/internal/domain/entities"
	"github.com/monorepo-ci/affected/internal/domain/repositories"
	"github.com/monorepo-ci/affected/internal/infrastructure/repositories/packages"
)

// List is the interface for the list command (resolve without running).
type List interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ListOptions) ([]string, error)
}

// ListOptions holds runtime options for the list mode.
type ListOptions struct {
	ChangedFiles []string
	ChangedFrom  string
	RepoDir      string
	Verbose      bool
}

// ListCommand resolves the affected test files and returns them without
// invoking the runner, the add-on builds, or the heartbeat.
type ListCommand struct {
	changes repositories.ChangeListerRepository
}

// NewListCommand creates a new ListCommand with the given change lister.
func NewListCommand(changes repositories.ChangeListerRepository) *ListCommand {
	return &ListCommand{changes: changes}
}

// Execute returns the affected test files for the given change set, sorted.
func (it *ListCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ListOptions,
) ([]string, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	changed := opts.ChangedFiles
	if len(changed) == 0 && opts.ChangedFrom != "" {
		var err error
		changed, err = it.changes.ChangedFiles(ctx, opts.RepoDir, opts.ChangedFrom)
		if err != nil {
			return nil, fmt.Errorf("failed to list changed files: %w", err)
		}
	}

	selection, err := packages.NewSelector(settings, opts.RepoDir).Select(changed)
	if err != nil {
		return nil, err
	}

	logger.Debugf(
		"Resolved %d test files from %d packages",
		len(selection.TestFiles), len(selection.WorkingSet),
	)
	return selection.TestFiles, nil
}
