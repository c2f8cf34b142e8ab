//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/monorepo-ci/affected/internal/domain/commands"
	"github.com/monorepo-ci/affected/internal/domain/entities"
)

// StubListCommand implements commands.List with canned results.
type StubListCommand struct {
	Files []string
	Err   error
	Calls []commands.ListOptions
}

var _ commands.List = (*StubListCommand)(nil)

func (it *StubListCommand) Execute(
	_ context.Context, _ *entities.Settings, opts commands.ListOptions,
) ([]string, error) {
	it.Calls = append(it.Calls, opts)
	return it.Files, it.Err
}
