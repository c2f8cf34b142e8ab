//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/monorepo-ci/affected/internal/domain/commands"
	"github.com/monorepo-ci/affected/internal/domain/entities"
)

// StubRunCommand implements commands.Run with canned results, recording the
// options it was called with.
type StubRunCommand struct {
	Err   error
	Calls []commands.RunOptions
}

var _ commands.Run = (*StubRunCommand)(nil)

func (it *StubRunCommand) Execute(
	_ context.Context, _ *entities.Settings, opts commands.RunOptions,
) error {
	it.Calls = append(it.Calls, opts)
	return it.Err
}
