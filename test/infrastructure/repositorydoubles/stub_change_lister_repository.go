//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/monorepo-ci/affected/internal/domain/repositories"
)

// StubChangeListerRepository implements repositories.ChangeListerRepository
// with canned results, recording what was requested.
type StubChangeListerRepository struct {
	Files    []string
	Err      error
	Requests []ChangeRequest
}

// ChangeRequest records a single invocation of ChangedFiles.
type ChangeRequest struct {
	RepoDir string
	BaseRev string
}

var _ repositories.ChangeListerRepository = (*StubChangeListerRepository)(nil)

func (it *StubChangeListerRepository) ChangedFiles(
	_ context.Context, repoDir, baseRev string,
) ([]string, error) {
	it.Requests = append(it.Requests, ChangeRequest{RepoDir: repoDir, BaseRev: baseRev})
	return it.Files, it.Err
}
