package repositories

import (
	"context"
)

// ChangeListerRepository supplies the changed-file list for a run when it is
// not given on the command line.
type ChangeListerRepository interface {
	// ChangedFiles returns the repo-relative paths changed between baseRev
	// and HEAD of the repository at repoDir.
	ChangedFiles(ctx context.Context, repoDir, baseRev string) ([]string, error)
}
