package gitdiff

import (
	"context"
	"fmt"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"

	"github.com/monorepo-ci/affected/internal/domain/repositories"
)

// GitChangeListerRepository derives the changed-file list by diffing HEAD
// against a base revision with go-git, so CI jobs can run without arguments.
type GitChangeListerRepository struct{}

var _ repositories.ChangeListerRepository = (*GitChangeListerRepository)(nil)

// NewGitChangeListerRepository creates a new GitChangeListerRepository.
func NewGitChangeListerRepository() *GitChangeListerRepository {
	return &GitChangeListerRepository{}
}

// ChangedFiles returns the repo-relative paths of files added, modified, or
// renamed between baseRev and HEAD. Deleted files are omitted: a file that no
// longer exists cannot map to a package directory worth testing on its own.
func (it *GitChangeListerRepository) ChangedFiles(
	_ context.Context,
	repoDir, baseRev string,
) ([]string, error) {
	repo, err := gogit.PlainOpenWithOptions(repoDir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", repoDir, err)
	}

	baseTree, err := treeAt(repo, baseRev)
	if err != nil {
		return nil, err
	}

	headRef, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	headTree, err := treeOf(repo, headRef.Hash())
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTree(baseTree, headTree)
	if err != nil {
		return nil, fmt.Errorf("failed to diff %s against HEAD: %w", baseRev, err)
	}

	seen := make(map[string]struct{})
	var files []string
	for _, change := range changes {
		action, actionErr := change.Action()
		if actionErr != nil {
			return nil, fmt.Errorf("failed to classify change: %w", actionErr)
		}
		if action == merkletrie.Delete {
			continue
		}
		name := change.To.Name
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		files = append(files, name)
	}

	sort.Strings(files)
	return files, nil
}

func treeAt(repo *gogit.Repository, rev string) (*object.Tree, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revision %q: %w", rev, err)
	}
	return treeOf(repo, *hash)
}

func treeOf(repo *gogit.Repository, hash plumbing.Hash) (*object.Tree, error) {
	commit, err := repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", hash, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to load tree for %s: %w", hash, err)
	}
	return tree, nil
}
