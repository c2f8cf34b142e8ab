package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/monorepo-ci/affected/internal/domain/repositories"
	"github.com/monorepo-ci/affected/internal/infrastructure/repositories/gitdiff"
	"github.com/monorepo-ci/affected/internal/infrastructure/repositories/maketool"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register concrete repositories
	if err := container.Provide(maketool.NewMakeRunnerRepository); err != nil {
		return err
	}
	if err := container.Provide(gitdiff.NewGitChangeListerRepository); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *maketool.MakeRunnerRepository) domainRepos.TestRunnerRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *gitdiff.GitChangeListerRepository) domainRepos.ChangeListerRepository {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
