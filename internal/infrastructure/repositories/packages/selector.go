package packages

import (
	"os"
	"path/filepath"
	"sort"

	logger "github.com/sirupsen/logrus"

	"github.com/monorepo-ci/affected/internal/domain/entities"
)

// Selector runs the full selection pipeline: changed files -> changed
// packages -> dependents -> test files.
type Selector struct {
	settings  *entities.Settings
	baseDir   string
	resolver  *Resolver
	scanner   *DependentScanner
	collector *TestCollector
}

// NewSelector creates a Selector over the repository rooted at baseDir.
func NewSelector(settings *entities.Settings, baseDir string) *Selector {
	return &Selector{
		settings:  settings,
		baseDir:   baseDir,
		resolver:  NewResolver(settings),
		scanner:   NewDependentScanner(settings, baseDir),
		collector: NewTestCollector(settings, baseDir),
	}
}

// Select resolves the changed-file list into the affected test files.
func (it *Selector) Select(changed []string) (entities.Selection, error) {
	selection := entities.Selection{
		Changed: it.resolver.Resolve(changed),
	}
	if len(selection.Changed) == 0 {
		return selection, nil
	}

	working := make(map[string]entities.Package, len(selection.Changed))
	for _, pkg := range selection.Changed {
		working[pkg.Dir] = pkg
	}

	for _, pkg := range selection.Changed {
		logger.Debugf("Scanning for dependents of %s...", pkg.Name)

		dependents, err := it.scanner.ScanDependents(pkg.Name)
		if err != nil {
			return entities.Selection{}, err
		}
		for _, dep := range dependents {
			working[dep.Dir] = dep
		}
	}

	for _, pkg := range working {
		selection.WorkingSet = append(selection.WorkingSet, pkg)
	}
	sort.Slice(selection.WorkingSet, func(i, j int) bool {
		return selection.WorkingSet[i].Dir < selection.WorkingSet[j].Dir
	})

	files, err := it.collector.Collect(selection.WorkingSet)
	if err != nil {
		return entities.Selection{}, err
	}
	selection.TestFiles = files

	return selection, nil
}

// HasAddon reports whether the package carries a native-addon build
// descriptor at its root.
func (it *Selector) HasAddon(pkg entities.Package) bool {
	manifest := filepath.Join(it.baseDir, filepath.FromSlash(pkg.Dir), it.settings.AddonManifest)
	_, err := os.Stat(manifest)
	return err == nil
}
