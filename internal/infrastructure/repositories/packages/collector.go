package packages

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/monorepo-ci/affected/internal/domain/entities"
)

// TestCollector locates test files inside the working set of packages.
type TestCollector struct {
	settings *entities.Settings
	baseDir  string
}

// NewTestCollector creates a collector over the repository rooted at baseDir.
func NewTestCollector(settings *entities.Settings, baseDir string) *TestCollector {
	return &TestCollector{settings: settings, baseDir: baseDir}
}

// Collect returns the flat, deduplicated, sorted list of test files for the
// given packages. Only the configured tests subdirectory of each package is
// walked; fixtures directories and nested package roots are pruned. Packages
// without a tests directory contribute nothing.
func (it *TestCollector) Collect(pkgs []entities.Package) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	for _, pkg := range pkgs {
		pkgFiles, err := it.collectPackage(pkg)
		if err != nil {
			return nil, err
		}
		for _, file := range pkgFiles {
			if _, dup := seen[file]; dup {
				continue
			}
			seen[file] = struct{}{}
			files = append(files, file)
		}
	}

	sort.Strings(files)
	return files, nil
}

func (it *TestCollector) collectPackage(pkg entities.Package) ([]string, error) {
	testsRoot := filepath.Join(it.baseDir, filepath.FromSlash(pkg.Dir), it.settings.TestsDir)
	if _, err := os.Stat(testsRoot); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat tests directory %s: %w", testsRoot, err)
	}

	var files []string
	walkErr := filepath.WalkDir(testsRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if p == testsRoot {
				return nil
			}
			if d.Name() == it.settings.FixturesDir {
				return fs.SkipDir
			}
			// A nested package root means we crossed into another package.
			if _, statErr := os.Stat(filepath.Join(p, it.settings.PackageManifest)); statErr == nil {
				return fs.SkipDir
			}
			return nil
		}

		matched, matchErr := path.Match(it.settings.TestPattern, d.Name())
		if matchErr != nil {
			return fmt.Errorf("invalid test_pattern %q: %w", it.settings.TestPattern, matchErr)
		}
		if !matched {
			return nil
		}

		rel, relErr := filepath.Rel(it.baseDir, p)
		if relErr != nil {
			return nil
		}
		slashed := filepath.ToSlash(rel)

		// Fixture exclusion applies to the whole path, not just the parent.
		if strings.Contains("/"+slashed+"/", "/"+it.settings.FixturesDir+"/") {
			return nil
		}

		files = append(files, slashed)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to collect tests for %s: %w", pkg.Name, walkErr)
	}

	return files, nil
}
