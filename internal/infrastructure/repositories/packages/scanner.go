package packages

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	logger "github.com/sirupsen/logrus"

	"github.com/monorepo-ci/affected/internal/domain/entities"
)

// DependentScanner finds packages that textually reference another package as
// an import. Matching is anchored on the exact quoted form of the scoped name,
// so searching for "foo" never matches a reference to "foo-bar". It is a
// single-level scan: dependents-of-dependents are not discovered.
type DependentScanner struct {
	settings *entities.Settings
	resolver *Resolver
	baseDir  string
}

// NewDependentScanner creates a scanner over the package tree rooted at
// baseDir (the repository root).
func NewDependentScanner(settings *entities.Settings, baseDir string) *DependentScanner {
	return &DependentScanner{
		settings: settings,
		resolver: NewResolver(settings),
		baseDir:  baseDir,
	}
}

// ScanDependents walks every source file under the package tree and returns
// the packages containing a quoted reference to the scoped package name,
// sorted by directory. Zero matches is not an error; unreadable files are
// skipped.
func (it *DependentScanner) ScanDependents(name string) ([]entities.Package, error) {
	token := it.settings.Scope + name
	needles := [][]byte{
		[]byte("'" + token + "'"),
		[]byte(`"` + token + `"`),
	}

	treeRoot := filepath.Join(it.baseDir, filepath.FromSlash(it.settings.Root))
	seen := make(map[string]struct{})
	var dependents []entities.Package

	walkErr := filepath.WalkDir(treeRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		matched, matchErr := path.Match(it.settings.SourcePattern, d.Name())
		if matchErr != nil {
			return fmt.Errorf("invalid source_pattern %q: %w", it.settings.SourcePattern, matchErr)
		}
		if !matched {
			return nil
		}

		content, readErr := os.ReadFile(p)
		if readErr != nil {
			logger.Debugf("Skipping unreadable file %s: %v", p, readErr)
			return nil
		}

		if !containsAny(content, needles) {
			return nil
		}

		rel, relErr := filepath.Rel(it.baseDir, p)
		if relErr != nil {
			return nil
		}

		pkg, ok := it.resolver.PackageFor(filepath.ToSlash(rel))
		if !ok {
			return nil
		}
		if _, dup := seen[pkg.Dir]; dup {
			return nil
		}
		seen[pkg.Dir] = struct{}{}
		dependents = append(dependents, pkg)
		return nil
	})
	if walkErr != nil {
		if os.IsNotExist(walkErr) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan for dependents of %q: %w", name, walkErr)
	}

	sort.Slice(dependents, func(i, j int) bool { return dependents[i].Dir < dependents[j].Dir })
	return dependents, nil
}

func containsAny(content []byte, needles [][]byte) bool {
	for _, needle := range needles {
		if bytes.Contains(content, needle) {
			return true
		}
	}
	return false
}
