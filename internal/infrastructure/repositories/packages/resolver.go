package packages

import (
	"path"
	"sort"
	"strings"

	"github.com/monorepo-ci/affected/internal/domain/entities"
)

// Resolver maps changed file paths to package directories under the
// configured package tree root.
type Resolver struct {
	settings  *entities.Settings
	stripDirs map[string]struct{}
}

// NewResolver creates a Resolver for the given settings.
func NewResolver(settings *entities.Settings) *Resolver {
	stripDirs := make(map[string]struct{}, len(settings.StripDirs))
	for _, dir := range settings.StripDirs {
		stripDirs[dir] = struct{}{}
	}
	return &Resolver{settings: settings, stripDirs: stripDirs}
}

// Resolve filters the changed paths to those under the package root, maps each
// to its package directory, and returns the deduplicated packages sorted by
// directory. Paths outside the root contribute nothing.
func (it *Resolver) Resolve(changed []string) []entities.Package {
	seen := make(map[string]struct{})
	var result []entities.Package

	for _, file := range changed {
		pkg, ok := it.PackageFor(file)
		if !ok {
			continue
		}
		if _, dup := seen[pkg.Dir]; dup {
			continue
		}
		seen[pkg.Dir] = struct{}{}
		result = append(result, pkg)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Dir < result[j].Dir })
	return result
}

// PackageFor maps a single changed file path to its package. The second
// return value is false when the path is not under the package root.
func (it *Resolver) PackageFor(file string) (entities.Package, bool) {
	cleaned := path.Clean(strings.ReplaceAll(file, "\\", "/"))
	root := path.Clean(it.settings.Root)

	rel, ok := strings.CutPrefix(cleaned, root+"/")
	if !ok || rel == "" || rel == "." {
		return entities.Package{}, false
	}

	name := it.StripConventional(rel)
	if name == rel {
		// No conventional component: the change sits at the package root
		// (e.g. package.json, README.md); drop the filename.
		name = path.Dir(rel)
	}
	if name == "." || name == "" {
		return entities.Package{}, false
	}

	return entities.Package{
		Dir:  root + "/" + name,
		Name: name,
	}, true
}

// StripConventional cuts a root-relative path at the first conventional
// subdirectory component (benchmark, bin, lib, test, ...). Applying it to an
// already-stripped package path is a no-op.
func (it *Resolver) StripConventional(rel string) string {
	parts := strings.Split(rel, "/")
	for i, part := range parts {
		if _, conventional := it.stripDirs[part]; conventional {
			return strings.Join(parts[:i], "/")
		}
	}
	return rel
}
