package entities

// Package is one distributable unit under the package tree root.
type Package struct {
	// Dir is the repo-relative directory of the package, slash-separated
	// (e.g. "lib/node_modules/@stdlib/math/base/special/sin").
	Dir string

	// Name is the package name with the root prefix removed
	// (e.g. "math/base/special/sin"). It is the token searched for in
	// dependency declarations, prefixed with the configured scope.
	Name string
}

// Selection is the outcome of resolving a changed-file list into test files.
type Selection struct {
	// Changed are the packages directly touched by the change set.
	Changed []Package

	// WorkingSet is the union of changed packages and their dependents,
	// deduplicated.
	WorkingSet []Package

	// TestFiles is the flat, deduplicated, sorted list of test files found
	// under the working set.
	TestFiles []string
}

// Empty reports whether the change set resolved to no packages at all.
// This is the terminal "nothing to test" outcome, not an error.
func (it Selection) Empty() bool {
	return len(it.WorkingSet) == 0
}
