//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/monorepo-ci/affected/internal/domain/entities"
)

// SettingsBuilder helps create test settings with a fluent interface.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	root          string
	scope         string
	testsDir      string
	testPattern   string
	fixturesDir   string
	sourcePattern string
	runnerCommand string
	runnerDir     string
}

// NewSettingsBuilder creates a new settings builder with sensible defaults
// for a small fake package tree.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{
		BaseBuilder:   testkit.NewBaseBuilder(),
		root:          "lib/node_modules/@stdlib",
		scope:         "@stdlib/",
		testsDir:      "test",
		testPattern:   "test*.js",
		fixturesDir:   "fixtures",
		sourcePattern: "*.js",
		runnerCommand: "make",
		runnerDir:     ".",
	}
}

// WithRoot sets the package tree root.
func (b *SettingsBuilder) WithRoot(root string) *SettingsBuilder {
	b.root = root
	return b
}

// WithScope sets the import-name prefix.
func (b *SettingsBuilder) WithScope(scope string) *SettingsBuilder {
	b.scope = scope
	return b
}

// WithTestPattern sets the test file glob.
func (b *SettingsBuilder) WithTestPattern(pattern string) *SettingsBuilder {
	b.testPattern = pattern
	return b
}

// WithRunnerCommand sets the runner command.
func (b *SettingsBuilder) WithRunnerCommand(command string) *SettingsBuilder {
	b.runnerCommand = command
	return b
}

// WithRunnerDir sets the runner working directory.
func (b *SettingsBuilder) WithRunnerDir(dir string) *SettingsBuilder {
	b.runnerDir = dir
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	settings := entities.DefaultSettings()
	settings.Root = b.root
	settings.Scope = b.scope
	settings.TestsDir = b.testsDir
	settings.TestPattern = b.testPattern
	settings.FixturesDir = b.fixturesDir
	settings.SourcePattern = b.sourcePattern
	settings.Runner.Command = b.runnerCommand
	settings.Runner.Dir = b.runnerDir
	return settings
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.root = "lib/node_modules/@stdlib"
	b.scope = "@stdlib/"
	b.testsDir = "test"
	b.testPattern = "test*.js"
	b.fixturesDir = "fixtures"
	b.sourcePattern = "*.js"
	b.runnerCommand = "make"
	b.runnerDir = "."
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder:   b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		root:          b.root,
		scope:         b.scope,
		testsDir:      b.testsDir,
		testPattern:   b.testPattern,
		fixturesDir:   b.fixturesDir,
		sourcePattern: b.sourcePattern,
		runnerCommand: b.runnerCommand,
		runnerDir:     b.runnerDir,
	}
}
