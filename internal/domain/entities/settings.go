package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	logger "github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

const defaultHeartbeatInterval = 30 * time.Second

// Settings is the top-level configuration for affected.
type Settings struct {
	// Root is the package tree root, relative to the repository root.
	Root string `yaml:"root"`
	// Scope is the import-name prefix re-added when searching dependents
	// (e.g. "@stdlib/" turns package name "math/base/special/sin" into the
	// searched token "@stdlib/math/base/special/sin").
	Scope string `yaml:"scope"`
	// StripDirs are the conventional package subdirectories; the first such
	// component in a changed path marks the package directory boundary.
	StripDirs []string `yaml:"strip_dirs"`
	// TestsDir is the per-package test subdirectory name.
	TestsDir string `yaml:"tests_dir"`
	// TestPattern is the glob matched against test file basenames.
	TestPattern string `yaml:"test_pattern"`
	// FixturesDir names the test-support directory excluded from collection.
	FixturesDir string `yaml:"fixtures_dir"`
	// SourcePattern is the glob matched against files scanned for dependents.
	SourcePattern string `yaml:"source_pattern"`
	// AddonManifest is the native-addon build descriptor filename.
	AddonManifest string `yaml:"addon_manifest"`
	// PackageManifest marks a directory as a package root; nested package
	// roots are pruned during test collection.
	PackageManifest string `yaml:"package_manifest"`
	// HeartbeatInterval is a duration string; empty means the default.
	HeartbeatInterval string `yaml:"heartbeat_interval"`

	Runner RunnerSettings `yaml:"runner"`
}

// RunnerSettings describes how the external build/test driver is invoked.
type RunnerSettings struct {
	Command      string `yaml:"command"`
	TestTarget   string `yaml:"test_target"`
	FilesVar     string `yaml:"files_var"`
	AddonsTarget string `yaml:"addons_target"`
	AddonsVar    string `yaml:"addons_var"`
	Dir          string `yaml:"dir"`
}

// hclSettings mirrors Settings for HCL decoding; the runner block is optional.
type hclSettings struct {
	Root              string             `hcl:"root,optional"`
	Scope             string             `hcl:"scope,optional"`
	StripDirs         []string           `hcl:"strip_dirs,optional"`
	TestsDir          string             `hcl:"tests_dir,optional"`
	TestPattern       string             `hcl:"test_pattern,optional"`
	FixturesDir       string             `hcl:"fixtures_dir,optional"`
	SourcePattern     string             `hcl:"source_pattern,optional"`
	AddonManifest     string             `hcl:"addon_manifest,optional"`
	PackageManifest   string             `hcl:"package_manifest,optional"`
	HeartbeatInterval string             `hcl:"heartbeat_interval,optional"`
	Runner            *hclRunnerSettings `hcl:"runner,block"`
}

type hclRunnerSettings struct {
	Command      string `hcl:"command,optional"`
	TestTarget   string `hcl:"test_target,optional"`
	FilesVar     string `hcl:"files_var,optional"`
	AddonsTarget string `hcl:"addons_target,optional"`
	AddonsVar    string `hcl:"addons_var,optional"`
	Dir          string `hcl:"dir,optional"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file, expanding environment
// variables and filling unset fields with the stdlib-convention defaults.
// An empty path yields the defaults unchanged.
func NewSettings(path string) (*Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	var err error
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		err = loadHCL(path, settings)
	} else {
		err = loadYAML(path, settings)
	}
	if err != nil {
		return nil, err
	}

	settings.applyDefaults()
	settings.expandEnv()

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// DefaultSettings returns the configuration matching the stdlib package-tree
// conventions.
func DefaultSettings() *Settings {
	return &Settings{
		Root:  "lib/node_modules/@stdlib",
		Scope: "@stdlib/",
		StripDirs: []string{
			"benchmark", "bin", "data", "docs", "etc",
			"examples", "include", "lib", "scripts", "src", "test",
		},
		TestsDir:        "test",
		TestPattern:     "test*.js",
		FixturesDir:     "fixtures",
		SourcePattern:   "*.js",
		AddonManifest:   "binding.gyp",
		PackageManifest: "package.json",
		Runner: RunnerSettings{
			Command:      "make",
			TestTarget:   "test",
			FilesVar:     "FILES",
			AddonsTarget: "install-node-addons",
			AddonsVar:    "NODE_ADDONS_PATTERN",
			Dir:          ".",
		},
	}
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".affected.yaml",
		".affected.yml",
		"affected.yaml",
		"affected.yml",
		"affected.hcl",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// HeartbeatDuration parses the configured heartbeat interval, falling back to
// the default when unset.
func (it *Settings) HeartbeatDuration() time.Duration {
	if it.HeartbeatInterval == "" {
		return defaultHeartbeatInterval
	}
	d, err := time.ParseDuration(it.HeartbeatInterval)
	if err != nil {
		logger.Warnf("Invalid heartbeat_interval %q, using default: %v", it.HeartbeatInterval, err)
		return defaultHeartbeatInterval
	}
	return d
}

func loadYAML(path string, settings *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return fmt.Errorf("failed to parse config file %q: %w", path, unmarshalErr)
	}
	return nil
}

func loadHCL(path string, settings *Settings) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse config file %q: %s", path, diags.Error())
	}

	var decoded hclSettings
	if decodeDiags := gohcl.DecodeBody(file.Body, hclEvalContext(), &decoded); decodeDiags.HasErrors() {
		return fmt.Errorf("failed to decode config file %q: %s", path, decodeDiags.Error())
	}

	mergeHCL(&decoded, settings)
	return nil
}

// hclEvalContext exposes the process environment as env.VAR variables inside
// HCL expressions.
func hclEvalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		vars[key] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

func mergeHCL(in *hclSettings, out *Settings) {
	setIfPresent(&out.Root, in.Root)
	setIfPresent(&out.Scope, in.Scope)
	if len(in.StripDirs) > 0 {
		out.StripDirs = in.StripDirs
	}
	setIfPresent(&out.TestsDir, in.TestsDir)
	setIfPresent(&out.TestPattern, in.TestPattern)
	setIfPresent(&out.FixturesDir, in.FixturesDir)
	setIfPresent(&out.SourcePattern, in.SourcePattern)
	setIfPresent(&out.AddonManifest, in.AddonManifest)
	setIfPresent(&out.PackageManifest, in.PackageManifest)
	setIfPresent(&out.HeartbeatInterval, in.HeartbeatInterval)

	if in.Runner != nil {
		setIfPresent(&out.Runner.Command, in.Runner.Command)
		setIfPresent(&out.Runner.TestTarget, in.Runner.TestTarget)
		setIfPresent(&out.Runner.FilesVar, in.Runner.FilesVar)
		setIfPresent(&out.Runner.AddonsTarget, in.Runner.AddonsTarget)
		setIfPresent(&out.Runner.AddonsVar, in.Runner.AddonsVar)
		setIfPresent(&out.Runner.Dir, in.Runner.Dir)
	}
}

func setIfPresent(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// applyDefaults fills any field the config file left empty.
func (it *Settings) applyDefaults() {
	defaults := DefaultSettings()

	it.Root = orDefault(it.Root, defaults.Root)
	it.Scope = orDefault(it.Scope, defaults.Scope)
	if len(it.StripDirs) == 0 {
		it.StripDirs = defaults.StripDirs
	}
	it.TestsDir = orDefault(it.TestsDir, defaults.TestsDir)
	it.TestPattern = orDefault(it.TestPattern, defaults.TestPattern)
	it.FixturesDir = orDefault(it.FixturesDir, defaults.FixturesDir)
	it.SourcePattern = orDefault(it.SourcePattern, defaults.SourcePattern)
	it.AddonManifest = orDefault(it.AddonManifest, defaults.AddonManifest)
	it.PackageManifest = orDefault(it.PackageManifest, defaults.PackageManifest)

	it.Runner.Command = orDefault(it.Runner.Command, defaults.Runner.Command)
	it.Runner.TestTarget = orDefault(it.Runner.TestTarget, defaults.Runner.TestTarget)
	it.Runner.FilesVar = orDefault(it.Runner.FilesVar, defaults.Runner.FilesVar)
	it.Runner.AddonsTarget = orDefault(it.Runner.AddonsTarget, defaults.Runner.AddonsTarget)
	it.Runner.AddonsVar = orDefault(it.Runner.AddonsVar, defaults.Runner.AddonsVar)
	it.Runner.Dir = orDefault(it.Runner.Dir, defaults.Runner.Dir)
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// expandEnv resolves ${VAR} references in the path-like string fields.
func (it *Settings) expandEnv() {
	it.Root = expandEnvRefs(it.Root)
	it.Scope = expandEnvRefs(it.Scope)
	it.Runner.Command = expandEnvRefs(it.Runner.Command)
	it.Runner.Dir = expandEnvRefs(it.Runner.Dir)
}

func expandEnvRefs(raw string) string {
	if raw == "" {
		return raw
	}
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// validate checks for required configuration values.
func (it *Settings) validate() error {
	if it.Root == "" {
		return errors.New("root is required")
	}
	if it.Scope == "" {
		return errors.New("scope is required")
	}
	if it.Runner.Command == "" {
		return errors.New("runner.command is required")
	}
	if it.HeartbeatInterval != "" {
		if _, err := time.ParseDuration(it.HeartbeatInterval); err != nil {
			return fmt.Errorf("invalid heartbeat_interval %q: %w", it.HeartbeatInterval, err)
		}
	}
	return nil
}
