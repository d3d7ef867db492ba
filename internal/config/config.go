// Package config loads and validates .typofix.kdl files. A global file in
// the user's home directory supplies workstation-wide defaults; a project
// file overrides it; CLI flags override both. Exclude patterns accumulate
// across layers instead of replacing each other, so a global exclusion can
// never be silently lost by a project file.
package config

import (
	"os"
	"path/filepath"

	"github.com/standardbeagle/typofix/internal/suggest"
	"github.com/standardbeagle/typofix/internal/vocab"
)

// FileName is the config file looked up in the home directory and the
// project root.
const FileName = ".typofix.kdl"

// Config is the full runtime configuration.
type Config struct {
	// Root is the absolute workspace root all scans are anchored at.
	Root string

	// MinScore is the rank threshold for member and export suggestions.
	// Path suggestions use the adaptive suggest.PathMinScore instead.
	MinScore float64

	// Languages restricts checking to the named languages. Empty means
	// every supported language.
	Languages []string

	// Include and Exclude are doublestar globs, matched against paths
	// relative to Root. An empty Include means all files of supported
	// languages.
	Include []string
	Exclude []string

	// Ignore lists identifier names that are never flagged, for
	// vocabulary the workspace legitimately uses (vendor globals,
	// generated names).
	Ignore []string

	Watch Watch
	Vocab Vocab
}

// Watch configures the file watcher behind `check --watch`.
type Watch struct {
	// DebounceMs batches filesystem events closer together than this
	// before rechecking.
	DebounceMs int
}

// Vocab configures near-duplicate detection for the vocab report.
type Vocab struct {
	// NearThreshold is the Jaro-Winkler similarity above which two
	// identifiers are reported as likely alternate spellings.
	NearThreshold float64

	// MinLength is the minimum identifier length (in runes) considered
	// by near-duplicate detection. Short names collide constantly.
	MinLength int
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return &Config{
		Root:     cwd,
		MinScore: suggest.DefaultMinScore,
		Exclude:  defaultExclusions(),
		Watch: Watch{
			DebounceMs: 300,
		},
		Vocab: Vocab{
			NearThreshold: vocab.DefaultNearThreshold,
			MinLength:     vocab.DefaultNearMinLength,
		},
	}
}

// LoadFile reads configuration from one explicit file. Naming a file means
// using exactly that file: the global layer is not consulted. The file must
// exist.
func LoadFile(path string) (*Config, error) {
	cfg, err := loadKDLFile(path)
	if err != nil {
		return nil, err
	}

	if abs, err := filepath.Abs(cfg.Root); err == nil {
		cfg.Root = abs
	}

	if err := NewValidator().ValidateAndSetDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithRoot reads configuration for the given project root: the global
// ~/.typofix.kdl as the base when present, the project file layered over
// it, and validated defaults filled in. A missing file at either layer is
// not an error.
func LoadWithRoot(rootDir string) (*Config, error) {
	searchDir := "."
	if rootDir != "" {
		searchDir = rootDir
	}

	var baseConfig *Config
	if homeDir, err := os.UserHomeDir(); err == nil {
		if globalCfg, err := LoadKDL(homeDir); err == nil && globalCfg != nil {
			baseConfig = globalCfg
		}
	}

	projectConfig, err := LoadKDL(searchDir)
	if err != nil {
		return nil, err
	}

	var cfg *Config
	switch {
	case baseConfig != nil && projectConfig != nil:
		cfg = mergeConfigs(baseConfig, projectConfig)
	case projectConfig != nil:
		cfg = projectConfig
	case baseConfig != nil:
		cfg = baseConfig
		cfg.Root = searchDir
	default:
		cfg = Default()
		cfg.Root = searchDir
	}

	if abs, err := filepath.Abs(cfg.Root); err == nil {
		cfg.Root = abs
	}

	if err := NewValidator().ValidateAndSetDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeConfigs layers a project config over a base config. Project values
// win wherever the project file set them; exclusions are unioned so base
// exclusions survive.
func mergeConfigs(base, project *Config) *Config {
	merged := *project

	if len(base.Exclude) > 0 {
		excludeSet := make(map[string]bool, len(base.Exclude)+len(project.Exclude))
		exclude := make([]string, 0, len(base.Exclude)+len(project.Exclude))
		for _, pattern := range append(append([]string{}, base.Exclude...), project.Exclude...) {
			if !excludeSet[pattern] {
				excludeSet[pattern] = true
				exclude = append(exclude, pattern)
			}
		}
		merged.Exclude = exclude
	}

	if len(project.Include) == 0 && len(base.Include) > 0 {
		merged.Include = base.Include
	}
	if len(project.Languages) == 0 && len(base.Languages) > 0 {
		merged.Languages = base.Languages
	}
	if len(base.Ignore) > 0 {
		ignoreSet := make(map[string]bool, len(base.Ignore)+len(project.Ignore))
		var ignore []string
		for _, name := range append(append([]string{}, base.Ignore...), project.Ignore...) {
			if !ignoreSet[name] {
				ignoreSet[name] = true
				ignore = append(ignore, name)
			}
		}
		merged.Ignore = ignore
	}

	return &merged
}

// defaultExclusions are directories and files no one wants typo reports
// from: dependency trees, build output, caches, VCS metadata.
func defaultExclusions() []string {
	return []string{
		// VCS and hidden directories
		"**/.git/**",
		"**/.*/**",

		// Package managers & dependencies
		"**/node_modules/**",
		"**/vendor/**",
		"**/bower_components/**",
		"**/jspm_packages/**",
		"**/venv/**",
		"**/.venv/**",
		"**/site-packages/**",

		// Build artifacts & output
		"**/dist/**",
		"**/build/**",
		"**/out/**",
		"**/target/**",
		"**/bin/**",
		"**/obj/**",
		"**/*.min.js",
		"**/*.min.css",
		"**/*.bundle.js",
		"**/*.chunk.js",

		// Compiled and cache leftovers
		"**/__pycache__/**",
		"**/*.pyc",
		"**/.pytest_cache/**",
		"**/.mypy_cache/**",
		"**/.next/**",
		"**/.nuxt/**",
		"**/.parcel-cache/**",
		"**/.turbo/**",
		"**/coverage/**",

		// Editor temp files
		"**/*.swp",
		"**/*.swo",
		"**/*~",

		// Logs
		"**/logs/**",
		"**/*.log",
	}
}
