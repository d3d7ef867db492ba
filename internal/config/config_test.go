package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeConfigs_ExclusionsMerge(t *testing.T) {
	base := &Config{
		Exclude: []string{
			"**/node_modules/**",
			"**/vendor/**",
		},
	}

	project := &Config{
		Exclude: []string{
			"**/dist/**",
			"**/generated/**",
		},
	}

	merged := mergeConfigs(base, project)

	assert.Contains(t, merged.Exclude, "**/node_modules/**")
	assert.Contains(t, merged.Exclude, "**/vendor/**")
	assert.Contains(t, merged.Exclude, "**/dist/**")
	assert.Contains(t, merged.Exclude, "**/generated/**")
	assert.Len(t, merged.Exclude, 4)
}

func TestMergeConfigs_ExclusionsDeduplication(t *testing.T) {
	base := &Config{
		Exclude: []string{"**/node_modules/**", "**/vendor/**"},
	}
	project := &Config{
		Exclude: []string{"**/node_modules/**", "**/dist/**"},
	}

	merged := mergeConfigs(base, project)

	assert.Len(t, merged.Exclude, 3)
}

func TestMergeConfigs_InclusionsProjectOverride(t *testing.T) {
	base := &Config{Include: []string{"src/**"}}
	project := &Config{Include: []string{"app/**", "lib/**"}}

	merged := mergeConfigs(base, project)

	assert.Equal(t, project.Include, merged.Include)
}

func TestMergeConfigs_InclusionsUseBaseIfProjectEmpty(t *testing.T) {
	base := &Config{Include: []string{"src/**"}}
	project := &Config{}

	merged := mergeConfigs(base, project)

	assert.Equal(t, base.Include, merged.Include)
}

func TestMergeConfigs_IgnoreListsUnion(t *testing.T) {
	base := &Config{Ignore: []string{"jQuery", "gtag"}}
	project := &Config{Ignore: []string{"gtag", "dataLayer"}}

	merged := mergeConfigs(base, project)

	assert.Equal(t, []string{"jQuery", "gtag", "dataLayer"}, merged.Ignore)
}

func TestMergeConfigs_ProjectSettingsTakePrecedence(t *testing.T) {
	base := &Config{MinScore: 0.3, Watch: Watch{DebounceMs: 100}}
	project := &Config{MinScore: 0.5, Watch: Watch{DebounceMs: 250}}

	merged := mergeConfigs(base, project)

	assert.Equal(t, 0.5, merged.MinScore)
	assert.Equal(t, 250, merged.Watch.DebounceMs)
}

func TestLoadWithRoot_MergesGlobalAndProjectConfigs(t *testing.T) {
	tmpHome := t.TempDir()
	tmpProject := t.TempDir()

	globalConfig := `
min-score 0.4

exclude {
    "**/workstation-junk/**"
}

ignore "gtag"
`
	err := os.WriteFile(filepath.Join(tmpHome, FileName), []byte(globalConfig), 0644)
	require.NoError(t, err)

	projectConfig := `
min-score 0.5

exclude {
    "**/generated/**"
}

ignore "dataLayer"
`
	err = os.WriteFile(filepath.Join(tmpProject, FileName), []byte(projectConfig), 0644)
	require.NoError(t, err)

	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpHome)
	defer os.Setenv("HOME", originalHome)

	cfg, err := LoadWithRoot(tmpProject)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Contains(t, cfg.Exclude, "**/workstation-junk/**", "global exclusion survives merge")
	assert.Contains(t, cfg.Exclude, "**/generated/**", "project exclusion present")
	assert.Contains(t, cfg.Exclude, "**/node_modules/**", "default exclusions survive merge")
	assert.Equal(t, 0.5, cfg.MinScore, "project min-score overrides global")
	assert.Contains(t, cfg.Ignore, "gtag")
	assert.Contains(t, cfg.Ignore, "dataLayer")
}

func TestLoadWithRoot_ProjectConfigOnly(t *testing.T) {
	tmpProject := t.TempDir()

	projectConfig := `
exclude {
    "**/generated/**"
}
`
	err := os.WriteFile(filepath.Join(tmpProject, FileName), []byte(projectConfig), 0644)
	require.NoError(t, err)

	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", "/nonexistent")
	defer os.Setenv("HOME", originalHome)

	cfg, err := LoadWithRoot(tmpProject)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Contains(t, cfg.Exclude, "**/generated/**")
	assert.Equal(t, filepath.Clean(tmpProject), cfg.Root)
}

func TestLoadWithRoot_DefaultConfigFallback(t *testing.T) {
	tmpProject := t.TempDir()

	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", "/nonexistent")
	defer os.Setenv("HOME", originalHome)

	cfg, err := LoadWithRoot(tmpProject)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.NotEmpty(t, cfg.Exclude, "defaults carry exclusions")
	assert.Empty(t, cfg.Include, "everything of a supported language is in scope by default")
	assert.NotZero(t, cfg.MinScore)
}

func TestLoadWithRoot_RootIsAbsolute(t *testing.T) {
	tmpProject := t.TempDir()

	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", "/nonexistent")
	defer os.Setenv("HOME", originalHome)

	cfg, err := LoadWithRoot(tmpProject)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.Root))
}
