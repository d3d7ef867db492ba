package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Global variable to store the CLI binary path
var testBinaryPath string

// TestMain builds the CLI binary once for all tests
func TestMain(m *testing.M) {
	tempBinary := filepath.Join(os.TempDir(), "typofix-test-"+fmt.Sprintf("%d", time.Now().UnixNano()))

	buildCmd := exec.Command("go", "build", "-o", tempBinary, ".")
	var buildOut bytes.Buffer
	buildCmd.Stdout = &buildOut
	buildCmd.Stderr = &buildOut

	if err := buildCmd.Run(); err != nil {
		fmt.Printf("Failed to build CLI for testing: %v\nBuild output: %s\n", err, buildOut.String())
		os.Exit(1)
	}

	testBinaryPath = tempBinary

	code := m.Run()

	os.Remove(testBinaryPath)
	os.Exit(code)
}

// setupTestProject creates a small JS workspace with one member typo and
// one clean file.
func setupTestProject(t *testing.T) string {
	tempDir := t.TempDir()

	testFiles := map[string]string{
		"api.js": `export class Api {
  fetchData(url) { return fetch(url); }
  saveRecord(record) { return record; }
}`,
		"caller.js": `import { Api } from './api';
const api = new Api();
export function loadAll() { return api.fetchData('/all'); }
export function loadBroken() { return api.fetcData('/x'); }`,
		"README.md": `# Test project`,
	}

	for path, content := range testFiles {
		fullPath := filepath.Join(tempDir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0644))
	}

	return tempDir
}

// runCLICommand runs the built binary and returns combined output.
func runCLICommand(args ...string) (string, error) {
	return runCLICommandStdin("", args...)
}

func runCLICommandStdin(stdin string, args ...string) (string, error) {
	if testBinaryPath == "" {
		return "", fmt.Errorf("test binary not built")
	}

	cmd := exec.Command(testBinaryPath, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	return stdout.String() + stderr.String(), err
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func TestCheckCommandFindsTypo(t *testing.T) {
	projectDir := setupTestProject(t)

	output, err := runCLICommand("--root", projectDir, "check")

	assert.Equal(t, 1, exitCode(err), "diagnostics should exit 1, output: %s", output)
	assert.Contains(t, output, "caller.js:")
	assert.Contains(t, output, "fetcData")
	assert.Contains(t, output, "fetchData")
	assert.Contains(t, output, "1 problem found")
}

func TestCheckCommandCleanProject(t *testing.T) {
	tempDir := t.TempDir()
	content := `export function greet(name) { return 'hi ' + name; }`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "lib.js"), []byte(content), 0644))

	output, err := runCLICommand("--root", tempDir, "check")

	require.NoError(t, err, "clean project should exit 0, output: %s", output)
	assert.Contains(t, output, "No problems found")
}

func TestCheckCommandJSONFormat(t *testing.T) {
	projectDir := setupTestProject(t)

	output, err := runCLICommand("--root", projectDir, "check", "--format", "json")
	assert.Equal(t, 1, exitCode(err))

	var report struct {
		FilesScanned int `json:"files_scanned"`
		Diagnostics  []struct {
			File   string `json:"file"`
			Kind   string `json:"kind"`
			Target string `json:"target"`
			Fix    string `json:"fix"`
		} `json:"diagnostics"`
	}
	jsonStart := strings.Index(output, "{")
	require.GreaterOrEqual(t, jsonStart, 0, "expected JSON output, got: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output[jsonStart:]), &report))

	assert.Equal(t, 2, report.FilesScanned)
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, "caller.js", report.Diagnostics[0].File)
	assert.Equal(t, "member", report.Diagnostics[0].Kind)
	assert.Equal(t, "fetchData", report.Diagnostics[0].Fix)
}

func TestCheckCommandScopedPaths(t *testing.T) {
	projectDir := setupTestProject(t)

	// Checking only the clean file reports nothing even though the
	// workspace holds a typo elsewhere.
	output, err := runCLICommand("--root", projectDir, "check", "api.js")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "No problems found")
}

func TestSuggestCommand(t *testing.T) {
	output, err := runCLICommand("suggest", "readFil", "readFile", "readLine", "write")

	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "did you mean:")
	assert.Contains(t, output, "readFile")
	assert.NotContains(t, output, "write (")
}

func TestSuggestCommandStdinCandidates(t *testing.T) {
	output, err := runCLICommandStdin("readFile\nreadLine\n", "suggest", "readFil")

	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "readFile")
}

func TestSuggestCommandJSON(t *testing.T) {
	output, err := runCLICommand("suggest", "--json", "readFil", "readFile")
	require.NoError(t, err)

	var result struct {
		Query       string `json:"query"`
		Suggestions []struct {
			Name  string  `json:"name"`
			Score float64 `json:"score"`
		} `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, "readFil", result.Query)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "readFile", result.Suggestions[0].Name)
	assert.Greater(t, result.Suggestions[0].Score, 0.3)
}

func TestSuggestCommandExportMode(t *testing.T) {
	output, err := runCLICommand("suggest", "--json", "--mode", "export",
		"fetchUserz", "fetchUsers", "__internal", "default")
	require.NoError(t, err)

	var result struct {
		Suggestions []struct {
			Name string `json:"name"`
		} `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "fetchUsers", result.Suggestions[0].Name)
}

func TestSuggestCommandNoMatch(t *testing.T) {
	output, err := runCLICommand("suggest", "zzqq", "readFile")

	require.NoError(t, err)
	assert.Contains(t, output, "no suggestions")
}

func TestSuggestCommandMissingQuery(t *testing.T) {
	output, err := runCLICommand("suggest")

	assert.Error(t, err)
	assert.Contains(t, output, "missing query")
}

func TestVocabCommand(t *testing.T) {
	tempDir := t.TempDir()
	content := `export function recieveMessage() {}
export function receiveMessage() {}
export function sendMessage() {}`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "bus.js"), []byte(content), 0644))

	output, err := runCLICommand("--root", tempDir, "vocab")

	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "distinct names")
	assert.Contains(t, output, "receiveMessage ~ recieveMessage")
}

func TestVocabCommandJSON(t *testing.T) {
	tempDir := t.TempDir()
	content := `export function recieveMessage() {}
export function receiveMessage() {}`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "bus.js"), []byte(content), 0644))

	output, err := runCLICommand("--root", tempDir, "vocab", "--json")
	require.NoError(t, err)

	var summary struct {
		TotalNames     int `json:"total_names"`
		NearDuplicates []struct {
			A string `json:"a"`
			B string `json:"b"`
		} `json:"near_duplicates"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &summary))
	assert.Equal(t, 2, summary.TotalNames)
	require.Len(t, summary.NearDuplicates, 1)
	assert.Equal(t, "receiveMessage", summary.NearDuplicates[0].A)
	assert.Equal(t, "recieveMessage", summary.NearDuplicates[0].B)
}

func TestVersionFlag(t *testing.T) {
	output, err := runCLICommand("--version")

	require.NoError(t, err)
	assert.Contains(t, output, "typofix version")
}

func TestConfigFileDiscovery(t *testing.T) {
	projectDir := setupTestProject(t)

	// An ignore entry for the typo silences the diagnostic.
	configContent := "ignore \"fetcData\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, ".typofix.kdl"), []byte(configContent), 0644))

	output, err := runCLICommand("--root", projectDir, "check")

	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "No problems found")
}
