// Package pathutil provides utilities for converting between absolute and relative paths.
//
// Architecture Pattern:
// typofix uses absolute paths internally for consistency and to avoid ambiguity.
// However, user-facing output should use relative paths for readability and portability.
// This package provides the conversion layer between internal (absolute) and external (relative) representations.
package pathutil

import (
	"path/filepath"
	"strings"

	"github.com/standardbeagle/typofix/internal/diagnostics"
)

// ToRelative converts an absolute path to relative based on a root directory.
// Falls back to the original path if conversion fails or path is already relative.
//
// Examples:
//   - ToRelative("/home/user/project/src/main.js", "/home/user/project") → "src/main.js"
//   - ToRelative("/other/location/file.js", "/home/user/project") → "/other/location/file.js" (outside root)
//   - ToRelative("src/main.js", "/home/user/project") → "src/main.js" (already relative)
func ToRelative(absPath, rootDir string) string {
	// Handle empty inputs
	if absPath == "" || rootDir == "" {
		return absPath
	}

	// If path is already relative, return as-is
	if !filepath.IsAbs(absPath) {
		return absPath
	}

	// Clean both paths to normalize separators and remove redundant elements
	absPath = filepath.Clean(absPath)
	rootDir = filepath.Clean(rootDir)

	// Try to make relative
	relPath, err := filepath.Rel(rootDir, absPath)
	if err != nil {
		// Conversion failed (e.g., different drives on Windows) - return absolute
		return absPath
	}

	// If the relative path starts with ".." it means the file is outside the root
	// In this case, return the absolute path as it's clearer
	if strings.HasPrefix(relPath, "..") {
		return absPath
	}

	return relPath
}

// ToRelativeDiagnostics converts file paths in a Diagnostic slice from absolute to relative.
// Creates a new slice without modifying the original diagnostics.
//
// This function is designed for use at output boundaries where results are displayed to users:
//   - CLI check output
//   - JSON serialization
//   - MCP server responses
func ToRelativeDiagnostics(ds []diagnostics.Diagnostic, rootDir string) []diagnostics.Diagnostic {
	if len(ds) == 0 {
		return ds
	}

	// Create a copy to avoid modifying the original
	converted := make([]diagnostics.Diagnostic, len(ds))
	copy(converted, ds)

	// Convert paths
	for i := range converted {
		converted[i].File = ToRelative(converted[i].File, rootDir)
	}

	return converted
}

// ToRelativeReport converts all file paths in a report from absolute to relative,
// including the root itself. Returns a new report; the input is left untouched.
func ToRelativeReport(report *diagnostics.Report, rootDir string) *diagnostics.Report {
	if report == nil {
		return nil
	}

	converted := *report
	converted.Diagnostics = ToRelativeDiagnostics(report.Diagnostics, rootDir)
	return &converted
}
