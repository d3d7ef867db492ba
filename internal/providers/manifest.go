package providers

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// manifestCandidates collects path roots declared in package manifests
// between dir and the workspace root (inclusive): package.json entry points
// and export subpaths, tsconfig path aliases, Cargo workspace members, and
// poetry package includes. Unreadable or malformed manifests contribute
// nothing — a broken package.json is not this tool's diagnostic to make.
func manifestCandidates(root, dir string) []string {
	var out []string
	for d := dir; ; d = filepath.Dir(d) {
		out = append(out, packageJSONRoots(filepath.Join(d, "package.json"))...)
		out = append(out, tsconfigRoots(filepath.Join(d, "tsconfig.json"))...)
		out = append(out, cargoRoots(filepath.Join(d, "Cargo.toml"))...)
		out = append(out, pyprojectRoots(filepath.Join(d, "pyproject.toml"))...)
		if d == root || d == filepath.Dir(d) {
			break
		}
	}
	return out
}

func packageJSONRoots(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var pkg map[string]interface{}
	if json.Unmarshal(data, &pkg) != nil {
		return nil
	}

	var roots []string
	if main, ok := pkg["main"].(string); ok && main != "" {
		roots = append(roots, main)
	}
	switch exports := pkg["exports"].(type) {
	case string:
		roots = append(roots, exports)
	case map[string]interface{}:
		for key := range exports {
			// Subpath exports are specifiers; condition keys ("import",
			// "require") and the bare "." are not worth suggesting.
			if strings.HasPrefix(key, "./") {
				roots = append(roots, key)
			}
		}
	}
	return roots
}

func tsconfigRoots(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var tsconfig map[string]interface{}
	if json.Unmarshal(data, &tsconfig) != nil {
		return nil
	}

	opts, ok := tsconfig["compilerOptions"].(map[string]interface{})
	if !ok {
		return nil
	}
	paths, ok := opts["paths"].(map[string]interface{})
	if !ok {
		return nil
	}
	var roots []string
	for alias := range paths {
		roots = append(roots, strings.TrimSuffix(alias, "/*"))
	}
	return roots
}

func cargoRoots(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var cargo map[string]interface{}
	if toml.Unmarshal(data, &cargo) != nil {
		return nil
	}

	var roots []string
	if workspace, ok := cargo["workspace"].(map[string]interface{}); ok {
		if members, ok := workspace["members"].([]interface{}); ok {
			for _, member := range members {
				// Glob members ("crates/*") name a pattern, not a path.
				if s, ok := member.(string); ok && s != "" && !strings.ContainsAny(s, "*?[") {
					roots = append(roots, s)
				}
			}
		}
	}
	if lib, ok := cargo["lib"].(map[string]interface{}); ok {
		if libPath, ok := lib["path"].(string); ok && libPath != "" {
			roots = append(roots, libPath)
		}
	}
	return roots
}

func pyprojectRoots(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var pyproject map[string]interface{}
	if toml.Unmarshal(data, &pyproject) != nil {
		return nil
	}

	tool, ok := pyproject["tool"].(map[string]interface{})
	if !ok {
		return nil
	}
	poetry, ok := tool["poetry"].(map[string]interface{})
	if !ok {
		return nil
	}
	packages, ok := poetry["packages"].([]interface{})
	if !ok {
		return nil
	}
	var roots []string
	for _, pkg := range packages {
		entry, ok := pkg.(map[string]interface{})
		if !ok {
			continue
		}
		if include, ok := entry["include"].(string); ok && include != "" {
			roots = append(roots, include)
		}
	}
	return roots
}
