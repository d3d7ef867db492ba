package checker

import "strings"

// pathSpecifier converts a language's relative import specifier into the
// slash form the filesystem providers understand. It returns "" for
// specifiers that are not relative imports (bare module names resolve
// through package managers, not the tree) and for languages whose import
// strings never name workspace files.
func pathSpecifier(language, specifier string) string {
	switch language {
	case "javascript", "typescript", "tsx":
		if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") {
			return specifier
		}
		return ""
	case "python":
		return pythonSpecifier(specifier)
	default:
		return ""
	}
}

// pythonSpecifier rewrites a relative dotted module path into slash form:
// ".utils" → "./utils", "..models.user" → "../models/user". Each leading
// dot past the first climbs one directory.
func pythonSpecifier(specifier string) string {
	if !strings.HasPrefix(specifier, ".") {
		return ""
	}
	dots := 0
	for dots < len(specifier) && specifier[dots] == '.' {
		dots++
	}
	rest := strings.ReplaceAll(specifier[dots:], ".", "/")
	if rest == "" {
		// `from . import x` names the package itself; nothing to probe.
		return ""
	}
	if dots == 1 {
		return "./" + rest
	}
	return strings.Repeat("../", dots-1) + rest
}

// displaySpecifier converts a slash-form path suggestion back into the
// language's own import syntax so the suggestion pastes over the original.
// Bare names (manifest-declared roots) stay bare.
func displaySpecifier(language, path string) string {
	if language != "python" {
		return path
	}
	if !strings.HasPrefix(path, "./") && !strings.HasPrefix(path, "../") {
		return path
	}
	ups := 0
	for strings.HasPrefix(path, "../") {
		ups++
		path = path[len("../"):]
	}
	path = strings.TrimPrefix(path, "./")
	return strings.Repeat(".", ups+1) + strings.ReplaceAll(path, "/", ".")
}
