package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	xerrors "github.com/standardbeagle/typofix/internal/errors"
)

// LoadKDL reads .typofix.kdl from dir. A missing file returns (nil, nil);
// callers fall back to the next layer.
func LoadKDL(dir string) (*Config, error) {
	kdlPath := filepath.Join(dir, FileName)

	if _, err := os.Stat(kdlPath); os.IsNotExist(err) {
		return nil, nil
	}

	return loadKDLFile(kdlPath)
}

// loadKDLFile reads and parses one config file, anchoring the root at the
// directory holding it unless the file named one itself.
func loadKDLFile(kdlPath string) (*Config, error) {
	content, err := os.ReadFile(kdlPath)
	if err != nil {
		return nil, xerrors.NewConfigError("", "", err).WithFile(kdlPath)
	}

	cfg, err := parseKDL(string(content))
	if err != nil {
		var cerr *xerrors.ConfigError
		if errors.As(err, &cerr) {
			return nil, cerr.WithFile(kdlPath)
		}
		return nil, xerrors.NewConfigError("", "", err).WithFile(kdlPath)
	}

	if cfg.Root == "" || cfg.Root == "." {
		cfg.Root = filepath.Dir(kdlPath)
	} else if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(kdlPath), cfg.Root)
	}
	cfg.Root = filepath.Clean(cfg.Root)

	return cfg, nil
}

// parseKDL builds a Config from KDL text, starting from the defaults so a
// sparse file only overrides what it names. Root stays empty unless a root
// node sets it; loadKDLFile anchors it afterwards.
func parseKDL(content string) (*Config, error) {
	cfg := Default()
	cfg.Root = ""

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "root":
			if s, ok := firstStringArg(n); ok {
				cfg.Root = s
			}
		case "min-score":
			if v, ok := firstFloatArg(n); ok {
				cfg.MinScore = v
			}
		case "languages":
			cfg.Languages = collectStringArgs(n)
		case "include":
			cfg.Include = append(cfg.Include, collectStringArgs(n)...)
		case "exclude":
			// Extends rather than replaces the defaults; nobody wants
			// node_modules back because they excluded one extra dir.
			cfg.Exclude = append(cfg.Exclude, collectStringArgs(n)...)
		case "ignore":
			cfg.Ignore = append(cfg.Ignore, collectStringArgs(n)...)
		case "watch":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "debounce-ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.Watch.DebounceMs = v
					}
				}
			}
		case "vocab":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "near-threshold":
					if v, ok := firstFloatArg(cn); ok {
						cfg.Vocab.NearThreshold = v
					}
				case "min-length":
					if v, ok := firstIntArg(cn); ok {
						cfg.Vocab.MinLength = v
					}
				}
			}
		}
	}

	return cfg, nil
}

// Helpers over the kdl-go document model.

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// collectStringArgs gathers the string values of a node, accepting both the
// inline form (`ignore "jQuery" "lodash"`) and the block form
// (`ignore { "jQuery"; "lodash" }`) where each child node's name is the
// string value.
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}
