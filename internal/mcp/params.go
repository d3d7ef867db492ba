package mcp

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// UnknownField is a request parameter outside a tool's schema, kept with its
// value so the warning can echo what was ignored.
type UnknownField struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// ParameterAlias maps a legacy or misremembered parameter name onto the
// schema name. An empty To drops the parameter with a warning.
type ParameterAlias struct {
	From   string
	To     string
	Tool   string // empty means applies to all tools
	Reason string
}

var commonAliases = []ParameterAlias{
	{"minScore", "min_score", "suggest_corrections", "use snake_case 'min_score'"},
	{"min-score", "min_score", "suggest_corrections", "use snake_case 'min_score'"},
	{"maxResults", "", "suggest_corrections", "the suggestion count is fixed at 5"},
	{"max_results", "", "suggest_corrections", "the suggestion count is fixed at 5"},
	{"file", "path", "check_path", "use 'path'"},
	{"file_path", "path", "check_path", "use 'path'"},
	{"path", "file", "list_exports", "use 'file'"},
	{"file_path", "file", "list_exports", "use 'file'"},
	{"from_file", "from", "suggest_paths", "use 'from'"},
	{"source", "from", "suggest_paths", "use 'from'"},
	{"import", "specifier", "suggest_paths", "use 'specifier'"},
}

// normalizeParameters renames aliased parameters and returns warnings for
// every rename or drop it performed.
func normalizeParameters(rawJSON json.RawMessage, tool string) (json.RawMessage, []string, error) {
	if len(rawJSON) == 0 {
		return json.RawMessage("{}"), nil, nil
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(rawJSON, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to parse parameters: %w", err)
	}
	if len(raw) == 0 {
		return rawJSON, nil, nil
	}

	// Sorted keys keep the warning order stable across runs.
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var warnings []string
	normalized := make(map[string]interface{}, len(raw))

	for _, key := range keys {
		value := raw[key]
		normalizedKey := key
		dropped := false

		for _, alias := range commonAliases {
			if alias.Tool != tool && alias.Tool != "" {
				continue
			}
			if !strings.EqualFold(key, alias.From) {
				continue
			}
			if alias.To == "" {
				warnings = append(warnings, fmt.Sprintf("parameter %q is not supported: %s", key, alias.Reason))
				dropped = true
			} else {
				normalizedKey = alias.To
				warnings = append(warnings, fmt.Sprintf("parameter %q is deprecated, use %q instead", key, alias.To))
			}
			break
		}

		if !dropped {
			normalized[normalizedKey] = value
		}
	}

	result, err := json.Marshal(normalized)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal normalized parameters: %w", err)
	}
	return result, warnings, nil
}

// collectUnknownFields parses raw JSON into a map, capturing any fields that
// aren't part of the provided known field set.
func collectUnknownFields(data []byte, known map[string]struct{}) (map[string]json.RawMessage, []UnknownField, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var warnings []UnknownField
	for _, key := range keys {
		if _, ok := known[key]; !ok {
			warnings = append(warnings, decodeUnknownField(key, raw[key]))
		}
	}
	return raw, warnings, nil
}

func decodeUnknownField(name string, data json.RawMessage) UnknownField {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		value = string(data)
	}
	return UnknownField{Name: name, Value: value}
}

// mergeWarnings folds alias warnings and unknown-field notices into the
// human-readable warning list a response carries.
func mergeWarnings(aliasWarnings []string, unknown []UnknownField) []string {
	out := append([]string{}, aliasWarnings...)
	for _, f := range unknown {
		out = append(out, fmt.Sprintf("unknown parameter %q ignored", f.Name))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SuggestCorrectionsParams for the suggest_corrections tool
type SuggestCorrectionsParams struct {
	Query      string   `json:"query"`
	Candidates []string `json:"candidates,omitempty"`
	Mode       string   `json:"mode,omitempty"`
	MinScore   float64  `json:"min_score,omitempty"`

	Warnings []UnknownField `json:"-"`
}

// UnmarshalJSON for SuggestCorrectionsParams with unknown field tracking
func (p *SuggestCorrectionsParams) UnmarshalJSON(data []byte) error {
	type Alias SuggestCorrectionsParams
	knownFields := map[string]struct{}{
		"query": {}, "candidates": {}, "mode": {}, "min_score": {},
	}
	_, warnings, err := collectUnknownFields(data, knownFields)
	if err != nil {
		return err
	}
	var alias Alias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*p = SuggestCorrectionsParams(alias)
	p.Warnings = warnings
	return nil
}

// CheckPathParams for the check_path tool
type CheckPathParams struct {
	Path string `json:"path"`

	Warnings []UnknownField `json:"-"`
}

// UnmarshalJSON for CheckPathParams with unknown field tracking
func (p *CheckPathParams) UnmarshalJSON(data []byte) error {
	type Alias CheckPathParams
	knownFields := map[string]struct{}{"path": {}}
	_, warnings, err := collectUnknownFields(data, knownFields)
	if err != nil {
		return err
	}
	var alias Alias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*p = CheckPathParams(alias)
	p.Warnings = warnings
	return nil
}

// ListExportsParams for the list_exports tool
type ListExportsParams struct {
	File string `json:"file"`

	Warnings []UnknownField `json:"-"`
}

// UnmarshalJSON for ListExportsParams with unknown field tracking
func (p *ListExportsParams) UnmarshalJSON(data []byte) error {
	type Alias ListExportsParams
	knownFields := map[string]struct{}{"file": {}}
	_, warnings, err := collectUnknownFields(data, knownFields)
	if err != nil {
		return err
	}
	var alias Alias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*p = ListExportsParams(alias)
	p.Warnings = warnings
	return nil
}

// SuggestPathsParams for the suggest_paths tool
type SuggestPathsParams struct {
	From      string `json:"from"`
	Specifier string `json:"specifier"`

	Warnings []UnknownField `json:"-"`
}

// UnmarshalJSON for SuggestPathsParams with unknown field tracking
func (p *SuggestPathsParams) UnmarshalJSON(data []byte) error {
	type Alias SuggestPathsParams
	knownFields := map[string]struct{}{"from": {}, "specifier": {}}
	_, warnings, err := collectUnknownFields(data, knownFields)
	if err != nil {
		return err
	}
	var alias Alias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*p = SuggestPathsParams(alias)
	p.Warnings = warnings
	return nil
}
