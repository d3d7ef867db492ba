// Package mcp serves the typo diagnosis tools over the Model Context
// Protocol on stdio. Tool errors ride inside results with IsError set;
// stdout belongs to the protocol, so all logging goes through the debug
// writer.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/typofix/internal/checker"
	"github.com/standardbeagle/typofix/internal/config"
	"github.com/standardbeagle/typofix/internal/debug"
	"github.com/standardbeagle/typofix/internal/diagnostics"
	"github.com/standardbeagle/typofix/internal/suggest"
	"github.com/standardbeagle/typofix/internal/version"
	"github.com/standardbeagle/typofix/pkg/pathutil"
)

// Server exposes the checker as MCP tools.
type Server struct {
	cfg     *config.Config
	checker *checker.Checker
	server  *mcp.Server
}

// NewServer builds the MCP server for the configured workspace.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg:     cfg,
		checker: checker.New(cfg),
	}
	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    "typofix-mcp-server",
		Version: version.Version,
	}, nil)
	s.registerTools()
	return s
}

// Run serves requests on stdio until ctx is canceled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	debug.LogMCP("%s (build %s) serving on stdio, root %s\n",
		version.FullInfo(), version.BuildID(), s.cfg.Root)
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// registerTools declares the tool surface. Schemas mark only the truly
// required fields; everything else defaults server-side.
func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "suggest_corrections",
		Description: "Rank candidate identifiers as corrections for a misspelled name. Returns up to 5 suggestions with confidence scores in [0,1].",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"query": {
					Type:        "string",
					Description: "The misspelled identifier",
				},
				"candidates": {
					Type:        "array",
					Items:       &jsonschema.Schema{Type: "string"},
					Description: "Candidate names to rank",
				},
				"mode": {
					Type:        "string",
					Description: "Admissibility mode: 'standard' (default) or 'export' (hides __internal names and the 'default' binding)",
				},
				"min_score": {
					Type:        "number",
					Description: "Score threshold; omit or 0 for the default 0.3",
				},
			},
			Required: []string{"query"},
		},
	}, s.handleSuggestCorrections)

	s.server.AddTool(&mcp.Tool{
		Name:        "check_path",
		Description: "Scan one file or directory for identifier typos: unknown member accesses, misspelled named imports, and broken relative import paths. Candidate vocabulary comes from the whole workspace.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"path": {
					Type:        "string",
					Description: "File or directory to check, absolute or relative to the workspace root",
				},
			},
			Required: []string{"path"},
		},
	}, s.handleCheckPath)

	s.server.AddTool(&mcp.Tool{
		Name:        "list_exports",
		Description: "List the exported names of one source file, filtered to names worth suggesting (private and internal names are hidden).",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"file": {
					Type:        "string",
					Description: "Source file, absolute or relative to the workspace root",
				},
			},
			Required: []string{"file"},
		},
	}, s.handleListExports)

	s.server.AddTool(&mcp.Tool{
		Name:        "suggest_paths",
		Description: "Rank existing files, directories, and manifest-declared roots as corrections for a broken relative import specifier.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"from": {
					Type:        "string",
					Description: "The importing file the specifier is relative to",
				},
				"specifier": {
					Type:        "string",
					Description: "The import specifier as written (e.g. './utls' or '.utls' for Python)",
				},
			},
			Required: []string{"from", "specifier"},
		},
	}, s.handleSuggestPaths)
}

// SuggestResponse is the payload for suggest_corrections and suggest_paths.
type SuggestResponse struct {
	Query       string               `json:"query"`
	Mode        string               `json:"mode,omitempty"`
	Suggestions []suggest.Suggestion `json:"suggestions"`
	Warnings    []string             `json:"warnings,omitempty"`
}

// CheckResponse is the payload for check_path.
type CheckResponse struct {
	*diagnostics.Report
	Warnings []string `json:"warnings,omitempty"`
}

// ExportsResponse is the payload for list_exports.
type ExportsResponse struct {
	File     string   `json:"file"`
	Exports  []string `json:"exports"`
	Warnings []string `json:"warnings,omitempty"`
}

func (s *Server) handleSuggestCorrections(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	normalized, aliasWarnings, err := normalizeParameters(req.Params.Arguments, "suggest_corrections")
	if err != nil {
		return createErrorResponse("suggest_corrections", fmt.Errorf("invalid parameters: %w", err))
	}
	var params SuggestCorrectionsParams
	if err := json.Unmarshal(normalized, &params); err != nil {
		return createErrorResponse("suggest_corrections", fmt.Errorf("invalid parameters: %w", err))
	}
	if params.Query == "" {
		return createErrorResponse("suggest_corrections", errors.New("query is required"))
	}

	mode := suggest.ModeStandard
	if params.Mode != "" {
		mode = suggest.Mode(params.Mode)
		if !mode.Valid() {
			return createErrorResponse("suggest_corrections",
				fmt.Errorf("unknown mode %q (use %q or %q)", params.Mode, suggest.ModeStandard, suggest.ModeExport))
		}
	}

	pool := params.Candidates
	if mode == suggest.ModeExport {
		filtered := make([]string, 0, len(pool))
		for _, c := range pool {
			if suggest.IsAdmissible(c, params.Query, suggest.ModeExport) {
				filtered = append(filtered, c)
			}
		}
		pool = filtered
	}

	ranked := suggest.Rank(params.Query, pool, params.MinScore)
	if ranked == nil {
		ranked = []suggest.Suggestion{}
	}
	debug.LogMCP("suggest_corrections %q: %d candidates, %d suggestions\n", params.Query, len(params.Candidates), len(ranked))

	return createJSONResponse(SuggestResponse{
		Query:       params.Query,
		Mode:        string(mode),
		Suggestions: ranked,
		Warnings:    mergeWarnings(aliasWarnings, params.Warnings),
	})
}

func (s *Server) handleCheckPath(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	normalized, aliasWarnings, err := normalizeParameters(req.Params.Arguments, "check_path")
	if err != nil {
		return createErrorResponse("check_path", fmt.Errorf("invalid parameters: %w", err))
	}
	var params CheckPathParams
	if err := json.Unmarshal(normalized, &params); err != nil {
		return createErrorResponse("check_path", fmt.Errorf("invalid parameters: %w", err))
	}
	if params.Path == "" {
		return createErrorResponse("check_path", errors.New("path is required"))
	}

	report, err := s.checker.CheckPaths(ctx, []string{params.Path})
	if err != nil {
		return createErrorResponse("check_path", err)
	}
	debug.LogMCP("check_path %s: %d files, %d diagnostics\n", params.Path, report.FilesScanned, len(report.Diagnostics))

	return createJSONResponse(CheckResponse{
		Report:   pathutil.ToRelativeReport(report, s.cfg.Root),
		Warnings: mergeWarnings(aliasWarnings, params.Warnings),
	})
}

func (s *Server) handleListExports(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	normalized, aliasWarnings, err := normalizeParameters(req.Params.Arguments, "list_exports")
	if err != nil {
		return createErrorResponse("list_exports", fmt.Errorf("invalid parameters: %w", err))
	}
	var params ListExportsParams
	if err := json.Unmarshal(normalized, &params); err != nil {
		return createErrorResponse("list_exports", fmt.Errorf("invalid parameters: %w", err))
	}
	if params.File == "" {
		return createErrorResponse("list_exports", errors.New("file is required"))
	}

	names, err := s.checker.ListExports(params.File)
	if err != nil {
		return createErrorResponse("list_exports", err)
	}
	if names == nil {
		names = []string{}
	}

	return createJSONResponse(ExportsResponse{
		File:     params.File,
		Exports:  names,
		Warnings: mergeWarnings(aliasWarnings, params.Warnings),
	})
}

func (s *Server) handleSuggestPaths(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	normalized, aliasWarnings, err := normalizeParameters(req.Params.Arguments, "suggest_paths")
	if err != nil {
		return createErrorResponse("suggest_paths", fmt.Errorf("invalid parameters: %w", err))
	}
	var params SuggestPathsParams
	if err := json.Unmarshal(normalized, &params); err != nil {
		return createErrorResponse("suggest_paths", fmt.Errorf("invalid parameters: %w", err))
	}
	if params.From == "" {
		return createErrorResponse("suggest_paths", errors.New("from is required"))
	}
	if params.Specifier == "" {
		return createErrorResponse("suggest_paths", errors.New("specifier is required"))
	}

	sugs, err := s.checker.SuggestPaths(params.From, params.Specifier)
	if err != nil {
		return createErrorResponse("suggest_paths", err)
	}
	if sugs == nil {
		sugs = []suggest.Suggestion{}
	}
	debug.LogMCP("suggest_paths %q from %s: %d suggestions\n", params.Specifier, params.From, len(sugs))

	return createJSONResponse(SuggestResponse{
		Query:       params.Specifier,
		Suggestions: sugs,
		Warnings:    mergeWarnings(aliasWarnings, params.Warnings),
	})
}
