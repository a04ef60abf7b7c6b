// Package mcpserver exposes the transformation engine as a single MCP tool,
// "flagprune.transform", using modelcontextprotocol/go-sdk: one *mcp.Server,
// tools registered with its AddTool method, served over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/flagprune/internal/config"
	"github.com/standardbeagle/flagprune/internal/orchestrator"
	"github.com/standardbeagle/flagprune/internal/version"
)

// Server wraps the MCP protocol server around one Orchestrator.
type Server struct {
	server *mcp.Server
	orch   *orchestrator.Orchestrator
}

// New builds a Server with the "flagprune.transform" tool registered.
func New(orch *orchestrator.Orchestrator) *Server {
	s := &Server{
		orch: orch,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "flagprune-mcp-server",
			Version: version.Version,
		}, nil),
	}
	s.registerTools()
	return s
}

// transformParams is the request shape for the flagprune.transform tool.
type transformParams struct {
	Path       string `json:"path"`
	Source     string `json:"source"`
	ConfigPath string `json:"config_path"`
	DryRun     bool   `json:"dry_run"`
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "flagprune.transform",
		Description: "Remove resolved feature flags from one source file and return the rewritten source plus a summary of what changed.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"path": {
					Type:        "string",
					Description: "File path, used only to select the language profile by extension",
				},
				"source": {
					Type:        "string",
					Description: "Source text to transform",
				},
				"config_path": {
					Type:        "string",
					Description: "Path to the flag configuration file (JSON or .kdl)",
				},
				"dry_run": {
					Type:        "boolean",
					Description: "If true, report changes without expecting the caller to write them anywhere",
				},
			},
			Required: []string{"path", "source", "config_path"},
		},
	}, s.handleTransform)
}

func (s *Server) handleTransform(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params transformParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return errorResult(fmt.Errorf("invalid parameters: %w", err)), nil
	}

	flagConfig, warnings, err := config.LoadConfig(params.ConfigPath)
	if err != nil {
		return errorResult(err), nil
	}

	result := s.orch.Transform(params.Path, []byte(params.Source), flagConfig)

	payload := map[string]any{
		"transformed_source":  result.TransformedSource,
		"has_changes":         result.HasChanges,
		"removed_flags":       mapKeys(result.RemovedFlagNames),
		"removed_imports":     mapKeys(result.RemovedImportURIs),
		"lines_removed":       result.LinesRemoved,
		"warnings":            result.Warnings,
		"config_warnings":     warnings,
		"would_write_in_mode": dryRunLabel(params.DryRun),
	}
	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errorResult(err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(body)}},
	}, nil
}

func dryRunLabel(dryRun bool) string {
	if dryRun {
		return "dry-run"
	}
	return "write"
}

func mapKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}

// Serve runs the server over stdio. flagprune has no need for a
// pprof-over-HTTP side channel, so only the stdio transport is wired up.
func (s *Server) Serve(ctx context.Context) error {
	slog.Info("starting flagprune MCP server (stdio transport)")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// ListenAndServe exists for cmd/flagprune's --serve-mcp flag; flagprune
// speaks MCP over stdio only (bindAddr is accepted for future use and
// logged, not dialed), since the go-sdk's exported surface here offers no
// ready-made network transport to wire it to.
func (s *Server) ListenAndServe(ctx context.Context, bindAddr string) error {
	if bindAddr != "" {
		slog.Info("mcp_bind_address is configured but unused; serving over stdio", "configured_address", bindAddr)
	}
	return s.Serve(ctx)
}
