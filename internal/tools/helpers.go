// Package tools implements the MCP tool handlers exposed by the server.
//
// Each tool is a struct that receives the workspace client via its
// constructor and returns a handler compatible with mcp-go's
// CallToolRequest signature.
//
// Conventions:
// - one tool per struct, Definition() + Handle()
// - expected business conditions (not found, blocked, validation) are
//   returned as tool errors, never as Go errors
// - only infrastructure failures propagate as Go errors
package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/oculairmedia/huly-mcp-server/internal/tracker"
)

// boolArg extracts a boolean argument, returning defaultVal when the
// key is missing or not a bool.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// intArg extracts an integer argument (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// businessError maps the engine's error taxonomy onto tool errors. The
// second return is false for infrastructure failures, which the caller
// propagates as Go errors instead.
func businessError(err error) (*mcp.CallToolResult, bool) {
	var blocked *tracker.BlockedError
	if errors.As(err, &blocked) {
		var b strings.Builder
		fmt.Fprintf(&b, "Deletion of %q is blocked:\n", blocked.Identifier)
		for _, reason := range blocked.Blockers {
			fmt.Fprintf(&b, "- %s\n", reason)
		}
		b.WriteString("\nRetry with `force: true` to override these blockers.")
		return mcp.NewToolResultError(b.String()), true
	}

	var (
		notFound     *tracker.NotFoundError
		validation   *tracker.ValidationError
		invalidField *tracker.InvalidFieldError
		invalidIndex *tracker.InvalidIndexError
	)
	if errors.As(err, &notFound) || errors.As(err, &validation) ||
		errors.As(err, &invalidField) || errors.As(err, &invalidIndex) {
		return mcp.NewToolResultError(err.Error()), true
	}
	return nil, false
}

// dryRunBanner prefixes simulation output.
const dryRunBanner = "**DRY RUN** — no changes were made.\n\n"

// plural picks the right suffix for a count.
func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// warningsSection renders a warnings block, or "" when there are none.
func warningsSection(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n## Warnings\n\n")
	for _, w := range warnings {
		fmt.Fprintf(&b, "- %s\n", w)
	}
	return b.String()
}
