package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
	"github.com/oculairmedia/huly-mcp-server/internal/tracker"
)

// DeleteIssueTool handles the huly_delete_issue MCP tool.
type DeleteIssueTool struct {
	client huly.Client
}

// NewDeleteIssueTool creates a DeleteIssueTool with the given client.
func NewDeleteIssueTool(client huly.Client) *DeleteIssueTool {
	return &DeleteIssueTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *DeleteIssueTool) Definition() mcp.Tool {
	return mcp.NewTool("huly_delete_issue",
		mcp.WithDescription(
			"Delete an issue from a Huly project. By default the whole "+
				"sub-issue tree is deleted with it (cascade). Use dry_run to "+
				"preview the impact, and force to override blockers reported "+
				"by impact analysis.",
		),
		mcp.WithString("issue_identifier",
			mcp.Required(),
			mcp.Description("Issue identifier, e.g. 'PROJ-123'"),
		),
		mcp.WithBoolean("cascade",
			mcp.Description("Delete all sub-issues too. Defaults to true."),
			mcp.DefaultBool(true),
		),
		mcp.WithBoolean("force",
			mcp.Description("Bypass blockers found by impact analysis. Never bypasses 'not found'."),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Simulate the deletion without changing anything."),
		),
	)
}

// Handle processes the huly_delete_issue tool call.
func (t *DeleteIssueTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	identifier := req.GetString("issue_identifier", "")
	if identifier == "" {
		return mcp.NewToolResultError("'issue_identifier' is required"), nil
	}

	result, err := tracker.DeleteIssue(ctx, t.client, identifier, tracker.DeleteIssueOptions{
		Cascade: boolArg(req, "cascade", true),
		Force:   boolArg(req, "force", false),
		DryRun:  boolArg(req, "dry_run", false),
	})
	if err != nil {
		if res, ok := businessError(err); ok {
			return res, nil
		}
		return nil, fmt.Errorf("deleting issue %s: %w", identifier, err)
	}

	var b strings.Builder
	if result.DryRun {
		b.WriteString(dryRunBanner)
		fmt.Fprintf(&b, "# Would Delete Issue\n\n**%s**", identifier)
	} else {
		fmt.Fprintf(&b, "# Issue Deleted\n\n**%s**", identifier)
	}
	if subs := len(result.DeletedIssues) - 1; subs > 0 {
		fmt.Fprintf(&b, " (including %d sub-issue%s)", subs, plural(subs))
	}
	b.WriteString("\n")
	if result.Forced {
		b.WriteString("\n`force` was set; impact blockers were not checked.\n")
	}
	b.WriteString(warningsSection(result.Warnings))

	return mcp.NewToolResultText(b.String()), nil
}
