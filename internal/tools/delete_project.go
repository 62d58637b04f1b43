package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
	"github.com/oculairmedia/huly-mcp-server/internal/tracker"
)

// DeleteProjectTool handles the huly_delete_project MCP tool.
type DeleteProjectTool struct {
	client huly.Client
}

// NewDeleteProjectTool creates a DeleteProjectTool with the given client.
func NewDeleteProjectTool(client huly.Client) *DeleteProjectTool {
	return &DeleteProjectTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *DeleteProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("huly_delete_project",
		mcp.WithDescription(
			"Permanently delete a project and everything it owns: issues "+
				"(with their sub-issue trees), components, milestones and "+
				"templates. A project with active issues is blocked unless "+
				"force is set; consider huly_archive_project as a reversible "+
				"alternative.",
		),
		mcp.WithString("project_identifier",
			mcp.Required(),
			mcp.Description("Project code, e.g. 'PROJ'"),
		),
		mcp.WithBoolean("force",
			mcp.Description("Bypass blockers found by impact analysis."),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Simulate the deletion without changing anything."),
		),
	)
}

// Handle processes the huly_delete_project tool call.
func (t *DeleteProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	identifier := req.GetString("project_identifier", "")
	if identifier == "" {
		return mcp.NewToolResultError("'project_identifier' is required"), nil
	}

	result, err := tracker.DeleteProject(ctx, t.client, identifier, tracker.DeleteProjectOptions{
		Force:  boolArg(req, "force", false),
		DryRun: boolArg(req, "dry_run", false),
	})
	if err != nil {
		if res, ok := businessError(err); ok {
			return res, nil
		}
		return nil, fmt.Errorf("deleting project %s: %w", identifier, err)
	}

	var b strings.Builder
	if result.DryRun {
		b.WriteString(dryRunBanner)
		fmt.Fprintf(&b, "# Would Delete Project %s\n\n", identifier)
	} else {
		fmt.Fprintf(&b, "# Project %s Deleted\n\n", identifier)
	}
	fmt.Fprintf(&b, "- Issues: %d\n", result.Deleted.Issues)
	fmt.Fprintf(&b, "- Components: %d\n", result.Deleted.Components)
	fmt.Fprintf(&b, "- Milestones: %d\n", result.Deleted.Milestones)
	fmt.Fprintf(&b, "- Templates: %d\n", result.Deleted.Templates)

	return mcp.NewToolResultText(b.String()), nil
}
