package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
	"github.com/oculairmedia/huly-mcp-server/internal/tracker"
)

// DeleteComponentTool handles the huly_delete_component MCP tool.
type DeleteComponentTool struct {
	client huly.Client
}

// NewDeleteComponentTool creates a DeleteComponentTool with the given client.
func NewDeleteComponentTool(client huly.Client) *DeleteComponentTool {
	return &DeleteComponentTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *DeleteComponentTool) Definition() mcp.Tool {
	return mcp.NewTool("huly_delete_component",
		mcp.WithDescription(
			"Delete a component from a project. Issues referencing the "+
				"component are detached (the reference is cleared), not deleted.",
		),
		mcp.WithString("project_identifier",
			mcp.Required(),
			mcp.Description("Project code, e.g. 'PROJ'"),
		),
		mcp.WithString("component_label",
			mcp.Required(),
			mcp.Description("Component label, e.g. 'backend'"),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Simulate the deletion without changing anything."),
		),
	)
}

// Handle processes the huly_delete_component tool call.
func (t *DeleteComponentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project := req.GetString("project_identifier", "")
	label := req.GetString("component_label", "")
	if project == "" || label == "" {
		return mcp.NewToolResultError("'project_identifier' and 'component_label' are required"), nil
	}

	result, err := tracker.DeleteComponent(ctx, t.client, project, label, tracker.RefDeleteOptions{
		DryRun: boolArg(req, "dry_run", false),
	})
	if err != nil {
		if res, ok := businessError(err); ok {
			return res, nil
		}
		return nil, fmt.Errorf("deleting component %s: %w", label, err)
	}

	return mcp.NewToolResultText(formatRefDeletion("Component", result)), nil
}

// formatRefDeletion renders a component/milestone deletion result.
func formatRefDeletion(kind string, result *tracker.RefDeleteResult) string {
	verb := "Deleted"
	banner := ""
	if result.DryRun {
		verb = "Would Be Deleted"
		banner = dryRunBanner
	}
	return fmt.Sprintf(
		"%s# %s %q %s\n\n%d issue%s detached (reference cleared, issues kept).",
		banner, kind, result.Label, verb, result.AffectedIssues, plural(result.AffectedIssues),
	)
}
