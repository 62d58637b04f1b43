package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
	"github.com/oculairmedia/huly-mcp-server/internal/tracker"
)

// DeleteMilestoneTool handles the huly_delete_milestone MCP tool.
type DeleteMilestoneTool struct {
	client huly.Client
}

// NewDeleteMilestoneTool creates a DeleteMilestoneTool with the given client.
func NewDeleteMilestoneTool(client huly.Client) *DeleteMilestoneTool {
	return &DeleteMilestoneTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *DeleteMilestoneTool) Definition() mcp.Tool {
	return mcp.NewTool("huly_delete_milestone",
		mcp.WithDescription(
			"Delete a milestone from a project. Issues referencing the "+
				"milestone are detached (the reference is cleared), not deleted.",
		),
		mcp.WithString("project_identifier",
			mcp.Required(),
			mcp.Description("Project code, e.g. 'PROJ'"),
		),
		mcp.WithString("milestone_label",
			mcp.Required(),
			mcp.Description("Milestone label, e.g. 'v1.0'"),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Simulate the deletion without changing anything."),
		),
	)
}

// Handle processes the huly_delete_milestone tool call.
func (t *DeleteMilestoneTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project := req.GetString("project_identifier", "")
	label := req.GetString("milestone_label", "")
	if project == "" || label == "" {
		return mcp.NewToolResultError("'project_identifier' and 'milestone_label' are required"), nil
	}

	result, err := tracker.DeleteMilestone(ctx, t.client, project, label, tracker.RefDeleteOptions{
		DryRun: boolArg(req, "dry_run", false),
	})
	if err != nil {
		if res, ok := businessError(err); ok {
			return res, nil
		}
		return nil, fmt.Errorf("deleting milestone %s: %w", label, err)
	}

	return mcp.NewToolResultText(formatRefDeletion("Milestone", result)), nil
}
