package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
	"github.com/oculairmedia/huly-mcp-server/internal/tracker"
)

// ArchiveProjectTool handles the huly_archive_project MCP tool.
type ArchiveProjectTool struct {
	client huly.Client
}

// NewArchiveProjectTool creates an ArchiveProjectTool with the given client.
func NewArchiveProjectTool(client huly.Client) *ArchiveProjectTool {
	return &ArchiveProjectTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *ArchiveProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("huly_archive_project",
		mcp.WithDescription(
			"Archive a project (soft delete). The project and its contents "+
				"are hidden but kept; nothing is removed.",
		),
		mcp.WithString("project_identifier",
			mcp.Required(),
			mcp.Description("Project code, e.g. 'PROJ'"),
		),
	)
}

// Handle processes the huly_archive_project tool call.
func (t *ArchiveProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	identifier := req.GetString("project_identifier", "")
	if identifier == "" {
		return mcp.NewToolResultError("'project_identifier' is required"), nil
	}

	result, err := tracker.ArchiveProject(ctx, t.client, identifier)
	if err != nil {
		if res, ok := businessError(err); ok {
			return res, nil
		}
		return nil, fmt.Errorf("archiving project %s: %w", identifier, err)
	}

	// Already archived is a normal outcome, reported as plain text.
	if !result.Success {
		return mcp.NewToolResultText(result.Message), nil
	}
	return mcp.NewToolResultText(
		fmt.Sprintf("# Project %s Archived\n\nThe project is hidden but all data is retained.", identifier),
	), nil
}
