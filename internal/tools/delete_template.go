package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
	"github.com/oculairmedia/huly-mcp-server/internal/tracker"
)

// DeleteTemplateTool handles the huly_delete_template MCP tool.
type DeleteTemplateTool struct {
	client huly.Client
}

// NewDeleteTemplateTool creates a DeleteTemplateTool with the given client.
func NewDeleteTemplateTool(client huly.Client) *DeleteTemplateTool {
	return &DeleteTemplateTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *DeleteTemplateTool) Definition() mcp.Tool {
	return mcp.NewTool("huly_delete_template",
		mcp.WithDescription("Delete a template and all its child templates."),
		mcp.WithString("template_id",
			mcp.Required(),
			mcp.Description("Template document id"),
		),
	)
}

// Handle processes the huly_delete_template tool call.
func (t *DeleteTemplateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templateID := req.GetString("template_id", "")
	if templateID == "" {
		return mcp.NewToolResultError("'template_id' is required"), nil
	}

	result, err := tracker.DeleteTemplate(ctx, t.client, templateID)
	if err != nil {
		if res, ok := businessError(err); ok {
			return res, nil
		}
		return nil, fmt.Errorf("deleting template %s: %w", templateID, err)
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Template Deleted\n\n**%s** removed along with %d child template%s.",
		result.Title, result.DeletedChildren, plural(result.DeletedChildren),
	)), nil
}
