package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
	"github.com/oculairmedia/huly-mcp-server/internal/tracker"
)

// CreateIssueFromTemplateTool handles the huly_create_issue_from_template
// MCP tool.
type CreateIssueFromTemplateTool struct {
	client huly.Client
}

// NewCreateIssueFromTemplateTool creates the tool with the given client.
func NewCreateIssueFromTemplateTool(client huly.Client) *CreateIssueFromTemplateTool {
	return &CreateIssueFromTemplateTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateIssueFromTemplateTool) Definition() mcp.Tool {
	return mcp.NewTool("huly_create_issue_from_template",
		mcp.WithDescription(
			"Create a concrete issue from a template. Template fields are "+
				"the defaults; overrides win. With include_children, each child "+
				"template becomes a sub-issue of the new issue.",
		),
		mcp.WithString("template_id",
			mcp.Required(),
			mcp.Description("Template document id"),
		),
		mcp.WithObject("overrides",
			mcp.Description("Issue fields overriding the template snapshot, e.g. {\"title\": \"...\", \"priority\": \"Urgent\"}"),
		),
		mcp.WithBoolean("include_children",
			mcp.Description("Also create one sub-issue per child template. Defaults to true."),
			mcp.DefaultBool(true),
		),
	)
}

// Handle processes the huly_create_issue_from_template tool call.
func (t *CreateIssueFromTemplateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templateID := req.GetString("template_id", "")
	if templateID == "" {
		return mcp.NewToolResultError("'template_id' is required"), nil
	}

	var overrides huly.Attrs
	if raw, ok := req.GetArguments()["overrides"].(map[string]any); ok {
		overrides = huly.Attrs(raw)
	}

	result, err := tracker.CreateIssueFromTemplate(ctx, t.client, templateID,
		overrides, boolArg(req, "include_children", true))
	if err != nil {
		if res, ok := businessError(err); ok {
			return res, nil
		}
		return nil, fmt.Errorf("creating issue from template %s: %w", templateID, err)
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Issue Created\n\n**%s** created from template with %d child issue%s.",
		result.Identifier, result.ChildrenCreated, plural(result.ChildrenCreated),
	)), nil
}
