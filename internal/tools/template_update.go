package tools

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
	"github.com/oculairmedia/huly-mcp-server/internal/tracker"
)

// UpdateTemplateTool handles the huly_update_template MCP tool.
type UpdateTemplateTool struct {
	client huly.Client
}

// NewUpdateTemplateTool creates an UpdateTemplateTool with the given client.
func NewUpdateTemplateTool(client huly.Client) *UpdateTemplateTool {
	return &UpdateTemplateTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *UpdateTemplateTool) Definition() mcp.Tool {
	return mcp.NewTool("huly_update_template",
		mcp.WithDescription(
			"Update a single field on a template. Only title, description, "+
				"priority, estimation, component, milestone and assignee can "+
				"be changed.",
		),
		mcp.WithString("template_id",
			mcp.Required(),
			mcp.Description("Template document id"),
		),
		mcp.WithString("field",
			mcp.Required(),
			mcp.Description("Field to update"),
			mcp.Enum("title", "description", "priority", "estimation", "component", "milestone", "assignee"),
		),
		mcp.WithString("value",
			mcp.Required(),
			mcp.Description("New value (a number for estimation)"),
		),
	)
}

// Handle processes the huly_update_template tool call.
func (t *UpdateTemplateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templateID := req.GetString("template_id", "")
	field := req.GetString("field", "")
	if templateID == "" || field == "" {
		return mcp.NewToolResultError("'template_id' and 'field' are required"), nil
	}
	value, ok := req.GetArguments()["value"]
	if !ok {
		return mcp.NewToolResultError("'value' is required"), nil
	}
	// The schema carries value as a string; numeric fields need the
	// number back before validation.
	if field == "estimation" {
		if s, isStr := value.(string); isStr {
			n, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return mcp.NewToolResultError("'value' must be a number for estimation"), nil
			}
			value = n
		}
	}

	result, err := tracker.UpdateTemplate(ctx, t.client, templateID, field, value)
	if err != nil {
		if res, ok := businessError(err); ok {
			return res, nil
		}
		return nil, fmt.Errorf("updating template %s: %w", templateID, err)
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Template Updated\n\nField **%s** changed on `%s`.", result.Field, result.TemplateID,
	)), nil
}

// AddChildTemplateTool handles the huly_add_child_template MCP tool.
type AddChildTemplateTool struct {
	client huly.Client
}

// NewAddChildTemplateTool creates an AddChildTemplateTool with the given client.
func NewAddChildTemplateTool(client huly.Client) *AddChildTemplateTool {
	return &AddChildTemplateTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *AddChildTemplateTool) Definition() mcp.Tool {
	return mcp.NewTool("huly_add_child_template",
		mcp.WithDescription("Append a child template to an existing template."),
		mcp.WithString("template_id",
			mcp.Required(),
			mcp.Description("Parent template document id"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Child template title"),
		),
		mcp.WithString("description",
			mcp.Description("Child template description"),
		),
		mcp.WithString("priority",
			mcp.Description("Child priority"),
			mcp.Enum("NoPriority", "Urgent", "High", "Medium", "Low"),
		),
		mcp.WithNumber("estimation",
			mcp.Description("Child estimation in hours"),
		),
		mcp.WithString("assignee",
			mcp.Description("Child assignee email"),
		),
	)
}

// Handle processes the huly_add_child_template tool call.
func (t *AddChildTemplateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templateID := req.GetString("template_id", "")
	if templateID == "" {
		return mcp.NewToolResultError("'template_id' is required"), nil
	}

	child := childFromArgs(req.GetArguments())
	result, err := tracker.AddChildTemplate(ctx, t.client, templateID, child)
	if err != nil {
		if res, ok := businessError(err); ok {
			return res, nil
		}
		return nil, fmt.Errorf("adding child template: %w", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Child Template Added\n\n**%s** appended; template now has %d child%s.",
		result.ChildTitle, result.Children, pluralChildren(result.Children),
	)), nil
}

// RemoveChildTemplateTool handles the huly_remove_child_template MCP tool.
type RemoveChildTemplateTool struct {
	client huly.Client
}

// NewRemoveChildTemplateTool creates a RemoveChildTemplateTool with the given client.
func NewRemoveChildTemplateTool(client huly.Client) *RemoveChildTemplateTool {
	return &RemoveChildTemplateTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *RemoveChildTemplateTool) Definition() mcp.Tool {
	return mcp.NewTool("huly_remove_child_template",
		mcp.WithDescription(
			"Remove one child template by its position in the template's "+
				"child list (zero-based, as shown by huly_get_template_details).",
		),
		mcp.WithString("template_id",
			mcp.Required(),
			mcp.Description("Parent template document id"),
		),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Zero-based child position"),
		),
	)
}

// Handle processes the huly_remove_child_template tool call.
func (t *RemoveChildTemplateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templateID := req.GetString("template_id", "")
	if templateID == "" {
		return mcp.NewToolResultError("'template_id' is required"), nil
	}

	result, err := tracker.RemoveChildTemplate(ctx, t.client, templateID, intArg(req, "index", -1))
	if err != nil {
		if res, ok := businessError(err); ok {
			return res, nil
		}
		return nil, fmt.Errorf("removing child template: %w", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Child Template Removed\n\n**%s** removed; template now has %d child%s.",
		result.ChildTitle, result.Children, pluralChildren(result.Children),
	)), nil
}

// pluralChildren: "child" / "children".
func pluralChildren(n int) string {
	if n == 1 {
		return ""
	}
	return "ren"
}
