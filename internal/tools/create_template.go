package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
	"github.com/oculairmedia/huly-mcp-server/internal/tracker"
)

// CreateTemplateTool handles the huly_create_template MCP tool.
type CreateTemplateTool struct {
	client huly.Client
}

// NewCreateTemplateTool creates a CreateTemplateTool with the given client.
func NewCreateTemplateTool(client huly.Client) *CreateTemplateTool {
	return &CreateTemplateTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateTemplateTool) Definition() mcp.Tool {
	return mcp.NewTool("huly_create_template",
		mcp.WithDescription(
			"Create an issue template in a project, optionally with child "+
				"templates. Expanding the template later creates one issue per "+
				"template plus one per child.",
		),
		mcp.WithString("project_identifier",
			mcp.Required(),
			mcp.Description("Project code, e.g. 'PROJ'"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Template title"),
		),
		mcp.WithString("description",
			mcp.Description("Template description"),
		),
		mcp.WithString("priority",
			mcp.Description("Default priority for issues created from this template"),
			mcp.Enum("NoPriority", "Urgent", "High", "Medium", "Low"),
		),
		mcp.WithNumber("estimation",
			mcp.Description("Default estimation in hours"),
		),
		mcp.WithString("assignee",
			mcp.Description("Default assignee email"),
		),
		mcp.WithArray("children",
			mcp.Description("Child templates: objects with title and optional description, priority, estimation, assignee"),
		),
	)
}

// Handle processes the huly_create_template tool call.
func (t *CreateTemplateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project := req.GetString("project_identifier", "")
	if project == "" {
		return mcp.NewToolResultError("'project_identifier' is required"), nil
	}

	data := tracker.TemplateData{
		Title:         req.GetString("title", ""),
		Description:   req.GetString("description", ""),
		Priority:      req.GetString("priority", "NoPriority"),
		AssigneeEmail: req.GetString("assignee", ""),
	}
	if v, ok := req.GetArguments()["estimation"].(float64); ok {
		data.Estimation = v
	}
	if raw, ok := req.GetArguments()["children"].([]any); ok {
		for _, entry := range raw {
			child, ok := entry.(map[string]any)
			if !ok {
				return mcp.NewToolResultError("'children' entries must be objects"), nil
			}
			data.Children = append(data.Children, childFromArgs(child))
		}
	}

	result, err := tracker.CreateTemplate(ctx, t.client, project, data)
	if err != nil {
		if res, ok := businessError(err); ok {
			return res, nil
		}
		return nil, fmt.Errorf("creating template: %w", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Template Created\n\n**%s** (`%s`) with %d child template%s.",
		result.Title, result.TemplateID, result.ChildrenCreated, plural(result.ChildrenCreated),
	)), nil
}

// childFromArgs builds child-template data from a raw argument object.
func childFromArgs(args map[string]any) tracker.TemplateChildData {
	child := tracker.TemplateChildData{}
	if v, ok := args["title"].(string); ok {
		child.Title = v
	}
	if v, ok := args["description"].(string); ok {
		child.Description = v
	}
	if v, ok := args["priority"].(string); ok {
		child.Priority = v
	}
	if v, ok := args["estimation"].(float64); ok {
		child.Estimation = v
	}
	if v, ok := args["assignee"].(string); ok {
		child.AssigneeEmail = v
	}
	return child
}
