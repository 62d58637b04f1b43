package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
	"github.com/oculairmedia/huly-mcp-server/internal/tracker"
)

// ListTemplatesTool handles the huly_list_templates MCP tool.
type ListTemplatesTool struct {
	client huly.Client
}

// NewListTemplatesTool creates a ListTemplatesTool with the given client.
func NewListTemplatesTool(client huly.Client) *ListTemplatesTool {
	return &ListTemplatesTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *ListTemplatesTool) Definition() mcp.Tool {
	return mcp.NewTool("huly_list_templates",
		mcp.WithDescription("List issue templates, optionally scoped to one project."),
		mcp.WithString("project_identifier",
			mcp.Description("Project code to scope to; all projects when omitted"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of templates to return"),
		),
	)
}

// Handle processes the huly_list_templates tool call.
func (t *ListTemplatesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templates, err := tracker.ListTemplates(ctx, t.client,
		req.GetString("project_identifier", ""), intArg(req, "limit", 0))
	if err != nil {
		if res, ok := businessError(err); ok {
			return res, nil
		}
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	return mcp.NewToolResultText(formatTemplateList("Templates", templates)), nil
}

// SearchTemplatesTool handles the huly_search_templates MCP tool.
type SearchTemplatesTool struct {
	client huly.Client
}

// NewSearchTemplatesTool creates a SearchTemplatesTool with the given client.
func NewSearchTemplatesTool(client huly.Client) *SearchTemplatesTool {
	return &SearchTemplatesTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *SearchTemplatesTool) Definition() mcp.Tool {
	return mcp.NewTool("huly_search_templates",
		mcp.WithDescription(
			"Search issue templates by case-insensitive substring over "+
				"title and description, optionally scoped to one project.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Substring to search for"),
		),
		mcp.WithString("project_identifier",
			mcp.Description("Project code to scope to; all projects when omitted"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of matches to return"),
		),
	)
}

// Handle processes the huly_search_templates tool call.
func (t *SearchTemplatesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}
	templates, err := tracker.SearchTemplates(ctx, t.client, query,
		req.GetString("project_identifier", ""), intArg(req, "limit", 0))
	if err != nil {
		if res, ok := businessError(err); ok {
			return res, nil
		}
		return nil, fmt.Errorf("searching templates: %w", err)
	}
	return mcp.NewToolResultText(
		formatTemplateList(fmt.Sprintf("Templates matching %q", query), templates),
	), nil
}

// GetTemplateDetailsTool handles the huly_get_template_details MCP tool.
type GetTemplateDetailsTool struct {
	client huly.Client
}

// NewGetTemplateDetailsTool creates a GetTemplateDetailsTool with the given client.
func NewGetTemplateDetailsTool(client huly.Client) *GetTemplateDetailsTool {
	return &GetTemplateDetailsTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *GetTemplateDetailsTool) Definition() mcp.Tool {
	return mcp.NewTool("huly_get_template_details",
		mcp.WithDescription("Show one template with all its child templates."),
		mcp.WithString("template_id",
			mcp.Required(),
			mcp.Description("Template document id"),
		),
	)
}

// Handle processes the huly_get_template_details tool call.
func (t *GetTemplateDetailsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templateID := req.GetString("template_id", "")
	if templateID == "" {
		return mcp.NewToolResultError("'template_id' is required"), nil
	}

	details, err := tracker.GetTemplateDetails(ctx, t.client, templateID)
	if err != nil {
		if res, ok := businessError(err); ok {
			return res, nil
		}
		return nil, fmt.Errorf("fetching template %s: %w", templateID, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", details.Template.Str("title"))
	if desc := details.Template.Str("description"); desc != "" {
		fmt.Fprintf(&b, "%s\n\n", desc)
	}
	fmt.Fprintf(&b, "- Priority: %s\n", details.Template.Str("priority"))
	fmt.Fprintf(&b, "- Children: %d\n", len(details.Children))
	for i, child := range details.Children {
		fmt.Fprintf(&b, "  %d. %s\n", i, child.Str("title"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

// formatTemplateList renders a heading and one line per template.
func formatTemplateList(heading string, templates []huly.Doc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", heading)
	if len(templates) == 0 {
		b.WriteString("No templates found.\n")
		return b.String()
	}
	for _, tmpl := range templates {
		fmt.Fprintf(&b, "- **%s** (`%s`)\n", tmpl.Str("title"), tmpl.ID())
	}
	return b.String()
}
