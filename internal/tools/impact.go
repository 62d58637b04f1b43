package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
	"github.com/oculairmedia/huly-mcp-server/internal/tracker"
)

// The two impact tools are read-only companions to the deletion tools:
// same traversal, zero mutation.

// AnalyzeIssueImpactTool handles the huly_analyze_issue_impact MCP tool.
type AnalyzeIssueImpactTool struct {
	client huly.Client
}

// NewAnalyzeIssueImpactTool creates an AnalyzeIssueImpactTool.
func NewAnalyzeIssueImpactTool(client huly.Client) *AnalyzeIssueImpactTool {
	return &AnalyzeIssueImpactTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *AnalyzeIssueImpactTool) Definition() mcp.Tool {
	return mcp.NewTool("huly_analyze_issue_impact",
		mcp.WithDescription(
			"Analyze what deleting an issue would affect: sub-issues, "+
				"comments, attachments, and any blockers. Read-only.",
		),
		mcp.WithString("issue_identifier",
			mcp.Required(),
			mcp.Description("Issue identifier, e.g. 'PROJ-123'"),
		),
	)
}

// Handle processes the huly_analyze_issue_impact tool call.
func (t *AnalyzeIssueImpactTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	identifier := req.GetString("issue_identifier", "")
	if identifier == "" {
		return mcp.NewToolResultError("'issue_identifier' is required"), nil
	}

	impact, err := tracker.AnalyzeIssueImpact(ctx, t.client, identifier)
	if err != nil {
		if res, ok := businessError(err); ok {
			return res, nil
		}
		return nil, fmt.Errorf("analyzing issue %s: %w", identifier, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Impact Analysis: %s\n\n", identifier)
	fmt.Fprintf(&b, "- Sub-issues: %d\n", len(impact.SubIssues))
	fmt.Fprintf(&b, "- Comments: %d\n", impact.Comments)
	fmt.Fprintf(&b, "- Attachments: %d\n", impact.Attachments)
	if len(impact.Blockers) > 0 {
		b.WriteString("\n## Blockers\n\n")
		for _, blocker := range impact.Blockers {
			fmt.Fprintf(&b, "- %s\n", blocker)
		}
		b.WriteString("\nDeletion will be refused unless `force` is set.\n")
	}
	b.WriteString(warningsSection(impact.Warnings))

	return mcp.NewToolResultText(b.String()), nil
}

// AnalyzeProjectImpactTool handles the huly_analyze_project_impact MCP tool.
type AnalyzeProjectImpactTool struct {
	client huly.Client
}

// NewAnalyzeProjectImpactTool creates an AnalyzeProjectImpactTool.
func NewAnalyzeProjectImpactTool(client huly.Client) *AnalyzeProjectImpactTool {
	return &AnalyzeProjectImpactTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *AnalyzeProjectImpactTool) Definition() mcp.Tool {
	return mcp.NewTool("huly_analyze_project_impact",
		mcp.WithDescription(
			"Analyze what deleting a project would affect: issues, "+
				"components, milestones, templates, and any blockers. Read-only.",
		),
		mcp.WithString("project_identifier",
			mcp.Required(),
			mcp.Description("Project code, e.g. 'PROJ'"),
		),
	)
}

// Handle processes the huly_analyze_project_impact tool call.
func (t *AnalyzeProjectImpactTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	identifier := req.GetString("project_identifier", "")
	if identifier == "" {
		return mcp.NewToolResultError("'project_identifier' is required"), nil
	}

	impact, err := tracker.AnalyzeProjectImpact(ctx, t.client, identifier)
	if err != nil {
		if res, ok := businessError(err); ok {
			return res, nil
		}
		return nil, fmt.Errorf("analyzing project %s: %w", identifier, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Impact Analysis: %s\n\n", identifier)
	fmt.Fprintf(&b, "- Issues: %d\n", len(impact.Issues))
	fmt.Fprintf(&b, "- Components: %d\n", len(impact.Components))
	fmt.Fprintf(&b, "- Milestones: %d\n", len(impact.Milestones))
	fmt.Fprintf(&b, "- Templates: %d\n", len(impact.Templates))
	if len(impact.Blockers) > 0 {
		b.WriteString("\n## Blockers\n\n")
		for _, blocker := range impact.Blockers {
			fmt.Fprintf(&b, "- %s\n", blocker)
		}
		b.WriteString("\nDeletion will be refused unless `force` is set. " +
			"Consider huly_archive_project as a reversible alternative.\n")
	}
	b.WriteString(warningsSection(impact.Warnings))

	return mcp.NewToolResultText(b.String()), nil
}
