package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
	"github.com/oculairmedia/huly-mcp-server/internal/tracker"
)

// BulkDeleteIssuesTool handles the huly_bulk_delete_issues MCP tool.
type BulkDeleteIssuesTool struct {
	client huly.Client
}

// NewBulkDeleteIssuesTool creates a BulkDeleteIssuesTool with the given client.
func NewBulkDeleteIssuesTool(client huly.Client) *BulkDeleteIssuesTool {
	return &BulkDeleteIssuesTool{client: client}
}

// Definition returns the MCP tool definition for registration.
func (t *BulkDeleteIssuesTool) Definition() mcp.Tool {
	return mcp.NewTool("huly_bulk_delete_issues",
		mcp.WithDescription(
			"Delete a list of issues (each with its sub-issue tree) in "+
				"fixed-size batches. With continue_on_error, failed items are "+
				"recorded and the rest still run; otherwise the first failure "+
				"aborts the remaining items. Already-deleted items are never "+
				"rolled back.",
		),
		mcp.WithArray("issue_identifiers",
			mcp.Required(),
			mcp.Description("Issue identifiers to delete, e.g. ['PROJ-1', 'PROJ-2']"),
		),
		mcp.WithNumber("batch_size",
			mcp.Description("Issues per batch. Defaults to 10."),
		),
		mcp.WithBoolean("continue_on_error",
			mcp.Description("Record failures and keep going instead of aborting."),
		),
		mcp.WithBoolean("force",
			mcp.Description("Bypass blockers found by impact analysis."),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Simulate the deletions without changing anything."),
		),
	)
}

// Handle processes the huly_bulk_delete_issues tool call.
func (t *BulkDeleteIssuesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := req.GetArguments()["issue_identifiers"].([]any)
	if !ok || len(raw) == 0 {
		return mcp.NewToolResultError("'issue_identifiers' must be a non-empty array of strings"), nil
	}
	identifiers := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok || s == "" {
			return mcp.NewToolResultError("'issue_identifiers' must contain only non-empty strings"), nil
		}
		identifiers = append(identifiers, s)
	}

	result, err := tracker.BulkDeleteIssues(ctx, t.client, identifiers, tracker.BulkDeleteOptions{
		BatchSize:       intArg(req, "batch_size", tracker.DefaultBatchSize),
		ContinueOnError: boolArg(req, "continue_on_error", false),
		Force:           boolArg(req, "force", false),
		DryRun:          boolArg(req, "dry_run", false),
	})
	if err != nil {
		if res, ok := businessError(err); ok {
			return res, nil
		}
		return nil, fmt.Errorf("bulk deleting issues: %w", err)
	}

	var b strings.Builder
	if boolArg(req, "dry_run", false) {
		b.WriteString(dryRunBanner)
	}
	fmt.Fprintf(&b, "# Bulk Deletion\n\n")
	fmt.Fprintf(&b, "- Requested: %d\n", result.TotalRequested)
	fmt.Fprintf(&b, "- Succeeded: %d\n", result.SuccessCount)
	fmt.Fprintf(&b, "- Failed: %d\n", result.FailedCount)
	fmt.Fprintf(&b, "- Batches: %d\n", result.Batches)
	if result.FailedCount > 0 {
		b.WriteString("\n## Failures\n\n")
		for _, item := range result.Results {
			if !item.Success {
				fmt.Fprintf(&b, "- %s: %s\n", item.Identifier, item.Error)
			}
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}
