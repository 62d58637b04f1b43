package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
)

// --- Test helpers ---

// callReq builds a tool request with the given arguments.
func callReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// getResultText extracts the text content from a CallToolResult.
func getResultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// isErrorResult checks if the result is a tool error.
func isErrorResult(result *mcp.CallToolResult) bool {
	return result != nil && result.IsError
}

// newWorkspace seeds an in-memory workspace with project PROJ holding
// issue PROJ-1 (with sub-issue PROJ-2), component "backend", milestone
// "v1.0" and one template.
func newWorkspace(t *testing.T) *huly.MemClient {
	t.Helper()
	mc := huly.NewMemClient()
	mc.Put(huly.ClassProject, "proj", huly.Doc{
		"space": "core:space:Spaces", "identifier": "PROJ", "name": "PROJ",
		"archived": false, "sequence": 2,
	})
	mc.Put(huly.ClassIssue, "i1", huly.Doc{
		"space": "proj", "identifier": "PROJ-1", "title": "Root", "attachedTo": "",
	})
	mc.Put(huly.ClassIssue, "i2", huly.Doc{
		"space": "proj", "identifier": "PROJ-2", "title": "Child", "attachedTo": "i1",
	})
	mc.Put(huly.ClassComponent, "c1", huly.Doc{"space": "proj", "label": "backend"})
	mc.Put(huly.ClassMilestone, "m1", huly.Doc{"space": "proj", "label": "v1.0"})
	mc.Put(huly.ClassTemplate, "t1", huly.Doc{
		"space": "proj", "title": "Bug report", "description": "", "priority": "Medium",
	})
	return mc
}

// --- DeleteIssueTool ---

func TestDeleteIssueTool_CascadeReportsSubIssues(t *testing.T) {
	mc := newWorkspace(t)
	tool := NewDeleteIssueTool(mc)

	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"issue_identifier": "PROJ-1",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("unexpected tool error: %s", getResultText(result))
	}

	text := getResultText(result)
	if !strings.Contains(text, "PROJ-1") || !strings.Contains(text, "including 1 sub-issue") {
		t.Errorf("response missing cascade summary: %q", text)
	}
	if mc.Count(huly.ClassIssue) != 0 {
		t.Errorf("expected all issues deleted, %d remain", mc.Count(huly.ClassIssue))
	}
}

func TestDeleteIssueTool_DryRunLeavesWorkspaceUntouched(t *testing.T) {
	mc := newWorkspace(t)
	tool := NewDeleteIssueTool(mc)

	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"issue_identifier": "PROJ-1",
		"dry_run":          true,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if text := getResultText(result); !strings.Contains(text, "DRY RUN") {
		t.Errorf("expected dry-run banner, got %q", text)
	}
	if mc.Mutations != 0 {
		t.Errorf("dry run issued %d mutating calls", mc.Mutations)
	}
}

func TestDeleteIssueTool_NotFoundIsToolError(t *testing.T) {
	mc := newWorkspace(t)
	tool := NewDeleteIssueTool(mc)

	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"issue_identifier": "PROJ-404",
	}))
	if err != nil {
		t.Fatalf("expected tool error, got Go error: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected an error result")
	}
	if !strings.Contains(getResultText(result), "not found") {
		t.Errorf("unexpected message: %q", getResultText(result))
	}
}

func TestDeleteIssueTool_ForcedReportSaysChecksSkipped(t *testing.T) {
	mc := newWorkspace(t)
	tool := NewDeleteIssueTool(mc)

	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"issue_identifier": "PROJ-1",
		"force":            true,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	// Force skips impact analysis, so the report must not claim
	// blockers were found.
	text := getResultText(result)
	if !strings.Contains(text, "impact blockers were not checked") {
		t.Errorf("forced report should say analysis was skipped: %q", text)
	}
	if strings.Contains(text, "overridden") {
		t.Errorf("forced report must not assert blockers existed: %q", text)
	}
}

func TestDeleteIssueTool_MissingArgument(t *testing.T) {
	tool := NewDeleteIssueTool(newWorkspace(t))

	result, err := tool.Handle(context.Background(), callReq(map[string]any{}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected an error result for missing identifier")
	}
}

// --- DeleteProjectTool ---

func TestDeleteProjectTool_BlockedWithoutForce(t *testing.T) {
	mc := newWorkspace(t)
	tool := NewDeleteProjectTool(mc)

	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"project_identifier": "PROJ",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected blocked deletion to be a tool error")
	}
	text := getResultText(result)
	if !strings.Contains(text, "active issue") || !strings.Contains(text, "force") {
		t.Errorf("blocked message should name blockers and suggest force: %q", text)
	}
	if mc.Count(huly.ClassProject) != 1 {
		t.Error("blocked deletion must not remove anything")
	}
}

func TestDeleteProjectTool_ForceDeletesEverything(t *testing.T) {
	mc := newWorkspace(t)
	tool := NewDeleteProjectTool(mc)

	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"project_identifier": "PROJ",
		"force":              true,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("unexpected tool error: %s", getResultText(result))
	}

	text := getResultText(result)
	for _, want := range []string{"Issues: 2", "Components: 1", "Milestones: 1", "Templates: 1"} {
		if !strings.Contains(text, want) {
			t.Errorf("response missing %q: %q", want, text)
		}
	}
	if mc.Count(huly.ClassProject) != 0 {
		t.Error("project document should be gone")
	}
}

// --- ArchiveProjectTool ---

func TestArchiveProjectTool_SecondCallReportsAlreadyArchived(t *testing.T) {
	mc := newWorkspace(t)
	tool := NewArchiveProjectTool(mc)

	first, err := tool.Handle(context.Background(), callReq(map[string]any{
		"project_identifier": "PROJ",
	}))
	if err != nil || isErrorResult(first) {
		t.Fatalf("first archive failed: %v %s", err, getResultText(first))
	}

	second, err := tool.Handle(context.Background(), callReq(map[string]any{
		"project_identifier": "PROJ",
	}))
	if err != nil {
		t.Fatalf("second archive failed: %v", err)
	}
	if isErrorResult(second) {
		t.Fatal("already archived must not be an error result")
	}
	if got := getResultText(second); got != "Project is already archived" {
		t.Errorf("unexpected message: %q", got)
	}
}

// --- DeleteComponentTool ---

func TestDeleteComponentTool_ReportsAffectedIssues(t *testing.T) {
	mc := newWorkspace(t)
	mc.Get(huly.ClassIssue, "i1")["component"] = "c1"
	tool := NewDeleteComponentTool(mc)

	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"project_identifier": "PROJ",
		"component_label":    "backend",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	text := getResultText(result)
	if !strings.Contains(text, "1 issue detached") {
		t.Errorf("response missing detach count: %q", text)
	}
	if got := mc.Get(huly.ClassIssue, "i1").Str("component"); got != "" {
		t.Errorf("issue reference not cleared: %q", got)
	}
}

// --- BulkDeleteIssuesTool ---

func TestBulkDeleteIssuesTool_Summary(t *testing.T) {
	mc := newWorkspace(t)
	tool := NewBulkDeleteIssuesTool(mc)

	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"issue_identifiers": []any{"PROJ-1", "PROJ-404"},
		"batch_size":        float64(1),
		"continue_on_error": true,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	text := getResultText(result)
	for _, want := range []string{"Requested: 2", "Succeeded: 1", "Failed: 1", "Batches: 2", "PROJ-404"} {
		if !strings.Contains(text, want) {
			t.Errorf("response missing %q: %q", want, text)
		}
	}
}

func TestBulkDeleteIssuesTool_RejectsEmptyList(t *testing.T) {
	tool := NewBulkDeleteIssuesTool(newWorkspace(t))

	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"issue_identifiers": []any{},
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected an error result for empty identifier list")
	}
}

// --- Impact tools ---

func TestAnalyzeIssueImpactTool_IsReadOnly(t *testing.T) {
	mc := newWorkspace(t)
	tool := NewAnalyzeIssueImpactTool(mc)

	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"issue_identifier": "PROJ-1",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(getResultText(result), "Sub-issues: 1") {
		t.Errorf("unexpected report: %q", getResultText(result))
	}
	if mc.Mutations != 0 {
		t.Errorf("impact analysis issued %d mutating calls", mc.Mutations)
	}
}

func TestAnalyzeProjectImpactTool_NamesBlockers(t *testing.T) {
	mc := newWorkspace(t)
	tool := NewAnalyzeProjectImpactTool(mc)

	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"project_identifier": "PROJ",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	text := getResultText(result)
	if !strings.Contains(text, "Blockers") || !strings.Contains(text, "active issue") {
		t.Errorf("report should list the active-issue blocker: %q", text)
	}
}
