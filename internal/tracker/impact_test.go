package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
)

func TestAnalyzeIssueImpact_SubIssueTree(t *testing.T) {
	mc := huly.NewMemClient()
	seedTree(mc)

	impact, err := AnalyzeIssueImpact(context.Background(), mc, "PROJ-1")
	require.NoError(t, err)

	require.Len(t, impact.SubIssues, 3)
	var idents []string
	for _, sub := range impact.SubIssues {
		idents = append(idents, sub.Str("identifier"))
	}
	// Discovery order: level by level, insertion order within a level.
	assert.Equal(t, []string{"PROJ-2", "PROJ-3", "PROJ-4"}, idents)

	assert.Empty(t, impact.Blockers)
	require.Len(t, impact.Warnings, 1)
	assert.Contains(t, impact.Warnings[0], "3 sub-issue(s)")

	assert.Zero(t, mc.Mutations, "impact analysis must be read-only")
}

func TestAnalyzeIssueImpact_ReferencedIssueIsBlocked(t *testing.T) {
	mc := huly.NewMemClient()
	seedProject(mc, "proj", "PROJ")
	seedIssue(mc, "i1", "proj", "PROJ-1", "")
	mc.Put(huly.ClassIssue, "i2", huly.Doc{
		"space":      "proj",
		"identifier": "PROJ-2",
		"attachedTo": "",
		"relations":  []string{"i1"},
	})

	impact, err := AnalyzeIssueImpact(context.Background(), mc, "PROJ-1")
	require.NoError(t, err)
	require.Len(t, impact.Blockers, 1)
	assert.Contains(t, impact.Blockers[0], "referenced by 1 other issue(s)")
}

func TestAnalyzeIssueImpact_CommentAndAttachmentWarnings(t *testing.T) {
	mc := huly.NewMemClient()
	seedProject(mc, "proj", "PROJ")
	mc.Put(huly.ClassIssue, "i1", huly.Doc{
		"space":       "proj",
		"identifier":  "PROJ-1",
		"attachedTo":  "",
		"comments":    3,
		"attachments": 1,
	})

	impact, err := AnalyzeIssueImpact(context.Background(), mc, "PROJ-1")
	require.NoError(t, err)
	assert.Equal(t, 3, impact.Comments)
	assert.Equal(t, 1, impact.Attachments)
	assert.Len(t, impact.Warnings, 2)
}

func TestAnalyzeIssueImpact_NotFound(t *testing.T) {
	mc := huly.NewMemClient()

	_, err := AnalyzeIssueImpact(context.Background(), mc, "PROJ-404")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "issue", nf.Kind)
}

func TestAnalyzeProjectImpact(t *testing.T) {
	mc := huly.NewMemClient()
	seedTree(mc)
	seedComponent(mc, "c1", "proj", "backend")
	seedMilestone(mc, "m1", "proj", "v1.0")
	seedTemplate(mc, "t1", "proj", "Bug report")

	impact, err := AnalyzeProjectImpact(context.Background(), mc, "PROJ")
	require.NoError(t, err)

	assert.Len(t, impact.Issues, 4)
	assert.Len(t, impact.Components, 1)
	assert.Len(t, impact.Milestones, 1)
	assert.Len(t, impact.Templates, 1)

	require.Len(t, impact.Blockers, 1)
	assert.Contains(t, impact.Blockers[0], "active issue(s)")
	assert.Len(t, impact.Warnings, 3)

	assert.Zero(t, mc.Mutations, "impact analysis must be read-only")
}

func TestAnalyzeProjectImpact_EmptyProjectHasNoBlockers(t *testing.T) {
	mc := huly.NewMemClient()
	seedProject(mc, "proj", "PROJ")

	impact, err := AnalyzeProjectImpact(context.Background(), mc, "PROJ")
	require.NoError(t, err)
	assert.Empty(t, impact.Blockers)
	assert.Empty(t, impact.Warnings)
}
