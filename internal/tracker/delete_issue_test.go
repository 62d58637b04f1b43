package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
)

func TestDeleteIssue_CascadeDeletesSubtreeChildrenFirst(t *testing.T) {
	mc := huly.NewMemClient()
	seedProject(mc, "proj", "PROJ")
	seedIssue(mc, "i1", "proj", "PROJ-123", "")
	seedIssue(mc, "i2", "proj", "PROJ-124", "i1")

	result, err := DeleteIssue(context.Background(), mc, "PROJ-123", DefaultDeleteIssueOptions())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.DeletedCount)
	assert.Equal(t, []string{"PROJ-123", "PROJ-124"}, result.DeletedIssues)
	assert.Equal(t, 0, mc.Count(huly.ClassIssue))
}

func TestDeleteIssue_DeepTreeOrderAndCount(t *testing.T) {
	mc := huly.NewMemClient()
	seedTree(mc)

	result, err := DeleteIssue(context.Background(), mc, "PROJ-1", DefaultDeleteIssueOptions())
	require.NoError(t, err)

	// Root first, then descendants in discovery order.
	assert.Equal(t, []string{issueIdent(1), issueIdent(2), issueIdent(3), issueIdent(4)}, result.DeletedIssues)
	assert.Equal(t, len(result.DeletedIssues)-1, 3, "sub-issue count derives from length minus one")
	assert.Equal(t, 0, mc.Count(huly.ClassIssue))
}

func TestDeleteIssue_NoCascadeLeavesSubIssues(t *testing.T) {
	mc := huly.NewMemClient()
	seedTree(mc)

	result, err := DeleteIssue(context.Background(), mc, "PROJ-1", DeleteIssueOptions{Cascade: false})
	require.NoError(t, err)

	assert.Equal(t, 1, result.DeletedCount)
	assert.Equal(t, []string{"PROJ-1"}, result.DeletedIssues)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "2 sub-issue(s) that were not deleted")
	assert.Equal(t, 3, mc.Count(huly.ClassIssue), "sub-issues keep their dangling parent reference")
}

func TestDeleteIssue_DryRunNeverMutates(t *testing.T) {
	mc := huly.NewMemClient()
	seedTree(mc)

	result, err := DeleteIssue(context.Background(), mc, "PROJ-1", DeleteIssueOptions{Cascade: true, DryRun: true})
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, []string{"PROJ-1", "PROJ-2", "PROJ-3", "PROJ-4"}, result.WouldDelete)
	assert.Equal(t, 4, result.DeletedCount, "dry-run counts equal what a real run would produce")
	assert.Zero(t, mc.Mutations)
	assert.Equal(t, 4, mc.Count(huly.ClassIssue))
}

func TestDeleteIssue_BlockedWithoutForce(t *testing.T) {
	mc := huly.NewMemClient()
	seedProject(mc, "proj", "PROJ")
	seedIssue(mc, "i1", "proj", "PROJ-1", "")
	mc.Put(huly.ClassIssue, "i2", huly.Doc{
		"space":      "proj",
		"identifier": "PROJ-2",
		"attachedTo": "",
		"relations":  []string{"i1"},
	})

	_, err := DeleteIssue(context.Background(), mc, "PROJ-1", DefaultDeleteIssueOptions())
	var blocked *BlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, "PROJ-1", blocked.Identifier)
	require.Len(t, blocked.Blockers, 1)
	assert.Equal(t, 2, mc.Count(huly.ClassIssue), "nothing removed when blocked")
}

func TestDeleteIssue_ForceBypassesBlockers(t *testing.T) {
	mc := huly.NewMemClient()
	seedProject(mc, "proj", "PROJ")
	seedIssue(mc, "i1", "proj", "PROJ-1", "")
	mc.Put(huly.ClassIssue, "i2", huly.Doc{
		"space":      "proj",
		"identifier": "PROJ-2",
		"attachedTo": "",
		"relations":  []string{"i1"},
	})

	result, err := DeleteIssue(context.Background(), mc, "PROJ-1", DeleteIssueOptions{Cascade: true, Force: true})
	require.NoError(t, err)
	assert.True(t, result.Forced)
	assert.Equal(t, 1, mc.Count(huly.ClassIssue))
}

func TestDeleteIssue_ForceNeverBypassesNotFound(t *testing.T) {
	mc := huly.NewMemClient()

	_, err := DeleteIssue(context.Background(), mc, "PROJ-404", DeleteIssueOptions{Cascade: true, Force: true})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}
