package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
)

func seedFullProject(mc *huly.MemClient) {
	seedProject(mc, "proj", "PROJ")
	seedIssue(mc, "i1", "proj", "PROJ-1", "")
	seedComponent(mc, "c1", "proj", "backend")
	seedMilestone(mc, "m1", "proj", "v1.0")
	seedTemplate(mc, "t1", "proj", "Bug report")
}

func TestDeleteProject_CascadesAllCategories(t *testing.T) {
	mc := huly.NewMemClient()
	seedFullProject(mc)

	result, err := DeleteProject(context.Background(), mc, "PROJ", DeleteProjectOptions{Force: true})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "PROJ", result.Project)
	assert.Equal(t, ProjectDeletion{
		Project:    true,
		Issues:     1,
		Components: 1,
		Milestones: 1,
		Templates:  1,
	}, result.Deleted)

	for _, class := range []string{huly.ClassProject, huly.ClassIssue, huly.ClassComponent, huly.ClassMilestone, huly.ClassTemplate} {
		assert.Zero(t, mc.Count(class), class)
	}
}

func TestDeleteProject_CascadesIssueSubtrees(t *testing.T) {
	mc := huly.NewMemClient()
	seedTree(mc)

	result, err := DeleteProject(context.Background(), mc, "PROJ", DeleteProjectOptions{Force: true})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Deleted.Issues)
	assert.Zero(t, mc.Count(huly.ClassIssue))
}

func TestDeleteProject_BlockedByActiveIssues(t *testing.T) {
	mc := huly.NewMemClient()
	seedFullProject(mc)

	_, err := DeleteProject(context.Background(), mc, "PROJ", DeleteProjectOptions{})
	var blocked *BlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Contains(t, blocked.Blockers[0], "active issue(s)")
	assert.Equal(t, 1, mc.Count(huly.ClassProject))
}

func TestDeleteProject_DryRunReportsSameShapeWithoutMutation(t *testing.T) {
	mc := huly.NewMemClient()
	seedFullProject(mc)

	result, err := DeleteProject(context.Background(), mc, "PROJ", DeleteProjectOptions{Force: true, DryRun: true})
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, ProjectDeletion{
		Project:    true,
		Issues:     1,
		Components: 1,
		Milestones: 1,
		Templates:  1,
	}, result.Deleted)
	assert.Zero(t, mc.Mutations)
	assert.Equal(t, 1, mc.Count(huly.ClassProject))
}

func TestDeleteProject_NotFound(t *testing.T) {
	mc := huly.NewMemClient()

	_, err := DeleteProject(context.Background(), mc, "NOPE", DeleteProjectOptions{Force: true})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestArchiveProject(t *testing.T) {
	mc := huly.NewMemClient()
	seedProject(mc, "proj", "PROJ")

	result, err := ArchiveProject(context.Background(), mc, "PROJ")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.Archived)
	assert.True(t, mc.Get(huly.ClassProject, "proj").Bool("archived"))
}

func TestArchiveProject_AlreadyArchivedIsNotAnError(t *testing.T) {
	mc := huly.NewMemClient()
	seedProject(mc, "proj", "PROJ")
	mc.Get(huly.ClassProject, "proj")["archived"] = true

	result, err := ArchiveProject(context.Background(), mc, "PROJ")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Project is already archived", result.Message)
}
