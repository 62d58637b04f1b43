package tracker

import (
	"context"
	"fmt"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
)

// DeleteProjectOptions controls one project deletion. Project deletion
// always cascades; the knobs are force and dry-run.
type DeleteProjectOptions struct {
	Force  bool
	DryRun bool
}

// ProjectDeletion counts what a project deletion removed (or, on a dry
// run, would remove).
type ProjectDeletion struct {
	Project    bool
	Issues     int
	Components int
	Milestones int
	Templates  int
}

// DeleteProjectResult reports one project deletion.
type DeleteProjectResult struct {
	Success bool
	Project string
	Deleted ProjectDeletion
	DryRun  bool
}

// DeleteProject cascades over everything the project owns: issues first
// (each with full sub-issue cascade, so no reference dangles
// mid-deletion), then components, milestones and templates, then the
// project document itself.
func DeleteProject(ctx context.Context, c huly.Client, identifier string, opts DeleteProjectOptions) (*DeleteProjectResult, error) {
	project, err := ResolveProject(ctx, c, identifier)
	if err != nil {
		return nil, err
	}

	if !opts.Force {
		impact, err := AnalyzeProjectImpact(ctx, c, identifier)
		if err != nil {
			return nil, err
		}
		if len(impact.Blockers) > 0 {
			return nil, &BlockedError{Identifier: identifier, Blockers: impact.Blockers}
		}
	}
	space := project.ID()

	result := &DeleteProjectResult{Project: identifier, DryRun: opts.DryRun}

	issues, err := c.FindAll(ctx, huly.ClassIssue, huly.Query{"space": space}, nil)
	if err != nil {
		return nil, err
	}
	result.Deleted.Issues = len(issues)

	components, err := c.FindAll(ctx, huly.ClassComponent, huly.Query{"space": space}, nil)
	if err != nil {
		return nil, err
	}
	result.Deleted.Components = len(components)

	milestones, err := c.FindAll(ctx, huly.ClassMilestone, huly.Query{"space": space}, nil)
	if err != nil {
		return nil, err
	}
	result.Deleted.Milestones = len(milestones)

	templates, err := c.FindAll(ctx, huly.ClassTemplate, huly.Query{"space": space}, nil)
	if err != nil {
		return nil, err
	}
	result.Deleted.Templates = len(templates)

	result.Deleted.Project = true
	result.Success = true
	if opts.DryRun {
		return result, nil
	}

	// Issues fully first. Each root issue runs the full sub-issue
	// cascade; force is set because the project-level analysis already
	// happened. A sweep then catches issues whose parent reference
	// points outside the project (or at nothing).
	roots, err := c.FindAll(ctx, huly.ClassIssue, huly.Query{"space": space, "attachedTo": ""}, nil)
	if err != nil {
		return nil, err
	}
	for _, root := range roots {
		ident := root.Str("identifier")
		if _, err := DeleteIssue(ctx, c, ident, DeleteIssueOptions{Cascade: true, Force: true}); err != nil {
			return nil, fmt.Errorf("cascading issue %s: %w", ident, err)
		}
	}
	remaining, err := c.FindAll(ctx, huly.ClassIssue, huly.Query{"space": space}, nil)
	if err != nil {
		return nil, err
	}
	for _, issue := range remaining {
		if err := c.RemoveDoc(ctx, huly.ClassIssue, space, issue.ID()); err != nil {
			return nil, fmt.Errorf("removing issue %s: %w", issue.Str("identifier"), err)
		}
	}

	for _, comp := range components {
		if err := c.RemoveDoc(ctx, huly.ClassComponent, space, comp.ID()); err != nil {
			return nil, fmt.Errorf("removing component %s: %w", comp.Str("label"), err)
		}
	}
	for _, mile := range milestones {
		if err := c.RemoveDoc(ctx, huly.ClassMilestone, space, mile.ID()); err != nil {
			return nil, fmt.Errorf("removing milestone %s: %w", mile.Str("label"), err)
		}
	}
	for _, tmpl := range templates {
		if _, err := DeleteTemplate(ctx, c, tmpl.ID()); err != nil {
			return nil, fmt.Errorf("removing template %s: %w", tmpl.Str("title"), err)
		}
	}

	if err := c.RemoveDoc(ctx, huly.ClassProject, project.Space(), project.ID()); err != nil {
		return nil, fmt.Errorf("removing project %s: %w", identifier, err)
	}
	return result, nil
}

// ArchiveResult reports a soft-delete. "Already archived" is a normal
// outcome carried in Message, not an error.
type ArchiveResult struct {
	Success  bool
	Project  string
	Archived bool
	Message  string
}

// ArchiveProject soft-deletes a project by setting its archived flag.
func ArchiveProject(ctx context.Context, c huly.Client, identifier string) (*ArchiveResult, error) {
	project, err := ResolveProject(ctx, c, identifier)
	if err != nil {
		return nil, err
	}
	if project.Bool("archived") {
		return &ArchiveResult{
			Project: identifier,
			Message: "Project is already archived",
		}, nil
	}
	if err := c.UpdateDoc(ctx, project, huly.Attrs{"archived": true}); err != nil {
		return nil, fmt.Errorf("archiving project %s: %w", identifier, err)
	}
	return &ArchiveResult{Success: true, Project: identifier, Archived: true}, nil
}
