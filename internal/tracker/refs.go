package tracker

import (
	"context"
	"fmt"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
)

// RefDeleteOptions controls component/milestone deletion.
type RefDeleteOptions struct {
	DryRun bool
}

// RefDeleteResult reports a component or milestone deletion. Label names
// the deleted entity; AffectedIssues counts the issues whose reference
// was (or, on a dry run, would be) cleared — the issues themselves stay.
type RefDeleteResult struct {
	Success        bool
	Label          string
	AffectedIssues int
	DryRun         bool
}

// DeleteComponent deletes a component from a project, detaching every
// issue that references it first.
func DeleteComponent(ctx context.Context, c huly.Client, projectIdentifier, label string, opts RefDeleteOptions) (*RefDeleteResult, error) {
	return deleteRef(ctx, c, huly.ClassComponent, "component", projectIdentifier, label, opts)
}

// DeleteMilestone deletes a milestone from a project, detaching every
// issue that references it first.
func DeleteMilestone(ctx context.Context, c huly.Client, projectIdentifier, label string, opts RefDeleteOptions) (*RefDeleteResult, error) {
	return deleteRef(ctx, c, huly.ClassMilestone, "milestone", projectIdentifier, label, opts)
}

// deleteRef implements both: the two entities differ only in class name
// and the issue attribute holding the reference ("component" or
// "milestone", same word as the kind).
func deleteRef(ctx context.Context, c huly.Client, class, kind, projectIdentifier, label string, opts RefDeleteOptions) (*RefDeleteResult, error) {
	project, err := ResolveProject(ctx, c, projectIdentifier)
	if err != nil {
		return nil, err
	}
	target, err := resolveScoped(ctx, c, class, kind, project.ID(), label)
	if err != nil {
		return nil, err
	}

	issues, err := c.FindAll(ctx, huly.ClassIssue, huly.Query{"space": project.ID(), kind: target.ID()}, nil)
	if err != nil {
		return nil, err
	}

	result := &RefDeleteResult{
		Label:          label,
		AffectedIssues: len(issues),
		DryRun:         opts.DryRun,
		Success:        true,
	}
	if opts.DryRun {
		return result, nil
	}

	for _, issue := range issues {
		if err := c.UpdateDoc(ctx, issue, huly.Attrs{kind: ""}); err != nil {
			return nil, fmt.Errorf("detaching %s from issue %s: %w", kind, issue.Str("identifier"), err)
		}
	}
	if err := c.RemoveDoc(ctx, class, target.Space(), target.ID()); err != nil {
		return nil, fmt.Errorf("removing %s %s: %w", kind, label, err)
	}
	return result, nil
}
