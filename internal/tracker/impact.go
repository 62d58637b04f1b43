package tracker

import (
	"context"
	"fmt"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
)

// IssueImpact is the read-only report of what deleting an issue would
// touch. Blockers must stop a deletion unless forced; warnings are
// informational.
type IssueImpact struct {
	Issue       huly.Doc
	Blockers    []string
	SubIssues   []huly.Doc // transitive, in discovery order
	Comments    int
	Attachments int
	Warnings    []string
}

// ProjectImpact is the read-only report of what deleting a project would
// touch.
type ProjectImpact struct {
	Project    huly.Doc
	Blockers   []string
	Issues     []huly.Doc
	Components []huly.Doc
	Milestones []huly.Doc
	Templates  []huly.Doc
	Warnings   []string
}

// AnalyzeIssueImpact computes the deletion impact of one issue. It only
// issues read calls.
func AnalyzeIssueImpact(ctx context.Context, c huly.Client, identifier string) (*IssueImpact, error) {
	issue, err := ResolveIssue(ctx, c, identifier)
	if err != nil {
		return nil, err
	}

	impact := &IssueImpact{
		Issue:       issue,
		Comments:    issue.Int("comments"),
		Attachments: issue.Int("attachments"),
	}

	impact.SubIssues, err = collectSubIssues(ctx, c, issue.ID())
	if err != nil {
		return nil, err
	}

	// An issue referenced by others (blocked-by relations) must not be
	// deleted silently: removing it would strip the relation from under
	// the referencing issues.
	referencing, err := c.FindAll(ctx, huly.ClassIssue, huly.Query{"relations": issue.ID()}, nil)
	if err != nil {
		return nil, err
	}
	if n := len(referencing); n > 0 {
		impact.Blockers = append(impact.Blockers,
			fmt.Sprintf("Issue is referenced by %d other issue(s)", n))
	}

	if n := len(impact.SubIssues); n > 0 {
		impact.Warnings = append(impact.Warnings,
			fmt.Sprintf("Issue has %d sub-issue(s) that will be deleted", n))
	}
	if impact.Comments > 0 {
		impact.Warnings = append(impact.Warnings,
			fmt.Sprintf("Issue has %d comment(s) that will be deleted", impact.Comments))
	}
	if impact.Attachments > 0 {
		impact.Warnings = append(impact.Warnings,
			fmt.Sprintf("Issue has %d attachment(s) that will be deleted", impact.Attachments))
	}

	return impact, nil
}

// AnalyzeProjectImpact computes the deletion impact of one project. It
// only issues read calls.
func AnalyzeProjectImpact(ctx context.Context, c huly.Client, identifier string) (*ProjectImpact, error) {
	project, err := ResolveProject(ctx, c, identifier)
	if err != nil {
		return nil, err
	}
	space := project.ID()

	impact := &ProjectImpact{Project: project}
	if impact.Issues, err = c.FindAll(ctx, huly.ClassIssue, huly.Query{"space": space}, nil); err != nil {
		return nil, err
	}
	if impact.Components, err = c.FindAll(ctx, huly.ClassComponent, huly.Query{"space": space}, nil); err != nil {
		return nil, err
	}
	if impact.Milestones, err = c.FindAll(ctx, huly.ClassMilestone, huly.Query{"space": space}, nil); err != nil {
		return nil, err
	}
	if impact.Templates, err = c.FindAll(ctx, huly.ClassTemplate, huly.Query{"space": space}, nil); err != nil {
		return nil, err
	}

	if n := len(impact.Issues); n > 0 {
		impact.Blockers = append(impact.Blockers,
			fmt.Sprintf("Project has %d active issue(s)", n))
	}
	for _, set := range []struct {
		docs []huly.Doc
		name string
	}{
		{impact.Components, "component(s)"},
		{impact.Milestones, "milestone(s)"},
		{impact.Templates, "template(s)"},
	} {
		if n := len(set.docs); n > 0 {
			impact.Warnings = append(impact.Warnings,
				fmt.Sprintf("Project has %d %s that will be deleted", n, set.name))
		}
	}

	return impact, nil
}

// collectSubIssues walks the sub-issue tree under rootID with an
// explicit worklist (no recursion, so depth is bounded only by the
// data) and returns all descendants in discovery order, level by level.
// A child deleted between the listing call and a later level simply
// stops appearing; the walk carries on with what still resolves.
func collectSubIssues(ctx context.Context, c huly.Client, rootID string) ([]huly.Doc, error) {
	var out []huly.Doc
	queue := []string{rootID}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		children, err := c.FindAll(ctx, huly.ClassIssue, huly.Query{"attachedTo": parent}, nil)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			out = append(out, child)
			queue = append(queue, child.ID())
		}
	}
	return out, nil
}
