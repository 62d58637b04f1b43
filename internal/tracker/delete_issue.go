package tracker

import (
	"context"
	"fmt"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
)

// DeleteIssueOptions controls one issue deletion.
type DeleteIssueOptions struct {
	// Cascade deletes the whole sub-issue tree. When false, sub-issues
	// are left behind with a dangling parent reference and a warning on
	// the result.
	Cascade bool
	// Force bypasses analyzer blockers. It never bypasses not-found.
	Force bool
	// DryRun traverses and reports without issuing a single mutating
	// call.
	DryRun bool
}

// DefaultDeleteIssueOptions matches the tool-layer defaults: cascade on,
// force and dry-run off.
func DefaultDeleteIssueOptions() DeleteIssueOptions {
	return DeleteIssueOptions{Cascade: true}
}

// DeleteIssueResult reports one issue deletion. DeletedIssues lists the
// root identifier first, then descendants in discovery order; callers
// derive "including N sub-issues" from its length minus one.
type DeleteIssueResult struct {
	Success       bool
	DeletedCount  int
	DeletedIssues []string
	Warnings      []string
	Forced        bool
	DryRun        bool
	WouldDelete   []string
}

// DeleteIssue deletes (or simulates deleting) one issue, cascading over
// its sub-issue tree when requested. Descendants are removed strictly
// before their ancestors: a parent must have no remaining descendants
// at the moment its own document goes.
//
// There is no rollback. A failure mid-cascade leaves already-removed
// children gone and the parent present; re-running the same call is
// safe because vanished children no longer appear in traversal.
func DeleteIssue(ctx context.Context, c huly.Client, identifier string, opts DeleteIssueOptions) (*DeleteIssueResult, error) {
	issue, err := ResolveIssue(ctx, c, identifier)
	if err != nil {
		return nil, err
	}

	result := &DeleteIssueResult{
		Forced: opts.Force,
		DryRun: opts.DryRun,
	}

	if !opts.Force {
		impact, err := AnalyzeIssueImpact(ctx, c, identifier)
		if err != nil {
			return nil, err
		}
		if len(impact.Blockers) > 0 {
			return nil, &BlockedError{Identifier: identifier, Blockers: impact.Blockers}
		}
		// With cascade off, the analyzer's "will be deleted" phrasing
		// would contradict the warning attached below.
		if opts.Cascade {
			result.Warnings = append(result.Warnings, impact.Warnings...)
		}
	}

	// toDelete holds documents in report order: root first, descendants
	// in discovery order. Removal happens in reverse.
	toDelete := []huly.Doc{issue}
	if opts.Cascade {
		subs, err := collectSubIssues(ctx, c, issue.ID())
		if err != nil {
			return nil, err
		}
		toDelete = append(toDelete, subs...)
	} else {
		children, err := c.FindAll(ctx, huly.ClassIssue, huly.Query{"attachedTo": issue.ID()}, nil)
		if err != nil {
			return nil, err
		}
		if n := len(children); n > 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Issue has %d sub-issue(s) that were not deleted", n))
		}
	}

	for _, doc := range toDelete {
		result.DeletedIssues = append(result.DeletedIssues, doc.Str("identifier"))
	}
	result.DeletedCount = len(toDelete)
	result.Success = true

	if opts.DryRun {
		result.WouldDelete = result.DeletedIssues
		return result, nil
	}

	// Children before parents: reverse of report order.
	for i := len(toDelete) - 1; i >= 0; i-- {
		doc := toDelete[i]
		if err := c.RemoveDoc(ctx, huly.ClassIssue, doc.Space(), doc.ID()); err != nil {
			return nil, fmt.Errorf("removing issue %s: %w", doc.Str("identifier"), err)
		}
	}
	return result, nil
}
