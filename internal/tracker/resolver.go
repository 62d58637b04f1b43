package tracker

import (
	"context"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
)

// Resolution deliberately never caches: remote state can change between
// calls, and every operation re-reads what it is about to touch.

// ResolveProject resolves a project by its human code (e.g. "PROJ").
func ResolveProject(ctx context.Context, c huly.Client, identifier string) (huly.Doc, error) {
	doc, err := c.FindOne(ctx, huly.ClassProject, huly.Query{"identifier": identifier})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &NotFoundError{Kind: "project", Identifier: identifier}
	}
	return doc, nil
}

// ResolveIssue resolves an issue by its human code (e.g. "PROJ-123").
func ResolveIssue(ctx context.Context, c huly.Client, identifier string) (huly.Doc, error) {
	doc, err := c.FindOne(ctx, huly.ClassIssue, huly.Query{"identifier": identifier})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &NotFoundError{Kind: "issue", Identifier: identifier}
	}
	return doc, nil
}

// ResolveTemplate resolves a template by document id.
func ResolveTemplate(ctx context.Context, c huly.Client, templateID string) (huly.Doc, error) {
	doc, err := c.FindOne(ctx, huly.ClassTemplate, huly.Query{"_id": templateID})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &NotFoundError{Kind: "template", Identifier: templateID}
	}
	return doc, nil
}

// resolveScoped resolves a labelled document (component, milestone)
// inside a project's space.
func resolveScoped(ctx context.Context, c huly.Client, class, kind, space, label string) (huly.Doc, error) {
	doc, err := c.FindOne(ctx, class, huly.Query{"label": label, "space": space})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &NotFoundError{Kind: kind, Identifier: label}
	}
	return doc, nil
}

// resolveAccount resolves a person account by email.
func resolveAccount(ctx context.Context, c huly.Client, email string) (huly.Doc, error) {
	doc, err := c.FindOne(ctx, huly.ClassPersonAccount, huly.Query{"email": email})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &NotFoundError{Kind: "account", Identifier: email}
	}
	return doc, nil
}
