package tracker

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/oculairmedia/huly-mcp-server/internal/huly"
)

// TemplateChildData describes one child template. Children are a flat
// collection under their template (exactly one level deep), not a
// general tree.
type TemplateChildData struct {
	Title         string
	Description   string
	Priority      string
	Estimation    float64
	AssigneeEmail string
}

// TemplateData describes a template to create, with optional children
// created in the same call.
type TemplateData struct {
	Title         string
	Description   string
	Priority      string
	Estimation    float64
	AssigneeEmail string
	Component     string
	Milestone     string
	Children      []TemplateChildData
}

// CreateTemplateResult reports a template creation.
type CreateTemplateResult struct {
	Success         bool
	TemplateID      string
	Title           string
	ChildrenCreated int
}

// CreateTemplate creates a template and its children in the project.
// The assignee, when given, is resolved by email against the workspace
// accounts.
func CreateTemplate(ctx context.Context, c huly.Client, projectIdentifier string, data TemplateData) (*CreateTemplateResult, error) {
	if strings.TrimSpace(data.Title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be blank"}
	}
	project, err := ResolveProject(ctx, c, projectIdentifier)
	if err != nil {
		return nil, err
	}

	assignee := ""
	if data.AssigneeEmail != "" {
		account, err := resolveAccount(ctx, c, data.AssigneeEmail)
		if err != nil {
			return nil, err
		}
		assignee = account.ID()
	}

	space := project.ID()
	templateID, err := c.CreateDoc(ctx, huly.ClassTemplate, space, huly.Attrs{
		"title":       data.Title,
		"description": data.Description,
		"priority":    data.Priority,
		"estimation":  data.Estimation,
		"assignee":    assignee,
		"component":   data.Component,
		"milestone":   data.Milestone,
	})
	if err != nil {
		return nil, fmt.Errorf("creating template: %w", err)
	}

	created := 0
	for _, child := range data.Children {
		if strings.TrimSpace(child.Title) == "" {
			return nil, &ValidationError{Field: "children.title", Reason: "must not be blank"}
		}
		if _, err := addChild(ctx, c, space, templateID, child); err != nil {
			return nil, err
		}
		created++
	}

	return &CreateTemplateResult{
		Success:         true,
		TemplateID:      templateID,
		Title:           data.Title,
		ChildrenCreated: created,
	}, nil
}

func addChild(ctx context.Context, c huly.Client, space, templateID string, child TemplateChildData) (string, error) {
	assignee := ""
	if child.AssigneeEmail != "" {
		account, err := resolveAccount(ctx, c, child.AssigneeEmail)
		if err != nil {
			return "", err
		}
		assignee = account.ID()
	}
	id, err := c.AddCollection(ctx, huly.ClassTemplateChild, space, templateID, huly.ClassTemplate, "children", huly.Attrs{
		"title":       child.Title,
		"description": child.Description,
		"priority":    child.Priority,
		"estimation":  child.Estimation,
		"assignee":    assignee,
	})
	if err != nil {
		return "", fmt.Errorf("creating child template %q: %w", child.Title, err)
	}
	return id, nil
}

// ListTemplates lists templates, optionally scoped to one project.
// limit <= 0 means no limit.
func ListTemplates(ctx context.Context, c huly.Client, projectIdentifier string, limit int) ([]huly.Doc, error) {
	query := huly.Query{}
	if projectIdentifier != "" {
		project, err := ResolveProject(ctx, c, projectIdentifier)
		if err != nil {
			return nil, err
		}
		query["space"] = project.ID()
	}
	var opts *huly.FindOptions
	if limit > 0 {
		opts = &huly.FindOptions{Limit: limit}
	}
	return c.FindAll(ctx, huly.ClassTemplate, query, opts)
}

// SearchTemplates returns templates whose title or description contains
// the query, case-insensitively, optionally scoped to one project.
func SearchTemplates(ctx context.Context, c huly.Client, query, projectIdentifier string, limit int) ([]huly.Doc, error) {
	all, err := ListTemplates(ctx, c, projectIdentifier, 0)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	var out []huly.Doc
	for _, tmpl := range all {
		if strings.Contains(strings.ToLower(tmpl.Str("title")), needle) ||
			strings.Contains(strings.ToLower(tmpl.Str("description")), needle) {
			out = append(out, tmpl)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// TemplateDetails is a template with its children in collection order.
type TemplateDetails struct {
	Template huly.Doc
	Children []huly.Doc
}

// GetTemplateDetails fetches one template and its children.
func GetTemplateDetails(ctx context.Context, c huly.Client, templateID string) (*TemplateDetails, error) {
	tmpl, err := ResolveTemplate(ctx, c, templateID)
	if err != nil {
		return nil, err
	}
	children, err := templateChildren(ctx, c, tmpl.ID())
	if err != nil {
		return nil, err
	}
	return &TemplateDetails{Template: tmpl, Children: children}, nil
}

func templateChildren(ctx context.Context, c huly.Client, templateID string) ([]huly.Doc, error) {
	return c.FindAll(ctx, huly.ClassTemplateChild, huly.Query{"attachedTo": templateID}, nil)
}

// templateFields is the allow-list of single-field update targets, each
// with its validator. Anything else is InvalidField.
var templateFields = map[string]func(any) error{
	"title":       nonBlankString,
	"description": anyString,
	"priority":    priorityName,
	"estimation":  nonNegativeNumber,
	"component":   anyString,
	"milestone":   anyString,
	"assignee":    anyString,
}

func allowedTemplateFields() []string {
	fields := make([]string, 0, len(templateFields))
	for f := range templateFields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func nonBlankString(v any) error {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return fmt.Errorf("must be a non-blank string")
	}
	return nil
}

func anyString(v any) error {
	if _, ok := v.(string); !ok {
		return fmt.Errorf("must be a string")
	}
	return nil
}

func priorityName(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("must be a string")
	}
	switch s {
	case "NoPriority", "Urgent", "High", "Medium", "Low":
		return nil
	}
	return fmt.Errorf("must be one of NoPriority, Urgent, High, Medium, Low")
}

func nonNegativeNumber(v any) error {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case int:
		n = float64(x)
	default:
		return fmt.Errorf("must be a number")
	}
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// UpdateTemplateResult reports a single-field template update.
type UpdateTemplateResult struct {
	Success    bool
	TemplateID string
	Field      string
}

// UpdateTemplate updates one allow-listed field on a template.
func UpdateTemplate(ctx context.Context, c huly.Client, templateID, field string, value any) (*UpdateTemplateResult, error) {
	validate, ok := templateFields[field]
	if !ok {
		return nil, &InvalidFieldError{Field: field, Allowed: allowedTemplateFields()}
	}
	if err := validate(value); err != nil {
		return nil, &ValidationError{Field: field, Reason: err.Error()}
	}
	tmpl, err := ResolveTemplate(ctx, c, templateID)
	if err != nil {
		return nil, err
	}
	if err := c.UpdateDoc(ctx, tmpl, huly.Attrs{field: value}); err != nil {
		return nil, fmt.Errorf("updating template: %w", err)
	}
	return &UpdateTemplateResult{Success: true, TemplateID: templateID, Field: field}, nil
}

// ChildTemplateResult reports a child addition or removal; Children is
// the count after the change.
type ChildTemplateResult struct {
	Success    bool
	TemplateID string
	ChildTitle string
	Children   int
}

// AddChildTemplate appends one child to an existing template.
func AddChildTemplate(ctx context.Context, c huly.Client, templateID string, child TemplateChildData) (*ChildTemplateResult, error) {
	if strings.TrimSpace(child.Title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be blank"}
	}
	tmpl, err := ResolveTemplate(ctx, c, templateID)
	if err != nil {
		return nil, err
	}
	if _, err := addChild(ctx, c, tmpl.Space(), tmpl.ID(), child); err != nil {
		return nil, err
	}
	children, err := templateChildren(ctx, c, tmpl.ID())
	if err != nil {
		return nil, err
	}
	return &ChildTemplateResult{
		Success:    true,
		TemplateID: templateID,
		ChildTitle: child.Title,
		Children:   len(children),
	}, nil
}

// RemoveChildTemplate removes the child at the given positional index
// (collection order). Out-of-range indexes are InvalidIndex.
func RemoveChildTemplate(ctx context.Context, c huly.Client, templateID string, index int) (*ChildTemplateResult, error) {
	tmpl, err := ResolveTemplate(ctx, c, templateID)
	if err != nil {
		return nil, err
	}
	children, err := templateChildren(ctx, c, tmpl.ID())
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(children) {
		return nil, &InvalidIndexError{Index: index, Length: len(children)}
	}
	victim := children[index]
	if err := c.RemoveCollection(ctx, huly.ClassTemplateChild, victim.Space(), victim.ID()); err != nil {
		return nil, fmt.Errorf("removing child template %q: %w", victim.Str("title"), err)
	}
	return &ChildTemplateResult{
		Success:    true,
		TemplateID: templateID,
		ChildTitle: victim.Str("title"),
		Children:   len(children) - 1,
	}, nil
}

// DeleteTemplateResult reports a template deletion.
type DeleteTemplateResult struct {
	Success         bool
	TemplateID      string
	Title           string
	DeletedChildren int
}

// DeleteTemplate removes a template and all its children, children
// first. The first failure aborts: there is no partial-failure
// tolerance within this operation.
func DeleteTemplate(ctx context.Context, c huly.Client, templateID string) (*DeleteTemplateResult, error) {
	tmpl, err := ResolveTemplate(ctx, c, templateID)
	if err != nil {
		return nil, err
	}
	children, err := templateChildren(ctx, c, tmpl.ID())
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		if err := c.RemoveCollection(ctx, huly.ClassTemplateChild, child.Space(), child.ID()); err != nil {
			return nil, fmt.Errorf("removing child template %q: %w", child.Str("title"), err)
		}
	}
	if err := c.RemoveDoc(ctx, huly.ClassTemplate, tmpl.Space(), tmpl.ID()); err != nil {
		return nil, fmt.Errorf("removing template %q: %w", tmpl.Str("title"), err)
	}
	return &DeleteTemplateResult{
		Success:         true,
		TemplateID:      templateID,
		Title:           tmpl.Str("title"),
		DeletedChildren: len(children),
	}, nil
}

// IssueFromTemplateResult reports a template expansion.
type IssueFromTemplateResult struct {
	Success         bool
	IssueID         string
	Identifier      string
	ChildrenCreated int
}

// CreateIssueFromTemplate creates a concrete issue from a template's
// field snapshot merged with overrides (overrides win). With
// includeChildren, each child template becomes one issue attached under
// the new parent.
func CreateIssueFromTemplate(ctx context.Context, c huly.Client, templateID string, overrides huly.Attrs, includeChildren bool) (*IssueFromTemplateResult, error) {
	tmpl, err := ResolveTemplate(ctx, c, templateID)
	if err != nil {
		return nil, err
	}
	project, err := c.FindOne(ctx, huly.ClassProject, huly.Query{"_id": tmpl.Space()})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, &NotFoundError{Kind: "project", Identifier: tmpl.Space()}
	}

	seq := project.Int("sequence")
	nextIdentifier := func() (string, error) {
		seq++
		if err := c.UpdateDoc(ctx, project, huly.Attrs{"sequence": seq}); err != nil {
			return "", fmt.Errorf("advancing issue sequence: %w", err)
		}
		return fmt.Sprintf("%s-%d", project.Str("identifier"), seq), nil
	}

	parentIdent, err := nextIdentifier()
	if err != nil {
		return nil, err
	}
	attrs := issueAttrs(tmpl, parentIdent, "")
	for k, v := range overrides {
		attrs[k] = v
	}
	issueID, err := c.CreateDoc(ctx, huly.ClassIssue, tmpl.Space(), attrs)
	if err != nil {
		return nil, fmt.Errorf("creating issue from template: %w", err)
	}

	result := &IssueFromTemplateResult{
		Success:    true,
		IssueID:    issueID,
		Identifier: parentIdent,
	}
	if !includeChildren {
		return result, nil
	}

	children, err := templateChildren(ctx, c, tmpl.ID())
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		childIdent, err := nextIdentifier()
		if err != nil {
			return nil, err
		}
		if _, err := c.CreateDoc(ctx, huly.ClassIssue, tmpl.Space(), issueAttrs(child, childIdent, issueID)); err != nil {
			return nil, fmt.Errorf("creating child issue %q: %w", child.Str("title"), err)
		}
		result.ChildrenCreated++
	}
	return result, nil
}

// issueAttrs snapshots an issue's fields from a template (or a child
// template) document.
func issueAttrs(tmpl huly.Doc, identifier, parentID string) huly.Attrs {
	return huly.Attrs{
		"identifier":  identifier,
		"title":       tmpl.Str("title"),
		"description": tmpl.Str("description"),
		"priority":    tmpl.Str("priority"),
		"estimation":  tmpl["estimation"],
		"assignee":    tmpl.Str("assignee"),
		"component":   tmpl.Str("component"),
		"milestone":   tmpl.Str("milestone"),
		"attachedTo":  parentID,
	}
}
