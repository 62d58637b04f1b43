// Package huly is a minimal client for a Huly workspace's document API.
//
// Documents are loosely typed: the platform stores them as JSON objects
// keyed by class, and different classes carry different attributes. Doc
// keeps that shape (a map) and layers typed accessors on top instead of
// declaring one struct per class, because the engine only ever reads a
// handful of well-known fields per class.
package huly

// Class names for the tracker workspace model.
const (
	ClassProject       = "tracker:class:Project"
	ClassIssue         = "tracker:class:Issue"
	ClassComponent     = "tracker:class:Component"
	ClassMilestone     = "tracker:class:Milestone"
	ClassTemplate      = "tracker:class:IssueTemplate"
	ClassTemplateChild = "tracker:class:IssueTemplateChild"
	ClassPersonAccount = "contact:class:PersonAccount"
)

// Doc is a remote document. Every document carries "_id", "_class" and
// "space"; the rest of the keys depend on the class.
type Doc map[string]any

// Attrs is a partial set of document attributes, used for creates and
// updates.
type Attrs map[string]any

// Query filters documents by attribute equality. A slice-valued document
// attribute matches when it contains the queried value.
type Query map[string]any

// FindOptions tunes FindAll. The zero value means no limit.
type FindOptions struct {
	Limit int
}

// ID returns the document's "_id", or "" when absent.
func (d Doc) ID() string { return d.Str("_id") }

// Class returns the document's "_class".
func (d Doc) Class() string { return d.Str("_class") }

// Space returns the document's "space" (the owning project for tracker
// classes).
func (d Doc) Space() string { return d.Str("space") }

// Str returns the attribute as a string, or "" when absent or not a
// string.
func (d Doc) Str(key string) string {
	v, _ := d[key].(string)
	return v
}

// Int returns the attribute as an int. JSON numbers decode as float64,
// so both are accepted.
func (d Doc) Int(key string) int {
	switch v := d[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// Bool returns the attribute as a bool, or false when absent.
func (d Doc) Bool(key string) bool {
	v, _ := d[key].(bool)
	return v
}
