package huly

import "context"

// Client is the document API surface the engine consumes. All calls go to
// the remote workspace and may fail; FindOne reports a missing document as
// (nil, nil) rather than an error, since absence is an expected outcome
// the caller turns into its own not-found condition.
//
// Implementations: HTTPClient (the real transport) and MemClient (an
// in-memory workspace used by tests and offline runs).
type Client interface {
	// FindOne returns the first document of class matching query, or nil.
	FindOne(ctx context.Context, class string, query Query) (Doc, error)

	// FindAll returns every document of class matching query.
	FindAll(ctx context.Context, class string, query Query, opts *FindOptions) ([]Doc, error)

	// CreateDoc creates a document in the given space and returns its id.
	CreateDoc(ctx context.Context, class, space string, attrs Attrs) (string, error)

	// UpdateDoc applies partial attributes to an existing document. The
	// document's _id, _class and space identify the target.
	UpdateDoc(ctx context.Context, doc Doc, attrs Attrs) error

	// RemoveDoc removes a document.
	RemoveDoc(ctx context.Context, class, space, id string) error

	// AddCollection creates a document attached to a parent's collection
	// field and returns the new document's id.
	AddCollection(ctx context.Context, class, space, attachedTo, attachedToClass, collection string, attrs Attrs) (string, error)

	// RemoveCollection removes a document previously created with
	// AddCollection.
	RemoveCollection(ctx context.Context, class, space, id string) error
}
