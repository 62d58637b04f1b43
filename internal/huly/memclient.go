package huly

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemClient is an in-memory workspace implementing Client. It exists for
// tests and offline smoke runs: same surface, same absence semantics
// (FindOne returns nil for a missing document), deterministic FindAll
// order (insertion order per class).
//
// It also counts mutating calls so tests can assert that dry runs never
// mutate.
type MemClient struct {
	mu      sync.Mutex
	classes map[string]*memClass

	// Mutations counts CreateDoc/UpdateDoc/RemoveDoc/AddCollection/
	// RemoveCollection calls, successful or not.
	Mutations int
	// Creates counts CreateDoc and AddCollection calls only.
	Creates int
}

type memClass struct {
	order []string
	docs  map[string]Doc
}

// NewMemClient creates an empty in-memory workspace.
func NewMemClient() *MemClient {
	return &MemClient{classes: map[string]*memClass{}}
}

// Put inserts a document with the given id, creating the class bucket as
// needed. Intended for test seeding; it is not part of Client.
func (m *MemClient) Put(class, id string, doc Doc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc["_id"] = id
	doc["_class"] = class
	m.put(class, id, doc)
}

func (m *MemClient) put(class, id string, doc Doc) {
	bucket := m.classes[class]
	if bucket == nil {
		bucket = &memClass{docs: map[string]Doc{}}
		m.classes[class] = bucket
	}
	if _, exists := bucket.docs[id]; !exists {
		bucket.order = append(bucket.order, id)
	}
	bucket.docs[id] = doc
}

// matches reports whether doc satisfies every query term. Slice-valued
// attributes match by containment.
func matches(doc Doc, query Query) bool {
	for key, want := range query {
		got, ok := doc[key]
		if !ok {
			// An absent string attribute equals the empty string.
			if s, isStr := want.(string); isStr && s == "" {
				continue
			}
			return false
		}
		if list, isList := got.([]string); isList {
			found := false
			for _, v := range list {
				if v == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
			continue
		}
		if got != want {
			return false
		}
	}
	return true
}

// FindOne implements Client.
func (m *MemClient) FindOne(ctx context.Context, class string, query Query) (Doc, error) {
	docs, err := m.FindAll(ctx, class, query, &FindOptions{Limit: 1})
	if err != nil || len(docs) == 0 {
		return nil, err
	}
	return docs[0], nil
}

// FindAll implements Client.
func (m *MemClient) FindAll(ctx context.Context, class string, query Query, opts *FindOptions) ([]Doc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bucket := m.classes[class]
	if bucket == nil {
		return nil, nil
	}
	var out []Doc
	for _, id := range bucket.order {
		doc := bucket.docs[id]
		if !matches(doc, query) {
			continue
		}
		out = append(out, doc)
		if opts != nil && opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

// CreateDoc implements Client.
func (m *MemClient) CreateDoc(ctx context.Context, class, space string, attrs Attrs) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Mutations++
	m.Creates++
	id := uuid.NewString()
	doc := Doc{"_id": id, "_class": class, "space": space}
	for k, v := range attrs {
		doc[k] = v
	}
	m.put(class, id, doc)
	return id, nil
}

// UpdateDoc implements Client.
func (m *MemClient) UpdateDoc(ctx context.Context, doc Doc, attrs Attrs) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Mutations++
	bucket := m.classes[doc.Class()]
	if bucket == nil {
		return nil
	}
	stored, ok := bucket.docs[doc.ID()]
	if !ok {
		return nil
	}
	for k, v := range attrs {
		stored[k] = v
	}
	return nil
}

// RemoveDoc implements Client.
func (m *MemClient) RemoveDoc(ctx context.Context, class, space, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Mutations++
	m.remove(class, id)
	return nil
}

func (m *MemClient) remove(class, id string) {
	bucket := m.classes[class]
	if bucket == nil {
		return
	}
	if _, ok := bucket.docs[id]; !ok {
		return
	}
	delete(bucket.docs, id)
	for i, existing := range bucket.order {
		if existing == id {
			bucket.order = append(bucket.order[:i], bucket.order[i+1:]...)
			break
		}
	}
}

// AddCollection implements Client.
func (m *MemClient) AddCollection(ctx context.Context, class, space, attachedTo, attachedToClass, collection string, attrs Attrs) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Mutations++
	m.Creates++
	id := uuid.NewString()
	doc := Doc{
		"_id":             id,
		"_class":          class,
		"space":           space,
		"attachedTo":      attachedTo,
		"attachedToClass": attachedToClass,
		"collection":      collection,
	}
	for k, v := range attrs {
		doc[k] = v
	}
	m.put(class, id, doc)
	return id, nil
}

// RemoveCollection implements Client.
func (m *MemClient) RemoveCollection(ctx context.Context, class, space, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Mutations++
	m.remove(class, id)
	return nil
}

// Count returns how many documents of class exist. Test helper.
func (m *MemClient) Count(class string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	bucket := m.classes[class]
	if bucket == nil {
		return 0
	}
	return len(bucket.docs)
}

// Get returns a stored document by class and id, or nil. Test helper.
func (m *MemClient) Get(class, id string) Doc {
	m.mu.Lock()
	defer m.mu.Unlock()
	bucket := m.classes[class]
	if bucket == nil {
		return nil
	}
	return bucket.docs[id]
}

var _ Client = (*MemClient)(nil)
var _ Client = (*HTTPClient)(nil)
