package huly

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemClient_FindAllKeepsInsertionOrder(t *testing.T) {
	mc := NewMemClient()
	mc.Put(ClassIssue, "a", Doc{"space": "p", "attachedTo": "root"})
	mc.Put(ClassIssue, "b", Doc{"space": "p", "attachedTo": "root"})
	mc.Put(ClassIssue, "c", Doc{"space": "p", "attachedTo": "other"})

	docs, err := mc.FindAll(context.Background(), ClassIssue, Query{"attachedTo": "root"}, nil)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID())
	assert.Equal(t, "b", docs[1].ID())
}

func TestMemClient_QueryMatchesSliceByContainment(t *testing.T) {
	mc := NewMemClient()
	mc.Put(ClassIssue, "a", Doc{"relations": []string{"x", "y"}})
	mc.Put(ClassIssue, "b", Doc{"relations": []string{"z"}})

	docs, err := mc.FindAll(context.Background(), ClassIssue, Query{"relations": "y"}, nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a", docs[0].ID())
}

func TestMemClient_AbsentStringFieldMatchesEmpty(t *testing.T) {
	mc := NewMemClient()
	mc.Put(ClassIssue, "root", Doc{"space": "p"})
	mc.Put(ClassIssue, "child", Doc{"space": "p", "attachedTo": "root"})

	docs, err := mc.FindAll(context.Background(), ClassIssue, Query{"attachedTo": ""}, nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "root", docs[0].ID())
}

func TestMemClient_CreateUpdateRemove(t *testing.T) {
	mc := NewMemClient()
	ctx := context.Background()

	id, err := mc.CreateDoc(ctx, ClassIssue, "p", Attrs{"title": "T"})
	require.NoError(t, err)

	doc, err := mc.FindOne(ctx, ClassIssue, Query{"_id": id})
	require.NoError(t, err)
	require.NotNil(t, doc)

	require.NoError(t, mc.UpdateDoc(ctx, doc, Attrs{"title": "U"}))
	assert.Equal(t, "U", mc.Get(ClassIssue, id).Str("title"))

	require.NoError(t, mc.RemoveDoc(ctx, ClassIssue, "p", id))
	gone, err := mc.FindOne(ctx, ClassIssue, Query{"_id": id})
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.Equal(t, 3, mc.Mutations)
	assert.Equal(t, 1, mc.Creates)
}

func TestMemClient_AddCollectionSetsAttachment(t *testing.T) {
	mc := NewMemClient()
	ctx := context.Background()

	id, err := mc.AddCollection(ctx, ClassTemplateChild, "p", "tmpl-1", ClassTemplate, "children", Attrs{"title": "C"})
	require.NoError(t, err)

	doc := mc.Get(ClassTemplateChild, id)
	require.NotNil(t, doc)
	assert.Equal(t, "tmpl-1", doc.Str("attachedTo"))
	assert.Equal(t, ClassTemplate, doc.Str("attachedToClass"))
	assert.Equal(t, "children", doc.Str("collection"))
}
