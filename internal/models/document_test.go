package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDocumentIsUnmodifiedAndUnsaved(t *testing.T) {
	doc := NewDocument(DefaultFormula)

	assert.Equal(t, DefaultFormula, doc.Text())
	assert.False(t, doc.IsModified())
	assert.False(t, doc.IsSaved())
	assert.Empty(t, doc.Name())
}

func TestIsModifiedTracksSnapshot(t *testing.T) {
	doc := NewDocument("x")

	edits := []string{"x+", "x+y", "x+", "x", "", "x"}
	for _, text := range edits {
		doc.SetText(text)
		assert.Equal(t, text != "x", doc.IsModified(), "text %q", text)
	}
}

func TestReplaceResetsSnapshotAndPath(t *testing.T) {
	doc := NewDocument("a")
	doc.SetText("ab")

	doc.Replace("/tmp/f.formula.txt", "c")

	state := doc.State()
	assert.Equal(t, "c", state.Text)
	assert.Equal(t, "c", state.Snapshot)
	assert.Equal(t, "/tmp/f.formula.txt", state.Path)
	assert.False(t, state.IsModified)
	assert.True(t, state.IsSaved)
	assert.Equal(t, "f.formula.txt", doc.Name())
}

func TestReplaceWithEmptyPathClearsSaved(t *testing.T) {
	doc := NewDocument("a")
	doc.MarkSaved("/tmp/a.txt", "a")
	assert.True(t, doc.IsSaved())

	doc.Replace("", "")
	assert.False(t, doc.IsSaved())
	assert.False(t, doc.IsModified())
}
