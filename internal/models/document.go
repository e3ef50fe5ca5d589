package models

import (
	"path/filepath"
	"sync"
)

// DefaultFormula is loaded into the editor when the window opens
const DefaultFormula = `\phi=\frac{1}{2}erfc\(\frac{z}{\sqrt[]{2Dt}}\)`

// Document is the formula source being edited together with the file it
// belongs to and the text it had when it was last loaded or saved.
type Document struct {
	mu       sync.RWMutex
	text     string
	snapshot string
	path     string
}

// NewDocument creates an unsaved document whose snapshot equals its text
func NewDocument(text string) *Document {
	return &Document{text: text, snapshot: text}
}

// Text returns the current buffer contents
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

// SetText records an edit. The snapshot is left alone.
func (d *Document) SetText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = text
}

// Snapshot returns the text as of the last load or save
func (d *Document) Snapshot() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot
}

// Path returns the associated file path, empty until first save
func (d *Document) Path() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.path
}

// Name returns the base name of the associated file
func (d *Document) Name() string {
	path := d.Path()
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}

// IsModified reports whether the buffer differs from the snapshot
func (d *Document) IsModified() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text != d.snapshot
}

// IsSaved reports whether a file path is associated with the document
func (d *Document) IsSaved() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.path != ""
}

// Replace swaps in new contents wholesale, as done by New and Open
func (d *Document) Replace(path, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.path = path
	d.text = text
	d.snapshot = text
}

// MarkSaved adopts path and the contents read back from it after a write
func (d *Document) MarkSaved(path, persisted string) {
	d.Replace(path, persisted)
}

// DocumentState is a point in time copy of a document
type DocumentState struct {
	Text       string
	Snapshot   string
	Path       string
	IsModified bool
	IsSaved    bool
}

// State returns a consistent copy of the document
func (d *Document) State() DocumentState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return DocumentState{
		Text:       d.text,
		Snapshot:   d.snapshot,
		Path:       d.path,
		IsModified: d.text != d.snapshot,
		IsSaved:    d.path != "",
	}
}
