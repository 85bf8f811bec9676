package domain

import "slices"

// Document is the whole progress state: every level with its ordered words.
// Level order is kept so that rewriting the file produces stable diffs.
//
// Document is not safe for concurrent use; the store serialises access.
type Document struct {
	order []string
	words map[string][]WordRecord
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{words: make(map[string][]WordRecord)}
}

// SetLevel replaces the words of a level, appending the level to the order
// if it is new.
func (d *Document) SetLevel(level string, words []WordRecord) {
	if _, ok := d.words[level]; !ok {
		d.order = append(d.order, level)
	}
	d.words[level] = words
}

// HasLevel reports whether the level exists.
func (d *Document) HasLevel(level string) bool {
	_, ok := d.words[level]
	return ok
}

// Levels returns level keys in document order.
func (d *Document) Levels() []string {
	return slices.Clone(d.order)
}

// Words returns the backing slice of a level. Callers may mutate elements
// in place; the slice itself must not be retained past the caller's lock.
func (d *Document) Words(level string) ([]WordRecord, bool) {
	w, ok := d.words[level]
	return w, ok
}

// Len returns the total number of words across all levels.
func (d *Document) Len() int {
	n := 0
	for _, w := range d.words {
		n += len(w)
	}
	return n
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	c := &Document{
		order: slices.Clone(d.order),
		words: make(map[string][]WordRecord, len(d.words)),
	}
	for level, words := range d.words {
		c.words[level] = slices.Clone(words)
	}
	return c
}

// IndexOf returns the position of the word with the given identity inside
// the level, or -1.
func IndexOf(words []WordRecord, id Identity) int {
	return slices.IndexFunc(words, func(w WordRecord) bool { return w.Matches(id) })
}
