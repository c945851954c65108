// Package lineindex tracks, for each line currently known to the editor,
// its length in bytes excluding the trailing newline. It is kept in
// lockstep with the piece table by the cursor package on every mutation
// and file read; it never derives line lengths by rescanning text.
package lineindex

// Index is an ordered sequence of per-line byte lengths, one entry per
// known line, addressed with 1-indexed row numbers matching the cursor
// window's coordinate system. A freshly constructed Index always has at
// least one entry, matching the invariant that a document always has at
// least one line.
type Index struct {
	lens []int
}

// New returns an index with a single, empty line.
func New() *Index {
	return &Index{lens: []int{0}}
}

// Len returns the number of known lines.
func (ix *Index) Len() int { return len(ix.lens) }

// Get returns the byte length of row (1-indexed), excluding any
// trailing newline.
func (ix *Index) Get(row int) int { return ix.lens[row-1] }

// Set overwrites the byte length of row.
func (ix *Index) Set(row, n int) { ix.lens[row-1] = n }

// Add adjusts the byte length of row by delta, which may be negative.
func (ix *Index) Add(row, delta int) { ix.lens[row-1] += delta }

// Append adds a new line of length n to the end of the index.
func (ix *Index) Append(n int) { ix.lens = append(ix.lens, n) }

// InsertAt inserts a new line of length n so that it becomes row,
// shifting every line at or after the old row down by one.
func (ix *Index) InsertAt(row, n int) {
	ix.lens = append(ix.lens, 0)
	copy(ix.lens[row:], ix.lens[row-1:len(ix.lens)-1])
	ix.lens[row-1] = n
}

// RemoveAt deletes row entirely, shifting every later line up by one.
// The index must have more than one line remaining.
func (ix *Index) RemoveAt(row int) {
	ix.lens = append(ix.lens[:row-1], ix.lens[row:]...)
}

// Reset collapses the index back to a single empty line, matching a
// freshly truncated document.
func (ix *Index) Reset() {
	ix.lens = []int{0}
}
