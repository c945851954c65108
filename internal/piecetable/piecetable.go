// Package piecetable implements the append-only storage engine at the
// heart of the editor: an immutable original buffer, an append-only add
// buffer, and an ordered table of pieces pointing into one or the other.
// Mutation never rewrites either buffer in place; it only ever
// deactivates existing pieces and activates new ones, which is what
// makes undo/redo a matter of toggling indices rather than rebuilding
// state.
package piecetable

// source identifies which backing buffer a piece's bytes live in.
type source int

const (
	sourceOriginal source = iota
	sourceAdd
)

// piece is one entry in the table: a half-open byte range into either
// the original or add buffer, plus whether it currently contributes to
// the document's visible text.
type piece struct {
	src    source
	start  int
	end    int
	active bool
}

func (p piece) length() int { return p.end - p.start }

// Table is a piece table. The zero value is not usable; call New.
type Table struct {
	original []byte
	add      []byte
	pieces   []piece

	textLen int

	cachedText []byte
	textFresh  bool

	// history holds one entry per mutating action (Insert or Delete).
	// Each entry lists the indices into pieces that the action toggled
	// active. Undo/Redo walk history by moving cursor and re-toggling
	// those same indices. Pieces are never removed from pieces, but a
	// mid-slice Insert or a Delete rebuild can still move an existing
	// piece to a new index; shiftHistoryIndices and remapHistory keep
	// every earlier entry pointing at the right piece when that happens.
	history [][]int
	cursor  int
}

// New returns an empty piece table.
func New() *Table {
	return &Table{textFresh: true}
}

// AppendOriginal appends data to the immutable original buffer and adds
// a single active piece covering it. Used only while loading a file; it
// is not undoable and does not participate in the action history.
func (t *Table) AppendOriginal(data []byte) {
	if len(data) == 0 {
		return
	}
	start := len(t.original)
	t.original = append(t.original, data...)
	t.pieces = append(t.pieces, piece{src: sourceOriginal, start: start, end: start + len(data), active: true})
	t.textLen += len(data)
	t.textFresh = false
}

// Insert adds text at byte offset at (0 <= at <= TextLen()). at==0 and
// at==TextLen() are handled without walking the table; an interior
// offset splits whichever active piece currently covers it into up to
// three pieces.
func (t *Table) Insert(text []byte, at int) error {
	if at < 0 || at > t.textLen {
		return ErrOutOfRange
	}

	addStart := len(t.add)
	t.add = append(t.add, text...)
	newPiece := piece{src: sourceAdd, start: addStart, end: addStart + len(text), active: true}

	var action []int
	switch {
	case at == 0:
		t.shiftHistoryIndices(0, 1)
		t.pieces = append(t.pieces, piece{})
		copy(t.pieces[1:], t.pieces[:len(t.pieces)-1])
		t.pieces[0] = newPiece
		action = []int{0}

	case at == t.textLen:
		t.pieces = append(t.pieces, newPiece)
		action = []int{len(t.pieces) - 1}

	default:
		curr := 0
		for i := range t.pieces {
			p := t.pieces[i]
			if !p.active {
				continue
			}
			length := p.length()
			switch {
			case curr == at:
				t.shiftHistoryIndices(i, 1)
				t.pieces = append(t.pieces, piece{})
				copy(t.pieces[i+1:], t.pieces[i:len(t.pieces)-1])
				t.pieces[i] = newPiece
				action = []int{i}
			case curr+length > at:
				split := at - curr
				left := piece{src: p.src, start: p.start, end: p.start + split, active: true}
				right := piece{src: p.src, start: p.start + split, end: p.end, active: true}
				rest := make([]piece, len(t.pieces)-i-1)
				copy(rest, t.pieces[i+1:])
				out := make([]piece, 0, len(t.pieces)+3)
				out = append(out, t.pieces[:i]...)
				deactivated := p
				deactivated.active = false
				out = append(out, deactivated, left, newPiece, right)
				out = append(out, rest...)
				// Old piece i keeps its slot (now the deactivated copy);
				// everything after it moved down by the 3 new entries.
				t.shiftHistoryIndices(i+1, 3)
				t.pieces = out
				action = []int{i, i + 1, i + 2, i + 3}
			}
			if action != nil {
				break
			}
			curr += length
		}
	}

	t.recordAction(action)
	t.textLen += len(text)
	t.textFresh = false
	return nil
}

// Delete removes the half-open byte range [lo, hi). hi must be in
// (0, TextLen()] and lo must be in [0, hi).
func (t *Table) Delete(lo, hi int) error {
	if hi <= 0 || hi > t.textLen || lo < 0 || lo >= hi {
		return ErrOutOfRange
	}

	curr := 0
	var action []int
	out := make([]piece, 0, len(t.pieces)+2)
	// mapping[i] is where old piece i's representative copy (itself if
	// untouched, its deactivated copy otherwise) lands in out, so every
	// history entry recorded before this call can be rewritten to match
	// the rebuilt slice instead of going stale.
	mapping := make([]int, len(t.pieces))

	for i := 0; i < len(t.pieces); i++ {
		p := t.pieces[i]
		mapping[i] = len(out)
		if !p.active {
			out = append(out, p)
			continue
		}
		length := p.length()

		switch {
		case lo <= curr && hi >= curr+length:
			// Fully contained: deactivate, nothing survives.
			deactivated := p
			deactivated.active = false
			action = append(action, len(out))
			out = append(out, deactivated)

		case lo > curr && lo < curr+length && hi >= curr+length:
			// Delete starts inside this piece and runs through (or
			// past) its end: the left prefix survives.
			split := lo - curr
			deactivated := p
			deactivated.active = false
			action = append(action, len(out))
			out = append(out, deactivated)
			left := piece{src: p.src, start: p.start, end: p.start + split, active: true}
			action = append(action, len(out))
			out = append(out, left)

		case lo <= curr && hi > curr && hi < curr+length:
			// Delete ends inside this piece, started at or before its
			// start: the right suffix survives.
			split := hi - curr
			deactivated := p
			deactivated.active = false
			action = append(action, len(out))
			out = append(out, deactivated)
			right := piece{src: p.src, start: p.start + split, end: p.end, active: true}
			action = append(action, len(out))
			out = append(out, right)

		case lo > curr && hi < curr+length:
			// Both endpoints strictly interior: piece is straddled,
			// prefix and suffix both survive.
			splitA := lo - curr
			splitB := hi - curr
			deactivated := p
			deactivated.active = false
			action = append(action, len(out))
			out = append(out, deactivated)
			left := piece{src: p.src, start: p.start, end: p.start + splitA, active: true}
			action = append(action, len(out))
			out = append(out, left)
			right := piece{src: p.src, start: p.start + splitB, end: p.end, active: true}
			action = append(action, len(out))
			out = append(out, right)

		default:
			out = append(out, p)
		}

		curr += length
	}

	t.pieces = out
	t.remapHistory(mapping)
	t.recordAction(action)
	t.textLen -= hi - lo
	t.textFresh = false
	return nil
}

func (t *Table) recordAction(action []int) {
	t.history = t.history[:t.cursor]
	t.history = append(t.history, action)
	t.cursor = len(t.history)
}

// shiftHistoryIndices adds delta to every recorded piece index at or
// after at, compensating for a mid-slice insertion of delta new
// entries at that position. Insert only ever inserts, never
// reorders, so a constant shift past the insertion point is exact.
func (t *Table) shiftHistoryIndices(at, delta int) {
	for _, action := range t.history {
		for j, idx := range action {
			if idx >= at {
				action[j] = idx + delta
			}
		}
	}
}

// remapHistory rewrites every recorded piece index through mapping,
// compensating for Delete's full rebuild of the piece slice.
func (t *Table) remapHistory(mapping []int) {
	for _, action := range t.history {
		for j, idx := range action {
			action[j] = mapping[idx]
		}
	}
}

// Undo reverts the most recently applied, not-yet-undone action by
// toggling every piece index it recorded.
func (t *Table) Undo() error {
	if t.cursor == 0 {
		return ErrNothingToUndo
	}
	t.toggle(t.history[t.cursor-1])
	t.cursor--
	return nil
}

// Redo reapplies the action most recently undone.
func (t *Table) Redo() error {
	if t.cursor == len(t.history) {
		return ErrNothingToRedo
	}
	t.toggle(t.history[t.cursor])
	t.cursor++
	return nil
}

func (t *Table) toggle(action []int) {
	for _, idx := range action {
		p := &t.pieces[idx]
		p.active = !p.active
		if p.active {
			t.textLen += p.length()
		} else {
			t.textLen -= p.length()
		}
	}
	t.textFresh = false
}

// ActionsTaken reports whether any undoable mutation has ever been
// applied to the table, regardless of the current undo/redo position.
func (t *Table) ActionsTaken() bool {
	return len(t.history) > 0
}

// TextLen returns the length, in bytes, of the currently visible
// document.
func (t *Table) TextLen() int { return t.textLen }

// Text materializes and returns the currently visible document. The
// result is cached until the next mutation invalidates it.
func (t *Table) Text() []byte {
	if !t.textFresh {
		buf := make([]byte, 0, t.textLen)
		for _, p := range t.pieces {
			if !p.active {
				continue
			}
			src := t.original
			if p.src == sourceAdd {
				src = t.add
			}
			buf = append(buf, src[p.start:p.end]...)
		}
		t.cachedText = buf
		t.textFresh = true
	}
	return t.cachedText
}
