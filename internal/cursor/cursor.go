// Package cursor implements the cursor window: the editor's (row, col)
// position plus the motions and edit primitives that act on it. It sits
// directly on top of the piece table and line index, translating
// between byte offsets and line/column coordinates, and pulls more of
// the file in from the gateway whenever a motion or edit reaches past
// what has been read so far.
package cursor

import (
	"github.com/andrewkdinh/via/internal/filegateway"
	"github.com/andrewkdinh/via/internal/lineindex"
	"github.com/andrewkdinh/via/internal/piecetable"
)

// Window is the cursor: a 1-indexed (row, col) position, a sticky
// target column for vertical motion, and the byte offset into the
// document that (row, col) currently corresponds to.
type Window struct {
	table *piecetable.Table
	lines *lineindex.Index
	gw    *filegateway.Gateway

	row       int
	col       int
	colWant   int
	byteIndex int

	// loaded becomes true once the first line read from the gateway has
	// overwritten the line index's initial placeholder entry; every
	// line after that is a genuinely new row and gets appended instead.
	loaded bool

	ioErr error
}

// New constructs a cursor window at the document start. Call LoadInitial
// once before using it on a freshly opened file.
func New(table *piecetable.Table, lines *lineindex.Index, gw *filegateway.Gateway) *Window {
	return &Window{table: table, lines: lines, gw: gw, row: 1, col: 1, colWant: 1}
}

// LoadInitial reads the first line of the file, if any, into the piece
// table and line index. On an empty or missing file it records a single
// empty line instead, matching the invariant that a document always has
// at least one line.
func (w *Window) LoadInitial() error {
	read := w.readLines(1)
	if w.ioErr != nil {
		return w.ioErr
	}
	if read == 0 {
		w.loaded = true
	}
	return nil
}

func (w *Window) onLine(line []byte) {
	w.table.AppendOriginal(line)
	n := len(line)
	if n > 0 && line[n-1] == '\n' {
		n--
	}
	if !w.loaded {
		w.lines.Set(1, n)
		w.loaded = true
		return
	}
	w.lines.Append(n)
}

func (w *Window) readLines(n int) int {
	read, err := w.gw.ReadLines(n, w.onLine)
	if err != nil {
		w.ioErr = err
	}
	return read
}

func (w *Window) readToEOF() error {
	if err := w.gw.ReadToEOF(w.onLine); err != nil {
		w.ioErr = err
		return err
	}
	return nil
}

// Row returns the current 1-indexed row.
func (w *Window) Row() int { return w.row }

// Col returns the current 1-indexed column.
func (w *Window) Col() int { return w.col }

// ByteIndex returns the 0-indexed byte offset of the cursor in the
// document.
func (w *Window) ByteIndex() int { return w.byteIndex }

// Up moves the cursor up by at most n rows, clamping at row 1.
func (w *Window) Up(n int) {
	if n <= 0 || w.row == 1 {
		return
	}
	if n >= w.row {
		n = w.row - 1
	}

	w.byteIndex -= w.col
	for i := 1; i < n; i++ {
		w.byteIndex -= w.lines.Get(w.row-i) + 1
	}
	w.row -= n

	lineCols := w.lines.Get(w.row)
	if w.colWant < lineCols+1 {
		w.col = w.colWant
	} else {
		w.col = lineCols + 1
	}
	w.byteIndex -= lineCols + 1 - w.col
}

// Down moves the cursor down by at most n rows, reading further lines
// from the gateway if needed, and clamping at the last known line once
// EOF is reached.
func (w *Window) Down(n int) error {
	if n <= 0 {
		return nil
	}
	if w.row+n > w.lines.Len() {
		w.readLines(w.row + n - w.lines.Len())
		if w.ioErr != nil {
			return w.ioErr
		}
		if w.row+n > w.lines.Len() {
			n = w.lines.Len() - w.row
		}
		if n == 0 {
			return nil
		}
	}

	w.byteIndex += w.lines.Get(w.row) + 1 - w.col + 1
	for i := 1; i < n; i++ {
		w.byteIndex += w.lines.Get(w.row+i) + 1
	}
	w.row += n

	lineCols := w.lines.Get(w.row)
	if w.colWant < lineCols+1 {
		w.col = w.colWant
	} else {
		w.col = lineCols + 1
	}
	w.byteIndex += w.col - 1
	return nil
}

// Left moves the cursor left by at most n columns, clamping at col 1.
func (w *Window) Left(n int) {
	if n <= 0 {
		return
	}
	if n >= w.col {
		n = w.col - 1
		if n == 0 {
			return
		}
	}
	w.col -= n
	w.byteIndex -= n
	w.colWant = w.col
}

// Right moves the cursor right by at most n columns, clamping at one
// past the last character of the current line.
func (w *Window) Right(n int) {
	if n <= 0 {
		return
	}
	lineLen := w.lines.Get(w.row)
	if w.col == lineLen+1 {
		return
	}
	if w.col+n > lineLen+1 {
		w.GotoLastCol()
		return
	}
	w.col += n
	w.byteIndex += n
	w.colWant = w.col
}

// GotoCol moves the cursor to column c on the current row, clamping to
// one past the row's last character.
func (w *Window) GotoCol(c int) {
	lineLen := w.lines.Get(w.row)
	switch {
	case c > lineLen+1:
		w.GotoLastCol()
	case c == w.col:
		w.colWant = c
	case c < w.col:
		w.Left(w.col - c)
	default:
		w.Right(c - w.col)
	}
}

// GotoRow moves the cursor to row r, preserving col_want's effect on
// the landing column exactly as Up/Down do.
func (w *Window) GotoRow(r int) error {
	if r == w.row {
		return nil
	}
	if r < w.row {
		w.Up(w.row - r)
		return nil
	}
	return w.Down(r - w.row)
}

// Goto moves the cursor to (r, c).
func (w *Window) Goto(r, c int) error {
	if err := w.GotoRow(r); err != nil {
		return err
	}
	w.GotoCol(c)
	return nil
}

// GotoLastCol moves the cursor to one past the last character of the
// current row and sets col_want to match.
func (w *Window) GotoLastCol() {
	w.GotoCol(w.lines.Get(w.row) + 1)
}

// GotoLastRow reads the remainder of the file and moves the cursor to
// the start of the final row.
func (w *Window) GotoLastRow() error {
	if err := w.readToEOF(); err != nil {
		return err
	}
	return w.Goto(w.lines.Len(), 1)
}
