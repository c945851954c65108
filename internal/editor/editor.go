// Package editor wires the piece table, line index, file gateway, and
// cursor window together behind the query and mutation surface the rest
// of the program uses. It owns nothing the cursor package doesn't
// already implement; it exists to give those four collaborators a
// single point of construction and to add the save/load concerns none
// of them need to know about.
package editor

import (
	"bufio"
	"fmt"
	"os"

	"github.com/andrewkdinh/via/internal/cursor"
	"github.com/andrewkdinh/via/internal/filegateway"
	"github.com/andrewkdinh/via/internal/lineindex"
	"github.com/andrewkdinh/via/internal/piecetable"
)

// Editor is a single open document: its backing piece table, line
// index, and cursor, plus the path it was opened from (or will be saved
// to).
type Editor struct {
	path   string
	table  *piecetable.Table
	lines  *lineindex.Index
	gw     *filegateway.Gateway
	cursor *cursor.Window
}

// Open opens path for editing. An empty or nonexistent path yields an
// empty document; a path naming a directory returns
// filegateway.ErrUnsupportedTarget.
func Open(path string) (*Editor, error) {
	gw, err := filegateway.Open(path)
	if err != nil {
		return nil, err
	}

	table := piecetable.New()
	lines := lineindex.New()
	win := cursor.New(table, lines, gw)
	if err := win.LoadInitial(); err != nil {
		return nil, fmt.Errorf("editor: load %s: %w", path, err)
	}

	return &Editor{path: path, table: table, lines: lines, gw: gw, cursor: win}, nil
}

// FilePath returns the path the document will be saved to.
func (e *Editor) FilePath() string { return e.path }

// SetPath changes the path future Save calls with no explicit path will
// use, without writing anything.
func (e *Editor) SetPath(path string) { e.path = path }

// Text returns the full document.
func (e *Editor) Text() []byte { return e.table.Text() }

// TextLine returns the text of row r, excluding its trailing newline.
func (e *Editor) TextLine(r int) ([]byte, error) {
	return e.TextLines(r, r+1)
}

// TextLines returns the text spanning rows [first, last), joined with
// '\n' but without a trailing newline after the last row.
func (e *Editor) TextLines(first, last int) ([]byte, error) {
	if first >= last {
		return nil, fmt.Errorf("editor: invalid line range [%d,%d)", first, last)
	}
	start, end := 0, 0
	for row := 1; row <= e.lines.Len() && row < last; row++ {
		ln := e.lines.Get(row)
		if row < first {
			start += ln + 1
			end = start
		} else {
			end += ln + 1
		}
	}
	text := e.table.Text()
	if end <= start {
		return text[start:start], nil
	}
	return text[start : end-1], nil
}

// NumLines returns the number of lines currently known to the editor.
func (e *Editor) NumLines() int { return e.lines.Len() }

// LineLen returns the byte length of row r, excluding its newline.
func (e *Editor) LineLen(r int) int { return e.lines.Get(r) }

// NumCols is an alias for LineLen, matching spec.md's public query
// name: the number of columns a cursor can occupy on row r is its
// length plus the one-past-the-end position, but callers combine this
// with +1 themselves where that matters (e.g. GotoLastCol).
func (e *Editor) NumCols(r int) int { return e.lines.Get(r) }

// Row returns the cursor's current 1-indexed row.
func (e *Editor) Row() int { return e.cursor.Row() }

// Col returns the cursor's current 1-indexed column.
func (e *Editor) Col() int { return e.cursor.Col() }

// TextMatches reports whether no mutation has ever been recorded in the
// document's history. Undoing every mutation does not make it true
// again, and neither does Save.
func (e *Editor) TextMatches() bool { return !e.table.ActionsTaken() }

// Up moves the cursor up by at most n rows.
func (e *Editor) Up(n int) { e.cursor.Up(n) }

// Down moves the cursor down by at most n rows, reading ahead as
// needed.
func (e *Editor) Down(n int) error { return e.cursor.Down(n) }

// Left moves the cursor left by at most n columns.
func (e *Editor) Left(n int) { e.cursor.Left(n) }

// Right moves the cursor right by at most n columns.
func (e *Editor) Right(n int) { e.cursor.Right(n) }

// GotoCol moves the cursor to column c on the current row.
func (e *Editor) GotoCol(c int) { e.cursor.GotoCol(c) }

// GotoRow moves the cursor to row r, reading ahead as needed.
func (e *Editor) GotoRow(r int) error { return e.cursor.GotoRow(r) }

// Goto moves the cursor to (r, c), reading ahead as needed.
func (e *Editor) Goto(r, c int) error { return e.cursor.Goto(r, c) }

// GotoLastCol moves the cursor to one past the last character of the
// current row.
func (e *Editor) GotoLastCol() { e.cursor.GotoLastCol() }

// GotoLastRow reads the rest of the file and moves the cursor to the
// start of the final row.
func (e *Editor) GotoLastRow() error { return e.cursor.GotoLastRow() }

// AddText inserts text at the cursor.
func (e *Editor) AddText(text string) error { return e.cursor.AddText(text) }

// DeleteText removes the text between the cursor and (row, col).
func (e *Editor) DeleteText(row, col int) error { return e.cursor.DeleteText(row, col) }

// DeleteAll clears the document.
func (e *Editor) DeleteAll() error { return e.cursor.DeleteAll() }

// DeleteToEnd removes everything from the cursor to the end of the
// document.
func (e *Editor) DeleteToEnd() error { return e.cursor.DeleteToEnd() }

// Undo reverts the most recent not-yet-undone mutation.
func (e *Editor) Undo() error { return e.table.Undo() }

// Redo reapplies the most recently undone mutation.
func (e *Editor) Redo() error { return e.table.Redo() }

// Save writes the current document to path, or to the editor's current
// path if path is empty. On success, future TextMatches calls reflect
// the new on-disk state only once the document is reopened; Save itself
// does not reset the undo history, matching the teacher's own buffer,
// which never equates "saved" with "no pending undo."
func (e *Editor) Save(path string) error {
	if path != "" {
		e.path = path
	}
	if e.path == "" {
		return fmt.Errorf("editor: no file path to save to")
	}

	f, err := os.Create(e.path)
	if err != nil {
		return fmt.Errorf("editor: save %s: %w", e.path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.Write(e.table.Text()); err != nil {
		return fmt.Errorf("editor: save %s: %w", e.path, err)
	}
	return w.Flush()
}

// Close releases the underlying file handle, if any.
func (e *Editor) Close() error { return e.gw.Close() }
