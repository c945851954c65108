package cursor

import (
	"testing"

	"github.com/andrewkdinh/via/internal/filegateway"
	"github.com/andrewkdinh/via/internal/lineindex"
	"github.com/andrewkdinh/via/internal/piecetable"
)

func newEmptyWindow(t *testing.T) (*Window, *piecetable.Table) {
	t.Helper()
	gw, err := filegateway.Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	tbl := piecetable.New()
	lines := lineindex.New()
	w := New(tbl, lines, gw)
	if err := w.LoadInitial(); err != nil {
		t.Fatalf("LoadInitial: %v", err)
	}
	return w, tbl
}

func TestAddTextSingleLine(t *testing.T) {
	w, tbl := newEmptyWindow(t)
	if err := w.AddText("hello"); err != nil {
		t.Fatalf("AddText: %v", err)
	}
	if got := string(tbl.Text()); got != "hello" {
		t.Fatalf("got %q, want hello", got)
	}
	if w.Row() != 1 || w.Col() != 6 {
		t.Fatalf("cursor at (%d,%d), want (1,6)", w.Row(), w.Col())
	}
	if w.ByteIndex() != 5 {
		t.Fatalf("ByteIndex()=%d, want 5", w.ByteIndex())
	}
}

func TestAddTextMultiLine(t *testing.T) {
	w, tbl := newEmptyWindow(t)
	if err := w.AddText("hello\nworld"); err != nil {
		t.Fatalf("AddText: %v", err)
	}
	if got := string(tbl.Text()); got != "hello\nworld" {
		t.Fatalf("got %q, want hello\\nworld", got)
	}
	if w.Row() != 2 || w.Col() != 6 {
		t.Fatalf("cursor at (%d,%d), want (2,6)", w.Row(), w.Col())
	}
	if w.lines.Len() != 2 {
		t.Fatalf("lines.Len()=%d, want 2", w.lines.Len())
	}
	if w.lines.Get(1) != 5 || w.lines.Get(2) != 5 {
		t.Fatalf("line lengths %d,%d, want 5,5", w.lines.Get(1), w.lines.Get(2))
	}
}

func TestAddTextSplitsLineAtCursor(t *testing.T) {
	w, tbl := newEmptyWindow(t)
	w.AddText("helloworld")
	w.Left(5) // cursor now between "hello" and "world"
	if err := w.AddText("\n"); err != nil {
		t.Fatalf("AddText: %v", err)
	}
	if got := string(tbl.Text()); got != "hello\nworld" {
		t.Fatalf("got %q, want hello\\nworld", got)
	}
	if w.lines.Get(1) != 5 || w.lines.Get(2) != 5 {
		t.Fatalf("line lengths %d,%d, want 5,5", w.lines.Get(1), w.lines.Get(2))
	}
	if w.Row() != 2 || w.Col() != 1 {
		t.Fatalf("cursor at (%d,%d), want (2,1)", w.Row(), w.Col())
	}
}

func TestMovementClampsAtBoundaries(t *testing.T) {
	w, _ := newEmptyWindow(t)
	w.AddText("abc\ndef\nghi")
	w.Goto(1, 1)

	w.Up(5)
	if w.Row() != 1 {
		t.Fatalf("Up past top: row=%d, want 1", w.Row())
	}

	w.Left(5)
	if w.Col() != 1 {
		t.Fatalf("Left past start: col=%d, want 1", w.Col())
	}

	if err := w.GotoLastRow(); err != nil {
		t.Fatalf("GotoLastRow: %v", err)
	}
	if w.Row() != 3 {
		t.Fatalf("GotoLastRow: row=%d, want 3", w.Row())
	}

	w.GotoLastCol()
	if w.Col() != 4 {
		t.Fatalf("GotoLastCol: col=%d, want 4", w.Col())
	}

	w.Right(10)
	if w.Col() != 4 {
		t.Fatalf("Right past end: col=%d, want 4", w.Col())
	}
}

func TestColWantStaysStickyAcrossShorterLines(t *testing.T) {
	w, _ := newEmptyWindow(t)
	w.AddText("abcdef\nxy\nabcdef")
	w.Goto(1, 5)
	if err := w.Down(1); err != nil {
		t.Fatalf("Down: %v", err)
	}
	if w.Col() != 3 {
		t.Fatalf("col on short line=%d, want 3 (clamped to line end+1)", w.Col())
	}
	if err := w.Down(1); err != nil {
		t.Fatalf("Down: %v", err)
	}
	if w.Col() != 5 {
		t.Fatalf("col after returning to a long line=%d, want 5 (col_want restored)", w.Col())
	}
}

func TestDeleteTextSingleLine(t *testing.T) {
	w, tbl := newEmptyWindow(t)
	w.AddText("hello world")
	w.Goto(1, 1)
	if err := w.DeleteText(1, 7); err != nil {
		t.Fatalf("DeleteText: %v", err)
	}
	if got := string(tbl.Text()); got != "world" {
		t.Fatalf("got %q, want world", got)
	}
	if w.Col() != 1 {
		t.Fatalf("col=%d, want 1", w.Col())
	}
}

func TestDeleteTextSingleLineCursorAsLaterEndpoint(t *testing.T) {
	w, tbl := newEmptyWindow(t)
	w.AddText("hello world")
	if err := w.DeleteText(1, 7); err != nil {
		t.Fatalf("DeleteText: %v", err)
	}
	if got := string(tbl.Text()); got != "hello " {
		t.Fatalf("got %q, want \"hello \"", got)
	}
	if w.Col() != 7 {
		t.Fatalf("col=%d, want 7", w.Col())
	}
}

func TestDeleteTextAcrossLines(t *testing.T) {
	w, tbl := newEmptyWindow(t)
	w.AddText("hello\n\nworld")
	w.Goto(1, 6) // end of "hello"
	if err := w.DeleteText(3, 1); err != nil {
		t.Fatalf("DeleteText: %v", err)
	}
	if got := string(tbl.Text()); got != "helloworld" {
		t.Fatalf("got %q, want helloworld", got)
	}
	if w.Row() != 1 || w.Col() != 6 {
		t.Fatalf("cursor at (%d,%d), want (1,6)", w.Row(), w.Col())
	}
	if w.lines.Len() != 1 {
		t.Fatalf("lines.Len()=%d, want 1", w.lines.Len())
	}
}

func TestDeleteToEnd(t *testing.T) {
	w, tbl := newEmptyWindow(t)
	w.AddText("keep\ndrop this\nand this")
	w.Goto(1, 5)
	if err := w.DeleteToEnd(); err != nil {
		t.Fatalf("DeleteToEnd: %v", err)
	}
	if got := string(tbl.Text()); got != "keep" {
		t.Fatalf("got %q, want keep", got)
	}
	if w.Row() != 1 || w.Col() != 5 {
		t.Fatalf("cursor at (%d,%d), want (1,5)", w.Row(), w.Col())
	}
}

func TestDeleteAll(t *testing.T) {
	w, tbl := newEmptyWindow(t)
	w.AddText("abc\ndef")
	if err := w.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if got := string(tbl.Text()); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
	if w.Row() != 1 || w.Col() != 1 || w.lines.Len() != 1 {
		t.Fatalf("state not reset: row=%d col=%d lines=%d", w.Row(), w.Col(), w.lines.Len())
	}
}
