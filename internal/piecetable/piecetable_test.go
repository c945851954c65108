package piecetable

import (
	"errors"
	"testing"
)

func text(t *testing.T, tbl *Table) string {
	t.Helper()
	return string(tbl.Text())
}

func TestInsertAtStartMiddleEnd(t *testing.T) {
	tbl := New()
	if err := tbl.Insert([]byte("abc"), 0); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if got := text(t, tbl); got != "abc" {
		t.Fatalf("got %q, want abc", got)
	}

	if err := tbl.Insert([]byte("d"), 3); err != nil {
		t.Fatalf("insert at end: %v", err)
	}
	if got := text(t, tbl); got != "abcd" {
		t.Fatalf("got %q, want abcd", got)
	}

	if err := tbl.Insert([]byte("X"), 1); err != nil {
		t.Fatalf("insert in middle: %v", err)
	}
	if got := text(t, tbl); got != "aXbcd" {
		t.Fatalf("got %q, want aXbcd", got)
	}
}

func TestInsertOutOfRange(t *testing.T) {
	tbl := New()
	tbl.Insert([]byte("abc"), 0)
	if err := tbl.Insert([]byte("x"), 10); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("got %v, want ErrOutOfRange", err)
	}
	if err := tbl.Insert([]byte("x"), -1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("got %v, want ErrOutOfRange", err)
	}
}

// Scenario 1 from the editor's round-trip invariants: insert, insert,
// delete, then undo/redo must retrace every intermediate state exactly.
func TestDeleteSplitAndUndoRedo(t *testing.T) {
	tbl := New()
	tbl.Insert([]byte("abc"), 0)
	tbl.Insert([]byte("d"), 3)
	if err := tbl.Delete(0, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := text(t, tbl); got != "cd" {
		t.Fatalf("got %q, want cd", got)
	}

	if err := tbl.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got := text(t, tbl); got != "abcd" {
		t.Fatalf("after undo got %q, want abcd", got)
	}

	if err := tbl.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got := text(t, tbl); got != "abc" {
		t.Fatalf("after second undo got %q, want abc", got)
	}

	if err := tbl.Redo(); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if got := text(t, tbl); got != "abcd" {
		t.Fatalf("after redo got %q, want abcd", got)
	}

	if err := tbl.Redo(); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if got := text(t, tbl); got != "cd" {
		t.Fatalf("after second redo got %q, want cd", got)
	}
}

// Scenario 2: a delete that straddles a single piece entirely (tri-split).
func TestDeleteStraddleSinglePiece(t *testing.T) {
	tbl := New()
	tbl.Insert([]byte("abcdef"), 0)
	if err := tbl.Delete(1, 5); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := text(t, tbl); got != "af" {
		t.Fatalf("got %q, want af", got)
	}
}

func TestDeleteAcrossPieceBoundaries(t *testing.T) {
	tbl := New()
	tbl.Insert([]byte("ab"), 0)
	tbl.Insert([]byte("cd"), 2)
	tbl.Insert([]byte("ef"), 4)
	if err := tbl.Delete(1, 5); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := text(t, tbl); got != "af" {
		t.Fatalf("got %q, want af", got)
	}
}

func TestDeleteOutOfRange(t *testing.T) {
	tbl := New()
	tbl.Insert([]byte("abc"), 0)
	if err := tbl.Delete(0, 0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("got %v, want ErrOutOfRange for empty range", err)
	}
	if err := tbl.Delete(2, 1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("got %v, want ErrOutOfRange for inverted range", err)
	}
	if err := tbl.Delete(0, 10); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("got %v, want ErrOutOfRange for range past end", err)
	}
}

func TestUndoRedoExhaustion(t *testing.T) {
	tbl := New()
	if err := tbl.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("got %v, want ErrNothingToUndo", err)
	}
	if err := tbl.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Fatalf("got %v, want ErrNothingToRedo", err)
	}
	tbl.Insert([]byte("a"), 0)
	if err := tbl.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Fatalf("got %v, want ErrNothingToRedo after a fresh insert", err)
	}
}

// Scenario 7: a new mutation after undoing truncates redo history.
func TestNewActionTruncatesRedoHistory(t *testing.T) {
	tbl := New()
	tbl.Insert([]byte("a"), 0)
	if err := tbl.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	tbl.Insert([]byte("b"), 0)
	if err := tbl.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Fatalf("got %v, want ErrNothingToRedo after truncation", err)
	}
	if got := text(t, tbl); got != "b" {
		t.Fatalf("got %q, want b", got)
	}
}

func TestAppendOriginalIsNotUndoable(t *testing.T) {
	tbl := New()
	tbl.AppendOriginal([]byte("loaded\n"))
	if tbl.ActionsTaken() {
		t.Fatalf("ActionsTaken true after only AppendOriginal")
	}
	if err := tbl.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("got %v, want ErrNothingToUndo", err)
	}
}

func TestMultiByteRunesPreserveByteLength(t *testing.T) {
	tbl := New()
	tbl.Insert([]byte("héllo"), 0)
	if got, want := tbl.TextLen(), len("héllo"); got != want {
		t.Fatalf("TextLen()=%d, want %d", got, want)
	}
	if err := tbl.Delete(1, 3); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := text(t, tbl); got != "hllo" {
		t.Fatalf("got %q, want hllo", got)
	}
}

func TestActionsTakenAfterInsert(t *testing.T) {
	tbl := New()
	if tbl.ActionsTaken() {
		t.Fatalf("ActionsTaken true on empty table")
	}
	tbl.Insert([]byte("a"), 0)
	if !tbl.ActionsTaken() {
		t.Fatalf("ActionsTaken false after an insert")
	}
}
