package piecetable

import "errors"

// ErrOutOfRange is returned when an insert or delete offset falls outside
// the current document bounds.
var ErrOutOfRange = errors.New("piecetable: offset out of range")

// ErrNothingToUndo is returned by Undo when the action history cursor is
// already at the oldest recorded action.
var ErrNothingToUndo = errors.New("piecetable: nothing to undo")

// ErrNothingToRedo is returned by Redo when the action history cursor is
// already at the newest recorded action.
var ErrNothingToRedo = errors.New("piecetable: nothing to redo")
