package cursor

import "strings"

// AddText inserts text at the cursor's current byte position and
// advances the cursor to just past the inserted text. Text spanning
// multiple lines (containing '\n') splits the current line and pushes
// new line-index entries for each line it introduces.
func (w *Window) AddText(text string) error {
	if text == "" {
		return nil
	}

	row0, col0 := w.row, w.col
	segments := strings.Split(text, "\n")
	k := len(segments)
	fromEnd := w.lines.Get(row0) + 1 - col0

	for i, seg := range segments {
		switch {
		case i == 0:
			w.lines.Add(row0, len(seg))
			if k > 1 {
				w.lines.Add(row0, -fromEnd)
			}
		case i == k-1:
			w.lines.InsertAt(row0+i, len(seg)+fromEnd)
		default:
			w.lines.InsertAt(row0+i, len(seg))
		}
	}

	if err := w.table.Insert([]byte(text), w.byteIndex); err != nil {
		return err
	}

	if k == 1 {
		w.Right(len(segments[0]))
		return nil
	}
	if err := w.Down(k - 1); err != nil {
		return err
	}
	w.GotoCol(len(segments[k-1]) + 1)
	return nil
}

// DeleteText removes the half-open range of text between the cursor's
// current position and (row, col), in whichever order the two fall in
// document order. If the cursor was the later endpoint, it moves to the
// earlier one.
func (w *Window) DeleteText(row, col int) error {
	if row == w.row && col == w.col {
		return nil
	}
	if row == w.row {
		return w.deleteSingleLine(col)
	}
	return w.deleteMultiLine(row, col)
}

func (w *Window) deleteSingleLine(col int) error {
	laterIsCursor := col < w.col
	lo, hi := w.col, col
	if laterIsCursor {
		lo, hi = col, w.col
	}
	length := hi - lo

	if laterIsCursor {
		if err := w.table.Delete(w.byteIndex-length, w.byteIndex); err != nil {
			return err
		}
	} else {
		if err := w.table.Delete(w.byteIndex, w.byteIndex+length); err != nil {
			return err
		}
	}
	w.lines.Add(w.row, -length)

	if laterIsCursor {
		w.byteIndex -= length
		w.col -= length
		w.colWant = w.col
	}
	return nil
}

func (w *Window) deleteMultiLine(row, col int) error {
	firstRow, firstCol := w.row, w.col
	lastRow, lastCol := row, col
	laterIsCursor := false
	if row < w.row {
		firstRow, firstCol = row, col
		lastRow, lastCol = w.row, w.col
		laterIsCursor = true
	}

	if lastRow > w.lines.Len() {
		w.readLines(lastRow - w.lines.Len())
		if w.ioErr != nil {
			return w.ioErr
		}
		if lastRow > w.lines.Len() {
			lastRow = w.lines.Len()
			lastCol = w.lines.Get(lastRow) + 1
		}
	}

	if lastRow <= firstRow {
		// EOF was reached before a row distinct from the cursor's own
		// was found: the whole span collapses onto the cursor's row.
		return w.deleteSingleLine(lastCol)
	}

	total := w.lines.Get(firstRow) + 1 - (firstCol - 1)
	w.lines.Set(firstRow, firstCol-1)

	for i := 0; i < lastRow-firstRow-1; i++ {
		midLen := w.lines.Get(firstRow + 1)
		total += midLen + 1
		w.lines.RemoveAt(firstRow + 1)
	}

	lastLen := w.lines.Get(firstRow + 1)
	total += lastCol - 1
	remaining := lastLen - (lastCol - 1)
	w.lines.Add(firstRow, remaining)
	w.lines.RemoveAt(firstRow + 1)

	if !laterIsCursor {
		return w.table.Delete(w.byteIndex, w.byteIndex+total)
	}

	if err := w.table.Delete(w.byteIndex-total, w.byteIndex); err != nil {
		return err
	}
	w.row = firstRow
	w.col = firstCol
	w.colWant = firstCol
	w.byteIndex -= total
	return nil
}

// DeleteAll clears the document entirely and resets the cursor to
// (1, 1).
func (w *Window) DeleteAll() error {
	if w.table.TextLen() == 0 {
		return nil
	}
	if err := w.table.Delete(0, w.table.TextLen()); err != nil {
		return err
	}
	w.row, w.col, w.colWant, w.byteIndex = 1, 1, 1, 0
	w.lines.Reset()
	return nil
}

// DeleteToEnd removes everything from the cursor to the true end of the
// document, reading any unread tail of the file first.
func (w *Window) DeleteToEnd() error {
	if err := w.readToEOF(); err != nil {
		return err
	}
	last := w.lines.Len()
	return w.DeleteText(last, w.lines.Get(last)+1)
}
