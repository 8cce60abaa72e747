// Package tape implements the byte-cell memory that bfvm programs operate on.
package tape

import "github.com/deepnoodle-ai/bfvm/errors"

// Tape is a sequence of byte cells with a cursor. It starts with a single
// zero cell, grows rightward one cell at a time and never grows leftward.
// The cursor always addresses an existing cell.
type Tape struct {
	cells  []byte
	cursor int
}

// New returns a tape holding one zero cell with the cursor on it.
func New() *Tape {
	return &Tape{cells: make([]byte, 1, 64)}
}

// Advance moves the cursor one cell right, appending a zero cell when the
// cursor passes the current end.
func (t *Tape) Advance() {
	t.cursor++
	if t.cursor == len(t.cells) {
		t.cells = append(t.cells, 0)
	}
}

// Retreat moves the cursor one cell left. At cell 0 it returns
// errors.ErrPointerUnderflow and leaves the tape unchanged.
func (t *Tape) Retreat() error {
	if t.cursor == 0 {
		return errors.ErrPointerUnderflow
	}
	t.cursor--
	return nil
}

// Increment adds one to the current cell, wrapping 255 to 0.
func (t *Tape) Increment() {
	t.cells[t.cursor]++
}

// Decrement subtracts one from the current cell, wrapping 0 to 255.
func (t *Tape) Decrement() {
	t.cells[t.cursor]--
}

// Read returns the value of the current cell.
func (t *Tape) Read() byte {
	return t.cells[t.cursor]
}

// Write sets the value of the current cell.
func (t *Tape) Write(value byte) {
	t.cells[t.cursor] = value
}

// Cursor returns the index of the current cell.
func (t *Tape) Cursor() int {
	return t.cursor
}

// Len returns the number of cells allocated so far.
func (t *Tape) Len() int {
	return len(t.cells)
}

// Cells returns a copy of the tape contents.
func (t *Tape) Cells() []byte {
	cells := make([]byte, len(t.cells))
	copy(cells, t.cells)
	return cells
}
