package cellvm

const DefaultTapeSize = 1024

// Tape is a zero-initialized byte buffer that grows in both directions.
// Cells left of index 0 are reached by reallocating and rebasing the cursor,
// so indices stay non-negative.
type Tape struct {
	Cells  []byte
	Cursor int
}

func NewTape(size int) *Tape {
	if size < 1 {
		size = 1
	}
	return &Tape{
		Cells: make([]byte, size),
	}
}

// Move shifts the cursor by delta, growing the tape when needed
func (t *Tape) Move(delta int) {
	t.Cursor = t.reach(t.Cursor + delta)
}

// Get returns the cell at the cursor
func (t *Tape) Get() byte {
	return t.Cells[t.Cursor]
}

// Set writes the cell at the cursor
func (t *Tape) Set(b byte) {
	t.Cells[t.Cursor] = b
}

// Offset returns the index of the cell delta away from the cursor,
// allocating it first. The cursor may be rebased.
func (t *Tape) Offset(delta int) int {
	return t.reach(t.Cursor + delta)
}

func (t *Tape) reach(pos int) int {
	for pos < 0 {
		// double and copy the old contents into the upper half
		n := max(len(t.Cells), 1)
		grown := make([]byte, 2*n)
		copy(grown[n:], t.Cells)
		t.Cells = grown
		t.Cursor += n
		pos += n
	}
	if pos >= len(t.Cells) {
		grown := make([]byte, max(2*pos, pos+1))
		copy(grown, t.Cells)
		t.Cells = grown
	}
	return pos
}
