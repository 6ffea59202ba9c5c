package cellvm

import (
	"errors"
	"fmt"
	"io"
)

var ErrCursorOutOfRange = errors.New("cursor out of allocated tape")

type Machine struct {
	Program Program
	IP      int
	Tape    *Tape
	Steps   int

	buf [1]byte
}

type Option func(*Machine)

func WithTapeSize(size int) Option {
	return func(m *Machine) {
		m.Tape = NewTape(size)
	}
}

func NewMachine(program Program, options ...Option) *Machine {
	m := &Machine{
		Program: program,
	}
	for _, option := range options {
		option(m)
	}
	if m.Tape == nil {
		m.Tape = NewTape(DefaultTapeSize)
	}
	return m
}

// Run executes a linked program on a fresh tape and returns the number of executed instructions
func Run(program Program, r io.Reader, w io.Writer, options ...Option) (int, error) {
	return NewMachine(program, options...).Run(r, w)
}

// Done reports whether the instruction pointer has fallen off the program
func (m *Machine) Done() bool {
	return m.IP < 0 || m.IP >= len(m.Program)
}

// Run steps until the program ends or a step fails.
// The returned count includes steps from previous calls.
func (m *Machine) Run(r io.Reader, w io.Writer) (int, error) {
	for !m.Done() {
		if err := m.Step(r, w); err != nil {
			return m.Steps, err
		}
	}
	return m.Steps, nil
}

func (m *Machine) Step(r io.Reader, w io.Writer) error {
	tape := m.Tape
	inst := m.Program[m.IP]

	switch inst.Op {

	case OpMutate:
		if tape.Cursor < 0 || tape.Cursor >= len(tape.Cells) {
			return fmt.Errorf("mutate at %d: %w: cursor %d, tape length %d",
				m.IP, ErrCursorOutOfRange, tape.Cursor, len(tape.Cells))
		}
		tape.Cells[tape.Cursor] += byte(inst.A)

	case OpMove:
		tape.Move(inst.A)

	case OpInput:
		// exhausted or failing input leaves the cell as is
		if n, _ := r.Read(m.buf[:]); n == 1 {
			tape.Cells[tape.Cursor] = m.buf[0]
		}

	case OpOutput:
		m.buf[0] = tape.Cells[tape.Cursor]
		n, err := w.Write(m.buf[:])
		if err == nil && n != 1 {
			err = io.ErrShortWrite
		}
		if err != nil {
			return fmt.Errorf("output at %d: %w", m.IP, err)
		}

	case OpJumpIfZero:
		if tape.Cells[tape.Cursor] == 0 {
			m.IP += inst.A
		}

	case OpJumpIfNonZero:
		if tape.Cells[tape.Cursor] != 0 {
			m.IP += inst.A
		}

	case OpReset:
		tape.Cells[tape.Cursor] = 0

	case OpTransfer:
		dest := tape.Offset(inst.A)
		source := tape.Cells[tape.Cursor]
		tape.Cells[dest] += byte(int(source) * inst.B)
		tape.Cells[tape.Cursor] = 0

	default:
		return fmt.Errorf("bad instruction at %d: %v", m.IP, inst)
	}

	m.IP++
	m.Steps++
	return nil
}
