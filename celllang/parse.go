package celllang

import (
	"bufio"
	"errors"
	"io"
	"iter"

	"github.com/reusee/celltape/cellvm"
)

// Parse maps the eight command characters to unlinked instructions and drops everything else
func Parse(runes iter.Seq[rune]) iter.Seq[cellvm.Instruction] {
	return func(yield func(cellvm.Instruction) bool) {
		for r := range runes {
			var inst cellvm.Instruction
			switch r {
			case '+':
				inst = cellvm.Mutate(1)
			case '-':
				inst = cellvm.Mutate(-1)
			case '>':
				inst = cellvm.Move(1)
			case '<':
				inst = cellvm.Move(-1)
			case ',':
				inst = cellvm.Input()
			case '.':
				inst = cellvm.Output()
			case '[':
				inst = cellvm.JumpIfZero(0)
			case ']':
				inst = cellvm.JumpIfNonZero(0)
			default:
				continue
			}
			if !yield(inst) {
				return
			}
		}
	}
}

func Runes(src string) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range src {
			if !yield(r) {
				return
			}
		}
	}
}

// ReaderRunes yields runes from r until EOF.
// The returned func reports the first read error other than io.EOF.
func ReaderRunes(r io.Reader) (iter.Seq[rune], func() error) {
	var err error
	seq := func(yield func(rune) bool) {
		br, ok := r.(io.RuneReader)
		if !ok {
			br = bufio.NewReader(r)
		}
		for {
			c, _, e := br.ReadRune()
			if e != nil {
				if !errors.Is(e, io.EOF) {
					err = e
				}
				return
			}
			if !yield(c) {
				return
			}
		}
	}
	return seq, func() error {
		return err
	}
}
