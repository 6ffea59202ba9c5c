package celllang

import (
	"io"
	"iter"
	"slices"

	"github.com/reusee/celltape/cellvm"
)

// Compile parses, optionally optimizes, and links a program.
// No program is returned on error.
func Compile(runes iter.Seq[rune], optimize bool) (cellvm.Program, error) {
	return finish(slices.Collect(Parse(runes)), optimize)
}

func CompileString(src string, optimize bool) (cellvm.Program, error) {
	return Compile(Runes(src), optimize)
}

func CompileReader(r io.Reader, optimize bool) (cellvm.Program, error) {
	runes, readErr := ReaderRunes(r)
	insts := slices.Collect(Parse(runes))
	if err := readErr(); err != nil {
		return nil, err
	}
	return finish(insts, optimize)
}

func finish(insts []cellvm.Instruction, optimize bool) (cellvm.Program, error) {
	if optimize {
		insts = Optimize(insts)
	}
	if err := Link(insts); err != nil {
		return nil, err
	}
	return cellvm.Program(insts), nil
}
