package celllang

import (
	"errors"
	"fmt"
)

var (
	ErrUnmatchedOpen  = errors.New("unmatched opening bracket")
	ErrUnmatchedClose = errors.New("unmatched closing bracket")
)

type BracketKind uint8

const (
	UnmatchedOpen BracketKind = iota + 1
	UnmatchedClose
)

// BracketError reports an unbalanced branch.
// Pos indexes the instruction sequence the linker scanned, not the source text.
type BracketError struct {
	Kind BracketKind
	Pos  int
}

func (b *BracketError) Error() string {
	return fmt.Sprintf("%s at index %d", b.Unwrap(), b.Pos)
}

func (b *BracketError) Unwrap() error {
	if b.Kind == UnmatchedOpen {
		return ErrUnmatchedOpen
	}
	return ErrUnmatchedClose
}
