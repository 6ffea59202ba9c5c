package cellvm

import (
	"fmt"
	"io"
	"strings"
)

type Program []Instruction

func (p Program) Dump(w io.Writer) error {
	width := len(fmt.Sprint(len(p)))
	depth := 0
	for i, inst := range p {
		if inst.Op == OpJumpIfNonZero && depth > 0 {
			depth--
		}
		if _, err := fmt.Fprintf(w, "%*d  %s%s\n", width, i, strings.Repeat("  ", depth), inst); err != nil {
			return err
		}
		if inst.Op == OpJumpIfZero {
			depth++
		}
	}
	return nil
}

func (p Program) String() string {
	var sb strings.Builder
	_ = p.Dump(&sb)
	return sb.String()
}
