package celllang

import "github.com/reusee/celltape/cellvm"

// Link sets the offsets of every bracket pair.
// An open bracket jumps forward to its close, the close jumps back to the open.
func Link(insts []cellvm.Instruction) error {
	var opens []int
	for i, inst := range insts {
		switch inst.Op {
		case cellvm.OpJumpIfZero:
			opens = append(opens, i)
		case cellvm.OpJumpIfNonZero:
			if len(opens) == 0 {
				return &BracketError{
					Kind: UnmatchedClose,
					Pos:  i,
				}
			}
			open := opens[len(opens)-1]
			opens = opens[:len(opens)-1]
			insts[i].A = open - i
			insts[open].A = i - open
		}
	}
	if len(opens) > 0 {
		return &BracketError{
			Kind: UnmatchedOpen,
			Pos:  opens[len(opens)-1],
		}
	}
	return nil
}
