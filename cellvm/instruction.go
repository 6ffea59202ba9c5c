package cellvm

import "fmt"

type Op uint8

const (
	OpMutate Op = iota + 1
	OpMove
	OpInput
	OpOutput
	OpJumpIfZero
	OpJumpIfNonZero
	OpReset
	OpTransfer
)

var opNames = [...]string{
	OpMutate:        "mutate",
	OpMove:          "move",
	OpInput:         "input",
	OpOutput:        "output",
	OpJumpIfZero:    "jz",
	OpJumpIfNonZero: "jnz",
	OpReset:         "reset",
	OpTransfer:      "transfer",
}

func (o Op) String() string {
	if int(o) < len(opNames) && opNames[o] != "" {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", o)
}

// Instruction is a single operation on the cell under the cursor.
// A holds the delta or jump offset, B the multiplier of a transfer.
type Instruction struct {
	Op Op
	A  int
	B  int
}

func Mutate(delta int) Instruction {
	return Instruction{Op: OpMutate, A: delta}
}

func Move(delta int) Instruction {
	return Instruction{Op: OpMove, A: delta}
}

func Input() Instruction {
	return Instruction{Op: OpInput}
}

func Output() Instruction {
	return Instruction{Op: OpOutput}
}

func JumpIfZero(offset int) Instruction {
	return Instruction{Op: OpJumpIfZero, A: offset}
}

func JumpIfNonZero(offset int) Instruction {
	return Instruction{Op: OpJumpIfNonZero, A: offset}
}

func Reset() Instruction {
	return Instruction{Op: OpReset}
}

// Transfer adds cell*multiplier to the cell at offset, then zeroes the cell
func Transfer(offset, multiplier int) Instruction {
	return Instruction{Op: OpTransfer, A: offset, B: multiplier}
}

func (i Instruction) String() string {
	switch i.Op {
	case OpMutate, OpMove, OpJumpIfZero, OpJumpIfNonZero:
		return fmt.Sprintf("%s(%+d)", i.Op, i.A)
	case OpTransfer:
		return fmt.Sprintf("%s(%d, %d)", i.Op, i.A, i.B)
	}
	return i.Op.String()
}
