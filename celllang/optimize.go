package celllang

import "github.com/reusee/celltape/cellvm"

// pass rewrites insts in place and returns the shortened slice
type pass func(insts []cellvm.Instruction) []cellvm.Instruction

var passes = []pass{
	mergeRuns(cellvm.OpMove),
	mergeRuns(cellvm.OpMutate),
	foldResets,
	foldTransfers,
}

// Optimize runs all passes until a full round no longer shrinks the sequence.
// The result shares the backing array of insts.
func Optimize(insts []cellvm.Instruction) []cellvm.Instruction {
	for {
		n := len(insts)
		for _, p := range passes {
			insts = p(insts)
		}
		if len(insts) == n {
			return insts
		}
	}
}

// mergeRuns collapses each run of op into one instruction carrying the sum; zero sums vanish
func mergeRuns(op cellvm.Op) pass {
	return func(insts []cellvm.Instruction) []cellvm.Instruction {
		out := insts[:0]
		for i := 0; i < len(insts); {
			if insts[i].Op != op {
				out = append(out, insts[i])
				i++
				continue
			}
			sum := 0
			for ; i < len(insts) && insts[i].Op == op; i++ {
				sum += insts[i].A
			}
			if sum != 0 {
				out = append(out, cellvm.Instruction{Op: op, A: sum})
			}
		}
		return out
	}
}

func isOp(op cellvm.Op) func(cellvm.Instruction) bool {
	return func(inst cellvm.Instruction) bool {
		return inst.Op == op
	}
}

func isDecrement(inst cellvm.Instruction) bool {
	return inst.Op == cellvm.OpMutate && inst.A == -1
}

func match(insts []cellvm.Instruction, pattern ...func(cellvm.Instruction) bool) bool {
	if len(insts) < len(pattern) {
		return false
	}
	for i, fn := range pattern {
		if !fn(insts[i]) {
			return false
		}
	}
	return true
}

var resetPattern = []func(cellvm.Instruction) bool{
	isOp(cellvm.OpJumpIfZero),
	isDecrement,
	isOp(cellvm.OpJumpIfNonZero),
}

// foldResets replaces [-] with a reset
func foldResets(insts []cellvm.Instruction) []cellvm.Instruction {
	out := insts[:0]
	for i := 0; i < len(insts); {
		if match(insts[i:], resetPattern...) {
			out = append(out, cellvm.Reset())
			i += len(resetPattern)
			continue
		}
		out = append(out, insts[i])
		i++
	}
	return out
}

// counter decremented after the body, as in [>+<-]
var transferPatternDecLast = []func(cellvm.Instruction) bool{
	isOp(cellvm.OpJumpIfZero),
	isOp(cellvm.OpMove),
	isOp(cellvm.OpMutate),
	isOp(cellvm.OpMove),
	isDecrement,
	isOp(cellvm.OpJumpIfNonZero),
}

// counter decremented before the body, as in [->+<]
var transferPatternDecFirst = []func(cellvm.Instruction) bool{
	isOp(cellvm.OpJumpIfZero),
	isDecrement,
	isOp(cellvm.OpMove),
	isOp(cellvm.OpMutate),
	isOp(cellvm.OpMove),
	isOp(cellvm.OpJumpIfNonZero),
}

// foldTransfers replaces loops that add a multiple of the counter cell to a single other cell
func foldTransfers(insts []cellvm.Instruction) []cellvm.Instruction {
	out := insts[:0]
	for i := 0; i < len(insts); {
		var to, mult, back int
		matched := false
		switch {
		case match(insts[i:], transferPatternDecLast...):
			to, mult, back = insts[i+1].A, insts[i+2].A, insts[i+3].A
			matched = true
		case match(insts[i:], transferPatternDecFirst...):
			to, mult, back = insts[i+2].A, insts[i+3].A, insts[i+4].A
			matched = true
		}
		if matched && to != 0 && to == -back {
			out = append(out, cellvm.Transfer(to, mult))
			i += 6
			continue
		}
		out = append(out, insts[i])
		i++
	}
	return out
}
