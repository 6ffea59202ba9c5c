package cellconfigs

import (
	"errors"

	"github.com/reusee/celltape/cellvm"
	"github.com/reusee/celltape/cmds"
	"github.com/reusee/celltape/configs"
	"github.com/reusee/celltape/vars"
)

var (
	tapeSizeFlag = cmds.Var[int]("-tape-size")
	repeatFlag   = cmds.Var[int]("-repeat")
	historyFlag  = cmds.Var[string]("-history")
	noOptFlag    = cmds.Switch("-no-opt")
)

func init() {
	cmds.GlobalExecutor.Describe("-tape-size", "initial number of tape cells")
	cmds.GlobalExecutor.Describe("-repeat", "benchmark iterations")
	cmds.GlobalExecutor.Describe("-history", "sqlite file to record benchmark reports")
	cmds.GlobalExecutor.Describe("-no-opt", "disable the peephole optimizer")
}

type TapeSize int

func (Module) TapeSize(
	loader configs.Loader,
) TapeSize {
	return TapeSize(vars.FirstNonZero(
		*tapeSizeFlag,
		configs.First[int](loader, "tape_size"),
		cellvm.DefaultTapeSize,
	))
}

type Optimize bool

func (Module) Optimize(
	loader configs.Loader,
) Optimize {
	if *noOptFlag {
		return false
	}
	optimize := true
	if err := loader.AssignFirst("optimize", &optimize); err != nil && !errors.Is(err, configs.ErrValueNotFound) {
		panic(err)
	}
	return Optimize(optimize)
}

// Repeat is the number of benchmark iterations per program
type Repeat int

func (Module) Repeat(
	loader configs.Loader,
) Repeat {
	return Repeat(vars.FirstNonZero(
		*repeatFlag,
		configs.First[int](loader, "repeat"),
		1,
	))
}

type HistoryPath string

func (Module) HistoryPath(
	loader configs.Loader,
) HistoryPath {
	return HistoryPath(vars.FirstNonZero(
		*historyFlag,
		configs.First[string](loader, "history"),
	))
}
