package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/reusee/celltape/cellbench"
	"github.com/reusee/celltape/cellconfigs"
	"github.com/reusee/celltape/celllang"
	"github.com/reusee/celltape/cellvm"
	"github.com/reusee/celltape/cmds"
	"github.com/reusee/celltape/debugs"
	"github.com/reusee/celltape/logs"
	"github.com/reusee/celltape/modes"
	"github.com/reusee/celltape/nets"
	"github.com/reusee/celltape/sources"
	"github.com/reusee/dscope"
)

var (
	fileFlag  = cmds.Var[string]("-file")
	inputFlag = cmds.Var[string]("-input")
	benchFlag = cmds.Switch("-bench")
	dumpFlag  = cmds.Switch("-dump")
	tapFlag   = cmds.Switch("-tap")
	yamlFlag  = cmds.Switch("-yaml")
	evalFlag  = cmds.Collect[string]("-eval")
)

func init() {
	cmds.GlobalExecutor.Describe("-file", "program location: path, http(s) URL, or - for stdin")
	cmds.GlobalExecutor.Describe("-input", "benchmark input file")
	cmds.GlobalExecutor.Describe("-bench", "compare unoptimized and optimized runs")
	cmds.GlobalExecutor.Describe("-dump", "print the compiled program instead of running it")
	cmds.GlobalExecutor.Describe("-tap", "open a starlark repl on the final machine state")
	cmds.GlobalExecutor.Describe("-yaml", "print benchmark reports as yaml")
	cmds.GlobalExecutor.Describe("-eval", "evaluate a starlark expression on the final machine state")
}

func main() {
	cmds.Execute(os.Args[1:])

	if *fileFlag == "" {
		fmt.Fprintln(os.Stderr, "-file is required")
		os.Exit(2)
	}

	scope := dscope.New(
		modes.ForProduction(),
		new(logs.Module),
		new(cellconfigs.Module),
		new(nets.Module),
		new(sources.Module),
		new(cellbench.Module),
		new(debugs.Module),
	)

	var code int
	scope.Call(func(
		logger logs.Logger,
		load sources.Load,
		optimize cellconfigs.Optimize,
		tapeSize cellconfigs.TapeSize,
		bench cellbench.Bench,
		historyPath cellconfigs.HistoryPath,
		tap debugs.Tap,
	) {
		ctx := context.Background()

		src, err := load(ctx, *fileFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load %s: %v\n", *fileFlag, err)
			code = 1
			return
		}

		switch {

		case *benchFlag:
			code = runBench(ctx, logger, bench, string(historyPath), src)

		case *dumpFlag:
			code = dump(src, bool(optimize), os.Stdout)

		default:
			m, err := compile(src, bool(optimize), int(tapeSize))
			if err != nil {
				reportCompileError(err)
				code = 1
				return
			}
			if _, err := m.Run(os.Stdin, os.Stdout); err != nil {
				logger.ErrorContext(ctx, "run failed", "ip", m.IP, "steps", m.Steps, "error", err)
				code = 1
			}
			logger.DebugContext(ctx, "halted", "steps", m.Steps, "cursor", m.Tape.Cursor)
			if len(*evalFlag) > 0 {
				if err := evalAll(os.Stdout, *evalFlag, debugs.MachineGlobals(m)); err != nil {
					fmt.Fprintln(os.Stderr, err)
					code = 1
				}
			}
			if *tapFlag {
				tap(ctx, filepath.Base(*fileFlag), debugs.MachineGlobals(m))
			}

		}
	})
	os.Exit(code)
}

func compile(src string, optimize bool, tapeSize int) (*cellvm.Machine, error) {
	program, err := celllang.CompileString(src, optimize)
	if err != nil {
		return nil, err
	}
	return cellvm.NewMachine(program, cellvm.WithTapeSize(tapeSize)), nil
}

func reportCompileError(err error) {
	var bracketErr *celllang.BracketError
	if errors.As(err, &bracketErr) {
		fmt.Fprintf(os.Stderr, "parse error at index %d\n", bracketErr.Pos)
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

func dump(src string, optimize bool, w io.Writer) int {
	program, err := celllang.CompileString(src, optimize)
	if err != nil {
		reportCompileError(err)
		return 1
	}
	if err := program.Dump(w); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func evalAll(w io.Writer, exprs []string, globals map[string]any) error {
	for _, expr := range exprs {
		value, err := debugs.Eval(expr, globals)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s = %s\n", expr, value); err != nil {
			return err
		}
	}
	return nil
}

func runBench(
	ctx context.Context,
	logger logs.Logger,
	bench cellbench.Bench,
	historyPath string,
	src string,
) int {
	var input []byte
	if *inputFlag != "" {
		var err error
		input, err = os.ReadFile(*inputFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	name := filepath.Base(*fileFlag)
	report, err := bench(ctx, name, src, input, os.Stdout)
	if err != nil {
		reportCompileError(err)
		return 1
	}

	if *yamlFlag {
		err = report.WriteYAML(os.Stdout)
	} else {
		err = report.WriteText(os.Stdout)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if historyPath == "" {
		return 0
	}
	history, err := cellbench.OpenHistory(ctx, historyPath)
	if err != nil {
		logger.ErrorContext(ctx, "open history", "path", historyPath, "error", err)
		return 1
	}
	defer history.Close()
	if err := history.Record(ctx, report); err != nil {
		logger.ErrorContext(ctx, "record history", "path", historyPath, "error", err)
		return 1
	}
	return 0
}
