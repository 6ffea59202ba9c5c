package debugs

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/reusee/celltape/cellvm"
	"github.com/reusee/celltape/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
}

// MachineGlobals exposes the state of a halted machine.
// cell(i) reads the cell i away from the cursor, zero when unallocated.
func MachineGlobals(m *cellvm.Machine) map[string]any {
	tape := m.Tape
	cell := starlark.NewBuiltin("cell", func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var offset int
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &offset); err != nil {
			return nil, err
		}
		i := tape.Cursor + offset
		if i < 0 || i >= len(tape.Cells) {
			return starlark.MakeInt(0), nil
		}
		return starlark.MakeInt(int(tape.Cells[i])), nil
	})
	return map[string]any{
		"cells":   tape.Cells,
		"cursor":  tape.Cursor,
		"ip":      m.IP,
		"steps":   m.Steps,
		"program": m.Program.String(),
		"cell":    cell,
	}
}

func toStringDict(globals map[string]any) starlark.StringDict {
	mappings := make(starlark.StringDict, len(globals))
	for name, value := range globals {
		mappings[name] = toStarlarkValue(value)
	}
	return mappings
}

// Eval evaluates one Starlark expression against globals
func Eval(expr string, globals map[string]any) (starlark.Value, error) {
	thread := &starlark.Thread{
		Name: "eval",
	}
	value, err := starlark.EvalOptions(fileOptions, thread, "<eval>", expr, toStringDict(globals))
	if err != nil {
		return nil, fmt.Errorf("eval %q: %w", expr, err)
	}
	return value, nil
}

// Tap blocks in an interactive REPL on stdin until it is closed
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()
		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(fileOptions, thread, toStringDict(globals))
	}
}
