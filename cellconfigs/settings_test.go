package cellconfigs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reusee/celltape/cellvm"
	"github.com/reusee/celltape/cmds"
	"github.com/reusee/celltape/logs"
	"github.com/reusee/celltape/modes"
	"github.com/reusee/dscope"
)

func newScope(t *testing.T, content string) dscope.Scope {
	dir := t.TempDir()
	if content != "" {
		if err := os.WriteFile(filepath.Join(dir, "celltape.cue"), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dscope.New(
		modes.ForTest(t),
		new(logs.Module),
		new(Module),
	).Fork(
		func() ConfigDirs {
			return ConfigDirs{dir}
		},
	)
}

func TestDefaults(t *testing.T) {
	newScope(t, "").Call(func(
		tapeSize TapeSize,
		optimize Optimize,
		repeat Repeat,
		history HistoryPath,
	) {
		if tapeSize != cellvm.DefaultTapeSize {
			t.Fatalf("got %d", tapeSize)
		}
		if !optimize {
			t.Fatal("should optimize by default")
		}
		if repeat != 1 {
			t.Fatalf("got %d", repeat)
		}
		if history != "" {
			t.Fatalf("got %q", history)
		}
	})
}

func TestConfigFile(t *testing.T) {
	newScope(t, `
tape_size: 30000
optimize: false
repeat: 5
history: "bench.db"
`).Call(func(
		tapeSize TapeSize,
		optimize Optimize,
		repeat Repeat,
		history HistoryPath,
	) {
		if tapeSize != 30000 {
			t.Fatalf("got %d", tapeSize)
		}
		if optimize {
			t.Fatal()
		}
		if repeat != 5 {
			t.Fatalf("got %d", repeat)
		}
		if history != "bench.db" {
			t.Fatalf("got %q", history)
		}
	})
}

func TestFlagsOverrideConfig(t *testing.T) {
	cmds.GlobalExecutor.MustExecute([]string{
		"-tape-size", "8",
		"-repeat", "3",
		"-no-opt",
	})
	defer cmds.GlobalExecutor.MustExecute([]string{
		"-tape-size.",
		"-repeat.",
		"!-no-opt",
	})
	newScope(t, `
tape_size: 30000
optimize: true
repeat: 5
`).Call(func(
		tapeSize TapeSize,
		optimize Optimize,
		repeat Repeat,
	) {
		if tapeSize != 8 {
			t.Fatalf("got %d", tapeSize)
		}
		if optimize {
			t.Fatal()
		}
		if repeat != 3 {
			t.Fatalf("got %d", repeat)
		}
	})
}

func TestBadConfig(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("should panic")
		}
	}()
	newScope(t, `tape_size: -1`).Call(func(
		tapeSize TapeSize,
	) {
	})
}
