package cellbench

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/reusee/celltape/cellconfigs"
	"github.com/reusee/celltape/celllang"
	"github.com/reusee/celltape/logs"
	"github.com/reusee/celltape/modes"
	"github.com/reusee/dscope"
	"gopkg.in/yaml.v3"
)

func TestRun(t *testing.T) {
	src, err := os.ReadFile("testdata/hello.b")
	if err != nil {
		t.Fatal(err)
	}
	output := new(bytes.Buffer)
	report, err := Run("hello", string(src), nil, output, Options{
		Repeat: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if output.String() != "Hello World!\n" {
		t.Fatalf("got %q", output.String())
	}
	if !report.OutputMatch {
		t.Fatal("outputs should match")
	}
	if report.Repeat != 3 {
		t.Fatalf("got %d", report.Repeat)
	}
	if report.OptimizedInstructions >= report.Instructions {
		t.Fatalf("got %d >= %d", report.OptimizedInstructions, report.Instructions)
	}
	if report.OptimizedSteps > report.Steps {
		t.Fatalf("got %d > %d", report.OptimizedSteps, report.Steps)
	}
}

func TestRunInputReplayed(t *testing.T) {
	output := new(bytes.Buffer)
	report, err := Run("cat", "-,+[-.[-]-,+]", []byte("abc"), output, Options{
		Repeat: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	// only the first optimized run writes
	if output.String() != "abc" {
		t.Fatalf("got %q", output.String())
	}
	if !report.OutputMatch {
		t.Fatal()
	}
}

func TestRunCompileError(t *testing.T) {
	_, err := Run("bad", "+[", nil, new(bytes.Buffer), Options{})
	var bracketErr *celllang.BracketError
	if !errors.As(err, &bracketErr) {
		t.Fatalf("got %v", err)
	}
}

func TestReportMetrics(t *testing.T) {
	report := &Report{
		Repeat:            2,
		Steps:             1000,
		OptimizedSteps:    500,
		Duration:          2 * time.Millisecond,
		OptimizedDuration: time.Millisecond,
		OutputMatch:       true,
	}
	// 2000 steps in 2000us
	if got := report.MIPS(); got != 1 {
		t.Fatalf("got %v", got)
	}
	if got := report.OptimizedMIPS(); got != 1 {
		t.Fatalf("got %v", got)
	}
	if got := report.EquivalentMIPS(); got != 2 {
		t.Fatalf("got %v", got)
	}
	if got := report.Speedup(); got != 2 {
		t.Fatalf("got %v", got)
	}

	var zero Report
	if zero.MIPS() != 0 || zero.Speedup() != 0 {
		t.Fatal()
	}
}

func TestReportText(t *testing.T) {
	report := &Report{
		Repeat:                1,
		Instructions:          10,
		OptimizedInstructions: 4,
		Steps:                 100,
		OptimizedSteps:        40,
		Duration:              time.Millisecond,
		OptimizedDuration:     time.Millisecond,
	}
	buf := new(bytes.Buffer)
	if err := report.WriteText(buf); err != nil {
		t.Fatal(err)
	}
	str := buf.String()
	if !strings.HasPrefix(str, "10 unoptimized instructions, 4 optimized\n") {
		t.Fatalf("got %s", str)
	}
	if !strings.Contains(str, "Ran 40 optimized steps") {
		t.Fatalf("got %s", str)
	}
	if !strings.Contains(str, "warning: optimized output differs") {
		t.Fatalf("got %s", str)
	}
}

func TestReportYAML(t *testing.T) {
	report := &Report{
		Name:              "hello",
		Repeat:            1,
		Steps:             100,
		OptimizedSteps:    50,
		Duration:          2 * time.Millisecond,
		OptimizedDuration: time.Millisecond,
		OutputMatch:       true,
	}
	buf := new(bytes.Buffer)
	if err := report.WriteYAML(buf); err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatal(err)
	}
	if m["name"] != "hello" {
		t.Fatalf("got %v", m["name"])
	}
	if m["optimized_steps"] != 50 {
		t.Fatalf("got %v", m["optimized_steps"])
	}
	if fmt.Sprint(m["speedup"]) != "2" {
		t.Fatalf("got %v", m["speedup"])
	}
	if m["duration"] != "2ms" {
		t.Fatalf("got %v", m["duration"])
	}
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	history, err := OpenHistory(ctx, filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer history.Close()

	base := time.Unix(1700000000, 0)
	for i := range 3 {
		if err := history.Record(ctx, &Report{
			Name:           "hello",
			Time:           base.Add(time.Duration(i) * time.Second),
			Repeat:         1,
			Steps:          100 + i,
			OptimizedSteps: 50,
			Duration:       time.Millisecond,
			OutputMatch:    true,
		}); err != nil {
			t.Fatal(err)
		}
	}
	if err := history.Record(ctx, &Report{
		Name: "other",
		Time: base,
	}); err != nil {
		t.Fatal(err)
	}

	reports, err := history.Recent(ctx, "hello", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d", len(reports))
	}
	if reports[0].Steps != 102 || reports[1].Steps != 101 {
		t.Fatalf("got %+v", reports)
	}
	if !reports[0].Time.Equal(base.Add(2*time.Second)) {
		t.Fatalf("got %v", reports[0].Time)
	}
	if reports[0].Duration != time.Millisecond || !reports[0].OutputMatch {
		t.Fatalf("got %+v", reports[0])
	}
}

func TestModuleBench(t *testing.T) {
	logBuf := new(bytes.Buffer)
	dscope.New(
		modes.ForTest(t),
		new(logs.Module),
		new(cellconfigs.Module),
		new(Module),
	).Fork(
		func() logs.Writer {
			return logBuf
		},
		func() cellconfigs.ConfigDirs {
			return nil
		},
		func() cellconfigs.Repeat {
			return 2
		},
	).Call(func(
		bench Bench,
	) {
		output := new(bytes.Buffer)
		report, err := bench(t.Context(), "multiply", "+++++[>+++++++<-]>.", nil, output)
		if err != nil {
			t.Fatal(err)
		}
		if output.String() != "#" {
			t.Fatalf("got %q", output.String())
		}
		if report.Repeat != 2 {
			t.Fatalf("got %d", report.Repeat)
		}
		if !strings.Contains(logBuf.String(), "name=multiply") {
			t.Fatalf("got %q", logBuf.String())
		}

		_, err = bench(t.Context(), "bad", "]", nil, output)
		if !errors.Is(err, celllang.ErrUnmatchedClose) {
			t.Fatalf("got %v", err)
		}
	})
}
