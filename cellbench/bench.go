package cellbench

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/reusee/celltape/celllang"
	"github.com/reusee/celltape/cellvm"
)

type Options struct {
	// Repeat runs each compiled program this many times; less than 1 means once
	Repeat   int
	TapeSize int
}

type variant struct {
	instructions int
	steps        int
	duration     time.Duration
	output       []byte
}

// Run compiles src without and with optimization and times both.
// The optimized program's first run writes to output; every run reads a fresh copy of input.
func Run(name string, src string, input []byte, output io.Writer, options Options) (*Report, error) {
	repeat := max(options.Repeat, 1)

	unoptimized, err := measure(src, false, input, io.Discard, repeat, options.TapeSize)
	if err != nil {
		return nil, err
	}
	optimized, err := measure(src, true, input, output, repeat, options.TapeSize)
	if err != nil {
		return nil, err
	}

	return &Report{
		Name:                  name,
		Time:                  time.Now(),
		Repeat:                repeat,
		Instructions:          unoptimized.instructions,
		OptimizedInstructions: optimized.instructions,
		Steps:                 unoptimized.steps,
		OptimizedSteps:        optimized.steps,
		Duration:              unoptimized.duration,
		OptimizedDuration:     optimized.duration,
		OutputMatch:           bytes.Equal(unoptimized.output, optimized.output),
	}, nil
}

func measure(src string, optimize bool, input []byte, output io.Writer, repeat int, tapeSize int) (ret variant, err error) {
	program, err := celllang.CompileString(src, optimize)
	if err != nil {
		return ret, err
	}
	ret.instructions = len(program)

	var options []cellvm.Option
	if tapeSize > 0 {
		options = append(options, cellvm.WithTapeSize(tapeSize))
	}

	captured := new(bytes.Buffer)
	start := time.Now()
	for i := range repeat {
		w := io.Discard
		if i == 0 {
			w = io.MultiWriter(captured, output)
		}
		steps, err := cellvm.Run(program, bytes.NewReader(input), w, options...)
		if err != nil {
			return ret, fmt.Errorf("run %d: %w", i, err)
		}
		ret.steps = steps
	}
	ret.duration = time.Since(start)
	ret.output = captured.Bytes()

	return ret, nil
}
