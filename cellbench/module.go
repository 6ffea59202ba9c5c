package cellbench

import (
	"context"
	"io"

	"github.com/reusee/celltape/cellconfigs"
	"github.com/reusee/celltape/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
}

// Bench runs Run with the configured repeat count and tape size, logging the result
type Bench func(ctx context.Context, name string, src string, input []byte, output io.Writer) (*Report, error)

func (Module) Bench(
	logger logs.Logger,
	newSpan logs.NewSpan,
	repeat cellconfigs.Repeat,
	tapeSize cellconfigs.TapeSize,
) Bench {
	return func(ctx context.Context, name string, src string, input []byte, output io.Writer) (*Report, error) {
		ctx, _ = newSpan(ctx, "bench "+name)
		report, err := Run(name, src, input, output, Options{
			Repeat:   int(repeat),
			TapeSize: int(tapeSize),
		})
		if err != nil {
			logger.ErrorContext(ctx, "bench failed", "name", name, "error", err)
			return nil, logs.WrapSpan(ctx, err)
		}
		logger.InfoContext(ctx, "bench",
			"name", name,
			"repeat", report.Repeat,
			"instructions", report.Instructions,
			"optimized_instructions", report.OptimizedInstructions,
			"steps", report.Steps,
			"optimized_steps", report.OptimizedSteps,
			"speedup", report.Speedup(),
		)
		if !report.OutputMatch {
			logger.WarnContext(ctx, "optimized output differs", "name", name)
		}
		return report, nil
	}
}
