package cellbench

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Report compares one program compiled without and with optimization.
// Steps count executed instructions of a single run; durations cover all Repeat runs.
type Report struct {
	Name                  string        `yaml:"name"`
	Time                  time.Time     `yaml:"time"`
	Repeat                int           `yaml:"repeat"`
	Instructions          int           `yaml:"instructions"`
	OptimizedInstructions int           `yaml:"optimized_instructions"`
	Steps                 int           `yaml:"steps"`
	OptimizedSteps        int           `yaml:"optimized_steps"`
	Duration              time.Duration `yaml:"duration"`
	OptimizedDuration     time.Duration `yaml:"optimized_duration"`
	OutputMatch           bool          `yaml:"output_match"`
}

// mips is millions of steps per second
func mips(steps int, repeat int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(steps) * float64(repeat) * 1e3 / float64(d.Nanoseconds())
}

func (r *Report) MIPS() float64 {
	return mips(r.Steps, r.Repeat, r.Duration)
}

func (r *Report) OptimizedMIPS() float64 {
	return mips(r.OptimizedSteps, r.Repeat, r.OptimizedDuration)
}

// EquivalentMIPS is the unoptimized step count over the optimized duration
func (r *Report) EquivalentMIPS() float64 {
	return mips(r.Steps, r.Repeat, r.OptimizedDuration)
}

func (r *Report) Speedup() float64 {
	if r.OptimizedDuration <= 0 {
		return 0
	}
	return float64(r.Duration) / float64(r.OptimizedDuration)
}

func (r *Report) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"%d unoptimized instructions, %d optimized\n"+
			"Ran %d unoptimized steps in %v, %.3f MIPS\n"+
			"Ran %d optimized steps in %v, %.3f equivalent MIPS (%.3f real)\n"+
			"%.3fx speed improvement\n",
		r.Instructions, r.OptimizedInstructions,
		r.Steps, r.Duration/time.Duration(max(r.Repeat, 1)), r.MIPS(),
		r.OptimizedSteps, r.OptimizedDuration/time.Duration(max(r.Repeat, 1)), r.EquivalentMIPS(), r.OptimizedMIPS(),
		r.Speedup(),
	)
	if err != nil {
		return err
	}
	if !r.OutputMatch {
		if _, err := fmt.Fprintln(w, "warning: optimized output differs"); err != nil {
			return err
		}
	}
	return nil
}

type yamlReport struct {
	Report         `yaml:",inline"`
	MIPS           float64 `yaml:"mips"`
	OptimizedMIPS  float64 `yaml:"optimized_mips"`
	EquivalentMIPS float64 `yaml:"equivalent_mips"`
	Speedup        float64 `yaml:"speedup"`
}

func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlReport{
		Report:         *r,
		MIPS:           r.MIPS(),
		OptimizedMIPS:  r.OptimizedMIPS(),
		EquivalentMIPS: r.EquivalentMIPS(),
		Speedup:        r.Speedup(),
	}); err != nil {
		return err
	}
	return enc.Close()
}
