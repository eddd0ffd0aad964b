package main

import (
	"fmt"
	"io"
	"time"

	"zigscope/internal/pipeline"
)

// printStageTimings prints the summed per-stage time of a run, with each
// stage's share of the total.
func printStageTimings(out io.Writer, timings pipeline.Timings) error {
	total := timings.Sum()
	for _, stage := range pipeline.Stages {
		if !timings.Has(stage) {
			continue
		}
		d := timings.Duration(stage)
		share := 0.0
		if total > 0 {
			share = 100 * float64(d) / float64(total)
		}
		if _, err := fmt.Fprintf(out, "%-8s %8.1f ms %5.1f%%\n", stage, ms(d), share); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(out, "%-8s %8.1f ms\n", "total", ms(total))
	return err
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
