package maze

import (
	"context"
	"fmt"
	"log"
	"time"

	"gonum.org/v1/gonum/stat"
)

// BenchmarkEntry aggregates the repeated runs of one algorithm combination.
type BenchmarkEntry struct {
	Label       string        `json:"label"`
	Completed   int           `json:"completed"`
	Failed      int           `json:"failed"`
	MeanSteps   float64       `json:"meanSteps"`
	StdDevSteps float64       `json:"stdDevSteps"`
	MeanTotal   time.Duration `json:"meanTotal"`
	StdDevTotal time.Duration `json:"stdDevTotal"`
	Runs        []*Run        `json:"-"`
}

// Benchmark is the outcome of racing every algorithm combination on the
// same maze.
type Benchmark struct {
	Mode    string           `json:"mode"`
	Repeat  int              `json:"repeat"`
	Entries []BenchmarkEntry `json:"entries"`
}

// RunOmniscientBenchmark races every pathfinder on the transport's maze,
// resetting the robot between runs. A failing combination is logged and
// skipped; it does not abort the rest of the field.
func RunOmniscientBenchmark(ctx context.Context, t Transport, repeat int, delay time.Duration) (*Benchmark, error) {
	if repeat < 1 {
		repeat = 1
	}
	b := &Benchmark{Mode: "omniscient", Repeat: repeat}
	for _, p := range AllPathfinders() {
		solver := NewOmniscientSolver(t, p, delay)
		entry, err := benchmarkSeries(ctx, t, p.Name(), repeat, solver.Solve)
		if err != nil {
			return nil, err
		}
		b.Entries = append(b.Entries, entry)
	}
	return b, nil
}

// RunBlindBenchmark races every exploration strategy paired with every
// pathfinder.
func RunBlindBenchmark(ctx context.Context, t Transport, repeat int, delay time.Duration) (*Benchmark, error) {
	if repeat < 1 {
		repeat = 1
	}
	b := &Benchmark{Mode: "blind", Repeat: repeat}
	for _, e := range AllExplorers() {
		for _, p := range AllPathfinders() {
			label := fmt.Sprintf("%s + %s", e.Name(), p.Name())
			solver := NewBlindSolver(t, e, p, delay)
			entry, err := benchmarkSeries(ctx, t, label, repeat, solver.Solve)
			if err != nil {
				return nil, err
			}
			b.Entries = append(b.Entries, entry)
		}
	}
	return b, nil
}

// benchmarkSeries repeats one solver and reduces the outcomes to summary
// statistics. Only a context or reset failure is fatal.
func benchmarkSeries(ctx context.Context, t Transport, label string, repeat int, solve func(context.Context) (*Run, error)) (BenchmarkEntry, error) {
	entry := BenchmarkEntry{Label: label}

	var steps, totals []float64
	for i := 0; i < repeat; i++ {
		if err := t.Reset(ctx, false, ""); err != nil {
			return entry, fmt.Errorf("resetting before %s run %d: %w", label, i+1, err)
		}

		run, err := solve(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return entry, ctx.Err()
			}
			log.Printf("%s run %d failed: %v", label, i+1, err)
			entry.Failed++
			continue
		}

		entry.Completed++
		entry.Runs = append(entry.Runs, run)
		steps = append(steps, float64(run.Result.Steps))
		totals = append(totals, float64(run.Result.TotalTime))
	}

	if len(steps) > 0 {
		entry.MeanSteps = stat.Mean(steps, nil)
		entry.MeanTotal = time.Duration(stat.Mean(totals, nil))
	}
	if len(steps) > 1 {
		entry.StdDevSteps = stat.StdDev(steps, nil)
		entry.StdDevTotal = time.Duration(stat.StdDev(totals, nil))
	}
	return entry, nil
}
