package maze

import (
	"context"
	"testing"
	"time"
)

func TestRunOmniscientBenchmark(t *testing.T) {
	sim := newTestSimulator(t, "default")

	b, err := RunOmniscientBenchmark(context.Background(), sim, 3, 0)
	if err != nil {
		t.Fatalf("RunOmniscientBenchmark: %v", err)
	}

	if b.Mode != "omniscient" || b.Repeat != 3 {
		t.Fatalf("benchmark header = %+v", b)
	}
	if len(b.Entries) != len(AllPathfinders()) {
		t.Fatalf("entries = %d, want one per pathfinder", len(b.Entries))
	}

	for _, e := range b.Entries {
		if e.Completed != 3 || e.Failed != 0 {
			t.Errorf("%s completed %d failed %d", e.Label, e.Completed, e.Failed)
		}
		if e.MeanSteps <= 0 {
			t.Errorf("%s mean steps = %f", e.Label, e.MeanSteps)
		}
		if len(e.Runs) != 3 {
			t.Errorf("%s kept %d runs", e.Label, len(e.Runs))
		}
	}

	// The maze is deterministic, so repeated A* runs take identical step
	// counts and the variance collapses.
	if b.Entries[0].StdDevSteps != 0 {
		t.Errorf("A* step stddev = %f, want 0", b.Entries[0].StdDevSteps)
	}

	// DFS can never beat the optimal searches.
	if b.Entries[2].MeanSteps < b.Entries[0].MeanSteps {
		t.Errorf("DFS mean %f below A* mean %f", b.Entries[2].MeanSteps, b.Entries[0].MeanSteps)
	}
}

func TestRunBlindBenchmark(t *testing.T) {
	sim := newTestSimulator(t, "ring")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	b, err := RunBlindBenchmark(ctx, sim, 1, 0)
	if err != nil {
		t.Fatalf("RunBlindBenchmark: %v", err)
	}

	want := len(AllExplorers()) * len(AllPathfinders())
	if len(b.Entries) != want {
		t.Fatalf("entries = %d, want %d", len(b.Entries), want)
	}
	for _, e := range b.Entries {
		if e.Completed != 1 {
			t.Errorf("%s completed %d, want 1", e.Label, e.Completed)
		}
		if e.StdDevSteps != 0 {
			t.Errorf("%s stddev with a single sample = %f", e.Label, e.StdDevSteps)
		}
	}
}

func TestBenchmarkSkipsFailingCombination(t *testing.T) {
	// A maze with no reachable target fails every run, but the benchmark
	// itself must survive and report the failures.
	sim, err := NewSimulatorFromRows([]string{"rfb", "bbb", "bft"}, time.Millisecond)
	if err != nil {
		t.Fatalf("NewSimulatorFromRows: %v", err)
	}
	defer sim.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	b, err := RunBlindBenchmark(ctx, sim, 2, 0)
	if err != nil {
		t.Fatalf("RunBlindBenchmark: %v", err)
	}
	for _, e := range b.Entries {
		if e.Failed != 2 || e.Completed != 0 {
			t.Errorf("%s completed %d failed %d, want all failed", e.Label, e.Completed, e.Failed)
		}
	}
}

func TestBenchmarkContextCancel(t *testing.T) {
	sim := newTestSimulator(t, "default")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// The inter-move delay makes the cancellation point deterministic.
	if _, err := RunOmniscientBenchmark(ctx, sim, 1, time.Minute); err == nil {
		t.Fatal("benchmark with a canceled context should fail")
	}
}
