package maze

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestWriteBenchmarkReport(t *testing.T) {
	b := &Benchmark{
		Mode:   "blind",
		Repeat: 5,
		Entries: []BenchmarkEntry{
			{Label: "Wall Follower + A*", Completed: 5, MeanSteps: 18, MeanTotal: 12 * time.Millisecond},
			{Label: "Recursive Backtracker + DFS", Completed: 5, MeanSteps: 31, MeanTotal: 9 * time.Millisecond},
		},
	}

	var buf bytes.Buffer
	if err := WriteBenchmarkReport(&buf, b); err != nil {
		t.Fatalf("WriteBenchmarkReport: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "<html") && !strings.Contains(out, "<div") {
		t.Fatal("report is not an HTML page")
	}
	for _, want := range []string{"Wall Follower + A*", "Recursive Backtracker + DFS", "mode=blind repeat=5", "Path Length", "Total Time"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestWriteBenchmarkReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBenchmarkReport(&buf, &Benchmark{Mode: "omniscient", Repeat: 1}); err != nil {
		t.Fatalf("WriteBenchmarkReport on an empty benchmark: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("empty benchmark produced no output")
	}
}
