package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kwv/mazerover/maze"
)

func newSimulatorApp(t *testing.T, mapName string) *App {
	t.Helper()
	config := maze.DefaultConfig()
	config.Maze.MapName = mapName
	app := NewApp(config)
	if err := app.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

// solveForTest produces a completed run for rendering and tracking tests.
func solveForTest(t *testing.T, app *App) *maze.Run {
	t.Helper()
	solver := maze.NewOmniscientSolver(app.Transport, &maze.AStar{}, 0)
	run, err := solver.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	return run
}

func TestAppSetupSimulator(t *testing.T) {
	app := newSimulatorApp(t, "corridor")

	if app.Simulator == nil {
		t.Fatal("no simulator built")
	}
	if app.Transport != maze.Transport(app.Simulator) {
		t.Fatal("transport is not the simulator")
	}
	if app.Link != nil {
		t.Fatal("a broker link was built without a broker")
	}
}

func TestAppSetupRandomMaze(t *testing.T) {
	config := maze.DefaultConfig()
	config.Maze.Random = true
	config.Maze.Height = 9
	config.Maze.Width = 9

	app := NewApp(config)
	if err := app.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer app.Close()

	cells, _, err := app.Transport.GetFullGrid(context.Background())
	if err != nil {
		t.Fatalf("GetFullGrid: %v", err)
	}
	if len(cells) == 0 {
		t.Fatal("random maze is empty")
	}
}

func TestAppSetupUnknownMap(t *testing.T) {
	config := maze.DefaultConfig()
	config.Maze.MapName = "nowhere"
	app := NewApp(config)
	if err := app.Setup(); err == nil {
		app.Close()
		t.Fatal("Setup with an unknown map should fail")
	}
}

func TestAppSetupResultsStore(t *testing.T) {
	config := maze.DefaultConfig()
	config.Maze.MapName = "corridor"
	config.Results.Path = filepath.Join(t.TempDir(), "runs.db")

	app := NewApp(config)
	if err := app.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer app.Close()

	if app.Store == nil {
		t.Fatal("results store not opened")
	}
}

func TestApplyOptions(t *testing.T) {
	app := NewApp(maze.DefaultConfig())
	app.ApplyOptions(AppOptions{HTTPMode: true, HTTPPort: 9999, RenderPath: "out.png", Repeat: 5})

	if !app.HTTPMode || app.HTTPPort != 9999 || app.RenderPath != "out.png" || app.Repeat != 5 {
		t.Fatalf("options not applied: %+v", app)
	}
}

func TestRenderRunDispatch(t *testing.T) {
	app := newSimulatorApp(t, "default")
	run := solveForTest(t, app)
	dir := t.TempDir()

	cases := []struct {
		file  string
		sniff string
	}{
		{"maze.png", "\x89PNG"},
		{"maze.svg", "<svg"},
		{"maze.geojson", "FeatureCollection"},
		{"maze.json", "FeatureCollection"},
	}
	for _, tc := range cases {
		t.Run(tc.file, func(t *testing.T) {
			path := filepath.Join(dir, tc.file)
			if err := app.renderRun(run, path); err != nil {
				t.Fatalf("renderRun: %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading output: %v", err)
			}
			if !strings.Contains(string(data), tc.sniff) {
				t.Errorf("%s output does not look like its format", tc.file)
			}
		})
	}

	if err := app.renderRun(run, filepath.Join(dir, "maze.bmp")); err == nil {
		t.Fatal("unsupported extension should fail")
	}
}

func TestFinishRunTracksAndRecords(t *testing.T) {
	app := newSimulatorApp(t, "default")
	store, err := maze.OpenResultsStore(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("OpenResultsStore: %v", err)
	}
	app.Store = store

	run := solveForTest(t, app)
	app.finishRun(run)

	if app.Tracker.LastRun() != run {
		t.Error("run not tracked")
	}
	robot := app.Tracker.Robot()
	if robot == nil {
		t.Fatal("robot position not tracked")
	}
	if (maze.Position{Row: robot.Row, Col: robot.Col}) != run.Target {
		t.Errorf("tracked robot at (%d,%d), want the target %v", robot.Row, robot.Col, run.Target)
	}

	records, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("recorded runs = %d, want 1", len(records))
	}
}

func TestMapNameOrDefault(t *testing.T) {
	if got := mapNameOrDefault(""); got != "default" {
		t.Errorf("mapNameOrDefault(\"\") = %q", got)
	}
	if got := mapNameOrDefault("ring"); got != "ring" {
		t.Errorf("mapNameOrDefault(ring) = %q", got)
	}
}
