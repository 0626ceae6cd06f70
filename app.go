package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kwv/mazerover/maze"
)

// App encapsulates the application state and dependencies
type App struct {
	Config    *maze.Config
	Transport maze.Transport
	Simulator *maze.Simulator
	Link      *maze.Link
	Store     *maze.ResultsStore
	Tracker   *maze.RunTracker

	// CLI Flags (effectively dependencies)
	HTTPMode   bool
	HTTPPort   int
	RenderPath string
	Repeat     int

	delay time.Duration
}

// AppOptions carries the CLI options into the App instance
type AppOptions struct {
	HTTPMode   bool
	HTTPPort   int
	RenderPath string
	Repeat     int
}

// NewApp creates a new App instance
func NewApp(config *maze.Config) *App {
	return &App{
		Config:  config,
		Tracker: maze.NewRunTracker(),
		delay:   time.Duration(config.Maze.DelayMS) * time.Millisecond,
	}
}

// ApplyOptions applies CLI options to the App instance
func (a *App) ApplyOptions(opts AppOptions) {
	a.HTTPMode = opts.HTTPMode
	a.HTTPPort = opts.HTTPPort
	a.RenderPath = opts.RenderPath
	a.Repeat = opts.Repeat
}

// Setup builds the transport and optional results store from the config.
// With a broker configured the robot is driven over MQTT; otherwise the
// built-in simulator serves the maze in-process.
func (a *App) Setup() error {
	if a.Config.MQTT.Broker != "" {
		link, err := maze.NewLink(a.Config)
		if err != nil {
			return fmt.Errorf("connecting to broker: %w", err)
		}
		a.Link = link
		a.Transport = link
		log.Printf("Connected to MQTT broker %s", a.Config.MQTT.Broker)
	} else {
		var sim *maze.Simulator
		if a.Config.Maze.Random {
			sim = maze.NewRandomSimulator(a.Config.Maze.Height, a.Config.Maze.Width, a.Config.Maze.Seed, 0)
			log.Printf("Simulating a random %dx%d maze (seed %d)", a.Config.Maze.Height, a.Config.Maze.Width, a.Config.Maze.Seed)
		} else {
			var err error
			sim, err = maze.NewSimulator(a.Config.Maze.MapName, 0)
			if err != nil {
				return err
			}
			log.Printf("Simulating built-in maze %q", mapNameOrDefault(a.Config.Maze.MapName))
		}
		a.Simulator = sim
		a.Transport = sim
	}

	if a.Config.Results.Path != "" {
		store, err := maze.OpenResultsStore(a.Config.Results.Path)
		if err != nil {
			return err
		}
		a.Store = store
		log.Printf("Recording results to %s", a.Config.Results.Path)
	}

	return nil
}

func mapNameOrDefault(name string) string {
	if name == "" {
		return "default"
	}
	return name
}

// Close releases the transport and store.
func (a *App) Close() {
	if a.Link != nil {
		a.Link.Close()
	}
	if a.Simulator != nil {
		a.Simulator.Close()
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			log.Printf("Warning: closing results store: %v", err)
		}
	}
}

// RunOmniscient fetches the full maze, plans with the named pathfinder and
// walks the path.
func (a *App) RunOmniscient(ctx context.Context, pathfinderName string) {
	pathfinder, err := maze.PathfinderByName(pathfinderName)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	solver := maze.NewOmniscientSolver(a.Transport, pathfinder, a.delay)
	run, err := solver.Solve(ctx)
	if err != nil {
		log.Fatalf("Solve failed: %v", err)
	}

	a.finishRun(run)
}

// RunBlind explores the maze with the named strategy, then plans and
// executes with the named pathfinder.
func (a *App) RunBlind(ctx context.Context, explorerName, pathfinderName string) {
	explorer, err := maze.ExplorerByName(explorerName)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	pathfinder, err := maze.PathfinderByName(pathfinderName)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	solver := maze.NewBlindSolver(a.Transport, explorer, pathfinder, a.delay)
	run, err := solver.Solve(ctx)
	if err != nil {
		log.Fatalf("Solve failed: %v", err)
	}

	a.finishRun(run)
}

// RunBenchmark races every algorithm combination on the same maze and
// prints a summary table.
func (a *App) RunBenchmark(ctx context.Context, mode string) {
	var b *maze.Benchmark
	var err error
	switch mode {
	case "omniscient":
		b, err = maze.RunOmniscientBenchmark(ctx, a.Transport, a.Repeat, a.delay)
	case "blind":
		b, err = maze.RunBlindBenchmark(ctx, a.Transport, a.Repeat, a.delay)
	default:
		log.Fatalf("Unknown benchmark mode %q (use omniscient or blind)", mode)
	}
	if err != nil {
		log.Fatalf("Benchmark failed: %v", err)
	}

	a.Tracker.UpdateBenchmark(b)

	fmt.Printf("\nBenchmark (%s, %d repetition(s))\n", b.Mode, b.Repeat)
	fmt.Println(strings.Repeat("-", 78))
	fmt.Printf("%-38s %10s %10s %8s %8s\n", "Algorithm", "Steps", "StdDev", "Total", "Failed")
	for _, e := range b.Entries {
		fmt.Printf("%-38s %10.1f %10.2f %8s %8d\n",
			e.Label, e.MeanSteps, e.StdDevSteps, e.MeanTotal.Round(time.Microsecond), e.Failed)
	}
	fmt.Println(strings.Repeat("-", 78))

	if a.Store != nil {
		for _, e := range b.Entries {
			for _, run := range e.Runs {
				if _, err := a.Store.RecordRun(run); err != nil {
					log.Printf("Warning: recording run: %v", err)
				}
			}
		}
	}

	if a.RenderPath != "" {
		f, err := os.Create(a.RenderPath)
		if err != nil {
			log.Fatalf("Error creating report file %s: %v", a.RenderPath, err)
		}
		defer func() { _ = f.Close() }()
		if err := maze.WriteBenchmarkReport(f, b); err != nil {
			log.Fatalf("Error writing report: %v", err)
		}
		fmt.Printf("Created report: %s\n", a.RenderPath)
	}
}

// finishRun prints, tracks, records and optionally renders a completed run.
func (a *App) finishRun(run *maze.Run) {
	label := run.Pathfinder
	if run.Explorer != "" {
		label = run.Explorer + " + " + label
	}
	fmt.Printf("\nSolved (%s, %s)\n", run.Mode, label)
	if run.ExplorationSteps > 0 {
		fmt.Printf("  Exploration: %d steps\n", run.ExplorationSteps)
	}
	fmt.Printf("  Path:        %d steps\n", run.Result.Steps)
	fmt.Printf("  Planning:    %v\n", run.Result.PlanningTime.Round(time.Microsecond))
	fmt.Printf("  Execution:   %v\n", run.Result.ExecutionTime.Round(time.Microsecond))
	fmt.Printf("  Total:       %v\n", run.Result.TotalTime.Round(time.Microsecond))

	a.Tracker.UpdateRun(run)
	if a.Simulator != nil {
		a.Tracker.UpdateRobot(a.Simulator.RobotPosition())
	}

	if a.Store != nil {
		id, err := a.Store.RecordRun(run)
		if err != nil {
			log.Printf("Warning: recording run: %v", err)
		} else {
			fmt.Printf("  Recorded:    %s\n", id)
		}
	}

	if a.RenderPath != "" {
		if err := a.renderRun(run, a.RenderPath); err != nil {
			log.Fatalf("Error rendering %s: %v", a.RenderPath, err)
		}
		fmt.Printf("Created render: %s\n", a.RenderPath)
	}
}

// renderRun writes the run to a file, with the format chosen by extension.
func (a *App) renderRun(run *maze.Run, path string) error {
	switch {
	case strings.HasSuffix(path, ".png"):
		return maze.NewMazeRenderer(run).SavePNG(path)
	case strings.HasSuffix(path, ".svg"):
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		return maze.NewVectorMazeRenderer(run).RenderToSVG(f)
	case strings.HasSuffix(path, ".geojson") || strings.HasSuffix(path, ".json"):
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		return maze.WriteGeoJSON(f, run)
	default:
		return fmt.Errorf("unknown render format for %s (use .png, .svg or .geojson)", path)
	}
}

// StartHTTP starts the status server in the background.
func (a *App) StartHTTP() {
	server := newHTTPServer(a)
	go func() {
		addr := fmt.Sprintf(":%d", a.HTTPPort)
		fmt.Printf("HTTP server starting on %s\n", addr)
		if err := http.ListenAndServe(addr, server); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()
}

// AwaitShutdown blocks until an interrupt signal arrives.
func (a *App) AwaitShutdown() {
	fmt.Printf("\nHTTP endpoints (port %d):\n", a.HTTPPort)
	fmt.Println("  GET /health       - Health check")
	fmt.Println("  GET /maze.png     - Raster render of the last solve")
	fmt.Println("  GET /maze.svg     - Vector render of the last solve")
	fmt.Println("  GET /maze.geojson - GeoJSON export of the last solve")
	fmt.Println("  GET /report.html  - Benchmark report")
	fmt.Println("  GET /api/state    - Last run and robot position")
	fmt.Println("  GET /api/results  - Recorded runs")
	fmt.Println("\nPress Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	fmt.Println("\nShutting down...")
}
