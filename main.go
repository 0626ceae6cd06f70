package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kwv/mazerover/maze"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	configFile = flag.String("config", "", "Path to configuration file (optional)")
	verbose    = flag.Bool("verbose", false, "Log with microsecond timestamps and source locations")
	mapName    = flag.String("map", "", "Built-in map name: default, ring, or corridor")
	randomMaze = flag.Bool("random", false, "Generate a random maze (simulator only)")
	mazeHeight = flag.Int("height", 15, "Random maze height")
	mazeWidth  = flag.Int("width", 15, "Random maze width")
	mazeSeed   = flag.Int64("seed", 1, "Random maze seed")
	moveDelay  = flag.Int("delay", 0, "Delay between moves in milliseconds")
	broker     = flag.String("broker", "", "MQTT broker URL (tcp://host:port); empty uses the built-in simulator")
	prefix     = flag.String("prefix", "", "MQTT topic prefix")
	httpMode   = flag.Bool("http", false, "Serve renders and results over HTTP after solving")
	httpPort   = flag.Int("http-port", 8080, "HTTP server port (default 8080)")
	resultsDB  = flag.String("results", "", "Path to SQLite results database")
	repeat     = flag.Int("repeat", 1, "Benchmark repetitions per algorithm")
	renderPath = flag.String("render", "", "Output file for the solved maze (.png, .svg, .geojson) or benchmark report (.html)")
)

func main() {
	flag.Parse()
	if *verbose {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	}
	fmt.Printf("mazerover version: %s\n", Version)

	config := loadConfig()

	app := NewApp(config)
	app.ApplyOptions(AppOptions{
		HTTPMode:   *httpMode,
		HTTPPort:   *httpPort,
		RenderPath: *renderPath,
		Repeat:     *repeat,
	})

	if err := app.Setup(); err != nil {
		log.Fatalf("Setup failed: %v", err)
	}
	defer app.Close()

	if app.HTTPMode {
		app.StartHTTP()
	}

	ctx := context.Background()
	args := flag.Args()

	switch {
	case len(args) == 0:
		printUsage()
		if !app.HTTPMode {
			return
		}
	case args[0] == "omniscient":
		pathfinder := "astar"
		if len(args) > 1 {
			pathfinder = args[1]
		}
		app.RunOmniscient(ctx, pathfinder)
	case args[0] == "blind":
		explorer := "wall-follower"
		pathfinder := "astar"
		if len(args) > 1 {
			explorer = args[1]
		}
		if len(args) > 2 {
			pathfinder = args[2]
		}
		app.RunBlind(ctx, explorer, pathfinder)
	case args[0] == "benchmark":
		mode := "omniscient"
		if len(args) > 1 {
			mode = args[1]
		}
		app.RunBenchmark(ctx, mode)
	default:
		printUsage()
		os.Exit(2)
	}

	if app.HTTPMode {
		app.AwaitShutdown()
	}
}

// loadConfig merges the optional config file with CLI flag overrides.
func loadConfig() *maze.Config {
	config := maze.DefaultConfig()
	if *configFile != "" {
		loaded, err := maze.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		config = loaded
		log.Printf("Loaded config from %s", *configFile)
	}

	if *broker != "" {
		config.MQTT.Broker = *broker
	}
	if *prefix != "" {
		config.MQTT.Prefix = *prefix
	}
	if *mapName != "" {
		config.Maze.MapName = *mapName
	}
	if *randomMaze {
		config.Maze.Random = true
	}
	if *mazeHeight != 15 {
		config.Maze.Height = *mazeHeight
	}
	if *mazeWidth != 15 {
		config.Maze.Width = *mazeWidth
	}
	if *mazeSeed != 1 {
		config.Maze.Seed = *mazeSeed
	}
	if *moveDelay > 0 {
		config.Maze.DelayMS = *moveDelay
	}
	if *resultsDB != "" {
		config.Results.Path = *resultsDB
	}
	if *httpPort != 8080 {
		config.HTTP.Port = *httpPort
	}

	if err := config.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  mazerover [flags] omniscient [pathfinder]")
	fmt.Println("  mazerover [flags] blind [explorer] [pathfinder]")
	fmt.Println("  mazerover [flags] benchmark [omniscient|blind]")
	fmt.Println()
	fmt.Println("Pathfinders: astar, dijkstra, dfs")
	fmt.Println("Explorers:   wall-follower, backtracker")
	fmt.Println()
	fmt.Println("Use --broker to drive a robot over MQTT, otherwise the built-in")
	fmt.Println("simulator is used (--map for a named maze, --random for a generated one).")
	fmt.Println("Use --http to keep serving renders and results after the solve.")
	fmt.Println("Use --render to write the solved maze to a file.")
	flag.PrintDefaults()
}
