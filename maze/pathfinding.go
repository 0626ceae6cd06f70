package maze

import (
	"fmt"
	"time"
)

// Pathfinder computes a route across a fully-known grid. Implementations are
// swapped in at solver-construction time.
type Pathfinder interface {
	// FindPath returns a move sequence from start to target, or nil when the
	// target is unreachable under the grid's walkability rules.
	FindPath(g *Grid, start, target Position) []Direction

	// Name identifies the strategy in logs and benchmark rows.
	Name() string
}

// AllPathfinders returns every pathfinding strategy in benchmark order.
func AllPathfinders() []Pathfinder {
	return []Pathfinder{&AStar{}, &Dijkstra{}, &DFS{}}
}

// PathfinderByName resolves a CLI algorithm name.
func PathfinderByName(name string) (Pathfinder, error) {
	switch name {
	case "astar", "a-star":
		return &AStar{}, nil
	case "dijkstra":
		return &Dijkstra{}, nil
	case "dfs":
		return &DFS{}, nil
	default:
		return nil, fmt.Errorf("unknown pathfinding algorithm %q (want astar, dijkstra, or dfs)", name)
	}
}

// Result aggregates one solve: total steps taken (exploration plus execution
// for blind mode) and where the time went.
type Result struct {
	Steps         int
	PlanningTime  time.Duration
	ExecutionTime time.Duration
	TotalTime     time.Duration
}

// NewResult derives the total from the planning and execution durations.
func NewResult(steps int, planning, execution time.Duration) Result {
	return Result{
		Steps:         steps,
		PlanningTime:  planning,
		ExecutionTime: execution,
		TotalTime:     planning + execution,
	}
}

// cameFrom records, for each reached position, the position and move that
// reached it; walking it backwards from the target yields the path.
type cameFrom map[Position]struct {
	prev Position
	dir  Direction
}

// reconstruct walks the predecessor map from target back to start and
// returns the move sequence in forward order. The result is non-nil even
// when start and target coincide, so a zero-length path stays
// distinguishable from an unreachable target.
func (c cameFrom) reconstruct(start, target Position) []Direction {
	path := []Direction{}
	for current := target; current != start; {
		step, ok := c[current]
		if !ok {
			break
		}
		path = append(path, step.dir)
		current = step.prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
