package maze

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Run captures everything a finished solve produced, for reporting,
// rendering and persistence.
type Run struct {
	Mode             string      `json:"mode"`
	Explorer         string      `json:"explorer,omitempty"`
	Pathfinder       string      `json:"pathfinder"`
	Grid             *Grid       `json:"-"`
	Start            Position    `json:"start"`
	Target           Position    `json:"target"`
	Path             []Direction `json:"-"`
	ExplorationSteps int         `json:"explorationSteps,omitempty"`
	Result           Result      `json:"result"`
}

// OmniscientSolver fetches the complete maze up front, plans a path and
// walks it.
type OmniscientSolver struct {
	transport  Transport
	pathfinder Pathfinder
	delay      time.Duration
}

// NewOmniscientSolver wires a solver to a transport. The delay is inserted
// between moves so a watcher can follow along; zero disables it.
func NewOmniscientSolver(t Transport, p Pathfinder, delay time.Duration) *OmniscientSolver {
	return &OmniscientSolver{transport: t, pathfinder: p, delay: delay}
}

// Solve runs the full plan-then-execute cycle.
func (s *OmniscientSolver) Solve(ctx context.Context) (*Run, error) {
	cells, shape, err := s.transport.GetFullGrid(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching grid: %w", err)
	}
	grid, err := GridFromFlattened(cells, shape)
	if err != nil {
		return nil, err
	}

	start, err := grid.FindRobot()
	if err != nil {
		return nil, err
	}
	target, err := grid.FindTarget()
	if err != nil {
		return nil, err
	}

	planStart := time.Now()
	path := s.pathfinder.FindPath(grid, start, target)
	planning := time.Since(planStart)
	if path == nil {
		return nil, ErrNoPath
	}
	log.Printf("%s planned %d steps in %v", s.pathfinder.Name(), len(path), planning)

	execStart := time.Now()
	if err := executePath(ctx, s.transport, path, s.delay); err != nil {
		return nil, err
	}
	execution := time.Since(execStart)

	return &Run{
		Mode:       "omniscient",
		Pathfinder: s.pathfinder.Name(),
		Grid:       grid,
		Start:      start,
		Target:     target,
		Path:       path,
		Result:     NewResult(len(path), planning, execution),
	}, nil
}

// executePath walks a planned path over the transport, failing fast on the
// first rejected move.
func executePath(ctx context.Context, t Transport, path []Direction, delay time.Duration) error {
	for i, d := range path {
		moved, err := t.Move(ctx, d)
		if err != nil {
			return fmt.Errorf("move %d (%s): %w", i+1, d, err)
		}
		if !moved {
			return &MoveError{Step: i + 1, Dir: d}
		}
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}
