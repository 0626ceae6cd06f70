package maze

import "fmt"

// Explorer decides the next move under partial observability. Both concrete
// strategies follow one contract: a sensed Target is treated as blocked, so
// exploration keeps mapping territory instead of rushing the goal, and
// completion is reported by the algorithm itself (ok=false), never injected
// from outside. Target-seeking happens afterwards, in the planning phase.
type Explorer interface {
	// NextMove returns the single next move. ok=false signals that
	// exploration is finished and the robot should not move further. An
	// error (ErrSurrounded) means no legal move exists at all.
	NextMove(pos FreePosition, sensors SensorReadings, frontier *Frontier) (dir Direction, ok bool, err error)

	// Name identifies the strategy in logs and benchmark rows.
	Name() string

	// Reset clears all discovered state, returning the instance to its
	// not-started condition for a fresh run against a reset maze.
	Reset()
}

// AllExplorers returns every exploration strategy in benchmark order.
func AllExplorers() []Explorer {
	return []Explorer{NewWallFollower(), NewBacktracker()}
}

// ExplorerByName resolves a CLI exploration name.
func ExplorerByName(name string) (Explorer, error) {
	switch name {
	case "wall-follower":
		return NewWallFollower(), nil
	case "recursive-backtracker", "backtracker":
		return NewBacktracker(), nil
	default:
		return nil, fmt.Errorf("unknown exploration algorithm %q (want wall-follower or recursive-backtracker)", name)
	}
}
