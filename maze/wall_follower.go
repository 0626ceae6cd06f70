package maze

// WallFollower explores with the classic left-hand rule: keep a hand on the
// left wall by preferring turn-left, then straight, then turn-right, then
// turn-around. In a simply-connected maze this traverses the accessible
// region and returns to the start, which is its completion condition.
type WallFollower struct {
	facing  Direction
	started bool
	start   FreePosition
	visited map[FreePosition]bool
}

// NewWallFollower returns a wall follower in its not-started state.
func NewWallFollower() *WallFollower {
	return &WallFollower{facing: Up, visited: make(map[FreePosition]bool)}
}

func (w *WallFollower) Name() string { return "Wall Follower" }

func (w *WallFollower) Reset() {
	w.facing = Up
	w.started = false
	w.start = FreePosition{}
	w.visited = make(map[FreePosition]bool)
}

// canMove reports whether the cardinal sensor permits moving that way. A
// sensed Target counts as blocked while exploring.
func (w *WallFollower) canMove(d Direction, sensors SensorReadings) bool {
	return sensors.Cardinal(d) == SensorFree
}

func (w *WallFollower) NextMove(pos FreePosition, sensors SensorReadings, _ *Frontier) (Direction, bool, error) {
	if !w.started {
		w.started = true
		w.start = pos
		w.visited[pos] = true

		// First move: first free direction in fixed priority order.
		for _, d := range [4]Direction{Up, Right, Down, Left} {
			if w.canMove(d, sensors) {
				w.facing = d
				w.visited[pos.Step(d)] = true
				return d, true, nil
			}
		}
		return Up, false, ErrSurrounded
	}

	// Back at the start after a closed loop over the accessible region.
	if pos == w.start && len(w.visited) > 1 {
		return Up, false, nil
	}

	for _, d := range [4]Direction{w.facing.TurnLeft(), w.facing, w.facing.TurnRight(), w.facing.Opposite()} {
		if w.canMove(d, sensors) {
			w.facing = d
			w.visited[pos.Step(d)] = true
			return d, true, nil
		}
	}
	return Up, false, ErrSurrounded
}
