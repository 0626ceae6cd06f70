package maze

// Backtracker is depth-first exploration with explicit backtracking. It
// pushes forward into any unvisited cell its sensors report free; when none
// remain it pops the route stack and navigates back toward the popped
// position over the already-discovered frontier, one BFS-planned hop at a
// time. Exploration is complete when the stack is empty and no unvisited
// neighbor exists.
type Backtracker struct {
	visited map[FreePosition]bool
	stack   []FreePosition
}

// NewBacktracker returns a backtracker in its not-started state.
func NewBacktracker() *Backtracker {
	return &Backtracker{visited: make(map[FreePosition]bool)}
}

func (b *Backtracker) Name() string { return "Recursive Backtracker" }

func (b *Backtracker) Reset() {
	b.visited = make(map[FreePosition]bool)
	b.stack = nil
}

func (b *Backtracker) NextMove(pos FreePosition, sensors SensorReadings, frontier *Frontier) (Direction, bool, error) {
	b.visited[pos] = true

	// Depth-first: take the first unvisited neighbor the sensors report
	// free. A sensed Target is not free while exploring.
	for _, d := range Directions {
		if sensors.Cardinal(d) != SensorFree {
			continue
		}
		next := pos.Step(d)
		if !b.visited[next] {
			b.stack = append(b.stack, pos)
			return d, true, nil
		}
	}

	// Dead end: pop the route stack and plan one hop back toward the popped
	// position. The route is re-planned from scratch every step because
	// newly discovered territory may have opened a shortcut.
	if len(b.stack) > 0 {
		goal := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]
		if d, ok := b.firstMoveBFS(frontier, pos, goal); ok {
			return d, true, nil
		}
	}

	return Up, false, nil
}

// firstMoveBFS breadth-first searches the discovered frontier from start to
// goal and returns only the first move of the found route.
func (b *Backtracker) firstMoveBFS(frontier *Frontier, start, goal FreePosition) (Direction, bool) {
	type crumb struct {
		prev FreePosition
		dir  Direction
	}
	visited := map[FreePosition]bool{start: true}
	from := make(map[FreePosition]crumb)
	queue := []FreePosition{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == goal {
			// Walk back to the hop adjacent to start.
			for pos := goal; ; {
				step, ok := from[pos]
				if !ok {
					return Up, false
				}
				if step.prev == start {
					return step.dir, true
				}
				pos = step.prev
			}
		}

		for _, n := range frontier.Neighbors(current) {
			if visited[n.Pos] {
				continue
			}
			visited[n.Pos] = true
			from[n.Pos] = crumb{prev: current, dir: n.Dir}
			queue = append(queue, n.Pos)
		}
	}

	return Up, false
}
