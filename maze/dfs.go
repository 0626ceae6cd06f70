package maze

// DFS is uninformed depth-first search: it returns the first path found, not
// the shortest. It is kept deliberately, as a baseline for how much an
// uninformed strategy costs versus A* and Dijkstra on the same maze.
type DFS struct{}

func (d *DFS) Name() string { return "DFS" }

func (d *DFS) FindPath(g *Grid, start, target Position) []Direction {
	from := make(cameFrom)
	visited := map[Position]bool{start: true}
	stack := []Position{start}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current == target {
			return from.reconstruct(start, target)
		}

		for _, n := range g.Neighbors(current) {
			if visited[n.Pos] {
				continue
			}
			visited[n.Pos] = true
			from[n.Pos] = struct {
				prev Position
				dir  Direction
			}{current, n.Dir}
			stack = append(stack, n.Pos)
		}
	}

	return nil
}
