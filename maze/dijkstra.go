package maze

import "container/heap"

// Dijkstra is the same search as AStar with a zero heuristic: pure cost
// ordering. It exists as an optimality cross-check against A*; on unit-cost
// grids both must return paths of identical length.
type Dijkstra struct{}

func (d *Dijkstra) Name() string { return "Dijkstra" }

func (d *Dijkstra) FindPath(g *Grid, start, target Position) []Direction {
	open := &searchQueue{}
	heap.Init(open)

	from := make(cameFrom)
	distances := map[Position]int{start: 0}

	heap.Push(open, searchNode{pos: start})

	for open.Len() > 0 {
		current := heap.Pop(open).(searchNode)

		if current.pos == target {
			return from.reconstruct(start, target)
		}
		if best, ok := distances[current.pos]; ok && current.fScore > best {
			continue
		}

		for _, n := range g.Neighbors(current.pos) {
			cost := current.fScore + 1
			if best, ok := distances[n.Pos]; ok && cost >= best {
				continue
			}
			distances[n.Pos] = cost
			from[n.Pos] = struct {
				prev Position
				dir  Direction
			}{current.pos, n.Dir}
			heap.Push(open, searchNode{pos: n.Pos, gScore: cost, fScore: cost})
		}
	}

	return nil
}
