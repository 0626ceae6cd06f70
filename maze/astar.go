package maze

import "container/heap"

// searchNode is one priority-queue entry for A* and Dijkstra.
type searchNode struct {
	pos    Position
	gScore int
	fScore int
}

// searchQueue orders nodes by f-score, breaking ties by row then column so
// the expansion order (and therefore the returned path) is reproducible.
type searchQueue []searchNode

func (q searchQueue) Len() int { return len(q) }

func (q searchQueue) Less(i, j int) bool {
	if q[i].fScore != q[j].fScore {
		return q[i].fScore < q[j].fScore
	}
	if q[i].pos.Row != q[j].pos.Row {
		return q[i].pos.Row < q[j].pos.Row
	}
	return q[i].pos.Col < q[j].pos.Col
}

func (q searchQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *searchQueue) Push(x any) { *q = append(*q, x.(searchNode)) }

func (q *searchQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// AStar is best-first search on f = g + h with a Manhattan-distance
// heuristic. Manhattan distance is admissible and consistent here because
// every edge costs 1 and only cardinal moves exist, so the returned path is
// a true shortest path.
type AStar struct{}

func (a *AStar) Name() string { return "A*" }

func (a *AStar) FindPath(g *Grid, start, target Position) []Direction {
	open := &searchQueue{}
	heap.Init(open)

	from := make(cameFrom)
	gScores := map[Position]int{start: 0}
	closed := make(map[Position]bool)

	heap.Push(open, searchNode{
		pos:    start,
		gScore: 0,
		fScore: start.ManhattanDistance(target),
	})

	for open.Len() > 0 {
		current := heap.Pop(open).(searchNode)

		if current.pos == target {
			return from.reconstruct(start, target)
		}
		if closed[current.pos] {
			continue
		}
		closed[current.pos] = true

		// A stale queue entry: a cheaper route to this position was found
		// after it was pushed.
		if best, ok := gScores[current.pos]; ok && current.gScore > best {
			continue
		}

		for _, n := range g.Neighbors(current.pos) {
			if closed[n.Pos] {
				continue
			}
			tentative := current.gScore + 1
			if best, ok := gScores[n.Pos]; ok && tentative >= best {
				continue
			}
			gScores[n.Pos] = tentative
			from[n.Pos] = struct {
				prev Position
				dir  Direction
			}{current.pos, n.Dir}
			heap.Push(open, searchNode{
				pos:    n.Pos,
				gScore: tentative,
				fScore: tentative + n.Pos.ManhattanDistance(target),
			})
		}
	}

	return nil
}
