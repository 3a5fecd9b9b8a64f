package steering

import (
	"container/heap"
	"math"

	"github.com/jakecoffman/cp"
)

// ObstacleGraph is a visibility graph over the buffered corners of the
// level's obstacles. It is built once per level and is read-only after.
type ObstacleGraph struct {
	obstacles []*PolygonObstacle
	buffer    float64
	nodes     []cp.Vector
	adjacent  [][]int
}

// NewObstacleGraph connects every pair of buffered corners that can see
// each other. Corners that end up inside another obstacle are dropped.
func NewObstacleGraph(obstacles []*PolygonObstacle, bufferRadius float64) *ObstacleGraph {
	g := &ObstacleGraph{
		obstacles: append([]*PolygonObstacle(nil), obstacles...),
		buffer:    bufferRadius,
	}
	for _, o := range g.obstacles {
		if o.VertexCount() < 3 {
			continue
		}
		for _, v := range o.buffered(bufferRadius) {
			if g.insideAny(v) {
				continue
			}
			g.nodes = append(g.nodes, v)
		}
	}
	g.adjacent = make([][]int, len(g.nodes))
	for i := range g.nodes {
		for j := i + 1; j < len(g.nodes); j++ {
			if g.Visible(g.nodes[i], g.nodes[j]) {
				g.adjacent[i] = append(g.adjacent[i], j)
				g.adjacent[j] = append(g.adjacent[j], i)
			}
		}
	}
	return g
}

// Obstacles returns the polygons the graph was built from.
func (g *ObstacleGraph) Obstacles() []*PolygonObstacle {
	if g == nil {
		return nil
	}
	return g.obstacles
}

func (g *ObstacleGraph) Nodes() []cp.Vector {
	if g == nil {
		return nil
	}
	return append([]cp.Vector(nil), g.nodes...)
}

// Neighbors returns the indices of nodes visible from node i.
func (g *ObstacleGraph) Neighbors(i int) []int {
	if g == nil || i < 0 || i >= len(g.adjacent) {
		return nil
	}
	return append([]int(nil), g.adjacent[i]...)
}

// Visible reports whether the straight segment a..b is clear of obstacles.
func (g *ObstacleGraph) Visible(a, b cp.Vector) bool {
	for _, o := range g.obstacles {
		if o.Blocks(a, b) {
			return false
		}
	}
	return true
}

func (g *ObstacleGraph) insideAny(p cp.Vector) bool {
	for _, o := range g.obstacles {
		if o.Contains(p) {
			return true
		}
	}
	return false
}

// FindPath returns waypoints from `from` to `to`, both included, or nil
// when no route exists.
func (g *ObstacleGraph) FindPath(from, to cp.Vector) []cp.Vector {
	if g == nil {
		return nil
	}
	if g.Visible(from, to) {
		return []cp.Vector{from, to}
	}

	n := len(g.nodes)
	startIdx, goalIdx := n, n+1
	points := append(append([]cp.Vector(nil), g.nodes...), from, to)

	startEdges := make([]int, 0)
	goalEdges := make(map[int]bool)
	for i, node := range g.nodes {
		if g.Visible(from, node) {
			startEdges = append(startEdges, i)
		}
		if g.Visible(node, to) {
			goalEdges[i] = true
		}
	}

	neighbors := func(i int) []int {
		if i == startIdx {
			return startEdges
		}
		out := g.adjacent[i]
		if goalEdges[i] {
			out = append(append([]int(nil), out...), goalIdx)
		}
		return out
	}

	cameFrom := make([]int, n+2)
	gScore := make([]float64, n+2)
	for i := range cameFrom {
		cameFrom[i] = -1
		gScore[i] = math.Inf(1)
	}
	gScore[startIdx] = 0

	open := &openSet{}
	heap.Init(open)
	heap.Push(open, &openItem{node: startIdx, f: from.Distance(to)})

	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		if current.node == goalIdx {
			return reconstructPath(points, cameFrom, startIdx, goalIdx)
		}
		if current.g > gScore[current.node] {
			continue
		}
		for _, next := range neighbors(current.node) {
			tentative := gScore[current.node] + points[current.node].Distance(points[next])
			if tentative < gScore[next] {
				cameFrom[next] = current.node
				gScore[next] = tentative
				heap.Push(open, &openItem{node: next, g: tentative, f: tentative + points[next].Distance(to)})
			}
		}
	}
	return nil
}

func reconstructPath(points []cp.Vector, cameFrom []int, startIdx, goalIdx int) []cp.Vector {
	path := make([]cp.Vector, 0, 8)
	for cur := goalIdx; cur != -1; cur = cameFrom[cur] {
		path = append(path, points[cur])
		if cur == startIdx {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type openItem struct {
	node  int
	f     float64
	g     float64
	index int
}

type openSet []*openItem

func (o openSet) Len() int           { return len(o) }
func (o openSet) Less(i, j int) bool { return o[i].f < o[j].f }
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
