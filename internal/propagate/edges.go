package propagate

import "github.com/san-kum/fdprop/internal/grid"

// edge is one side of the 2D perimeter. cell maps the k-th sample along the
// edge to its (ix, iy) grid position.
type edge struct {
	name string
	n    int
	cell func(k int) (ix, iy int)
}

// perimeter lists the edges in scatter order. The order is load-bearing:
// corners belong to two edges and keep the value of the later one, so left
// and right win over bottom and top.
func perimeter(nx, ny int) []edge {
	return []edge{
		{name: "bottom", n: nx, cell: func(k int) (int, int) { return k, 0 }},
		{name: "top", n: nx, cell: func(k int) (int, int) { return k, ny - 1 }},
		{name: "left", n: ny, cell: func(k int) (int, int) { return 0, k }},
		{name: "right", n: ny, cell: func(k int) (int, int) { return nx - 1, k }},
	}
}

// perimeterIndices concatenates the edge positions in scatter order.
func perimeterIndices(edges []edge) grid.Indices {
	n := 0
	for _, e := range edges {
		n += e.n
	}
	idx := grid.Indices{X: make([]int, 0, n), Y: make([]int, 0, n), I: make([]int, n)}
	for _, e := range edges {
		for k := 0; k < e.n; k++ {
			ix, iy := e.cell(k)
			idx.X = append(idx.X, ix)
			idx.Y = append(idx.Y, iy)
		}
	}
	return idx
}
