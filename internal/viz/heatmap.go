package viz

import "strings"

var shades = []rune(" ░▒▓█")

// Heatmap is a character grid shading a row-major nx×ny scalar field. Rows
// of the output run along y (top is y max), columns along x.
type Heatmap struct {
	Width, Height int
	Grid          [][]rune
}

func NewHeatmap(w, h int) *Heatmap {
	m := &Heatmap{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range m.Grid {
		m.Grid[i] = make([]rune, w)
	}
	m.Clear()
	return m
}

func (m *Heatmap) Clear() {
	for i := range m.Grid {
		for j := range m.Grid[i] {
			m.Grid[i][j] = shades[0]
		}
	}
}

// Draw nearest-neighbour samples the field onto the grid, normalized to its
// maximum.
func (m *Heatmap) Draw(field []float64, nx, ny int) {
	m.Clear()
	if nx*ny != len(field) || len(field) == 0 {
		return
	}
	_, peak := bounds(field)
	if peak <= 0 {
		return
	}
	for row := 0; row < m.Height; row++ {
		iy := ny - 1 - row*ny/m.Height
		for col := 0; col < m.Width; col++ {
			ix := col * nx / m.Width
			norm := field[ix*ny+iy] / peak
			idx := min(max(int(norm*float64(len(shades))), 0), len(shades)-1)
			m.Grid[row][col] = shades[idx]
		}
	}
}

func (m *Heatmap) String() string {
	var b strings.Builder
	for _, row := range m.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}
