package viewer

import (
	"github.com/lixenwraith/lander/terrain"
	"github.com/lixenwraith/lander/vmath"
)

// Viewport maps world coordinates onto a grid of terminal cells
// Row 0 is the top of the map, world Y grows upwards
type Viewport struct {
	Width, Height int
	MinX, MaxX    float64
	MinY, MaxY    float64
}

// NewViewport fits the terrain's horizontal range and [0, ceiling] into width x height cells
func NewViewport(t *terrain.Terrain, width, height int) Viewport {
	minX, maxX := t.Bounds()
	return Viewport{
		Width:  width,
		Height: height,
		MinX:   minX,
		MaxX:   maxX,
		MinY:   0,
		MaxY:   t.Ceiling(),
	}
}

// Project returns the cell holding p; ok is false when p lies outside the viewport
func (v Viewport) Project(p vmath.Vec2) (col, row int, ok bool) {
	if v.Width <= 0 || v.Height <= 0 {
		return 0, 0, false
	}
	if p.X < v.MinX || p.X > v.MaxX || p.Y < v.MinY || p.Y > v.MaxY {
		return 0, 0, false
	}

	col = int((p.X - v.MinX) / (v.MaxX - v.MinX) * float64(v.Width))
	row = int((v.MaxY - p.Y) / (v.MaxY - v.MinY) * float64(v.Height))
	return min(col, v.Width-1), min(row, v.Height-1), true
}

// ColumnX is the world X at the center of col
func (v Viewport) ColumnX(col int) float64 {
	return v.MinX + (float64(col)+0.5)*(v.MaxX-v.MinX)/float64(v.Width)
}
