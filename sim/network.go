package sim

import (
	"math"

	"github.com/openuam/uamd/core/model"
)

// Network is a flat service area with straight-line flight paths.
type Network struct {
	box model.BBox
}

// NewNetwork builds a service area of the given dimensions with its
// origin at (0, 0).
func NewNetwork(width, height float64) Network {
	return Network{box: model.BBox{Max: model.Coord{X: width, Y: height}}}
}

func (n Network) Bounds() model.BBox {
	return n.box
}

func (n Network) Distance(a, b model.Coord) float64 {
	return model.Distance(a, b)
}

// Stations lays count stations out on a regular grid inside the area,
// inset by half a cell so no station sits on the boundary.
func (n Network) Stations(count int) []model.Coord {
	cols := int(math.Ceil(math.Sqrt(float64(count))))
	rows := (count + cols - 1) / cols
	w := n.box.Max.X - n.box.Min.X
	h := n.box.Max.Y - n.box.Min.Y

	stations := make([]model.Coord, 0, count)
	for i := 0; i < count; i++ {
		col := i % cols
		row := i / cols
		stations = append(stations, model.Coord{
			X: n.box.Min.X + (float64(col)+0.5)*w/float64(cols),
			Y: n.box.Min.Y + (float64(row)+0.5)*h/float64(rows),
		})
	}
	return stations
}
