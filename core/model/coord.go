package model

import "gonum.org/v1/gonum/spatial/r2"

// Coord is a planar coordinate in the service area, in meters.
type Coord = r2.Vec

// Distance returns the Euclidean distance between two coordinates.
func Distance(a, b Coord) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// BBox is an axis-aligned bounding box of the service area.
type BBox struct {
	Min Coord
	Max Coord
}

// Contains reports whether c lies inside the box, boundary included.
func (b BBox) Contains(c Coord) bool {
	return c.X >= b.Min.X && c.X <= b.Max.X && c.Y >= b.Min.Y && c.Y <= b.Max.Y
}
