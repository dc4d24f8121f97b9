package dice

import "math"

// DefaultRadius is the reference die size in tray units.
const DefaultRadius = 120.0

// Silhouette ratios for the non-regular outlines.
const (
	kiteWidthRatio = 0.7
	hexShortRatio  = 0.3
	hexMediumRatio = 0.8
)

// Point is a 2D coordinate in tray units.
type Point struct {
	X, Y float64
}

// Polygon is an ordered point sequence, implicitly closed back to its first point.
type Polygon []Point

// RegularPolygon returns sides points evenly spaced on a circle of radius,
// starting at angle 0 and advancing by 2π/sides.
//
// Precondition: sides >= 3; radius > 0.
func RegularPolygon(sides int, radius float64) Polygon {
	if sides < 3 {
		panic("dice: RegularPolygon called with sides < 3")
	}
	step := 2 * math.Pi / float64(sides)
	poly := make(Polygon, sides)
	for i := range poly {
		angle := step * float64(i)
		poly[i] = Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
	}
	return poly
}

// Kite returns the d8 rhombus: tall points at ±radius, side points at ±0.7·radius.
func Kite(radius float64) Polygon {
	w := radius * kiteWidthRatio
	return Polygon{
		{X: 0, Y: -radius},
		{X: w, Y: 0},
		{X: 0, Y: radius},
		{X: -w, Y: 0},
	}
}

// ElongatedHexagon returns the d10 outline, a hexagon stretched along X.
func ElongatedHexagon(radius float64) Polygon {
	short := radius * hexShortRatio
	medium := radius * hexMediumRatio
	return Polygon{
		{X: 0, Y: -medium},
		{X: radius, Y: -short},
		{X: radius, Y: short},
		{X: 0, Y: medium},
		{X: -radius, Y: short},
		{X: -radius, Y: -short},
	}
}
