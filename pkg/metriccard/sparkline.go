package metriccard

import (
	"math"
	"strconv"
	"strings"
)

// Sparkline viewport
const (
	SparklineWidth  = 35.0
	SparklineHeight = 15.0
)

type Coord struct {
	X float64
	Y float64
}

// Sparkline scales points into the viewport. x is spread linearly across the
// width and y is measured down from the top relative to the series maximum,
// so the maximum touches the top edge. A non-positive maximum puts every point
// on the baseline. Fewer than two points yield no line.
func Sparkline(points []Point) []Coord {
	n := len(points)
	if n < 2 {
		return nil
	}

	maxValue := points[0].Value
	for _, p := range points[1:] {
		if p.Value > maxValue {
			maxValue = p.Value
		}
	}

	coords := make([]Coord, n)
	for i, p := range points {
		x := float64(i) / float64(n-1) * SparklineWidth
		y := SparklineHeight
		if maxValue > 0 {
			y = SparklineHeight - (p.Value/maxValue)*SparklineHeight
		}
		coords[i] = Coord{X: x, Y: y}
	}
	// pin the last x so rounding never leaves the line short of the edge
	coords[n-1].X = SparklineWidth
	return coords
}

// SparklinePath returns the coordinates as an SVG polyline points attribute
func SparklinePath(points []Point) string {
	coords := Sparkline(points)
	if len(coords) == 0 {
		return ""
	}

	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = formatCoord(c.X) + "," + formatCoord(c.Y)
	}
	return strings.Join(parts, " ")
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
