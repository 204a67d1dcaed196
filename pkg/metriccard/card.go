// Package metriccard renders dashboard metric panels with a trend sparkline.
package metriccard

import (
	"strconv"
)

// Direction is the trend of a series between its first and last point
type Direction string

const (
	DirectionUp      Direction = "up"
	DirectionDown    Direction = "down"
	DirectionNeutral Direction = "neutral"
)

type ChangeType string

const (
	ChangeIncrease ChangeType = "increase"
	ChangeDecrease ChangeType = "decrease"
)

// Change describes the delta shown next to the value, e.g. +12% vs last week
type Change struct {
	Value  float64    `json:"value"`
	Type   ChangeType `json:"type"`
	Period string     `json:"period"`
}

type Point struct {
	Value float64 `json:"value"`
}

// Card is the input of Render. Value is preformatted; use FormatNumber for
// numeric metrics.
type Card struct {
	Title  string  `json:"title"`
	Value  string  `json:"value"`
	Change *Change `json:"change,omitempty"`
	Icon   string  `json:"icon,omitempty"`
	Color  string  `json:"color,omitempty"`
	Trend  []Point `json:"trend,omitempty"`
}

// TrendDirection compares the first and last points. Series shorter than two
// points are neutral.
func TrendDirection(points []Point) Direction {
	if len(points) < 2 {
		return DirectionNeutral
	}

	first, last := points[0].Value, points[len(points)-1].Value
	switch {
	case last > first:
		return DirectionUp
	case last < first:
		return DirectionDown
	default:
		return DirectionNeutral
	}
}

// FormatNumber renders a numeric metric value without trailing zeros
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Points converts raw values into a trend series
func Points(values ...float64) []Point {
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{Value: v}
	}
	return points
}
