package metriccard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendDirection(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   Direction
	}{
		{"nil", nil, DirectionNeutral},
		{"single point", Points(42), DirectionNeutral},
		{"rising", Points(1, 5, 3, 9), DirectionUp},
		{"falling", Points(9, 12, 2), DirectionDown},
		{"flat ends", Points(4, 10, 0, 4), DirectionNeutral},
		{"negative values", Points(-5, -1), DirectionUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrendDirection(tt.points))
		})
	}
}

func TestTrendDirection_MatchesSign(t *testing.T) {
	series := [][]float64{
		{0, 1}, {1, 0}, {3, 3}, {2.5, 2.4, 2.6}, {100, 0, 0, 0, 99},
	}
	for _, values := range series {
		points := Points(values...)
		diff := values[len(values)-1] - values[0]
		got := TrendDirection(points)
		switch {
		case diff > 0:
			assert.Equal(t, DirectionUp, got, values)
		case diff < 0:
			assert.Equal(t, DirectionDown, got, values)
		default:
			assert.Equal(t, DirectionNeutral, got, values)
		}
	}
}

func TestSparkline(t *testing.T) {
	t.Run("too short", func(t *testing.T) {
		assert.Nil(t, Sparkline(nil))
		assert.Nil(t, Sparkline(Points(3)))
		assert.Equal(t, "", SparklinePath(Points(3)))
	})

	t.Run("scales against maximum", func(t *testing.T) {
		coords := Sparkline(Points(0, 5, 10))
		require.Len(t, coords, 3)
		assert.Equal(t, Coord{X: 0, Y: 15}, coords[0])
		assert.Equal(t, Coord{X: 17.5, Y: 7.5}, coords[1])
		assert.Equal(t, Coord{X: 35, Y: 0}, coords[2])
	})

	t.Run("non-positive maximum sits on baseline", func(t *testing.T) {
		for _, c := range Sparkline(Points(0, 0, 0)) {
			assert.Equal(t, SparklineHeight, c.Y)
		}
		for _, c := range Sparkline(Points(-3, -1)) {
			assert.Equal(t, SparklineHeight, c.Y)
		}
	})

	t.Run("x spans the width for any length", func(t *testing.T) {
		for n := 2; n <= 40; n++ {
			values := make([]float64, n)
			for i := range values {
				values[i] = float64((i * 7) % 5)
			}
			coords := Sparkline(Points(values...))
			require.Len(t, coords, n)
			assert.Equal(t, 0.0, coords[0].X)
			assert.Equal(t, SparklineWidth, coords[n-1].X)
			for i := 1; i < n; i++ {
				assert.GreaterOrEqual(t, coords[i].X, coords[i-1].X)
			}
		}
	})

	t.Run("path format", func(t *testing.T) {
		assert.Equal(t, "0,15 17.5,7.5 35,0", SparklinePath(Points(0, 5, 10)))
		assert.Equal(t, "0,10 11.67,0 23.33,5 35,15", SparklinePath(Points(3, 9, 6, 0)))
	})
}

func TestRender(t *testing.T) {
	html, err := Render(Card{
		Title:  "Completed assessments",
		Value:  FormatNumber(128),
		Change: &Change{Value: 12.5, Type: ChangeIncrease, Period: "vs last week"},
		Icon:   "clipboard-check",
		Color:  "#0ea5e9",
		Trend:  Points(1, 4, 9),
	})
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, `data-trend="up"`)
	assert.Contains(t, out, "Completed assessments")
	assert.Contains(t, out, ">128<")
	assert.Contains(t, out, "&#43;12.5% vs last week")
	assert.Contains(t, out, `viewBox="0 0 35 15"`)
	assert.Contains(t, out, `points="0,13.33 17.5,8.33 35,0"`)
	assert.Contains(t, out, directionColors[DirectionUp])
	assert.Contains(t, out, `data-icon="clipboard-check"`)
}

func TestRender_NoTrendNoChange(t *testing.T) {
	html, err := Render(Card{Title: "Clients", Value: "7"})
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, `data-trend="neutral"`)
	assert.NotContains(t, out, "<svg")
	assert.NotContains(t, out, "metric-card__change")
	assert.NotContains(t, out, "metric-card__icon")
}

func TestRender_EscapesInput(t *testing.T) {
	html, err := Render(Card{Title: "<script>alert(1)</script>", Value: "1"})
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(html), "<script>"))
}

func TestRender_DecreaseLabel(t *testing.T) {
	html, err := Render(Card{Title: "Active", Value: "3", Change: &Change{Value: -4, Type: ChangeDecrease}, Trend: Points(5, 3)})
	require.NoError(t, err)
	assert.Contains(t, string(html), "-4%")
	assert.Contains(t, string(html), `data-trend="down"`)
}

func TestRenderAll(t *testing.T) {
	out, err := RenderAll([]Card{{Title: "a", Value: "1"}, {Title: "b", Value: "2"}})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
