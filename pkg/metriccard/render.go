package metriccard

import (
	"bytes"
	"fmt"
	"html/template"
)

var directionColors = map[Direction]string{
	DirectionUp:      "#16a34a",
	DirectionDown:    "#dc2626",
	DirectionNeutral: "#9ca3af",
}

const defaultAccent = "#6366f1"

var cardTemplate = template.Must(template.New("card").Parse(`<div class="metric-card" data-trend="{{.Direction}}">
  <div class="metric-card__header">
    <span class="metric-card__title">{{.Title}}</span>
    {{- if .Icon}}
    <span class="metric-card__icon" style="color: {{.Accent}}" data-icon="{{.Icon}}"></span>
    {{- end}}
  </div>
  <div class="metric-card__body">
    <span class="metric-card__value">{{.Value}}</span>
    {{- if .Change}}
    <span class="metric-card__change metric-card__change--{{.Change.Type}}">{{.ChangeLabel}}{{if .Change.Period}} {{.Change.Period}}{{end}}</span>
    {{- end}}
    {{- if .Path}}
    <svg class="metric-card__sparkline" width="35" height="15" viewBox="0 0 35 15" fill="none" aria-hidden="true">
      <polyline points="{{.Path}}" stroke="{{.LineColor}}" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round" fill="none"/>
    </svg>
    {{- end}}
  </div>
</div>`))

type cardView struct {
	Card
	Direction   Direction
	Accent      string
	LineColor   string
	Path        string
	ChangeLabel string
}

// Render produces the HTML fragment of a card. It has no side effects.
func Render(card Card) (template.HTML, error) {
	direction := TrendDirection(card.Trend)

	view := cardView{
		Card:      card,
		Direction: direction,
		Accent:    card.Color,
		LineColor: directionColors[direction],
		Path:      SparklinePath(card.Trend),
	}
	if view.Accent == "" {
		view.Accent = defaultAccent
	}
	if card.Change != nil {
		view.ChangeLabel = changeLabel(*card.Change)
	}

	var buf bytes.Buffer
	if err := cardTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render metric card %q: %w", card.Title, err)
	}
	return template.HTML(buf.String()), nil
}

// RenderAll renders cards in order, stopping at the first failure
func RenderAll(cards []Card) ([]template.HTML, error) {
	rendered := make([]template.HTML, 0, len(cards))
	for _, c := range cards {
		html, err := Render(c)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, html)
	}
	return rendered, nil
}

func changeLabel(c Change) string {
	sign := "+"
	if c.Type == ChangeDecrease {
		sign = "-"
	}
	v := c.Value
	if v < 0 {
		v = -v
	}
	return sign + FormatNumber(v) + "%"
}
