// Package templates renders transactional emails: Liquid for substitution,
// MJML for layout and goquery for the plain text alternative.
package templates

import (
	"context"
	"fmt"
	"strings"

	mjmlgo "github.com/Boostport/mjml-go"
	"github.com/osteele/liquid"
)

const maxTemplateSize = 100 * 1024

// EmailTemplate holds Liquid sources for the subject line and the MJML body
type EmailTemplate struct {
	Name    string
	Subject string
	MJML    string
}

type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

type Renderer struct {
	engine *liquid.Engine
}

func NewRenderer() *Renderer {
	return &Renderer{engine: liquid.NewEngine()}
}

// Render substitutes data into tpl and compiles the MJML to HTML
func (r *Renderer) Render(ctx context.Context, tpl EmailTemplate, data map[string]interface{}) (*Rendered, error) {
	if len(tpl.MJML) > maxTemplateSize {
		return nil, fmt.Errorf("template %s exceeds %d bytes", tpl.Name, maxTemplateSize)
	}
	if data == nil {
		data = map[string]interface{}{}
	}

	subject, serr := r.engine.ParseAndRenderString(tpl.Subject, data)
	if serr != nil {
		return nil, fmt.Errorf("failed to render subject of %s: %w", tpl.Name, serr)
	}

	mjml, serr := r.engine.ParseAndRenderString(tpl.MJML, data)
	if serr != nil {
		return nil, fmt.Errorf("failed to render body of %s: %w", tpl.Name, serr)
	}

	html, err := mjmlgo.ToHTML(ctx, mjml)
	if err != nil {
		return nil, fmt.Errorf("failed to compile mjml for %s: %w", tpl.Name, err)
	}

	text, err := PlainText(html)
	if err != nil {
		return nil, err
	}

	return &Rendered{
		Subject: strings.TrimSpace(subject),
		HTML:    html,
		Text:    text,
	}, nil
}
