package templates

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText derives the text/plain alternative of an HTML email. Links keep
// their target in parentheses and blank lines are collapsed.
func PlainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	doc.Find("head, style, script, title").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, tr, h1, h2, h3").AppendHtml("\n")

	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		text := strings.TrimSpace(s.Text())
		if !ok || href == "" || href == text {
			return
		}
		if text == "" {
			s.SetText(href)
			return
		}
		s.SetText(text + " (" + href + ")")
	})

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}
