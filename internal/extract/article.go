package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// nonContentSelectors lists elements stripped before extracting body text
const nonContentSelectors = "script, style, noscript, nav, header, footer, aside, form, iframe"

// ArticleText runs a readability-style pass over raw HTML: isolate the main
// article content, strip navigation and boilerplate, return the visible
// text. Prefers <article> and <main> containers before falling back to the
// whole <body>.
func ArticleText(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	for _, selector := range []string{"article", "main", "[role='main']", "#content", ".content"} {
		container := doc.Find(selector).First()
		if container.Length() > 0 {
			container.Find(nonContentSelectors).Remove()
			if text := strings.TrimSpace(container.Text()); text != "" {
				return text, nil
			}
		}
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return "", nil
	}
	body.Find(nonContentSelectors).Remove()
	return strings.TrimSpace(body.Text()), nil
}
