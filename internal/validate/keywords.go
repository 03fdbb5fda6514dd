package validate

import (
	"strings"

	"golang.org/x/net/html"
)

// reportKeywords are the financial terms whose presence marks a document as
// a quarterly earnings report rather than an unrelated page at a matching URL.
var reportKeywords = []string{
	"revenue",
	"eps",
	"net income",
	"guidance",
	"quarterly",
	"gaap",
}

// ContainsFinancialTerms reports whether the text reads like an earnings
// report. Matching is case-insensitive.
func ContainsFinancialTerms(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range reportKeywords {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// HTMLText strips tags from an HTML document and returns its visible text.
// Script and style contents are skipped. Used for keyword checks only; the
// content extractor does the real readability pass.
func HTMLText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(sb.String()), " ")
}
