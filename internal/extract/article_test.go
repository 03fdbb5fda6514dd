package extract

import (
	"strings"
	"testing"
)

func TestArticleText_PrefersArticleContainer(t *testing.T) {
	html := `<html><body>
		<nav>Home | Investors | Contact</nav>
		<article>
			<h1>Q3 2024 Results</h1>
			<p>Revenue grew 12% year over year.</p>
		</article>
		<footer>Copyright 2024</footer>
	</body></html>`

	text, err := ArticleText(html)
	if err != nil {
		t.Fatalf("ArticleText returned error: %v", err)
	}
	if !strings.Contains(text, "Revenue grew 12%") {
		t.Errorf("article text missing content: %q", text)
	}
	if strings.Contains(text, "Investors | Contact") || strings.Contains(text, "Copyright") {
		t.Errorf("article text contains page chrome: %q", text)
	}
}

func TestArticleText_StripsBoilerplateFromBody(t *testing.T) {
	html := `<html><body>
		<nav>Main menu</nav>
		<script>loadAnalytics();</script>
		<p>Net income was $500 million.</p>
		<footer>Legal notices</footer>
	</body></html>`

	text, err := ArticleText(html)
	if err != nil {
		t.Fatalf("ArticleText returned error: %v", err)
	}
	if !strings.Contains(text, "Net income was $500 million.") {
		t.Errorf("body text missing content: %q", text)
	}
	for _, chrome := range []string{"Main menu", "loadAnalytics", "Legal notices"} {
		if strings.Contains(text, chrome) {
			t.Errorf("body text contains %q: %q", chrome, text)
		}
	}
}

func TestArticleText_EmptyArticleFallsThrough(t *testing.T) {
	html := `<html><body>
		<article><script>only.scripts()</script></article>
		<p>Quarterly report text.</p>
	</body></html>`

	text, err := ArticleText(html)
	if err != nil {
		t.Fatalf("ArticleText returned error: %v", err)
	}
	if !strings.Contains(text, "Quarterly report text.") {
		t.Errorf("fallback text missing content: %q", text)
	}
}

func TestIsPDFResponse(t *testing.T) {
	tests := []struct {
		contentType string
		url         string
		expected    bool
	}{
		{"application/pdf", "https://example.com/report", true},
		{"application/pdf; charset=binary", "https://example.com/report", true},
		{"application/octet-stream", "https://example.com/report.pdf", true},
		{"application/octet-stream", "https://example.com/report", true},
		{"text/html", "https://example.com/report.pdf", true},
		{"text/html", "https://example.com/report", false},
	}

	for _, tt := range tests {
		if got := IsPDFResponse(tt.contentType, tt.url); got != tt.expected {
			t.Errorf("IsPDFResponse(%q, %q) = %v, want %v", tt.contentType, tt.url, got, tt.expected)
		}
	}
}
