package extract

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// pathLengthSlack is how much shorter than the predicted path a candidate
// path may be before it is pruned as navigation chrome.
const pathLengthSlack = 20

// HarvestLinks collects outbound links from a rendered listing page.
// Relative hrefs are resolved against the listing URL, fragment-only and
// non-HTTP links are discarded, and links whose path is implausibly short
// relative to the predicted report path are pruned. The result is
// deduplicated by absolute URL and sorted for determinism.
func HarvestLinks(htmlContent, listingURL, predictedURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(listingURL)
	if err != nil {
		return nil, err
	}

	minPathLen := 0
	if predicted, err := url.Parse(predictedURL); err == nil {
		minPathLen = len(predicted.Path) - pathLengthSlack
	}

	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		if strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		if resolved.Path == "" || resolved.Path == "/" || len(resolved.Path) < minPathLen {
			return
		}
		resolved.Fragment = ""
		seen[resolved.String()] = struct{}{}
	})

	links := make([]string, 0, len(seen))
	for link := range seen {
		links = append(links, link)
	}
	sort.Strings(links)
	return links, nil
}
