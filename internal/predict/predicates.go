package predict

import (
	"fmt"
	"net/url"
	"strings"
)

// Match predicates test whether a candidate URL encodes a given quarter
// and/or year. They look only at the URL path, not the query string, so
// tracking parameters cannot produce false positives. All checks are
// case-insensitive substring tests; coincidental digit sequences can still
// match the year forms, a deliberately permissive tradeoff.

// urlPath returns the lowercased path of the URL, or the whole string
// lowercased when it does not parse (candidates are matched best-effort).
func urlPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return strings.ToLower(rawURL)
	}
	return strings.ToLower(u.Path)
}

// HasQuarter reports whether the URL path encodes the given quarter in any
// of the recognized textual forms.
func HasQuarter(rawURL string, quarter int) bool {
	if quarter < 1 || quarter > 4 {
		return false
	}
	path := urlPath(rawURL)
	forms := []string{
		fmt.Sprintf("q%d", quarter),
		fmt.Sprintf("%dq", quarter),
		fmt.Sprintf("quarter-%d", quarter),
		fmt.Sprintf("quarter %d", quarter),
		fmt.Sprintf("quarter%d", quarter),
		fmt.Sprintf("qtr%d", quarter),
		fmt.Sprintf("qtr-%d", quarter),
		fmt.Sprintf("qtr_%d", quarter),
		quarterWords[quarter-1],
		fmt.Sprintf("%d%s", quarter, OrdinalSuffix(quarter)),
	}
	for _, form := range forms {
		if strings.Contains(path, form) {
			return true
		}
	}
	return false
}

// HasYear reports whether the URL path contains the 2-digit or 4-digit form
// of the year as a substring.
func HasYear(rawURL string, year string) bool {
	yy := shortYear(year)
	if yy == "" {
		return false
	}
	path := urlPath(rawURL)
	return strings.Contains(path, yy) || strings.Contains(path, "20"+yy)
}

// HasQuarterYearCombo reports whether the URL path contains a fused
// quarter+year token. A combo hit is a strong enough signal that the scanner
// accepts the candidate regardless of its fuzzy similarity score.
func HasQuarterYearCombo(rawURL string, quarter int, year string) bool {
	if quarter < 1 || quarter > 4 {
		return false
	}
	yy := shortYear(year)
	if yy == "" {
		return false
	}
	path := urlPath(rawURL)
	for _, y := range []string{yy, "20" + yy} {
		for _, sep := range []string{"", "-", "_"} {
			combos := []string{
				fmt.Sprintf("q%d%sfy%s", quarter, sep, y),
				fmt.Sprintf("fy%s%sq%d", y, sep, quarter),
				fmt.Sprintf("q%d%s%s", quarter, sep, y),
				fmt.Sprintf("%s%sq%d", y, sep, quarter),
			}
			for _, combo := range combos {
				if strings.Contains(path, combo) {
					return true
				}
			}
		}
	}
	return false
}
