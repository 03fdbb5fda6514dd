package predict

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// rule pairs a pattern with its replacement. Rules are evaluated in priority
// order and only the first matching rule of a class is applied per segment,
// so a token consumed by a combined quarter+year rule is never rewritten
// again by a bare quarter or year rule.
type rule struct {
	re      *regexp.Regexp
	rewrite func(match []string, q int, year string) string
}

var quarterWords = []string{"first", "second", "third", "fourth"}

// Combined quarter+year tokens. The separator group and the case of the
// matched "q"/"fy" markers are preserved, so "q2-2024" rewrites to
// "q3-2024" and "Q1-FY24" to "Q2-FY24".
var comboRules = []rule{
	{
		re: regexp.MustCompile(`(?i)\b(q)([1-4])([-_]?)(fy)?(\d{4}|\d{2})\b`),
		rewrite: func(m []string, q int, year string) string {
			return fmt.Sprintf("%s%d%s%s%s", m[1], q, m[3], m[4], matchYearWidth(m[5], year))
		},
	},
	{
		re: regexp.MustCompile(`(?i)\b(fy)?(\d{4}|\d{2})([-_]?)(q)([1-4])\b`),
		rewrite: func(m []string, q int, year string) string {
			return fmt.Sprintf("%s%s%s%s%d", m[1], matchYearWidth(m[2], year), m[3], m[4], q)
		},
	},
}

// Bare quarter tokens, most specific first so "3rd-quarter" is not
// half-consumed by the plain "quarter" rules.
var quarterRules = []rule{
	{
		re: regexp.MustCompile(`(?i)\b([1-4])(st|nd|rd|th)[-_ ]?quarter\b`),
		rewrite: func(m []string, q int, _ string) string {
			return fmt.Sprintf("%d%s-quarter", q, OrdinalSuffix(q))
		},
	},
	{
		re: regexp.MustCompile(`(?i)\b(first|second|third|fourth)[-_ ]?quarter\b`),
		rewrite: func(m []string, q int, _ string) string {
			return quarterWords[q-1] + "-quarter"
		},
	},
	{
		re: regexp.MustCompile(`(?i)\bquarter[-_ ]?([1-4])\b`),
		rewrite: func(m []string, q int, _ string) string {
			return fmt.Sprintf("quarter-%d", q)
		},
	},
	{
		re: regexp.MustCompile(`(?i)q([1-4])`),
		rewrite: func(m []string, q int, _ string) string {
			// Preserve the case of the matched token.
			if strings.HasPrefix(m[0], "Q") {
				return fmt.Sprintf("Q%d", q)
			}
			return fmt.Sprintf("q%d", q)
		},
	},
	{
		re: regexp.MustCompile(`(?i)\b([1-4])q\b`),
		rewrite: func(m []string, q int, _ string) string {
			return fmt.Sprintf("%dq", q)
		},
	},
}

// Year tokens. Digit width follows the matched source token: a 2-digit token
// stays 2-digit, a 4-digit token stays 4-digit.
var yearRules = []rule{
	{
		re: regexp.MustCompile(`(?i)\b(fy)([-_]?)(\d{4}|\d{2})\b`),
		rewrite: func(m []string, _ int, year string) string {
			return m[1] + m[2] + matchYearWidth(m[3], year)
		},
	},
	{
		re: regexp.MustCompile(`\b(\d{4}|\d{2})\b`),
		rewrite: func(m []string, _ int, year string) string {
			return matchYearWidth(m[1], year)
		},
	},
}

// matchYearWidth renders the 2-digit target year at the digit width of the
// matched source token.
func matchYearWidth(matched, year string) string {
	if len(matched) == 4 {
		return "20" + year
	}
	return year
}

// OrdinalSuffix returns the English ordinal suffix for n, with the standard
// 11/12/13 exceptions.
func OrdinalSuffix(n int) string {
	j, k := n%10, n%100
	switch {
	case j == 1 && k != 11:
		return "st"
	case j == 2 && k != 12:
		return "nd"
	case j == 3 && k != 13:
		return "rd"
	default:
		return "th"
	}
}

// NextQuarterURL predicts the URL of the upcoming report from the previous
// period's URL by substituting quarter/year tokens in each path segment.
// Scheme, host and query pass through unchanged; a segment containing no
// recognizable token is returned verbatim. Pure function, no network access.
func NextQuarterURL(previousURL string, quarter int, year string) (string, error) {
	if quarter < 1 || quarter > 4 {
		return "", fmt.Errorf("quarter out of range: %d", quarter)
	}
	u, err := url.Parse(previousURL)
	if err != nil {
		return "", fmt.Errorf("parse previous url: %w", err)
	}
	year = shortYear(year)

	segments := strings.Split(u.Path, "/")
	for i, seg := range segments {
		segments[i] = rewriteSegment(seg, quarter, year)
	}
	u.Path = strings.Join(segments, "/")
	return u.String(), nil
}

// rewriteSegment applies the first matching rule class to one path segment.
// A combined-pattern match consumes both the quarter and the year token, so
// the bare classes are skipped entirely for that segment.
func rewriteSegment(seg string, quarter int, year string) string {
	for _, r := range comboRules {
		if r.re.MatchString(seg) {
			return applyRule(seg, r, quarter, year)
		}
	}
	for _, r := range quarterRules {
		if r.re.MatchString(seg) {
			seg = applyRule(seg, r, quarter, year)
			break
		}
	}
	for _, r := range yearRules {
		if r.re.MatchString(seg) {
			seg = applyRule(seg, r, quarter, year)
			break
		}
	}
	return seg
}

// applyRule rewrites every occurrence of the rule's pattern in the segment.
func applyRule(seg string, r rule, quarter int, year string) string {
	return r.re.ReplaceAllStringFunc(seg, func(tok string) string {
		m := r.re.FindStringSubmatch(tok)
		return r.rewrite(m, quarter, year)
	})
}

func shortYear(year string) string {
	if len(year) == 4 {
		return year[2:]
	}
	return year
}
