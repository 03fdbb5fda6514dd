package predict

import "testing"

func TestNextQuarterURL(t *testing.T) {
	tests := []struct {
		desc     string
		previous string
		quarter  int
		year     string
		expected string
	}{
		{
			desc:     "combo token keeps separator",
			previous: "https://example.com/ir/q2-2024-earnings.pdf",
			quarter:  3,
			year:     "24",
			expected: "https://example.com/ir/q3-2024-earnings.pdf",
		},
		{
			desc:     "combo token without separator",
			previous: "https://example.com/ir/q22024-report.pdf",
			quarter:  3,
			year:     "24",
			expected: "https://example.com/ir/q32024-report.pdf",
		},
		{
			desc:     "fiscal-year combo",
			previous: "https://example.com/filings/q1fy24.pdf",
			quarter:  2,
			year:     "25",
			expected: "https://example.com/filings/q2fy25.pdf",
		},
		{
			desc:     "year-first combo",
			previous: "https://example.com/docs/2023-q4-results.pdf",
			quarter:  1,
			year:     "24",
			expected: "https://example.com/docs/2024-q1-results.pdf",
		},
		{
			desc:     "quarter and year in separate segments",
			previous: "https://example.com/2024/q2-earnings",
			quarter:  3,
			year:     "24",
			expected: "https://example.com/2024/q3-earnings",
		},
		{
			desc:     "two-digit year stays two digits",
			previous: "https://example.com/reports/24/q1.pdf",
			quarter:  2,
			year:     "2025",
			expected: "https://example.com/reports/25/q2.pdf",
		},
		{
			desc:     "four-digit year stays four digits",
			previous: "https://example.com/reports/2024/q4.pdf",
			quarter:  1,
			year:     "25",
			expected: "https://example.com/reports/2025/q1.pdf",
		},
		{
			desc:     "uppercase quarter token preserved",
			previous: "https://example.com/ir/Q2-Earnings-Call",
			quarter:  3,
			year:     "24",
			expected: "https://example.com/ir/Q3-Earnings-Call",
		},
		{
			desc:     "uppercase combo token preserved",
			previous: "https://example.com/ir/Q2-2024-Earnings-Call",
			quarter:  3,
			year:     "24",
			expected: "https://example.com/ir/Q3-2024-Earnings-Call",
		},
		{
			desc:     "uppercase fiscal combo preserved",
			previous: "https://example.com/ir/Q1-FY24-results",
			quarter:  2,
			year:     "24",
			expected: "https://example.com/ir/Q2-FY24-results",
		},
		{
			desc:     "fiscal year segment case preserved",
			previous: "https://example.com/reports/FY2024/Q1.pdf",
			quarter:  2,
			year:     "25",
			expected: "https://example.com/reports/FY2025/Q2.pdf",
		},
		{
			desc:     "uppercase year-first combo preserved",
			previous: "https://example.com/docs/FY2023Q4.pdf",
			quarter:  1,
			year:     "24",
			expected: "https://example.com/docs/FY2024Q1.pdf",
		},
		{
			desc:     "ordinal quarter form",
			previous: "https://example.com/news/2nd-quarter-2024",
			quarter:  3,
			year:     "24",
			expected: "https://example.com/news/3rd-quarter-2024",
		},
		{
			desc:     "worded quarter form",
			previous: "https://example.com/news/second-quarter-results-2024",
			quarter:  4,
			year:     "24",
			expected: "https://example.com/news/fourth-quarter-results-2024",
		},
		{
			desc:     "trailing quarter form",
			previous: "https://example.com/ir/2q-2023-presentation",
			quarter:  3,
			year:     "23",
			expected: "https://example.com/ir/3q-2023-presentation",
		},
		{
			desc:     "no recognizable tokens passes through",
			previous: "https://example.com/about/leadership",
			quarter:  3,
			year:     "24",
			expected: "https://example.com/about/leadership",
		},
		{
			desc:     "query string untouched",
			previous: "https://example.com/ir/q1-2024?lang=en",
			quarter:  2,
			year:     "24",
			expected: "https://example.com/ir/q2-2024?lang=en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := NextQuarterURL(tt.previous, tt.quarter, tt.year)
			if err != nil {
				t.Fatalf("NextQuarterURL(%q) returned error: %v", tt.previous, err)
			}
			if got != tt.expected {
				t.Errorf("NextQuarterURL(%q, %d, %q) = %q, want %q",
					tt.previous, tt.quarter, tt.year, got, tt.expected)
			}
		})
	}
}

func TestNextQuarterURL_InvalidQuarter(t *testing.T) {
	for _, q := range []int{0, 5, -1} {
		if _, err := NextQuarterURL("https://example.com/q1-2024", q, "24"); err == nil {
			t.Errorf("expected error for quarter %d", q)
		}
	}
}

func TestOrdinalSuffix(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{1, "st"},
		{2, "nd"},
		{3, "rd"},
		{4, "th"},
		{11, "th"},
		{12, "th"},
		{13, "th"},
		{21, "st"},
		{22, "nd"},
		{23, "rd"},
	}
	for _, tt := range tests {
		if got := OrdinalSuffix(tt.n); got != tt.expected {
			t.Errorf("OrdinalSuffix(%d) = %q, want %q", tt.n, got, tt.expected)
		}
	}
}
