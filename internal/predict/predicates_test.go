package predict

import "testing"

func TestHasQuarter(t *testing.T) {
	tests := []struct {
		url      string
		quarter  int
		expected bool
	}{
		{"https://example.com/ir/q3-2024-earnings", 3, true},
		{"https://example.com/ir/3q24-results", 3, true},
		{"https://example.com/ir/quarter-3-report", 3, true},
		{"https://example.com/ir/qtr3-update", 3, true},
		{"https://example.com/news/third-quarter-2024", 3, true},
		{"https://example.com/news/3rd-quarter-2024", 3, true},
		{"https://example.com/ir/Q3-Earnings", 3, true},
		{"https://example.com/ir/q2-2024-earnings", 3, false},
		{"https://example.com/about", 3, false},
		{"https://example.com/ir/annual-report-2024", 1, false},
		{"https://example.com/ir/q1-2024", 0, false},
		{"https://example.com/ir/q1-2024", 5, false},
	}

	for _, tt := range tests {
		if got := HasQuarter(tt.url, tt.quarter); got != tt.expected {
			t.Errorf("HasQuarter(%q, %d) = %v, want %v", tt.url, tt.quarter, got, tt.expected)
		}
	}
}

func TestHasYear(t *testing.T) {
	tests := []struct {
		url      string
		year     string
		expected bool
	}{
		{"https://example.com/ir/q3-2024-earnings", "24", true},
		{"https://example.com/ir/q3-24-earnings", "24", true},
		{"https://example.com/ir/q3-2024-earnings", "2024", true},
		{"https://example.com/ir/q3-2023-earnings", "24", false},
		{"https://example.com/ir/results", "24", false},
		{"https://example.com/ir/results", "", false},
	}

	for _, tt := range tests {
		if got := HasYear(tt.url, tt.year); got != tt.expected {
			t.Errorf("HasYear(%q, %q) = %v, want %v", tt.url, tt.year, got, tt.expected)
		}
	}
}

func TestHasQuarterYearCombo(t *testing.T) {
	tests := []struct {
		url      string
		quarter  int
		year     string
		expected bool
	}{
		{"https://example.com/ir/q3-2024-earnings", 3, "24", true},
		{"https://example.com/ir/q324-earnings", 3, "24", true},
		{"https://example.com/ir/q3_24-earnings", 3, "24", true},
		{"https://example.com/ir/q3fy24", 3, "24", true},
		{"https://example.com/ir/fy24q3", 3, "24", true},
		{"https://example.com/ir/2024-q3-results", 3, "24", true},
		{"https://example.com/ir/24q3", 3, "24", true},
		{"https://example.com/ir/q3-report-2024", 3, "24", false},
		{"https://example.com/ir/q2-2024", 3, "24", false},
		{"https://example.com/ir/q3-2023", 3, "24", false},
		{"https://example.com/ir/q3-2024", 0, "24", false},
		{"https://example.com/ir/q3-2024", 3, "", false},
	}

	for _, tt := range tests {
		if got := HasQuarterYearCombo(tt.url, tt.quarter, tt.year); got != tt.expected {
			t.Errorf("HasQuarterYearCombo(%q, %d, %q) = %v, want %v",
				tt.url, tt.quarter, tt.year, got, tt.expected)
		}
	}
}

// Query parameters must never satisfy the predicates.
func TestPredicates_IgnoreQuery(t *testing.T) {
	url := "https://example.com/ir/results?ref=q3-2024"
	if HasQuarter(url, 3) {
		t.Error("HasQuarter matched a query parameter")
	}
	if HasYear(url, "24") {
		t.Error("HasYear matched a query parameter")
	}
	if HasQuarterYearCombo(url, 3, "24") {
		t.Error("HasQuarterYearCombo matched a query parameter")
	}
}
