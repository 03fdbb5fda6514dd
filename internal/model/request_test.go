package model

import (
	"errors"
	"testing"
)

func TestInsightRequest_Validate(t *testing.T) {
	valid := InsightRequest{
		ReportsPageURL:    "https://example.com/ir/reports",
		PreviousReportURL: "https://example.com/ir/q2-2024-earnings",
		Quarter:           "3",
		Year:              "24",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	tests := []struct {
		desc   string
		mutate func(*InsightRequest)
	}{
		{"quarter zero", func(r *InsightRequest) { r.Quarter = "0" }},
		{"quarter five", func(r *InsightRequest) { r.Quarter = "5" }},
		{"quarter non-numeric", func(r *InsightRequest) { r.Quarter = "three" }},
		{"year wrong length", func(r *InsightRequest) { r.Year = "024" }},
		{"year non-numeric", func(r *InsightRequest) { r.Year = "ab" }},
		{"relative previous url", func(r *InsightRequest) { r.PreviousReportURL = "/ir/q2-2024" }},
		{"empty reports page url", func(r *InsightRequest) { r.ReportsPageURL = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := req.Validate()
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestInsightRequest_ShortYear(t *testing.T) {
	tests := []struct {
		year     string
		expected string
	}{
		{"24", "24"},
		{"2024", "24"},
		{" 2025 ", "25"},
	}
	for _, tt := range tests {
		r := InsightRequest{Year: tt.year}
		if got := r.ShortYear(); got != tt.expected {
			t.Errorf("ShortYear(%q) = %q, want %q", tt.year, got, tt.expected)
		}
	}
}
