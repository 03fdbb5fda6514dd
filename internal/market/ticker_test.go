package market

import "testing"

func TestCleanCompanyName(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"Apple Inc", "apple"},
		{"Example Corp", "example"},
		{"Alphabet Holdings LLC", "alphabet"},
		{"Tesla", "tesla"},
		{"  Acme  Group ", "acme"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CleanCompanyName(tt.raw); got != tt.expected {
			t.Errorf("CleanCompanyName(%q) = %q, want %q", tt.raw, got, tt.expected)
		}
	}
}
