package analyze

import (
	"errors"
	"reflect"
	"testing"

	"github.com/earnscan/earnscan/internal/model"
)

func TestParse_StrictJSON(t *testing.T) {
	raw := `{"rating": 4, "positives": ["Revenue beat estimates", "Raised guidance"], "negatives": ["Margin compression"]}`

	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Rating != 4 {
		t.Errorf("Rating = %d, want 4", result.Rating)
	}
	if !reflect.DeepEqual(result.Positives, []string{"Revenue beat estimates", "Raised guidance"}) {
		t.Errorf("Positives = %v", result.Positives)
	}
	if !reflect.DeepEqual(result.Negatives, []string{"Margin compression"}) {
		t.Errorf("Negatives = %v", result.Negatives)
	}
}

func TestParse_FencedJSON(t *testing.T) {
	raw := "```json\n{\"rating\": 2, \"positives\": [], \"negatives\": [\"EPS miss\"]}\n```"

	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Rating != 2 {
		t.Errorf("Rating = %d, want 2", result.Rating)
	}
	if len(result.Negatives) != 1 || result.Negatives[0] != "EPS miss" {
		t.Errorf("Negatives = %v", result.Negatives)
	}
}

func TestParse_StringRating(t *testing.T) {
	result, err := Parse(`{"rating": "4", "positives": [], "negatives": []}`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Rating != 4 {
		t.Errorf("Rating = %d, want 4", result.Rating)
	}
}

func TestParse_LegacyFormat(t *testing.T) {
	raw := `Rating: 4

Positives:
- Strong EPS
- Record free cash flow

Negatives:
- Weak guidance`

	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Rating != 4 {
		t.Errorf("Rating = %d, want 4", result.Rating)
	}
	if !reflect.DeepEqual(result.Positives, []string{"Strong EPS", "Record free cash flow"}) {
		t.Errorf("Positives = %v", result.Positives)
	}
	if !reflect.DeepEqual(result.Negatives, []string{"Weak guidance"}) {
		t.Errorf("Negatives = %v", result.Negatives)
	}
}

func TestParse_LegacyNumberedBullets(t *testing.T) {
	raw := "rating: 3\nPositives:\n1. Dividend increase\n2) Buyback extended\nNegatives:\n* Churn up"

	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !reflect.DeepEqual(result.Positives, []string{"Dividend increase", "Buyback extended"}) {
		t.Errorf("Positives = %v", result.Positives)
	}
	if !reflect.DeepEqual(result.Negatives, []string{"Churn up"}) {
		t.Errorf("Negatives = %v", result.Negatives)
	}
}

func TestParse_NoRating(t *testing.T) {
	for _, raw := range []string{
		"I cannot analyze this.",
		"",
		"   \n  ",
		`{"positives": ["something"], "negatives": []}`,
	} {
		_, err := Parse(raw)
		if !errors.Is(err, model.ErrAnalysisMalformed) {
			t.Errorf("Parse(%q) error = %v, want ErrAnalysisMalformed", raw, err)
		}
	}
}

func TestParse_RatingClamped(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
	}{
		{`{"rating": 0, "positives": [], "negatives": []}`, 1},
		{`{"rating": 9, "positives": [], "negatives": []}`, 5},
		{`{"rating": -3, "positives": [], "negatives": []}`, 1},
	}
	for _, tt := range tests {
		result, err := Parse(tt.raw)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tt.raw, err)
		}
		if result.Rating != tt.expected {
			t.Errorf("Parse(%q) rating = %d, want %d", tt.raw, result.Rating, tt.expected)
		}
	}
}

func TestParse_LegacyRatingClamped(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
	}{
		{"Rating: 7\nPositives:\n- Strong EPS", 5},
		{"Rating: 0\nNegatives:\n- Weak guidance", 1},
	}
	for _, tt := range tests {
		result, err := Parse(tt.raw)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tt.raw, err)
		}
		if result.Rating != tt.expected {
			t.Errorf("Parse(%q) rating = %d, want %d", tt.raw, result.Rating, tt.expected)
		}
	}
}

func TestParse_ListsNeverNil(t *testing.T) {
	result, err := Parse(`{"rating": 3}`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Positives == nil || result.Negatives == nil {
		t.Error("expected non-nil positives and negatives")
	}
	if len(result.Positives) != 0 || len(result.Negatives) != 0 {
		t.Errorf("expected empty lists, got %v / %v", result.Positives, result.Negatives)
	}
}
