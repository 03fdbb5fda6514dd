package analyze

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/earnscan/earnscan/internal/model"
)

var (
	ratingPattern = regexp.MustCompile(`(?i)rating\s*:?\s*(\d{1,2})`)
	bulletPrefix  = regexp.MustCompile(`^[\s\-–•*\d.)]+`)
)

// rawAnalysis mirrors the JSON shape the model is asked to emit. Rating is
// a json.Number because models occasionally return it as "4" or 4.0.
type rawAnalysis struct {
	Rating    json.Number `json:"rating"`
	Positives []string    `json:"positives"`
	Negatives []string    `json:"negatives"`
}

// Parse decodes the raw model output into a typed analysis result.
// Primary path: strict JSON, repaired first since models like to wrap JSON
// in fences or leave trailing commas. Fallback: the legacy semi-structured
// "Rating: N" text format. A response with no detectable rating fails with
// ErrAnalysisMalformed; it is never defaulted, since a made-up rating would
// read as a genuine negative or neutral call.
func Parse(raw string) (*model.AnalysisResult, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty response", model.ErrAnalysisMalformed)
	}

	if result, err := parseJSON(raw); err == nil {
		return result, nil
	}
	return parseLegacy(raw)
}

// parseJSON is the strict primary path
func parseJSON(raw string) (*model.AnalysisResult, error) {
	repaired, err := jsonrepair.JSONRepair(raw)
	if err != nil {
		repaired = raw
	}

	var decoded rawAnalysis
	if err := json.Unmarshal([]byte(repaired), &decoded); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if decoded.Rating == "" {
		return nil, fmt.Errorf("missing rating field")
	}

	rating, err := decoded.Rating.Float64()
	if err != nil {
		return nil, fmt.Errorf("non-numeric rating: %w", err)
	}

	return &model.AnalysisResult{
		Rating:    clampRating(int(rating)),
		Positives: cleanList(decoded.Positives),
		Negatives: cleanList(decoded.Negatives),
	}, nil
}

// parseLegacy handles the free-text format: a "Rating: N" line followed by
// optional "Positives:" / "Negatives:" sections of bulleted lines. An
// out-of-range rating is clamped, same as the JSON path.
func parseLegacy(raw string) (*model.AnalysisResult, error) {
	m := ratingPattern.FindStringSubmatch(raw)
	if m == nil {
		return nil, fmt.Errorf("%w: no rating found in response", model.ErrAnalysisMalformed)
	}
	rating, _ := strconv.Atoi(m[1])

	result := &model.AnalysisResult{
		Rating:    clampRating(rating),
		Positives: []string{},
		Negatives: []string{},
	}

	positives, negatives := splitSections(raw)
	result.Positives = parseBullets(positives)
	result.Negatives = parseBullets(negatives)
	return result, nil
}

// splitSections slices the text at the literal section headers
func splitSections(raw string) (positives, negatives string) {
	lower := strings.ToLower(raw)
	posIdx := strings.Index(lower, "positives:")
	negIdx := strings.Index(lower, "negatives:")

	if posIdx >= 0 {
		end := len(raw)
		if negIdx > posIdx {
			end = negIdx
		}
		positives = raw[posIdx+len("positives:") : end]
	}
	if negIdx >= 0 {
		end := len(raw)
		if posIdx > negIdx {
			end = posIdx
		}
		negatives = raw[negIdx+len("negatives:") : end]
	}
	return positives, negatives
}

// parseBullets splits a section on newlines and strips leading bullet and
// numbering markers from each line.
func parseBullets(section string) []string {
	items := []string{}
	for _, line := range strings.Split(section, "\n") {
		line = bulletPrefix.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}

// cleanList drops empty entries and guarantees a non-nil slice
func cleanList(items []string) []string {
	cleaned := []string{}
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

// clampRating forces the rating into the 1..5 contract
func clampRating(rating int) int {
	if rating < 1 {
		return 1
	}
	if rating > 5 {
		return 5
	}
	return rating
}
