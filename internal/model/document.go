package model

// SourceFormat identifies which extraction strategy produced a document
type SourceFormat string

const (
	FormatPDF     SourceFormat = "pdf"     // binary-parsed PDF
	FormatASPX    SourceFormat = "aspx"    // script-rendered page, readability pass
	FormatArticle SourceFormat = "article" // plain HTML article
)

// ExtractedDocument is normalized report text plus its source format.
// Text is non-empty on success; extractors return ErrExtractionFailed
// instead of an empty document.
type ExtractedDocument struct {
	Text         string       `json:"text"`
	SourceFormat SourceFormat `json:"sourceFormat"`
}

// AnalysisResult is the typed outcome of the external analysis call.
// Rating is always within 1..5; Positives/Negatives are empty slices
// rather than nil once parsed.
type AnalysisResult struct {
	Rating    int      `json:"rating"`
	Positives []string `json:"positives"`
	Negatives []string `json:"negatives"`
}
