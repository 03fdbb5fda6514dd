package analyze

import (
	"fmt"
	"strings"

	"github.com/earnscan/earnscan/internal/model"
)

// SystemPrompt frames the model as an after-hours analyst and pins the
// output contract to strict JSON so the primary parser path applies.
const SystemPrompt = `You are a financial analyst specializing in after-hours trading. ` +
	`Your task is to analyze quarterly earnings reports and predict short-term stock movement. ` +
	`Provide a rating from 1 to 5 (1 = strong short, 5 = strong long) based on the report. ` +
	`Respond with strict JSON only, in the form ` +
	`{"rating": <1-5>, "positives": ["..."], "negatives": ["..."]} ` +
	`where positives and negatives each list the report's key short-term drivers. ` +
	`Do not wrap the JSON in markdown or add any other text.`

// UserPrompt assembles the analysis request: the report text plus whatever
// macro sentiment and consensus-estimate context the caller supplied.
func UserPrompt(reportText string, fgi *model.IndexReading, estimates *model.AnalystEstimates) string {
	var sb strings.Builder

	sb.WriteString("Analyze the following earnings report and predict the immediate after-hours stock movement. ")
	sb.WriteString("We are looking to either short or go long immediately after the report is released. ")
	sb.WriteString("Focus on short-term factors such as revenue surprise, EPS beats or misses, forward guidance, and key financial metrics.\n\n")

	if fgi != nil {
		fmt.Fprintf(&sb, "Current market sentiment (Fear & Greed Index): %s (%s).\n", fgi.Value, fgi.Sentiment)
	}
	if estimates != nil {
		fmt.Fprintf(&sb, "Analyst consensus estimates for this quarter: EPS %s, revenue %s. Weigh beats and misses against these.\n", estimates.EPS, estimates.Revenue)
	}

	sb.WriteString("\nEarnings report:\n\n")
	sb.WriteString(reportText)
	return sb.String()
}
