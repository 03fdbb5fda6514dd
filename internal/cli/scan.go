package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/earnscan/earnscan/internal/extract"
	"github.com/earnscan/earnscan/internal/model"
	"github.com/earnscan/earnscan/internal/pipeline"
)

var (
	scanQuarter string
	scanYear    string
	scanEPS     string
	scanRevenue string
	scanVerify  bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <previous-report-url> <reports-page-url>",
	Short: "Run one report-insights scan from the command line",
	Long: `Run a single scan without the HTTP server: predict the upcoming
quarter's URL from the previous report URL, poll the reports page until
the report appears, extract its text and analyze it. The result is
printed as JSON on stdout.

Example:
  earnscan scan --quarter 3 --year 24 \
    https://example.com/ir/q2-2024-earnings.pdf \
    https://example.com/ir/reports`,
	Args: cobra.ExactArgs(2),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanQuarter, "quarter", "q", "", "upcoming quarter (1-4)")
	scanCmd.Flags().StringVarP(&scanYear, "year", "y", "", "upcoming fiscal year (2 or 4 digits)")
	scanCmd.Flags().StringVar(&scanEPS, "eps", "", "consensus EPS estimate")
	scanCmd.Flags().StringVar(&scanRevenue, "revenue", "", "consensus revenue estimate")
	scanCmd.Flags().BoolVar(&scanVerify, "verify", false, "check that the previous report URL serves earnings content before scanning")
	_ = scanCmd.MarkFlagRequired("quarter")
	_ = scanCmd.MarkFlagRequired("year")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("no API key configured: set EARNSCAN_LLM_API_KEY or OPENAI_API_KEY")
	}

	req := &model.InsightRequest{
		PreviousReportURL: args[0],
		ReportsPageURL:    args[1],
		Quarter:           scanQuarter,
		Year:              scanYear,
	}
	if scanEPS != "" || scanRevenue != "" {
		req.AnalystEstimates = &model.AnalystEstimates{EPS: scanEPS, Revenue: scanRevenue}
	}
	if err := req.Validate(); err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return fmt.Errorf("init pipeline: %w", err)
	}

	if scanVerify {
		if !extract.IsEarningsReport(cmd.Context(), p.Fetcher(), req.PreviousReportURL) {
			return fmt.Errorf("previous report URL does not serve earnings-report content: %s", req.PreviousReportURL)
		}
		logger.Info("previous report verified", zap.String("url", req.PreviousReportURL))
	}

	resp, err := p.FetchInsights(cmd.Context(), req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
