package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/earnscan/earnscan/internal/model"
	"github.com/earnscan/earnscan/internal/pipeline"
	"github.com/earnscan/earnscan/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Start the earnscan HTTP API.

Endpoints:
  POST /report-insights      predict, scan, extract and analyze a new report
  GET  /validate-report-url  pre-check that a report URL is reachable
  GET  /market-sentiment     Fear & Greed index and VIX snapshot
  GET  /lookup-ticker        resolve a company name to its ticker

The OpenAI key is read from EARNSCAN_LLM_API_KEY or OPENAI_API_KEY. The
optional article-extraction token is read from EARNSCAN_ARTICLE_TOKEN or
DIFFBOT_API_KEY.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("no API key configured: set EARNSCAN_LLM_API_KEY or OPENAI_API_KEY")
	}

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return fmt.Errorf("init pipeline: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, p, logger).Run(ctx)
}

// newLogger builds the process logger honoring the verbose flag
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadConfig merges defaults, the config file and environment overrides
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Article.Token == "" {
		cfg.Article.Token = os.Getenv("DIFFBOT_API_KEY")
	}
	return cfg, nil
}
