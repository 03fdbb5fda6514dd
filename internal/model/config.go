package model

import "time"

// Config is the complete earnscan configuration
type Config struct {
	HTTP    HTTPConfig    `yaml:"http" mapstructure:"http"`
	Scan    ScanConfig    `yaml:"scan" mapstructure:"scan"`
	Render  RenderConfig  `yaml:"render" mapstructure:"render"`
	LLM     LLMConfig     `yaml:"llm" mapstructure:"llm"`
	Article ArticleConfig `yaml:"article" mapstructure:"article"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
}

// HTTPConfig controls direct (non-rendered) fetches
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RatePerSecond float64       `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst     int           `yaml:"rate_burst" mapstructure:"rate_burst"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// ScanConfig controls the two-speed scan loop
type ScanConfig struct {
	FastInterval   time.Duration `yaml:"fast_interval" mapstructure:"fast_interval"`     // poll interval inside the fast window
	SlowInterval   time.Duration `yaml:"slow_interval" mapstructure:"slow_interval"`     // poll interval after the fast window
	FastWindow     time.Duration `yaml:"fast_window" mapstructure:"fast_window"`         // reports post disproportionately soon after close
	MaxScanTime    time.Duration `yaml:"max_scan_time" mapstructure:"max_scan_time"`     // hard deadline for the whole scan
	NavTimeout     time.Duration `yaml:"nav_timeout" mapstructure:"nav_timeout"`         // per-navigation budget
	TopCandidates  int           `yaml:"top_candidates" mapstructure:"top_candidates"`   // fuzzy-ranked candidates inspected per attempt
	MinScore       int           `yaml:"min_score" mapstructure:"min_score"`             // similarity gate (0-100)
	ProbePredicted bool          `yaml:"probe_predicted" mapstructure:"probe_predicted"` // try the predicted URL directly before each listing scan
}

// RenderConfig controls the headless browser
type RenderConfig struct {
	Headless    bool          `yaml:"headless" mapstructure:"headless"`
	NoSandbox   bool          `yaml:"no_sandbox" mapstructure:"no_sandbox"`
	UserAgent   string        `yaml:"user_agent" mapstructure:"user_agent"`
	SettleDelay time.Duration `yaml:"settle_delay" mapstructure:"settle_delay"` // wait after load for script-rendered content
}

// LLMConfig controls the external analysis call
type LLMConfig struct {
	APIKey      string        `yaml:"-" mapstructure:"api_key"`
	Model       string        `yaml:"model" mapstructure:"model"`
	Temperature float32       `yaml:"temperature" mapstructure:"temperature"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ArticleConfig controls the managed article-extraction service
type ArticleConfig struct {
	Token      string        `yaml:"-" mapstructure:"token"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Retries    int           `yaml:"retries" mapstructure:"retries"`
	RetryDelay time.Duration `yaml:"retry_delay" mapstructure:"retry_delay"`
}

// CacheConfig controls collaborator response caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ServerConfig controls the HTTP service
type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// DefaultConfig returns sensible defaults. The scan timings mirror the
// after-hours posting pattern: aggressive polling right after market close,
// then a slower long-haul cadence until the hard deadline.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       15 * time.Second,
			UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/111.0.0.0 Safari/537.36",
			MaxBodyBytes:  20_000_000,
			RatePerSecond: 2,
			RateBurst:     5,
			RespectRobots: false,
		},
		Scan: ScanConfig{
			FastInterval:   12 * time.Second,
			SlowInterval:   45 * time.Second,
			FastWindow:     8 * time.Minute,
			MaxScanTime:    30 * time.Minute,
			NavTimeout:     30 * time.Second,
			TopCandidates:  15,
			MinScore:       90,
			ProbePredicted: true,
		},
		Render: RenderConfig{
			Headless:    true,
			NoSandbox:   true,
			UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/111.0.0.0 Safari/537.36",
			SettleDelay: 2 * time.Second,
		},
		LLM: LLMConfig{
			Model:       "gpt-4-turbo",
			Temperature: 0.7,
			Timeout:     30 * time.Second,
		},
		Article: ArticleConfig{
			Timeout:    30 * time.Second,
			Retries:    2,
			RetryDelay: 3 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
	}
}
