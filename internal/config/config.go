// Package config holds the process-wide configuration. It is loaded
// once at startup and handed to each component's constructor; nothing
// in this package is mutated after Load returns.
package config

import (
	"os"
	"strconv"
	"time"
)

// Store backend names accepted by Config.StoreBackend.
const (
	StoreBackendMemory   = "memory"
	StoreBackendBigQuery = "bigquery"
)

// Config is the explicit configuration for the API server and the
// one-shot commands.
type Config struct {
	ListenAddr string

	// StoreBackend selects the transaction/category store: "bigquery"
	// in production, "memory" for tests and local development.
	StoreBackend string

	BigQuery BigQueryConfig
	AI       AIConfig

	// ExportBucket is the GCS bucket CSV snapshots are written to.
	ExportBucket string

	// CurrencyCode and CurrencyLocale drive chat confirmation
	// formatting. Amounts are whole currency units throughout.
	CurrencyCode   string
	CurrencyLocale string

	// RecentLimit caps the recent-transactions facet of an analytics
	// response; BreakdownTopN is the collapse threshold for the
	// category breakdown.
	RecentLimit   int
	BreakdownTopN int
}

// BigQueryConfig locates the dataset holding the transactions and
// categories tables.
type BigQueryConfig struct {
	ProjectID string
	Dataset   string
}

// AIConfig configures the Gemini-backed parse/classify adapter.
type AIConfig struct {
	Model string

	// DefaultConfidence is assumed when the model omits a confidence
	// score from a draft.
	DefaultConfidence float64

	// Timeout bounds every model call. The upstream service gives no
	// latency guarantee, so an unbounded call could hold a chat turn
	// open indefinitely.
	Timeout time.Duration
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		ListenAddr:   ":8080",
		StoreBackend: StoreBackendBigQuery,
		BigQuery: BigQueryConfig{
			ProjectID: "",
			Dataset:   "moneychat",
		},
		AI: AIConfig{
			Model:             "gemini-2.5-flash-lite",
			DefaultConfidence: 0.8,
			Timeout:           30 * time.Second,
		},
		ExportBucket:   "",
		CurrencyCode:   "VND",
		CurrencyLocale: "vi",
		RecentLimit:    20,
		BreakdownTopN:  7,
	}
}

// Load builds the configuration from defaults overridden by MONEYCHAT_*
// environment variables.
func Load() *Config {
	cfg := Default()

	if v := os.Getenv("MONEYCHAT_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("MONEYCHAT_STORE"); v != "" {
		cfg.StoreBackend = v
	}
	if v := os.Getenv("MONEYCHAT_BQ_PROJECT"); v != "" {
		cfg.BigQuery.ProjectID = v
	}
	if v := os.Getenv("MONEYCHAT_BQ_DATASET"); v != "" {
		cfg.BigQuery.Dataset = v
	}
	if v := os.Getenv("MONEYCHAT_AI_MODEL"); v != "" {
		cfg.AI.Model = v
	}
	if v := os.Getenv("MONEYCHAT_AI_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.AI.Timeout = d
		}
	}
	if v := os.Getenv("MONEYCHAT_AI_DEFAULT_CONFIDENCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			cfg.AI.DefaultConfidence = f
		}
	}
	if v := os.Getenv("MONEYCHAT_EXPORT_BUCKET"); v != "" {
		cfg.ExportBucket = v
	}
	if v := os.Getenv("MONEYCHAT_CURRENCY_CODE"); v != "" {
		cfg.CurrencyCode = v
	}
	if v := os.Getenv("MONEYCHAT_CURRENCY_LOCALE"); v != "" {
		cfg.CurrencyLocale = v
	}
	if v := os.Getenv("MONEYCHAT_RECENT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RecentLimit = n
		}
	}
	if v := os.Getenv("MONEYCHAT_BREAKDOWN_TOP_N"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.BreakdownTopN = n
		}
	}

	return cfg
}
