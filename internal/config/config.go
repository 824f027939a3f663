// Package config provides application configuration with multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.ragbase/config.yaml)
//  3. Default values
//
// Categories:
//   - Embeddings: provider endpoint, model, vector dimension (see embeddings fields)
//   - Storage: PostgreSQL connection (see storage.go)
//   - Retrieval: similarity floor and result limit policy
//   - Server: listen address, proxy trust, rate limiting
//
// Security: sensitive values (API key, database password) are masked in
// MarshalJSON/String and never logged. Validation is fail-fast with sentinel
// errors usable via errors.Is.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrMissingAPIKey indicates the embeddings API key is missing.
	ErrMissingAPIKey = errors.New("missing embeddings API key")

	// ErrInvalidBaseURL indicates the embeddings endpoint URL is invalid.
	ErrInvalidBaseURL = errors.New("invalid embeddings base URL")

	// ErrInvalidModelName indicates the embedder model name is invalid.
	ErrInvalidModelName = errors.New("invalid embedder model")

	// ErrInvalidDimension indicates the vector dimension is out of range.
	ErrInvalidDimension = errors.New("invalid vector dimension")

	// ErrInvalidSimilarityFloor indicates the similarity floor is outside [0,1].
	ErrInvalidSimilarityFloor = errors.New("invalid similarity floor")

	// ErrInvalidSearchLimit indicates the search result limit is not positive.
	ErrInvalidSearchLimit = errors.New("invalid search limit")

	// ErrInvalidPostgresHost indicates the PostgreSQL host is invalid.
	ErrInvalidPostgresHost = errors.New("invalid PostgreSQL host")

	// ErrInvalidPostgresPort indicates the PostgreSQL port is out of range.
	ErrInvalidPostgresPort = errors.New("invalid PostgreSQL port")

	// ErrInvalidPostgresDBName indicates the PostgreSQL database name is invalid.
	ErrInvalidPostgresDBName = errors.New("invalid PostgreSQL database name")

	// ErrInvalidPostgresSSLMode indicates the PostgreSQL SSL mode is invalid.
	ErrInvalidPostgresSSLMode = errors.New("invalid PostgreSQL SSL mode")
)

const (
	// DefaultEmbedderModel is the default embedding model.
	// BAAI/bge-large-zh-v1.5 outputs 1024-dimension vectors; the embeddings
	// table schema in db/migrations uses vector(1024) to match.
	DefaultEmbedderModel = "BAAI/bge-large-zh-v1.5"

	// DefaultVectorDimension matches DefaultEmbedderModel's output width.
	// HNSW indexes support at most 2000 dimensions.
	DefaultVectorDimension = 1024

	// DefaultSimilarityFloor is the minimum similarity for a chunk to count
	// as relevant. Results at or below the floor are discarded.
	DefaultSimilarityFloor = 0.5

	// DefaultSearchLimit caps the number of chunks a search returns.
	DefaultSearchLimit = 4
)

// Config stores application configuration.
// SECURITY: sensitive fields are explicitly masked in MarshalJSON().
// When adding new sensitive fields, update MarshalJSON.
type Config struct {
	// Embeddings provider (OpenAI-compatible /embeddings endpoint)
	EmbeddingsBaseURL string `mapstructure:"embeddings_base_url" json:"embeddings_base_url"`
	EmbeddingsAPIKey  string `mapstructure:"embeddings_api_key" json:"embeddings_api_key"` // SENSITIVE: masked in MarshalJSON
	EmbedderModel     string `mapstructure:"embedder_model" json:"embedder_model"`
	VectorDimension   int    `mapstructure:"vector_dimension" json:"vector_dimension"`

	// Retrieval policy
	SimilarityFloor float64 `mapstructure:"similarity_floor" json:"similarity_floor"`
	SearchLimit     int     `mapstructure:"search_limit" json:"search_limit"`

	// Storage configuration (see storage.go)
	PostgresHost     string `mapstructure:"postgres_host" json:"postgres_host"`
	PostgresPort     int    `mapstructure:"postgres_port" json:"postgres_port"`
	PostgresUser     string `mapstructure:"postgres_user" json:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password" json:"postgres_password"` // SENSITIVE: masked in MarshalJSON
	PostgresDBName   string `mapstructure:"postgres_db_name" json:"postgres_db_name"`
	PostgresSSLMode  string `mapstructure:"postgres_ssl_mode" json:"postgres_ssl_mode"`

	// HTTP server configuration (serve mode only)
	ListenAddr string `mapstructure:"listen_addr" json:"listen_addr"`
	TrustProxy bool   `mapstructure:"trust_proxy" json:"trust_proxy"` // Trust X-Real-IP/X-Forwarded-For (set true behind reverse proxy)
	RateBurst  int    `mapstructure:"rate_burst" json:"rate_burst"`   // Per-IP rate limiter burst (0 = default)
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".ragbase")

	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".") // Also support current directory

	setDefaults()
	bindEnvVariables()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is not an error; defaults apply.
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using default values",
			"search_paths", []string{configDir, "."},
			"config_name", "config.yaml")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// DATABASE_URL overrides individual postgres_* settings when set.
	if err := cfg.parseDatabaseURL(); err != nil {
		return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults() {
	// Embeddings defaults (matching the default model's deployment)
	viper.SetDefault("embeddings_base_url", "https://api.siliconflow.cn/v1")
	viper.SetDefault("embedder_model", DefaultEmbedderModel)
	viper.SetDefault("vector_dimension", DefaultVectorDimension)

	// Retrieval defaults
	viper.SetDefault("similarity_floor", DefaultSimilarityFloor)
	viper.SetDefault("search_limit", DefaultSearchLimit)

	// PostgreSQL defaults (matching docker-compose.yml)
	viper.SetDefault("postgres_host", "localhost")
	viper.SetDefault("postgres_port", 5432)
	viper.SetDefault("postgres_user", "ragbase")
	viper.SetDefault("postgres_password", "ragbase_dev_password")
	viper.SetDefault("postgres_db_name", "ragbase")
	viper.SetDefault("postgres_ssl_mode", "disable")

	// Server defaults
	viper.SetDefault("listen_addr", "localhost:8080")
	viper.SetDefault("trust_proxy", false)
	viper.SetDefault("rate_burst", 60)
}

// bindEnvVariables binds environment variables explicitly.
func bindEnvVariables() {
	// Hardcoded keys cannot fail to bind; a panic here is a bug.
	mustBind := func(key, envVar string) {
		if err := viper.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("embeddings_api_key", "EMBEDDINGS_API_KEY")
	mustBind("embeddings_base_url", "RAGBASE_EMBEDDINGS_BASE_URL")
	mustBind("embedder_model", "RAGBASE_EMBEDDER_MODEL")
	mustBind("listen_addr", "RAGBASE_LISTEN_ADDR")
	mustBind("trust_proxy", "RAGBASE_TRUST_PROXY")

	// NOTE: DATABASE_URL is handled by parseDatabaseURL, not via Viper.
}

// maskedValue is the placeholder for masked sensitive data.
// Full-width blocks avoid accidental substring matches against real secrets.
const maskedValue = "████████"

// maskSecret masks a secret string for safe logging.
// Secrets of 8 bytes or fewer are fully masked; longer secrets keep the
// first and last two characters for debug utility.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return maskedValue
	}
	return s[:2] + "<" + maskedValue + ">" + s[len(s)-2:]
}

// MarshalJSON implements json.Marshaler with explicit sensitive field masking.
//
// Masked fields: EmbeddingsAPIKey, PostgresPassword.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	a.EmbeddingsAPIKey = maskSecret(a.EmbeddingsAPIKey)
	a.PostgresPassword = maskSecret(a.PostgresPassword)
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// String implements Stringer to prevent accidental printing of secrets.
func (c Config) String() string {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}
