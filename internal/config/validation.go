package config

import (
	"fmt"
	"net/url"
)

// hnswMaxDimension is the largest vector width pgvector's HNSW index accepts.
const hnswMaxDimension = 2000

// validSSLModes are the sslmode values accepted by libpq/pgx.
var validSSLModes = map[string]struct{}{
	"disable":     {},
	"allow":       {},
	"prefer":      {},
	"require":     {},
	"verify-ca":   {},
	"verify-full": {},
}

// Validate checks the configuration for correctness.
// It is called by Load; call it directly after constructing a Config by hand.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	if err := c.validateEmbeddings(); err != nil {
		return err
	}
	if err := c.validateRetrieval(); err != nil {
		return err
	}
	return c.validateStorage()
}

// ValidateAPIKey checks that the embeddings API key is present.
// Separate from Validate so commands that never call the provider
// (migrate, resources list) work without credentials.
func (c *Config) ValidateAPIKey() error {
	if c.EmbeddingsAPIKey == "" {
		return fmt.Errorf("%w: set EMBEDDINGS_API_KEY", ErrMissingAPIKey)
	}
	return nil
}

func (c *Config) validateEmbeddings() error {
	u, err := url.Parse(c.EmbeddingsBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.EmbeddingsBaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidBaseURL, u.Scheme)
	}

	if c.EmbedderModel == "" {
		return fmt.Errorf("%w: model name must not be empty", ErrInvalidModelName)
	}

	if c.VectorDimension < 1 || c.VectorDimension > hnswMaxDimension {
		return fmt.Errorf("%w: must be between 1 and %d, got %d",
			ErrInvalidDimension, hnswMaxDimension, c.VectorDimension)
	}

	return nil
}

func (c *Config) validateRetrieval() error {
	if c.SimilarityFloor < 0 || c.SimilarityFloor > 1 {
		return fmt.Errorf("%w: must be in [0,1], got %g", ErrInvalidSimilarityFloor, c.SimilarityFloor)
	}
	if c.SearchLimit < 1 {
		return fmt.Errorf("%w: must be positive, got %d", ErrInvalidSearchLimit, c.SearchLimit)
	}
	return nil
}

func (c *Config) validateStorage() error {
	if c.PostgresHost == "" {
		return fmt.Errorf("%w: host must not be empty", ErrInvalidPostgresHost)
	}
	if c.PostgresPort < 1 || c.PostgresPort > 65535 {
		return fmt.Errorf("%w: must be between 1 and 65535, got %d", ErrInvalidPostgresPort, c.PostgresPort)
	}
	if c.PostgresDBName == "" {
		return fmt.Errorf("%w: database name must not be empty", ErrInvalidPostgresDBName)
	}
	if _, ok := validSSLModes[c.PostgresSSLMode]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPostgresSSLMode, c.PostgresSSLMode)
	}
	return nil
}
