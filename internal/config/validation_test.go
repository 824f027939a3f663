package config

import (
	"errors"
	"testing"
)

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() on valid config: %v", err)
	}
}

func TestValidate_Nil(t *testing.T) {
	var cfg *Config
	if err := cfg.Validate(); !errors.Is(err, ErrConfigNil) {
		t.Errorf("Validate() = %v, want ErrConfigNil", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"empty base URL", func(c *Config) { c.EmbeddingsBaseURL = "" }, ErrInvalidBaseURL},
		{"relative base URL", func(c *Config) { c.EmbeddingsBaseURL = "/v1" }, ErrInvalidBaseURL},
		{"ftp base URL", func(c *Config) { c.EmbeddingsBaseURL = "ftp://example.com" }, ErrInvalidBaseURL},
		{"empty model", func(c *Config) { c.EmbedderModel = "" }, ErrInvalidModelName},
		{"zero dimension", func(c *Config) { c.VectorDimension = 0 }, ErrInvalidDimension},
		{"negative dimension", func(c *Config) { c.VectorDimension = -1 }, ErrInvalidDimension},
		{"dimension beyond HNSW max", func(c *Config) { c.VectorDimension = 2001 }, ErrInvalidDimension},
		{"floor below zero", func(c *Config) { c.SimilarityFloor = -0.1 }, ErrInvalidSimilarityFloor},
		{"floor above one", func(c *Config) { c.SimilarityFloor = 1.1 }, ErrInvalidSimilarityFloor},
		{"zero limit", func(c *Config) { c.SearchLimit = 0 }, ErrInvalidSearchLimit},
		{"empty host", func(c *Config) { c.PostgresHost = "" }, ErrInvalidPostgresHost},
		{"port too small", func(c *Config) { c.PostgresPort = 0 }, ErrInvalidPostgresPort},
		{"port too large", func(c *Config) { c.PostgresPort = 70000 }, ErrInvalidPostgresPort},
		{"empty dbname", func(c *Config) { c.PostgresDBName = "" }, ErrInvalidPostgresDBName},
		{"bad sslmode", func(c *Config) { c.PostgresSSLMode = "maybe" }, ErrInvalidPostgresSSLMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAPIKey(t *testing.T) {
	cfg := validConfig()
	if err := cfg.ValidateAPIKey(); err != nil {
		t.Errorf("ValidateAPIKey() with key set: %v", err)
	}

	cfg.EmbeddingsAPIKey = ""
	if err := cfg.ValidateAPIKey(); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("ValidateAPIKey() = %v, want ErrMissingAPIKey", err)
	}
}

func TestValidate_SimilarityFloorBoundaries(t *testing.T) {
	// The bounds themselves are legal values.
	for _, floor := range []float64{0, 1} {
		cfg := validConfig()
		cfg.SimilarityFloor = floor
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() with floor=%g: %v", floor, err)
		}
	}
}
