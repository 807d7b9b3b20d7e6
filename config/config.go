package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is loaded from the environment, with an optional YAML secrets file
// overriding the sensitive fields so they stay out of process environments
// in deployments that prefer mounted files.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `env:"ADDR" envDefault:":8080"`
	// DatabaseURL is the Postgres DSN; when empty the service runs on the
	// in-memory store (development mode).
	DatabaseURL string `env:"DATABASE_URL"`
	// AdminKey gates the administrative surface; empty disables it.
	AdminKey string `env:"ADMIN_KEY"`
	// AuthorityPubKey is the base58 registry authority used as the base of
	// module address derivation.
	AuthorityPubKey string `env:"AUTHORITY_PUBKEY" envDefault:"11111111111111111111111111111111"`
	// ModuleTemplateID is the base58 id of the fixed issuance-module
	// template bound into every derived address.
	ModuleTemplateID string `env:"MODULE_TEMPLATE_ID" envDefault:"TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"`
	// SecretsFile optionally points at a YAML file with overrides.
	SecretsFile string `env:"SECRETS_FILE"`
}

type secrets struct {
	DatabaseURL string `yaml:"database_url"`
	AdminKey    string `yaml:"admin_key"`
}

// Load parses the environment and applies the secrets file, if configured.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.SecretsFile != "" {
		data, err := os.ReadFile(cfg.SecretsFile)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read secrets file: %w", err)
		}
		var s secrets
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Config{}, fmt.Errorf("failed to parse secrets file: %w", err)
		}
		if s.DatabaseURL != "" {
			cfg.DatabaseURL = s.DatabaseURL
		}
		if s.AdminKey != "" {
			cfg.AdminKey = s.AdminKey
		}
	}

	return cfg, nil
}
