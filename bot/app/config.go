package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"grabbot/bot/locale"
	coreconfig "grabbot/core/config"
	coredatabase "grabbot/core/database"
)

// Config composes the reusable core configuration with app-level settings.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database coredatabase.Config `yaml:"database"`
}

// CoreConfig exposes the embedded core configuration for the runner.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Config
}

// LoadConfig reads the YAML config, applies environment overrides, and
// validates app-level settings on top of the core checks.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}
	if err := normalizeApp(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalizeApp(cfg *Config) error {
	lang := strings.ToLower(strings.TrimSpace(cfg.Bot.DefaultLanguage))
	if lang == "" {
		lang = locale.Default
	}
	if !locale.IsSupported(lang) {
		return fmt.Errorf("invalid bot.default_language %q; allowed: %s",
			cfg.Bot.DefaultLanguage, strings.Join(locale.Supported(), ", "))
	}
	cfg.Bot.DefaultLanguage = lang

	if cfg.Session.Backend == coreconfig.SessionBackendPostgres {
		if strings.TrimSpace(cfg.Database.Host) == "" {
			return fmt.Errorf("database.host is required when session.backend is 'postgres'")
		}
		if strings.TrimSpace(cfg.Database.Name) == "" {
			return fmt.Errorf("database.name is required when session.backend is 'postgres'")
		}
		if strings.TrimSpace(cfg.Database.User) == "" {
			return fmt.Errorf("database.user is required when session.backend is 'postgres'")
		}
		if strings.TrimSpace(cfg.Database.Port) == "" {
			cfg.Database.Port = "5432"
		}
		if strings.TrimSpace(cfg.Database.SSLMode) == "" {
			cfg.Database.SSLMode = "disable"
		}
		if cfg.Database.MaxConnections <= 0 {
			cfg.Database.MaxConnections = 4
		}
	}
	return nil
}
