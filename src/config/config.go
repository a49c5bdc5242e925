package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const EnvPrefix = "POKEDEX_"

var sections = []string{"api", "browse", "log", "player", "export"}

// envKey maps POKEDEX_API_BASE_URL to api.base_url.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range sections {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (POKEDEX_*). A missing file yields the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Api.BaseUrl == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.Api.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.Api.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must be non-negative")
	}
	if c.Api.RateLimit > 0 && c.Api.Burst < 1 {
		return fmt.Errorf("api.burst must be at least 1 when rate_limit is set")
	}
	if c.Browse.PageSize <= 0 {
		return fmt.Errorf("browse.page_size must be positive")
	}
	if c.Browse.NamesLimit <= 0 {
		return fmt.Errorf("browse.names_limit must be positive")
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log.level %q: must be one of debug, info, warn, error", c.Log.Level)
	}
	if c.Player.Volume < 0 || c.Player.Volume > 1 {
		return fmt.Errorf("player.volume must be between 0 and 1")
	}
	if len(c.Export.Formats) == 0 {
		return fmt.Errorf("export.formats must name at least one format")
	}
	for _, format := range c.Export.Formats {
		if !validFormats[format] {
			return fmt.Errorf("invalid export format %q: must be parquet or csv", format)
		}
	}
	if c.Export.PageSize <= 0 || c.Export.PageCount <= 0 {
		return fmt.Errorf("export.page_size and export.page_count must be positive")
	}
	return nil
}

// HasFormat reports whether the export writes the given format.
func (c *ExportConfig) HasFormat(format string) bool {
	for _, f := range c.Formats {
		if f == format {
			return true
		}
	}
	return false
}
