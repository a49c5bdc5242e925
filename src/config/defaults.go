package config

import (
	"time"

	"github.com/kyohenrique/pokedex/src/audio"
	"github.com/kyohenrique/pokedex/src/autocomplete"
	"github.com/kyohenrique/pokedex/src/pokeapi"
	"github.com/kyohenrique/pokedex/src/pokedex"
)

const (
	DefaultPath = "pokedex.yml"

	FormatParquet = "parquet"
	FormatCsv     = "csv"
)

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validFormats = map[string]bool{
	FormatParquet: true,
	FormatCsv:     true,
}

// DefaultConfig returns a Config that browses the public PokeAPI.
func DefaultConfig() *Config {
	return &Config{
		Api: ApiConfig{
			BaseUrl:       pokeapi.DefaultBaseUrl,
			SpriteBaseUrl: pokeapi.DefaultSpriteBaseUrl,
			Timeout:       15 * time.Second,
			RateLimit:     10,
			Burst:         20,
			UserAgent:     "pokedex",
		},
		Browse: BrowseConfig{
			PageSize:   pokedex.DefaultPageSize,
			NamesLimit: autocomplete.NamesLimit,
		},
		Log: LogConfig{
			Level: "info",
			File:  "pokedex.log",
		},
		Player: PlayerConfig{
			Volume: audio.DefaultVolume,
		},
		Export: ExportConfig{
			OutDir:    "export",
			Prefix:    "pokemons",
			Formats:   []string{FormatParquet, FormatCsv},
			PageSize:  50,
			PageCount: 1,
		},
	}
}
