package config

import "time"

// Config is the top-level pokedex configuration, corresponding to pokedex.yml.
type Config struct {
	Api    ApiConfig    `yaml:"api" koanf:"api"`
	Browse BrowseConfig `yaml:"browse" koanf:"browse"`
	Log    LogConfig    `yaml:"log" koanf:"log"`
	Player PlayerConfig `yaml:"player" koanf:"player"`
	Export ExportConfig `yaml:"export" koanf:"export"`
}

// ApiConfig points the client at PokeAPI and the sprite host.
type ApiConfig struct {
	BaseUrl       string        `yaml:"base_url" koanf:"base_url"`
	SpriteBaseUrl string        `yaml:"sprite_base_url" koanf:"sprite_base_url"`
	Timeout       time.Duration `yaml:"timeout" koanf:"timeout"`
	// RateLimit is requests per second; 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit" koanf:"rate_limit"`
	Burst     int     `yaml:"burst" koanf:"burst"`
	UserAgent string  `yaml:"user_agent" koanf:"user_agent"`
}

type BrowseConfig struct {
	PageSize   int32 `yaml:"page_size" koanf:"page_size"`
	NamesLimit int32 `yaml:"names_limit" koanf:"names_limit"`
}

type LogConfig struct {
	Level string `yaml:"level" koanf:"level"`
	// File receives the log while the terminal UI owns the screen.
	File string `yaml:"file" koanf:"file"`
}

type PlayerConfig struct {
	// Command overrides the mpv/ffplay probe; it is given the cry url as its only argument.
	Command string  `yaml:"command" koanf:"command"`
	Volume  float64 `yaml:"volume" koanf:"volume"`
}

// ExportConfig holds the settings of the export command and the Lambda handlers.
type ExportConfig struct {
	Bucket    string   `yaml:"bucket" koanf:"bucket"`
	Region    string   `yaml:"region" koanf:"region"`
	OutDir    string   `yaml:"out_dir" koanf:"out_dir"`
	Prefix    string   `yaml:"prefix" koanf:"prefix"`
	Formats   []string `yaml:"formats" koanf:"formats"`
	PageSize  int32    `yaml:"page_size" koanf:"page_size"`
	PageCount int32    `yaml:"page_count" koanf:"page_count"`
}
