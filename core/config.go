package core

import (
	"os"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const (
	DefaultHost      = "127.0.0.1"
	DefaultPort      = 5000
	DefaultOutputDir = "./cache"
	DefaultPublicDir = "./public"
	DefaultFooter    = "© Bek & SKY Get Into Tech, 2024"
)

type Config struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Debug        bool   `yaml:"debug"`
	OutputDir    string `yaml:"outputDir"`
	PublicDir    string `yaml:"publicDir"`
	CacheEnabled bool   `yaml:"cache"`
	DebugHeaders bool   `yaml:"debugHeaders"`
	DebugLogs    bool   `yaml:"debugLogs"`
	Footer       string `yaml:"footer"`
}

func DefaultConfig() Config {
	return Config{
		Host:      DefaultHost,
		Port:      DefaultPort,
		Debug:     true,
		OutputDir: DefaultOutputDir,
		PublicDir: DefaultPublicDir,
		Footer:    DefaultFooter,
	}
}

// LoadConfig reads the YAML config at path. A missing or unreadable file
// yields the defaults; empty fields in the file fall back to them too.
var LoadConfig = func(path string) Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig()
	}

	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port <= 0 {
		cfg.Port = DefaultPort
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.PublicDir == "" {
		cfg.PublicDir = DefaultPublicDir
	}
	if strings.TrimSpace(cfg.Footer) == "" {
		cfg.Footer = DefaultFooter
	}

	return cfg
}

// ApplyEnv overrides host, port and debug from FOLIO_HOST, FOLIO_PORT and
// FOLIO_DEBUG. Empty values and values that do not parse are ignored.
func ApplyEnv(cfg Config, lookup func(string) (string, bool)) Config {
	env := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := env("FOLIO_HOST"); ok {
		cfg.Host = v
	}
	if v, ok := env("FOLIO_PORT"); ok {
		if port, err := cast.ToIntE(v); err == nil && port > 0 {
			cfg.Port = port
		}
	}
	if v, ok := env("FOLIO_DEBUG"); ok {
		if debug, err := cast.ToBoolE(v); err == nil {
			cfg.Debug = debug
		}
	}
	return cfg
}
