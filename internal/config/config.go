// Package config provides configuration management for the addon.
//
// ServerConfig is constructed once at startup and never mutated afterwards;
// request handling only ever reads it. The per-request provider selection
// lives in the configuration token (see token.go), not here.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/italostream/italostream/internal/constants"
)

const (
	defaultConfigFile   = "config.json"
	defaultDatabasePath = "./data.db"
)

// ServerConfig holds the process-wide configuration snapshot.
type ServerConfig struct {
	// Addon branding
	Name string `json:"NAME"`
	Icon string `json:"ICON"`

	// HTTP
	Port string `json:"PORT"`

	// Globally enabled providers, by canonical name. A provider serves a
	// request only when both this flag and the per-request flag are set.
	Providers map[string]bool `json:"PROVIDERS"`

	// Per-provider base domain overrides (sites rotate domains often)
	Domains map[string]string `json:"DOMAINS"`

	// Enabled live TV source kinds. A channel source is emitted only when
	// its kind is enabled here and the channel carries the matching field.
	TVSources map[string]bool `json:"TV_SOURCES"`

	// Storage settings
	DatabasePath string        `json:"DATABASE_PATH"`
	CacheSize    int           `json:"CACHE_SIZE"`
	CacheTTL     time.Duration `json:"CACHE_TTL"`
}

// Load reads configuration from environment variables and an optional JSON
// file. Environment variables take precedence over file values.
func Load() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Name:         constants.AddonName,
		Icon:         constants.AddonIcon,
		Port:         constants.DefaultPort,
		CacheSize:    constants.DefaultCacheSize,
		CacheTTL:     time.Duration(constants.DefaultCacheTTL) * time.Hour,
		DatabasePath: getEnvOrDefault("DATABASE_PATH", defaultDatabasePath),
	}

	configFile := getEnvOrDefault("CONFIG_FILE", defaultConfigFile)
	if err := cfg.loadFromFile(configFile); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	cfg.loadFromEnv()
	cfg.applyDefaults()

	return cfg, nil
}

func (c *ServerConfig) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, c)
}

func (c *ServerConfig) loadFromEnv() {
	if name := os.Getenv("ADDON_NAME"); name != "" {
		c.Name = name
	}
	if icon := os.Getenv("ADDON_ICON"); icon != "" {
		c.Icon = icon
	}
	if port := os.Getenv("PORT"); port != "" {
		c.Port = port
	}

	// PROVIDERS is a comma-separated list of short-codes, e.g. "SC,LC,AS"
	if list := os.Getenv("PROVIDERS"); list != "" {
		c.Providers = make(map[string]bool)
		for _, code := range strings.Split(list, ",") {
			if name, ok := constants.ShortCodes[strings.TrimSpace(strings.ToUpper(code))]; ok {
				c.Providers[name] = true
			}
		}
	}

	// TV_SOURCES is a comma-separated list of source kinds, e.g. "direct,sky"
	if list := os.Getenv("TV_SOURCES"); list != "" {
		c.TVSources = make(map[string]bool)
		for _, kind := range strings.Split(list, ",") {
			c.TVSources[strings.TrimSpace(strings.ToLower(kind))] = true
		}
	}

	for code, name := range constants.ShortCodes {
		if domain := os.Getenv(code + "_DOMAIN"); domain != "" {
			if c.Domains == nil {
				c.Domains = make(map[string]string)
			}
			c.Domains[name] = domain
		}
	}
}

// applyDefaults enables every known provider and TV source kind when none
// was configured.
func (c *ServerConfig) applyDefaults() {
	if c.Providers == nil {
		c.Providers = make(map[string]bool, len(constants.ProviderOrder))
		for _, name := range constants.ProviderOrder {
			c.Providers[name] = true
		}
	}
	if c.TVSources == nil {
		c.TVSources = make(map[string]bool, len(constants.TVSources))
		for _, kind := range constants.TVSources {
			c.TVSources[kind] = true
		}
	}
	if c.Domains == nil {
		c.Domains = make(map[string]string)
	}
}

// ProviderEnabled reports whether the server globally enables a provider.
func (c *ServerConfig) ProviderEnabled(name string) bool {
	return c.Providers[name]
}

// TVSourceEnabled reports whether a live TV source kind is enabled.
func (c *ServerConfig) TVSourceEnabled(kind string) bool {
	return c.TVSources[kind]
}

// Domain returns the configured base domain for a provider, or fallback.
func (c *ServerConfig) Domain(name, fallback string) string {
	if d, ok := c.Domains[name]; ok && d != "" {
		return d
	}
	return fallback
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
