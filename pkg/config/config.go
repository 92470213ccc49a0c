package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App       AppConfig                 `json:"app" yaml:"app"`
	Providers map[string]ProviderConfig `json:"providers" yaml:"providers"`
	Planner   PlannerConfig             `json:"planner" yaml:"planner"`
	Gateways  map[string]GatewayConfig  `json:"gateways" yaml:"gateways"`
	Memory    MemoryConfig              `json:"memory" yaml:"memory"`
}

type AppConfig struct {
	Name string `json:"name" yaml:"name"`
}

type ProviderConfig struct {
	APIKey      string  `json:"api_key" yaml:"api_key"`
	Model       string  `json:"model" yaml:"model"`
	BaseURL     string  `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
	Enabled     bool    `json:"enabled" yaml:"enabled"`
}

type PlannerConfig struct {
	RefinementIterations int    `json:"refinement_iterations" yaml:"refinement_iterations"`
	PromptDir            string `json:"prompt_dir,omitempty" yaml:"prompt_dir,omitempty"`
}

type GatewayConfig struct {
	Token   string `json:"token" yaml:"token"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

type MemoryConfig struct {
	Path string `json:"path" yaml:"path"`
}

// DefaultTemperature matches the temperature the prompts were tuned with.
const DefaultTemperature = 0.7

// DefaultRefinementIterations bounds the refinement loop when the config
// does not set one.
const DefaultRefinementIterations = 2

// LoadConfig reads a JSON or YAML config file, chosen by extension.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	if cfg.Planner.RefinementIterations <= 0 {
		cfg.Planner.RefinementIterations = DefaultRefinementIterations
	}
	for name, p := range cfg.Providers {
		if p.Temperature == 0 {
			p.Temperature = DefaultTemperature
			cfg.Providers[name] = p
		}
	}

	return &cfg, nil
}

// GetDefaultProvider returns the first enabled provider
func (c *Config) GetDefaultProvider() (string, ProviderConfig) {
	for name, p := range c.Providers {
		if p.Enabled {
			return name, p
		}
	}
	return "", ProviderConfig{}
}

// GetProvider returns the named provider when present and enabled.
func (c *Config) GetProvider(name string) (ProviderConfig, bool) {
	p, ok := c.Providers[name]
	if ok && p.Enabled {
		return p, true
	}
	return ProviderConfig{}, false
}

// GetTelegramConfig returns telegram config if enabled
func (c *Config) GetTelegramConfig() (GatewayConfig, bool) {
	tg, ok := c.Gateways["telegram"]
	if ok && tg.Enabled {
		return tg, true
	}
	return GatewayConfig{}, false
}
