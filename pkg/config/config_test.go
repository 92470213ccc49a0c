package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigJSON(t *testing.T) {
	content := `{
		"app": {"name": "callplanner"},
		"providers": {
			"mistral": {"api_key": "k1", "model": "mistral-large-latest", "temperature": 0.7, "enabled": true},
			"openai": {"api_key": "k2", "model": "gpt-4o", "enabled": false}
		},
		"planner": {"refinement_iterations": 3},
		"memory": {"path": "archive.db"}
	}`
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	name, p := cfg.GetDefaultProvider()
	if name != "mistral" {
		t.Errorf("GetDefaultProvider() = %q, want mistral (only enabled provider)", name)
	}
	if p.Model != "mistral-large-latest" {
		t.Errorf("provider model = %q", p.Model)
	}
	if cfg.Planner.RefinementIterations != 3 {
		t.Errorf("RefinementIterations = %d, want 3", cfg.Planner.RefinementIterations)
	}
	if _, ok := cfg.GetProvider("openai"); ok {
		t.Error("GetProvider should not return a disabled provider")
	}
}

func TestLoadConfigYAML(t *testing.T) {
	content := `
app:
  name: callplanner
providers:
  openai:
    api_key: k2
    model: gpt-4o
    enabled: true
gateways:
  telegram:
    token: tok
    enabled: true
memory:
  path: archive.db
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	tg, ok := cfg.GetTelegramConfig()
	if !ok || tg.Token != "tok" {
		t.Errorf("GetTelegramConfig() = %+v, %v", tg, ok)
	}

	// Defaults fill in what the file omits.
	if cfg.Planner.RefinementIterations != DefaultRefinementIterations {
		t.Errorf("RefinementIterations = %d, want default %d", cfg.Planner.RefinementIterations, DefaultRefinementIterations)
	}
	if p, _ := cfg.GetProvider("openai"); p.Temperature != DefaultTemperature {
		t.Errorf("Temperature = %v, want default %v", p.Temperature, DefaultTemperature)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing config file")
	}
}
