package initcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/marquee/internal/core/catalog"
)

// fileConfig is the subset of settings the wizard writes. Everything else
// keeps its shipped default when the config loads.
type fileConfig struct {
	Theme   string `yaml:"theme"`
	Catalog struct {
		Paths []string `yaml:"paths"`
		Watch bool     `yaml:"watch"`
	} `yaml:"catalog"`
}

// WriteConfig renders the chosen settings as YAML at configPath, creating
// parent directories as needed.
func WriteConfig(choice wizardChoices, configPath string) error {
	var cfg fileConfig
	cfg.Theme = choice.Theme
	cfg.Catalog.Paths = []string{filepath.Join(choice.CatalogDir, "**", "*.yml")}
	cfg.Catalog.Watch = choice.Watch

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	out := append([]byte("# marquee configuration (generated by marquee init)\n"), data...)

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(configPath, out, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// EjectDemoCatalog writes the embedded demo catalog into dir as an
// editable starter file. Returns the written path.
func EjectDemoCatalog(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create catalog directory: %w", err)
	}

	path := filepath.Join(dir, "catalog.yml")
	if err := os.WriteFile(path, catalog.DemoSource(), 0o644); err != nil {
		return "", fmt.Errorf("write starter catalog: %w", err)
	}

	return path, nil
}
