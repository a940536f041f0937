package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Keybindings = mergeKeybindings(defaultKeybindings, nil)
	return cfg
}

func TestValidateDeepDefaults(t *testing.T) {
	cfg := validConfig(t)

	if err := cfg.ValidateDeep(""); err != nil {
		t.Errorf("ValidateDeep() unexpected error: %v", err)
	}
}

func TestValidateDeepMissingConfigFile(t *testing.T) {
	cfg := validConfig(t)

	// A config path that doesn't exist is fine, defaults apply.
	if err := cfg.ValidateDeep(filepath.Join(cfg.DataDir, "nope.yml")); err != nil {
		t.Errorf("ValidateDeep() unexpected error: %v", err)
	}
}

func TestValidateDeepConfigFileIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(cfg.DataDir)
	if err == nil {
		t.Fatal("ValidateDeep() expected error for directory config path")
	}
	if !strings.Contains(err.Error(), "directory") {
		t.Errorf("ValidateDeep() error = %q, want directory error", err)
	}
}

func TestValidateDeepDataDirIsFile(t *testing.T) {
	cfg := validConfig(t)

	file := filepath.Join(cfg.DataDir, "data")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.DataDir = file

	err := cfg.ValidateDeep("")
	if err == nil {
		t.Fatal("ValidateDeep() expected error for file data dir")
	}
	if !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("ValidateDeep() error = %q, want not-a-directory error", err)
	}
}

func TestValidateDeepCatalogPatterns(t *testing.T) {
	tests := []struct {
		name    string
		paths   []string
		wantErr string
	}{
		{
			name:    "valid globs",
			paths:   []string{"catalog/**/*.yml", "extra/*.yaml"},
			wantErr: "",
		},
		{
			name:    "empty pattern",
			paths:   []string{""},
			wantErr: "cannot be empty",
		},
		{
			name:    "unterminated character class",
			paths:   []string{"catalog/[*.yml"},
			wantErr: "invalid glob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			cfg.Catalog.Paths = tt.paths

			err := cfg.ValidateDeep("")
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateDeep() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateDeep() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateDeep() error = %q, want error containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestWarnings(t *testing.T) {
	t.Run("watch without paths", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Catalog.Watch = true
		cfg.Catalog.Paths = nil

		warnings := cfg.Warnings()
		if len(warnings) != 1 {
			t.Fatalf("Warnings() len = %d, want 1", len(warnings))
		}
		if warnings[0].Category != "Catalog" {
			t.Errorf("Warnings()[0].Category = %q, want Catalog", warnings[0].Category)
		}
	})

	t.Run("no warnings when watch has paths", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Catalog.Paths = []string{"catalog/*.yml"}

		if warnings := cfg.Warnings(); len(warnings) != 0 {
			t.Errorf("Warnings() = %v, want none", warnings)
		}
	})

	t.Run("card wider than tier", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Catalog.Paths = []string{"catalog/*.yml"}
		cfg.UI.Breakpoints[0] = Breakpoint{Name: "tiny", MaxWidth: 10, CardWidth: 14, CardGap: 1, CardsPerClick: 1}

		warnings := cfg.Warnings()
		if len(warnings) != 1 {
			t.Fatalf("Warnings() len = %d, want 1", len(warnings))
		}
		if warnings[0].Item != "tiny" {
			t.Errorf("Warnings()[0].Item = %q, want tiny", warnings[0].Item)
		}
	})
}
