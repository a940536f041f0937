package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration
// including glob syntax and file accessibility. The configPath argument
// specifies the config file location to validate (empty string skips the
// config file check). This calls Validate() first for basic structural
// validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateCatalogPatterns(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Catalog.Watch && len(c.Catalog.Paths) == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Catalog",
			Message:  "watch is enabled but no catalog paths are configured; only the built-in demo catalog will be shown",
		})
	}

	for _, bp := range c.UI.Breakpoints {
		if bp.MaxWidth != 0 && bp.CardWidth+bp.CardGap >= bp.MaxWidth {
			warnings = append(warnings, ValidationWarning{
				Category: "Breakpoints",
				Item:     bp.Name,
				Message:  fmt.Sprintf("card_width+card_gap (%d) leaves no room inside max_width %d", bp.CardWidth+bp.CardGap, bp.MaxWidth),
			})
		}
	}

	return warnings
}

// validateFileAccess checks the config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// validateCatalogPatterns checks that every catalog path is a valid
// doublestar glob.
func (c *Config) validateCatalogPatterns() error {
	var errs criterio.FieldErrorsBuilder

	for i, pattern := range c.Catalog.Paths {
		if pattern == "" {
			errs = errs.Append(fmt.Sprintf("catalog.paths[%d]", i), fmt.Errorf("pattern cannot be empty"))
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("catalog.paths[%d]", i), fmt.Errorf("invalid glob pattern: %s", pattern))
		}
	}

	return errs.ToError()
}
