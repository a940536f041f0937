package initcmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/colonyops/marquee/internal/core/config"
)

// Status classifies a post-init check outcome.
type Status int

const (
	StatusPass Status = iota
	StatusWarn
	StatusFail
)

// CheckItem is one validation line shown after the wizard finishes.
type CheckItem struct {
	Label  string
	Status Status
	Detail string
}

// Result groups the post-init checks under a heading.
type Result struct {
	Name  string
	Items []CheckItem
}

// InitCheck validates the init wizard results.
type InitCheck struct {
	configPath string
	catalogDir string
	dataDir    string
}

// NewInitCheck creates a new init validation check.
func NewInitCheck(configPath, catalogDir, dataDir string) *InitCheck {
	return &InitCheck{configPath: configPath, catalogDir: catalogDir, dataDir: dataDir}
}

func (c *InitCheck) Name() string {
	return "Init Validation"
}

func (c *InitCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	result.Items = append(result.Items, c.checkConfigFile())
	result.Items = append(result.Items, c.checkConfigParses())
	result.Items = append(result.Items, c.checkCatalogDir())

	return result
}

func (c *InitCheck) checkConfigFile() CheckItem {
	if _, err := os.Stat(c.configPath); err != nil {
		return CheckItem{
			Label:  "Config file",
			Status: StatusFail,
			Detail: c.configPath + " not found",
		}
	}
	return CheckItem{
		Label:  "Config file",
		Status: StatusPass,
		Detail: c.configPath,
	}
}

func (c *InitCheck) checkConfigParses() CheckItem {
	if _, err := config.Load(c.configPath, c.dataDir); err != nil {
		return CheckItem{
			Label:  "Config syntax",
			Status: StatusFail,
			Detail: err.Error(),
		}
	}
	return CheckItem{
		Label:  "Config syntax",
		Status: StatusPass,
		Detail: "parsed and validated",
	}
}

func (c *InitCheck) checkCatalogDir() CheckItem {
	entries, err := os.ReadDir(c.catalogDir)
	if err != nil {
		return CheckItem{
			Label:  "Catalog directory",
			Status: StatusWarn,
			Detail: c.catalogDir + " not found; the demo catalog is shown",
		}
	}

	files := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".yml") || strings.HasSuffix(e.Name(), ".yaml") {
			files++
		}
	}

	if files == 0 {
		return CheckItem{
			Label:  "Catalog directory",
			Status: StatusWarn,
			Detail: "no catalog files yet; the demo catalog is shown",
		}
	}
	return CheckItem{
		Label:  "Catalog directory",
		Status: StatusPass,
		Detail: fmt.Sprintf("%d catalog file(s)", files),
	}
}
