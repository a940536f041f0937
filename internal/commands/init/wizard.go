// Package initcmd implements the first-run configuration wizard.
package initcmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/colonyops/marquee/internal/core/styles"
	"github.com/colonyops/marquee/internal/printer"
)

// WizardOptions configures the wizard behavior.
type WizardOptions struct {
	ConfigPath string
	DataDir    string
	Yes        bool // skip prompts, use defaults
	Force      bool // overwrite existing config
}

// Wizard orchestrates the init process.
type Wizard struct {
	opts WizardOptions
}

// NewWizard creates a new init wizard.
func NewWizard(opts WizardOptions) *Wizard {
	return &Wizard{opts: opts}
}

// wizardChoices holds the settings the wizard collects.
type wizardChoices struct {
	Theme      string
	CatalogDir string
	Watch      bool
	EjectDemo  bool
}

// Run executes the wizard.
func (w *Wizard) Run(ctx context.Context) error {
	p := printer.Ctx(ctx)

	// Check for existing config
	if ConfigExists(w.opts.ConfigPath) && !w.opts.Force {
		if w.opts.Yes {
			return fmt.Errorf("config exists at %s; use --force to overwrite", w.opts.ConfigPath)
		}

		var overwrite bool
		err := huh.NewConfirm().
			Title("Config file already exists").
			Description(w.opts.ConfigPath + "\nOverwrite? (a backup will be created)").
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			p.Infof("Init cancelled")
			return nil
		}
	}

	choice := wizardChoices{
		Theme:      styles.DefaultTheme,
		CatalogDir: filepath.Join(w.opts.DataDir, "catalog"),
		Watch:      true,
		EjectDemo:  true,
	}

	if !w.opts.Yes {
		var err error
		choice, err = promptUser(choice)
		if err != nil {
			return err
		}
	}

	choice.CatalogDir = expandHome(choice.CatalogDir)

	// Backup existing config if needed
	if ConfigExists(w.opts.ConfigPath) {
		backupPath, err := BackupConfig(w.opts.ConfigPath)
		if err != nil {
			return fmt.Errorf("backup config: %w", err)
		}
		if backupPath != "" {
			p.Successf("Backed up config to: %s", backupPath)
		}
	}

	if err := WriteConfig(choice, w.opts.ConfigPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	p.Successf("Created config: %s", w.opts.ConfigPath)

	var starterPath string
	if choice.EjectDemo {
		path, err := EjectDemoCatalog(choice.CatalogDir)
		if err != nil {
			p.Warnf("Failed to write starter catalog: %v", err)
		} else {
			starterPath = path
			p.Successf("Wrote starter catalog: %s", path)
		}
	}

	// Run validation checks
	p.Printf("")
	result := NewInitCheck(w.opts.ConfigPath, choice.CatalogDir, w.opts.DataDir).Run(ctx)

	p.Section(result.Name)
	for _, item := range result.Items {
		switch item.Status {
		case StatusPass:
			p.CheckItem(item.Label, item.Detail)
		case StatusWarn:
			p.WarnItem(item.Label, item.Detail)
		case StatusFail:
			p.FailItem(item.Label, item.Detail)
		}
	}

	w.printNextSteps(p, starterPath)

	return nil
}

func promptUser(defaults wizardChoices) (wizardChoices, error) {
	choice := defaults

	names := styles.ThemeNames()
	themeOptions := make([]huh.Option[string], 0, len(names))
	for _, name := range names {
		themeOptions = append(themeOptions, huh.NewOption(name, name))
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Color theme").
			Options(themeOptions...).
			Value(&choice.Theme),
		huh.NewInput().
			Title("Catalog directory").
			Description("Where your catalog YAML files live").
			Value(&choice.CatalogDir),
		huh.NewConfirm().
			Title("Watch catalog files?").
			Description("Reload the library when a catalog file changes").
			Value(&choice.Watch),
		huh.NewConfirm().
			Title("Eject the demo catalog?").
			Description("Writes an editable starter catalog into the catalog directory").
			Value(&choice.EjectDemo),
	))

	if err := form.Run(); err != nil {
		return choice, err
	}

	return choice, nil
}

func (w *Wizard) printNextSteps(p *printer.Printer, starterPath string) {
	p.Printf("")
	p.Section("Next Steps")

	step := 1
	if starterPath != "" {
		p.Printf("  %d. Edit %s to add your own titles", step, starterPath)
		step++
	}
	p.Printf("  %d. Run 'marquee' to start browsing", step)
}
