// Package config handles configuration loading and validation for marquee.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Built-in action names for keybindings.
const (
	ActionQuit   = "quit"
	ActionSearch = "search"
	ActionMyList = "my-list"
	ActionReload = "reload"
	ActionCopy   = "copy-link"
)

// defaultKeybindings provides built-in keybindings that users can override.
var defaultKeybindings = map[string]Keybinding{
	"q": {
		Action: ActionQuit,
		Help:   "quit",
	},
	"/": {
		Action: ActionSearch,
		Help:   "search",
	},
	"m": {
		Action: ActionMyList,
		Help:   "my list",
	},
	"R": {
		Action: ActionReload,
		Help:   "reload catalog",
	},
	"y": {
		Action: ActionCopy,
		Help:   "copy link",
	},
}

// Config holds the application configuration.
type Config struct {
	Theme       string                `yaml:"theme"`
	Catalog     CatalogConfig         `yaml:"catalog"`
	UI          UIConfig              `yaml:"ui"`
	Motion      MotionConfig          `yaml:"motion"`
	Keybindings map[string]Keybinding `yaml:"keybindings"`
	DataDir     string                `yaml:"-"` // set by caller, not from config file
}

// CatalogConfig controls where content rows are loaded from.
type CatalogConfig struct {
	// Paths are doublestar glob patterns resolved relative to the config
	// file directory when not absolute. Empty means the embedded demo
	// catalog only.
	Paths []string `yaml:"paths"`
	// Watch reloads the catalog when a matched file changes.
	Watch bool `yaml:"watch"`
}

// UIConfig holds presentation options.
type UIConfig struct {
	// ReducedMotion makes scroll animations land in a single frame.
	ReducedMotion bool `yaml:"reduced_motion"`
	// Breakpoints define layout tiers by viewport width, narrowest first.
	// The last tier must be unbounded (max_width 0).
	Breakpoints []Breakpoint `yaml:"breakpoints"`
}

// Breakpoint is one layout tier. MaxWidth is an exclusive upper bound in
// terminal columns; 0 means unbounded.
type Breakpoint struct {
	Name          string `yaml:"name"`
	MaxWidth      int    `yaml:"max_width"`
	CardWidth     int    `yaml:"card_width"`
	CardGap       int    `yaml:"card_gap"`
	CardsPerClick int    `yaml:"cards_per_click"`
}

// PageDistance returns the fixed per-click scroll distance for the tier.
func (b Breakpoint) PageDistance() float64 {
	return float64(b.CardsPerClick * (b.CardWidth + b.CardGap))
}

// MotionConfig holds the tunable constants of the navigation engine.
// The defaults are the shipped behavior; they are configuration, not
// load-bearing semantics.
type MotionConfig struct {
	EdgeTolerance    float64 `yaml:"edge_tolerance"`      // cells of drift absorbed by edge detection
	DragThreshold    float64 `yaml:"drag_threshold"`      // cells before a contact becomes a drag
	FlickVelocity    float64 `yaml:"flick_velocity"`      // cells/ms release speed for momentum
	FlickWindowMS    int     `yaml:"flick_window_ms"`     // max gesture duration for momentum
	MomentumFactor   float64 `yaml:"momentum_factor"`     // projected distance per cells/ms of velocity
	SettleDurationMS int     `yaml:"settle_duration_ms"`  // momentum settle animation length
	NavDurationMS    int     `yaml:"nav_duration_ms"`     // button navigation animation length
	WheelStep        float64 `yaml:"wheel_step"`          // cells per wheel notch
	ResizeDebounceMS int     `yaml:"resize_debounce_ms"`  // quiet period before metrics recompute
	ModalOpenDelayMS int     `yaml:"modal_open_delay_ms"` // loading placeholder before content fills
}

// FlickWindow returns the momentum qualification window as a duration.
func (m MotionConfig) FlickWindow() time.Duration {
	return time.Duration(m.FlickWindowMS) * time.Millisecond
}

// SettleDuration returns the momentum settle length as a duration.
func (m MotionConfig) SettleDuration() time.Duration {
	return time.Duration(m.SettleDurationMS) * time.Millisecond
}

// NavDuration returns the button navigation length as a duration.
func (m MotionConfig) NavDuration() time.Duration {
	return time.Duration(m.NavDurationMS) * time.Millisecond
}

// ResizeDebounce returns the resize quiet period as a duration.
func (m MotionConfig) ResizeDebounce() time.Duration {
	return time.Duration(m.ResizeDebounceMS) * time.Millisecond
}

// ModalOpenDelay returns the loading placeholder delay as a duration.
func (m MotionConfig) ModalOpenDelay() time.Duration {
	return time.Duration(m.ModalOpenDelayMS) * time.Millisecond
}

// Keybinding defines a TUI keybinding action.
type Keybinding struct {
	Action  string `yaml:"action"`  // built-in action name
	Help    string `yaml:"help"`    // help text shown in TUI
	Confirm string `yaml:"confirm"` // confirmation prompt (empty = no confirm)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: "midnight",
		Catalog: CatalogConfig{
			Paths: []string{},
			Watch: true,
		},
		UI: UIConfig{
			Breakpoints: []Breakpoint{
				{Name: "compact", MaxWidth: 80, CardWidth: 14, CardGap: 1, CardsPerClick: 2},
				{Name: "regular", MaxWidth: 160, CardWidth: 18, CardGap: 2, CardsPerClick: 3},
				{Name: "wide", MaxWidth: 0, CardWidth: 22, CardGap: 2, CardsPerClick: 4},
			},
		},
		Motion: MotionConfig{
			EdgeTolerance:    2,
			DragThreshold:    10,
			FlickVelocity:    0.5,
			FlickWindowMS:    300,
			MomentumFactor:   200,
			SettleDurationMS: 400,
			NavDurationMS:    300,
			WheelStep:        4,
			ResizeDebounceMS: 250,
			ModalOpenDelayMS: 100,
		},
		Keybindings: map[string]Keybinding{},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	// Merge user keybindings into defaults (user config overrides defaults)
	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
// A config file that sets only some motion constants keeps the shipped
// values for the rest.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if len(c.UI.Breakpoints) == 0 {
		c.UI.Breakpoints = defaults.UI.Breakpoints
	}

	m, d := &c.Motion, defaults.Motion
	if m.EdgeTolerance == 0 {
		m.EdgeTolerance = d.EdgeTolerance
	}
	if m.DragThreshold == 0 {
		m.DragThreshold = d.DragThreshold
	}
	if m.FlickVelocity == 0 {
		m.FlickVelocity = d.FlickVelocity
	}
	if m.FlickWindowMS == 0 {
		m.FlickWindowMS = d.FlickWindowMS
	}
	if m.MomentumFactor == 0 {
		m.MomentumFactor = d.MomentumFactor
	}
	if m.SettleDurationMS == 0 {
		m.SettleDurationMS = d.SettleDurationMS
	}
	if m.NavDurationMS == 0 {
		m.NavDurationMS = d.NavDurationMS
	}
	if m.WheelStep == 0 {
		m.WheelStep = d.WheelStep
	}
	if m.ResizeDebounceMS == 0 {
		m.ResizeDebounceMS = d.ResizeDebounceMS
	}
	if m.ModalOpenDelayMS == 0 {
		m.ModalOpenDelayMS = d.ModalOpenDelayMS
	}
}

// mergeKeybindings merges user keybindings into defaults.
// User keybindings override defaults for the same key.
func mergeKeybindings(defaults, user map[string]Keybinding) map[string]Keybinding {
	result := make(map[string]Keybinding, len(defaults)+len(user))

	for k, v := range defaults {
		result[k] = v
	}

	for k, v := range user {
		result[k] = v
	}

	return result
}

// TierFor returns the breakpoint tier for a viewport width. Tiers are
// matched narrowest first; the unbounded tier catches everything else.
func (c *Config) TierFor(viewportWidth int) Breakpoint {
	for _, bp := range c.UI.Breakpoints {
		if bp.MaxWidth == 0 || viewportWidth < bp.MaxWidth {
			return bp
		}
	}
	// Validate guarantees an unbounded last tier; this is only reachable
	// with a hand-built Config.
	return c.UI.Breakpoints[len(c.UI.Breakpoints)-1]
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if len(c.UI.Breakpoints) == 0 {
		return fmt.Errorf("ui.breakpoints cannot be empty")
	}

	lastMax := 0
	for i, bp := range c.UI.Breakpoints {
		if bp.CardWidth < 1 {
			return fmt.Errorf("ui.breakpoints[%d]: card_width must be at least 1", i)
		}
		if bp.CardGap < 0 {
			return fmt.Errorf("ui.breakpoints[%d]: card_gap cannot be negative", i)
		}
		if bp.CardsPerClick < 1 {
			return fmt.Errorf("ui.breakpoints[%d]: cards_per_click must be at least 1", i)
		}
		if bp.MaxWidth == 0 {
			if i != len(c.UI.Breakpoints)-1 {
				return fmt.Errorf("ui.breakpoints[%d]: only the last tier may be unbounded", i)
			}
			continue
		}
		if i > 0 && bp.MaxWidth <= lastMax {
			return fmt.Errorf("ui.breakpoints[%d]: max_width must increase between tiers", i)
		}
		lastMax = bp.MaxWidth
	}
	if last := c.UI.Breakpoints[len(c.UI.Breakpoints)-1]; last.MaxWidth != 0 {
		return fmt.Errorf("ui.breakpoints: last tier must be unbounded (max_width 0)")
	}

	if err := c.Motion.validate(); err != nil {
		return err
	}

	for key, kb := range c.Keybindings {
		if kb.Action == "" {
			return fmt.Errorf("keybinding %q must have an action", key)
		}
		if !isValidAction(kb.Action) {
			return fmt.Errorf("keybinding %q has invalid action %q", key, kb.Action)
		}
	}

	return nil
}

func (m MotionConfig) validate() error {
	if m.EdgeTolerance < 0 {
		return fmt.Errorf("motion.edge_tolerance cannot be negative")
	}
	if m.DragThreshold < 0 {
		return fmt.Errorf("motion.drag_threshold cannot be negative")
	}
	if m.FlickVelocity < 0 {
		return fmt.Errorf("motion.flick_velocity cannot be negative")
	}
	if m.MomentumFactor < 0 {
		return fmt.Errorf("motion.momentum_factor cannot be negative")
	}
	for name, ms := range map[string]int{
		"motion.flick_window_ms":     m.FlickWindowMS,
		"motion.settle_duration_ms":  m.SettleDurationMS,
		"motion.nav_duration_ms":     m.NavDurationMS,
		"motion.resize_debounce_ms":  m.ResizeDebounceMS,
		"motion.modal_open_delay_ms": m.ModalOpenDelayMS,
	} {
		if ms < 0 {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}
	return nil
}

// ListDBFile returns the path to the SQLite database holding my-list and
// UI state.
func (c *Config) ListDBFile() string {
	return filepath.Join(c.DataDir, "marquee.db")
}

// CatalogDir returns the default directory for user catalog files.
func (c *Config) CatalogDir() string {
	return filepath.Join(c.DataDir, "catalog")
}

func isValidAction(action string) bool {
	switch action {
	case ActionQuit, ActionSearch, ActionMyList, ActionReload, ActionCopy:
		return true
	default:
		return false
	}
}
