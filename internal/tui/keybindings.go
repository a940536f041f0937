package tui

import (
	"fmt"
	"maps"
	"slices"

	bkey "github.com/charmbracelet/bubbles/key"

	"github.com/colonyops/marquee/internal/core/config"
)

// BoundAction is a resolved keybinding ready for dispatch.
type BoundAction struct {
	Key     string
	Action  string // one of the config.Action* names
	Help    string
	Confirm string // non-empty if confirmation required
}

// NeedsConfirm returns true if the action requires user confirmation.
func (a BoundAction) NeedsConfirm() bool {
	return a.Confirm != ""
}

// KeybindingResolver maps key presses to configured browser actions.
// Navigation keys are not configurable and fall through to the caller.
type KeybindingResolver struct {
	keybindings map[string]config.Keybinding
}

func NewKeybindingResolver(keybindings map[string]config.Keybinding) *KeybindingResolver {
	return &KeybindingResolver{keybindings: keybindings}
}

// Resolve attempts to resolve a key press to a bound action.
func (r *KeybindingResolver) Resolve(key string) (BoundAction, bool) {
	kb, ok := r.keybindings[key]
	if !ok {
		return BoundAction{}, false
	}
	return BoundAction{
		Key:     key,
		Action:  kb.Action,
		Help:    kb.Help,
		Confirm: kb.Confirm,
	}, true
}

// HelpEntries returns all configured keybindings for display, sorted by key.
func (r *KeybindingResolver) HelpEntries() []string {
	keys := slices.Sorted(maps.Keys(r.keybindings))

	entries := make([]string, 0, len(keys))
	for _, key := range keys {
		kb := r.keybindings[key]
		help := kb.Help
		if help == "" {
			help = kb.Action
		}
		entries = append(entries, fmt.Sprintf("[%s] %s", key, help))
	}
	return entries
}

// Pairs returns (key, help) tuples sorted by key for styled rendering.
func (r *KeybindingResolver) Pairs() [][2]string {
	keys := slices.Sorted(maps.Keys(r.keybindings))

	pairs := make([][2]string, 0, len(keys))
	for _, key := range keys {
		kb := r.keybindings[key]
		help := kb.Help
		if help == "" {
			help = kb.Action
		}
		pairs = append(pairs, [2]string{key, help})
	}
	return pairs
}

// KeyBindings returns key.Binding objects for integration with bubbles help system.
func (r *KeybindingResolver) KeyBindings() []bkey.Binding {
	keys := slices.Sorted(maps.Keys(r.keybindings))

	bindings := make([]bkey.Binding, 0, len(keys))
	for _, k := range keys {
		kb := r.keybindings[k]
		help := kb.Help
		if help == "" {
			help = kb.Action
		}
		bindings = append(bindings, bkey.NewBinding(
			bkey.WithKeys(k),
			bkey.WithHelp(k, help),
		))
	}
	return bindings
}
