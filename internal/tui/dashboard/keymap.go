package dashboard

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"

	"github.com/AdamGardelov/paneboard/internal/layout"
)

// KeyMap holds the resolved dashboard bindings. Defaults can be
// overridden per action from the layout config; every chord may be
// bound to at most one action.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Attach      key.Binding
	NewSession  key.Binding
	Kill        key.Binding
	Rename      key.Binding
	Yank        key.Binding
	Refresh     key.Binding
	Filter      key.Binding
	PreviewUp   key.Binding
	PreviewDown key.Binding
	Help        key.Binding
	Quit        key.Binding
}

type keymapAction struct {
	name     string
	desc     string
	defaults []string
	override []string
	assign   func(*KeyMap, key.Binding)
}

func buildKeyMap(cfg layout.KeymapConfig) (*KeyMap, error) {
	km := &KeyMap{}
	used := make(map[string]string)
	actions := []keymapAction{
		{
			name:     "up",
			desc:     "up",
			defaults: []string{"up", "k"},
			override: cfg.Up,
			assign:   func(m *KeyMap, b key.Binding) { m.Up = b },
		},
		{
			name:     "down",
			desc:     "down",
			defaults: []string{"down", "j"},
			override: cfg.Down,
			assign:   func(m *KeyMap, b key.Binding) { m.Down = b },
		},
		{
			name:     "attach",
			desc:     "attach",
			defaults: []string{"enter"},
			override: cfg.Attach,
			assign:   func(m *KeyMap, b key.Binding) { m.Attach = b },
		},
		{
			name:     "new_session",
			desc:     "new",
			defaults: []string{"n"},
			override: cfg.NewSession,
			assign:   func(m *KeyMap, b key.Binding) { m.NewSession = b },
		},
		{
			name:     "kill",
			desc:     "kill",
			defaults: []string{"x"},
			override: cfg.Kill,
			assign:   func(m *KeyMap, b key.Binding) { m.Kill = b },
		},
		{
			name:     "rename",
			desc:     "rename",
			defaults: []string{"R"},
			override: cfg.Rename,
			assign:   func(m *KeyMap, b key.Binding) { m.Rename = b },
		},
		{
			name:     "yank",
			desc:     "yank",
			defaults: []string{"y"},
			override: cfg.Yank,
			assign:   func(m *KeyMap, b key.Binding) { m.Yank = b },
		},
		{
			name:     "refresh",
			desc:     "refresh",
			defaults: []string{"r", "f5"},
			override: cfg.Refresh,
			assign:   func(m *KeyMap, b key.Binding) { m.Refresh = b },
		},
		{
			name:     "filter",
			desc:     "filter",
			defaults: []string{"/"},
			override: cfg.Filter,
			assign:   func(m *KeyMap, b key.Binding) { m.Filter = b },
		},
		{
			name:     "preview_up",
			desc:     "scroll preview",
			defaults: []string{"pgup"},
			override: cfg.PreviewUp,
			assign:   func(m *KeyMap, b key.Binding) { m.PreviewUp = b },
		},
		{
			name:     "preview_down",
			desc:     "scroll preview",
			defaults: []string{"pgdown"},
			override: cfg.PreviewDown,
			assign:   func(m *KeyMap, b key.Binding) { m.PreviewDown = b },
		},
		{
			name:     "help",
			desc:     "help",
			defaults: []string{"?"},
			override: cfg.Help,
			assign:   func(m *KeyMap, b key.Binding) { m.Help = b },
		},
		{
			name:     "quit",
			desc:     "quit",
			defaults: []string{"q", "ctrl+c"},
			override: cfg.Quit,
			assign:   func(m *KeyMap, b key.Binding) { m.Quit = b },
		},
	}

	for _, action := range actions {
		keys, err := resolveKeyList(action.name, action.override, action.defaults)
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			if prev, ok := used[k]; ok {
				return nil, fmt.Errorf("keymap.%s: key %q already bound to keymap.%s", action.name, k, prev)
			}
			used[k] = action.name
		}
		binding := key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(formatKeyLabel(keys), action.desc),
		)
		action.assign(km, binding)
	}

	return km, nil
}

func resolveKeyList(field string, override, defaults []string) ([]string, error) {
	keys := override
	if len(keys) == 0 {
		keys = defaults
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("keymap.%s: no keys configured", field)
	}
	seen := make(map[string]struct{})
	out := make([]string, 0, len(keys))
	for _, raw := range keys {
		normalized, err := normalizeKeyString(raw)
		if err != nil {
			return nil, fmt.Errorf("keymap.%s: %w", field, err)
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("keymap.%s: no valid keys configured", field)
	}
	return out, nil
}

// normalizeKeyString canonicalizes a configured chord into the string
// the terminal reports, so the binding actually matches key events.
func normalizeKeyString(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", fmt.Errorf("invalid key %q (empty)", raw)
	}

	parts := strings.Split(value, "+")
	baseRaw := strings.TrimSpace(parts[len(parts)-1])
	if baseRaw == "" {
		return "", fmt.Errorf("invalid key %q (missing base key)", raw)
	}
	mods, err := parseKeyMods(parts[:len(parts)-1], raw)
	if err != nil {
		return "", err
	}
	base, err := normalizeKeyBase(baseRaw, raw)
	if err != nil {
		return "", err
	}
	return joinKeyMods(base, mods), nil
}

type keyMods struct {
	ctrl  bool
	alt   bool
	shift bool
}

func parseKeyMods(parts []string, raw string) (keyMods, error) {
	var mods keyMods
	for _, modRaw := range parts {
		mod := strings.ToLower(strings.TrimSpace(modRaw))
		if mod == "" {
			continue
		}
		switch mod {
		case "ctrl", "control":
			mods.ctrl = true
		case "alt", "option":
			mods.alt = true
		case "shift":
			mods.shift = true
		default:
			return keyMods{}, invalidKeyError(raw)
		}
	}
	return mods, nil
}

// normalizeKeyBase keeps single runes verbatim: the terminal reports an
// uppercase letter as the letter itself, not as shift+letter.
func normalizeKeyBase(baseRaw, raw string) (string, error) {
	baseLower := strings.ToLower(strings.TrimSpace(baseRaw))
	if baseRaw == " " || baseLower == "space" {
		return "space", nil
	}
	if isSingleRune(baseRaw) {
		return baseRaw, nil
	}
	if isSupportedKeyName(baseLower) {
		return baseLower, nil
	}
	return "", invalidKeyError(raw)
}

func joinKeyMods(base string, mods keyMods) string {
	out := make([]string, 0, 4)
	if mods.ctrl {
		out = append(out, "ctrl")
	}
	if mods.alt {
		out = append(out, "alt")
	}
	if mods.shift {
		out = append(out, "shift")
	}
	out = append(out, base)
	return strings.Join(out, "+")
}

func isSingleRune(value string) bool {
	if value == "" {
		return false
	}
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError {
		return false
	}
	return size == len(value)
}

func invalidKeyError(raw string) error {
	return fmt.Errorf(
		"invalid key %q (use a single character like \"k\", combos like \"ctrl+x\", or named keys like \"tab\", \"enter\", \"esc\", \"up\", \"space\")",
		raw,
	)
}

func formatKeyLabel(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	labels := make([]string, 0, len(keys))
	for _, k := range keys {
		labels = append(labels, prettyKeyLabel(k))
	}
	return strings.Join(labels, "/")
}

func prettyKeyLabel(chord string) string {
	parts := strings.Split(chord, "+")
	base := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
	switch base {
	case "up":
		parts[len(parts)-1] = "↑"
	case "down":
		parts[len(parts)-1] = "↓"
	case "left":
		parts[len(parts)-1] = "←"
	case "right":
		parts[len(parts)-1] = "→"
	default:
		return chord
	}
	return strings.Join(parts, "+")
}

func isSupportedKeyName(name string) bool {
	_, ok := supportedSpecialKeys[name]
	return ok
}

var supportedSpecialKeys = func() map[string]struct{} {
	keys := map[string]struct{}{
		"tab":       {},
		"enter":     {},
		"esc":       {},
		"space":     {},
		"backspace": {},
		"delete":    {},
		"insert":    {},
		"home":      {},
		"end":       {},
		"pgup":      {},
		"pgdown":    {},
		"up":        {},
		"down":      {},
		"left":      {},
		"right":     {},
	}
	for i := 1; i <= 12; i++ {
		keys[fmt.Sprintf("f%d", i)] = struct{}{}
	}
	return keys
}()

func keyLabel(binding key.Binding) string {
	if help := binding.Help().Key; help != "" {
		return help
	}
	return formatKeyLabel(binding.Keys())
}
