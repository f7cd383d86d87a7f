package dashboard

import (
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"

	"github.com/AdamGardelov/paneboard/internal/layout"
)

func TestBuildKeyMapDefaults(t *testing.T) {
	km, err := buildKeyMap(layout.KeymapConfig{})
	if err != nil {
		t.Fatalf("buildKeyMap() error: %v", err)
	}
	if !reflect.DeepEqual(km.Up.Keys(), []string{"up", "k"}) {
		t.Fatalf("Up keys = %#v", km.Up.Keys())
	}
	if !reflect.DeepEqual(km.Down.Keys(), []string{"down", "j"}) {
		t.Fatalf("Down keys = %#v", km.Down.Keys())
	}
	if !reflect.DeepEqual(km.Rename.Keys(), []string{"R"}) {
		t.Fatalf("Rename keys = %#v", km.Rename.Keys())
	}
	if !reflect.DeepEqual(km.Quit.Keys(), []string{"q", "ctrl+c"}) {
		t.Fatalf("Quit keys = %#v", km.Quit.Keys())
	}
	if km.Up.Help().Key != "↑/k" {
		t.Fatalf("Up help label = %q", km.Up.Help().Key)
	}
}

func TestBuildKeyMapOverride(t *testing.T) {
	km, err := buildKeyMap(layout.KeymapConfig{Kill: []string{"ctrl+k"}})
	if err != nil {
		t.Fatalf("buildKeyMap() error: %v", err)
	}
	if !reflect.DeepEqual(km.Kill.Keys(), []string{"ctrl+k"}) {
		t.Fatalf("Kill keys = %#v", km.Kill.Keys())
	}
	// Untouched actions keep their defaults.
	if !reflect.DeepEqual(km.Yank.Keys(), []string{"y"}) {
		t.Fatalf("Yank keys = %#v", km.Yank.Keys())
	}
}

func TestBuildKeyMapConflict(t *testing.T) {
	_, err := buildKeyMap(layout.KeymapConfig{Rename: []string{"x"}})
	if err == nil {
		t.Fatalf("buildKeyMap() expected conflict error")
	}
	if !strings.Contains(err.Error(), `already bound to keymap.kill`) {
		t.Fatalf("conflict error = %v", err)
	}
}

func TestBuildKeyMapInvalidKey(t *testing.T) {
	_, err := buildKeyMap(layout.KeymapConfig{Filter: []string{"hyper+x"}})
	if err == nil {
		t.Fatalf("buildKeyMap() expected error")
	}
	if !strings.Contains(err.Error(), "keymap.filter") {
		t.Fatalf("error = %v", err)
	}
}

func TestNormalizeKeyString(t *testing.T) {
	cases := map[string]string{
		"k":             "k",
		"R":             "R",
		"?":             "?",
		" q ":           "q",
		"ctrl+x":        "ctrl+x",
		"Control+P":     "ctrl+P",
		"shift+ctrl+a":  "ctrl+shift+a",
		"option+q":      "alt+q",
		"space":         "space",
		"ctrl+Space":    "ctrl+space",
		"Enter":         "enter",
		"PgUp":          "pgup",
		"F5":            "f5",
		"ctrl+alt+left": "ctrl+alt+left",
	}
	for raw, want := range cases {
		got, err := normalizeKeyString(raw)
		if err != nil {
			t.Fatalf("normalizeKeyString(%q) error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("normalizeKeyString(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestNormalizeKeyStringInvalid(t *testing.T) {
	for _, raw := range []string{"", "  ", "ctrl+", "hyper+x", "bogus", "f13"} {
		if _, err := normalizeKeyString(raw); err == nil {
			t.Fatalf("normalizeKeyString(%q) expected error", raw)
		}
	}
}

func TestResolveKeyListDedupe(t *testing.T) {
	keys, err := resolveKeyList("kill", []string{"x", " x ", "ctrl+x"}, nil)
	if err != nil {
		t.Fatalf("resolveKeyList() error: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"x", "ctrl+x"}) {
		t.Fatalf("resolveKeyList() = %#v", keys)
	}
}

func TestResolveKeyListEmpty(t *testing.T) {
	if _, err := resolveKeyList("kill", nil, nil); err == nil {
		t.Fatalf("resolveKeyList() expected error")
	}
}

func TestPrettyKeyLabel(t *testing.T) {
	cases := map[string]string{
		"up":        "↑",
		"down":      "↓",
		"left":      "←",
		"right":     "→",
		"ctrl+down": "ctrl+↓",
		"k":         "k",
		"pgup":      "pgup",
	}
	for chord, want := range cases {
		if got := prettyKeyLabel(chord); got != want {
			t.Fatalf("prettyKeyLabel(%q) = %q, want %q", chord, got, want)
		}
	}
}

func TestKeyLabel(t *testing.T) {
	withHelp := key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	if got := keyLabel(withHelp); got != "↑/k" {
		t.Fatalf("keyLabel(withHelp) = %q", got)
	}
	bare := key.NewBinding(key.WithKeys("enter"))
	if got := keyLabel(bare); got != "enter" {
		t.Fatalf("keyLabel(bare) = %q", got)
	}
}
