package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AdamGardelov/paneboard/internal/appdirs"
	"github.com/AdamGardelov/paneboard/internal/identity"
)

// LayoutInfo describes an available layout for listings.
type LayoutInfo struct {
	Name        string
	Description string
	Source      string // "builtin", "global", "project"
	Path        string // empty for builtin
}

// Loader resolves layout configs from the project dir, the global
// config dir and the embedded builtins, in that precedence order.
// Parsed files are cached and reloaded when their modtime or size
// changes.
type Loader struct {
	explicitPath string
	projectDir   string
	globalPath   string

	builtins map[string]*LayoutDef

	cache map[string]cachedConfig
}

type cachedConfig struct {
	modTime time.Time
	size    int64
	cfg     *Config
}

// NewLoader creates a loader rooted at projectDir. explicitPath, when
// non-empty, pins the config file and skips the search order.
func NewLoader(projectDir, explicitPath string) (*Loader, error) {
	l := &Loader{
		explicitPath: strings.TrimSpace(explicitPath),
		projectDir:   strings.TrimSpace(projectDir),
		builtins:     make(map[string]*LayoutDef),
		cache:        make(map[string]cachedConfig),
	}
	if dir, err := appdirs.ConfigDir(); err == nil {
		l.globalPath = filepath.Join(dir, identity.ProjectConfigFile)
	}
	if err := l.loadBuiltins(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Loader) loadBuiltins() error {
	entries, err := embeddedFS.ReadDir("defaults")
	if err != nil {
		return fmt.Errorf("read embedded layouts: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := embeddedFS.ReadFile("defaults/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read embedded %s: %w", entry.Name(), err)
		}
		var def LayoutDef
		if err := yaml.Unmarshal(data, &def); err != nil {
			return fmt.Errorf("parse embedded %s: %w", entry.Name(), err)
		}
		name := def.Name
		if name == "" {
			name = strings.TrimSuffix(entry.Name(), ".yaml")
			def.Name = name
		}
		l.builtins[name] = &def
	}
	return nil
}

// ConfigPath returns the path the loader resolves, following the
// search order: explicit path, project file, hidden project file,
// global config dir. Empty when nothing exists and no explicit path
// was given.
func (l *Loader) ConfigPath() string {
	if l.explicitPath != "" {
		return l.explicitPath
	}
	if l.projectDir != "" {
		plain := filepath.Join(l.projectDir, identity.ProjectConfigFile)
		if fileExists(plain) {
			return plain
		}
		hidden := filepath.Join(l.projectDir, identity.HiddenProjectConfigFile)
		if fileExists(hidden) {
			return hidden
		}
	}
	if l.globalPath != "" && fileExists(l.globalPath) {
		return l.globalPath
	}
	return ""
}

// GlobalPath returns the global layout config path whether or not the
// file exists. Used by the config watcher.
func (l *Loader) GlobalPath() string {
	return l.globalPath
}

// ProjectPath returns the project config path whether or not the file
// exists.
func (l *Loader) ProjectPath() string {
	if l.projectDir == "" {
		return ""
	}
	return filepath.Join(l.projectDir, identity.ProjectConfigFile)
}

// Load returns the resolved config, or an empty config when no file
// exists. An explicit path that cannot be read is an error; a missing
// file in the search order is not.
func (l *Loader) Load() (*Config, error) {
	path := l.ConfigPath()
	if path == "" {
		if l.explicitPath != "" {
			return nil, fmt.Errorf("layout config %q not found", l.explicitPath)
		}
		return &Config{}, nil
	}
	return l.loadCached(path)
}

func (l *Loader) loadCached(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat layout config %q: %w", path, err)
	}
	if entry, ok := l.cache[path]; ok && entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
		return entry.cfg, nil
	}
	cfg, err := LoadConfigFile(path)
	if err != nil {
		return nil, err
	}
	l.cache[path] = cachedConfig{modTime: info.ModTime(), size: info.Size(), cfg: cfg}
	return cfg, nil
}

// GetLayout resolves a layout by name: resolved config first, then
// builtins. An empty name falls back to the first layout of the
// resolved config, then to the "default" builtin.
func (l *Loader) GetLayout(name string) (*LayoutDef, string, error) {
	cfg, err := l.Load()
	if err != nil {
		return nil, "", err
	}
	source := "global"
	if path := l.ConfigPath(); path != "" && l.projectDir != "" && strings.HasPrefix(path, l.projectDir) {
		source = "project"
	}
	name = strings.TrimSpace(name)
	if name == "" {
		if def, ok := cfg.Layouts["default"]; ok {
			return def, source, nil
		}
		if def := singleLayout(cfg); def != nil {
			return def, source, nil
		}
		if def, ok := l.builtins["default"]; ok {
			return def, "builtin", nil
		}
		return nil, "", fmt.Errorf("no layouts defined")
	}
	if def, ok := cfg.Layouts[name]; ok {
		return def, source, nil
	}
	if def, ok := l.builtins[name]; ok {
		return def, "builtin", nil
	}
	return nil, "", fmt.Errorf("layout %q not found", name)
}

// singleLayout returns the config's only layout, if exactly one is
// defined.
func singleLayout(cfg *Config) *LayoutDef {
	if cfg == nil || len(cfg.Layouts) != 1 {
		return nil
	}
	for _, def := range cfg.Layouts {
		return def
	}
	return nil
}

// ListLayouts returns all available layouts, configured ones first.
func (l *Loader) ListLayouts() ([]LayoutInfo, error) {
	cfg, err := l.Load()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var layouts []LayoutInfo

	path := l.ConfigPath()
	source := "global"
	if path != "" && l.projectDir != "" && strings.HasPrefix(path, l.projectDir) {
		source = "project"
	}
	for name, def := range cfg.Layouts {
		layouts = append(layouts, LayoutInfo{
			Name:        name,
			Description: def.Description,
			Source:      source,
			Path:        path,
		})
		seen[name] = true
	}
	for name, def := range l.builtins {
		if seen[name] {
			continue
		}
		layouts = append(layouts, LayoutInfo{
			Name:        name,
			Description: def.Description,
			Source:      "builtin",
		})
	}
	sort.Slice(layouts, func(i, j int) bool {
		return layouts[i].Name < layouts[j].Name
	})
	return layouts, nil
}

// BuiltinLayout returns an embedded layout by name.
func BuiltinLayout(name string) (*LayoutDef, error) {
	data, err := embeddedFS.ReadFile("defaults/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("builtin layout %q not found", name)
	}
	var def LayoutDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse builtin %s: %w", name, err)
	}
	if def.Name == "" {
		def.Name = name
	}
	return &def, nil
}

// BuiltinLayoutNames returns the names of all embedded layouts.
func BuiltinLayoutNames() ([]string, error) {
	entries, err := embeddedFS.ReadDir("defaults")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
