package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"
)

// LayoutDef defines a named pane arrangement.
type LayoutDef struct {
	Name        string            `yaml:"name,omitempty"`
	Description string            `yaml:"description,omitempty"`
	Grid        string            `yaml:"grid,omitempty"`     // e.g. "2x3"
	Command     string            `yaml:"command,omitempty"`  // run in every pane
	Commands    []string          `yaml:"commands,omitempty"` // per-pane commands (row-major)
	Titles      []string          `yaml:"titles,omitempty"`   // per-pane titles (row-major)
	Vars        map[string]string `yaml:"vars,omitempty"`
}

// DashboardSettings tunes the dashboard from project config.
type DashboardSettings struct {
	RefreshMS      int      `yaml:"refresh_ms,omitempty"`
	PreviewLines   int      `yaml:"preview_lines,omitempty"`
	ThumbnailLines int      `yaml:"thumbnail_lines,omitempty"`
	IdleSeconds    int      `yaml:"idle_seconds,omitempty"`
	ShowThumbnails *bool    `yaml:"show_thumbnails,omitempty"`
	PreviewMode    string   `yaml:"preview_mode,omitempty"` // grid | layout
	ProjectRoots   []string `yaml:"project_roots,omitempty"`
}

// StatusRegexConfig overrides the patterns behind pane status badges.
type StatusRegexConfig struct {
	Success string `yaml:"success,omitempty"`
	Error   string `yaml:"error,omitempty"`
	Running string `yaml:"running,omitempty"`
}

// KeymapConfig overrides dashboard key bindings; each entry is a list
// of key chords for one action.
type KeymapConfig struct {
	Up          []string `yaml:"up,omitempty"`
	Down        []string `yaml:"down,omitempty"`
	Attach      []string `yaml:"attach,omitempty"`
	NewSession  []string `yaml:"new_session,omitempty"`
	Kill        []string `yaml:"kill,omitempty"`
	Rename      []string `yaml:"rename,omitempty"`
	Yank        []string `yaml:"yank,omitempty"`
	Refresh     []string `yaml:"refresh,omitempty"`
	Filter      []string `yaml:"filter,omitempty"`
	PreviewUp   []string `yaml:"preview_up,omitempty"`
	PreviewDown []string `yaml:"preview_down,omitempty"`
	Help        []string `yaml:"help,omitempty"`
	Quit        []string `yaml:"quit,omitempty"`
}

// Config is the schema of a layout config file. The same shape serves
// the global file in the config dir and the per-project file in the
// repo root; the project file may additionally pin a session name.
type Config struct {
	Session     string                `yaml:"session,omitempty"`
	Vars        map[string]string     `yaml:"vars,omitempty"`
	Layouts     map[string]*LayoutDef `yaml:"layouts,omitempty"`
	Dashboard   DashboardSettings     `yaml:"dashboard,omitempty"`
	Keymap      KeymapConfig          `yaml:"keymap,omitempty"`
	StatusRegex StatusRegexConfig     `yaml:"status_regex,omitempty"`
}

// ParseConfig parses and validates a config document.
func ParseConfig(data []byte) (*Config, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse layout config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigFile reads, parses and validates a config file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout config %q: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	for name, def := range c.Layouts {
		if def == nil {
			continue
		}
		if strings.TrimSpace(def.Name) == "" {
			def.Name = name
		}
	}
}

// Validate checks everything the schema cannot express: grid bounds,
// command quoting and regex syntax.
func (c *Config) Validate() error {
	for name, def := range c.Layouts {
		if def == nil {
			return fmt.Errorf("layout %q: empty definition", name)
		}
		if _, err := ParseGrid(def.Grid); err != nil {
			return fmt.Errorf("layout %q: %w", name, err)
		}
		if err := validateCommand(def.Command); err != nil {
			return fmt.Errorf("layout %q command: %w", name, err)
		}
		for i, cmd := range def.Commands {
			if err := validateCommand(cmd); err != nil {
				return fmt.Errorf("layout %q commands[%d]: %w", name, i, err)
			}
		}
	}
	if err := validateRegex("status_regex.success", c.StatusRegex.Success); err != nil {
		return err
	}
	if err := validateRegex("status_regex.error", c.StatusRegex.Error); err != nil {
		return err
	}
	if err := validateRegex("status_regex.running", c.StatusRegex.Running); err != nil {
		return err
	}
	switch strings.TrimSpace(c.Dashboard.PreviewMode) {
	case "", "grid", "layout":
	default:
		return fmt.Errorf("dashboard.preview_mode: invalid %q", c.Dashboard.PreviewMode)
	}
	return nil
}

// validateCommand rejects commands with unbalanced quoting so broken
// configs fail at load time instead of inside a fresh pane.
func validateCommand(cmd string) error {
	if strings.TrimSpace(cmd) == "" {
		return nil
	}
	if _, err := shellquote.Split(cmd); err != nil {
		return fmt.Errorf("parse %q: %w", cmd, err)
	}
	return nil
}

func validateRegex(field, pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return nil
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}

// GridOf resolves the layout's grid.
func (d *LayoutDef) GridOf() (Grid, error) {
	if d == nil {
		return DefaultGrid, nil
	}
	return ParseGrid(d.Grid)
}

// PaneCommands expands per-pane commands for count panes. Explicit
// entries win; the shared command fills the remainder.
func (d *LayoutDef) PaneCommands(count int) []string {
	commands := make([]string, 0, count)
	if d == nil || count <= 0 {
		return commands
	}
	fallback := strings.TrimSpace(d.Command)
	for i := 0; i < count; i++ {
		if i < len(d.Commands) && strings.TrimSpace(d.Commands[i]) != "" {
			commands = append(commands, d.Commands[i])
			continue
		}
		commands = append(commands, fallback)
	}
	return commands
}

// PaneTitles expands per-pane titles for count panes.
func (d *LayoutDef) PaneTitles(count int) []string {
	titles := make([]string, 0, count)
	if d == nil || count <= 0 {
		return titles
	}
	for i := 0; i < count; i++ {
		if i < len(d.Titles) {
			titles = append(titles, d.Titles[i])
		} else {
			titles = append(titles, "")
		}
	}
	return titles
}

var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// ExpandVars replaces ${VAR} and ${VAR:-default} plus the PROJECT_PATH
// and PROJECT_NAME specials. Lookup order: provided vars, environment,
// default. $HOME and a leading ~ expand as well.
func ExpandVars(s string, vars map[string]string, projectPath, projectName string) string {
	allVars := make(map[string]string, len(vars)+2)
	for k, v := range vars {
		allVars[k] = v
	}
	allVars["PROJECT_PATH"] = projectPath
	allVars["PROJECT_NAME"] = projectName

	result := varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		name := parts[1]
		defaultVal := ""
		if len(parts) > 2 {
			defaultVal = parts[2]
		}
		if val, ok := allVars[name]; ok && val != "" {
			return val
		}
		if val := os.Getenv(name); val != "" {
			return val
		}
		return defaultVal
	})

	if home, err := os.UserHomeDir(); err == nil {
		result = strings.ReplaceAll(result, "$HOME", home)
		if strings.HasPrefix(result, "~/") {
			result = filepath.Join(home, result[2:])
		} else if result == "~" {
			result = home
		}
	}
	return result
}

// ExpandLayoutVars returns a copy of the layout with all commands and
// titles expanded. Extra vars take precedence over the layout's own.
func ExpandLayoutVars(def *LayoutDef, extraVars map[string]string, projectPath, projectName string) *LayoutDef {
	if def == nil {
		return nil
	}
	vars := make(map[string]string, len(def.Vars)+len(extraVars))
	for k, v := range def.Vars {
		vars[k] = v
	}
	for k, v := range extraVars {
		vars[k] = v
	}

	expanded := &LayoutDef{
		Name:        def.Name,
		Description: def.Description,
		Grid:        def.Grid,
		Command:     ExpandVars(def.Command, vars, projectPath, projectName),
		Vars:        vars,
	}
	for _, cmd := range def.Commands {
		expanded.Commands = append(expanded.Commands, ExpandVars(cmd, vars, projectPath, projectName))
	}
	for _, title := range def.Titles {
		expanded.Titles = append(expanded.Titles, ExpandVars(title, vars, projectPath, projectName))
	}
	return expanded
}
