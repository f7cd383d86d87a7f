package boardconfig

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/AdamGardelov/paneboard/internal/appdirs"
	"github.com/AdamGardelov/paneboard/internal/identity"
	"github.com/AdamGardelov/paneboard/internal/logging"
)

const (
	defaultLayoutName   = "default"
	defaultPollInterval = 2 * time.Second
	minPollInterval     = 500 * time.Millisecond
	defaultMaxDepth     = 4
	defaultMaxItems     = 500
)

// Config represents the global config file (config.toml under the app
// config dir). Project layouts live in their own YAML files; this file
// carries machine-level settings only.
type Config struct {
	Tmux      TmuxConfig      `toml:"tmux"`
	Dashboard DashboardConfig `toml:"dashboard"`
	Files     FilesConfig     `toml:"files"`
	Logging   logging.Config  `toml:"logging"`
	Update    UpdateConfig    `toml:"update"`
}

// TmuxConfig overrides how the tmux client is invoked.
type TmuxConfig struct {
	Binary string `toml:"binary"`
}

// DashboardConfig tunes the dashboard loop.
type DashboardConfig struct {
	DefaultLayout string `toml:"default_layout"`
	PollInterval  string `toml:"poll_interval"`
	PreviewLines  int    `toml:"preview_lines"`
}

// FilesConfig bounds the project scan behind session-create suggestions.
type FilesConfig struct {
	ShowHidden *bool `toml:"show_hidden"`
	MaxDepth   int   `toml:"max_depth"`
	MaxItems   int   `toml:"max_items"`
}

// UpdateConfig controls the dev-build notice in the footer.
type UpdateConfig struct {
	Notice *bool `toml:"notice"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Dashboard: DashboardConfig{
			DefaultLayout: defaultLayoutName,
		},
		Files: FilesConfig{
			ShowHidden: nil,
			MaxDepth:   defaultMaxDepth,
			MaxItems:   defaultMaxItems,
		},
	}
}

// DefaultPath returns the global config path.
func DefaultPath() (string, error) {
	dir, err := appdirs.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, identity.GlobalConfigFile), nil
}

// PollIntervalDuration parses the configured poll interval, clamping to
// a sane floor so a typo cannot spin the poll loop.
func (c Config) PollIntervalDuration() time.Duration {
	raw := strings.TrimSpace(c.Dashboard.PollInterval)
	if raw == "" {
		return defaultPollInterval
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return defaultPollInterval
	}
	if d < minPollInterval {
		return minPollInterval
	}
	return d
}

// ShowNotice reports whether the footer build notice is enabled.
func (c Config) ShowNotice() bool {
	if c.Update.Notice == nil {
		return true
	}
	return *c.Update.Notice
}

// Loader caches config values and reloads when the file changes.
type Loader struct {
	path     string
	lastRead fileState
	cached   Config
}

type fileState struct {
	modTime time.Time
	size    int64
}

// NewLoader creates a config loader for the provided path.
func NewLoader(path string) *Loader {
	return &Loader{
		path:   strings.TrimSpace(path),
		cached: Defaults(),
	}
}

// Load returns the cached config, reloading if the file changed.
func (l *Loader) Load() (Config, error) {
	if l == nil {
		return Defaults(), errors.New("nil loader")
	}
	path := strings.TrimSpace(l.path)
	if path == "" {
		return Defaults(), errors.New("empty config path")
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.cached = Defaults()
			l.lastRead = fileState{}
			return l.cached, nil
		}
		return Defaults(), err
	}
	state := fileState{modTime: info.ModTime(), size: info.Size()}
	if state == l.lastRead {
		return l.cached, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults(), err
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), err
	}
	applyDefaults(&cfg)
	l.cached = cfg
	l.lastRead = state
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if strings.TrimSpace(cfg.Dashboard.DefaultLayout) == "" {
		cfg.Dashboard.DefaultLayout = defaultLayoutName
	}
	if cfg.Dashboard.PreviewLines < 0 {
		cfg.Dashboard.PreviewLines = 0
	}
	if cfg.Files.MaxDepth <= 0 {
		cfg.Files.MaxDepth = defaultMaxDepth
	}
	if cfg.Files.MaxItems <= 0 {
		cfg.Files.MaxItems = defaultMaxItems
	}
}
