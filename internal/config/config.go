package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	apperrors "arbor/internal/errors"
)

// Bookmark is a named shortcut rendered as an action entry at the top of the
// tree. Activating it re-roots the tree at Path.
type Bookmark struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Theme holds the UI color palette.
type Theme struct {
	Primary  string `yaml:"primary"`
	Folder   string `yaml:"folder"`
	File     string `yaml:"file"`
	Accent   string `yaml:"accent"`
	Muted    string `yaml:"muted"`
	Selected string `yaml:"selected"`
}

// Config is the application configuration.
type Config struct {
	Directories struct {
		Start string `yaml:"start"` // initial root; empty means current directory
	} `yaml:"directories"`
	Settings struct {
		ShowHidden bool     `yaml:"show_hidden"` // include dotfiles in listings
		Ignore     []string `yaml:"ignore"`      // glob patterns filtered out of listings
	} `yaml:"settings"`
	Bookmarks []Bookmark `yaml:"bookmarks"`
	Preview   struct {
		MaxBytes int64 `yaml:"max_bytes"` // how much of a file the preview reads
	} `yaml:"preview"`
	Theme Theme `yaml:"theme"`
	Log struct {
		File string `yaml:"file"` // empty means <config dir>/arbor.log
	} `yaml:"log"`
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Settings.Ignore = []string{".git", "node_modules"}
	cfg.Preview.MaxBytes = 64 * 1024
	cfg.Theme.Primary = "#7B61FF"
	cfg.Theme.Folder = "#81A1C1"
	cfg.Theme.File = "#D8DEE9"
	cfg.Theme.Accent = "#73F59F"
	cfg.Theme.Muted = "#666666"
	cfg.Theme.Selected = "#FFFFFF"
	return cfg
}

// DefaultPath returns the default config file location
// (~/.config/arbor/config.yaml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "arbor", "config.yaml"), nil
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path. A missing file
// yields the defaults; a malformed or invalid one is an error.
func LoadFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, apperrors.Wrap(err, "error reading config file")
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, apperrors.Wrap(err, "error parsing config file")
	}

	// Merge over defaults so unset fields keep sensible values.
	if loaded.Directories.Start != "" {
		cfg.Directories.Start = loaded.Directories.Start
	}
	cfg.Settings.ShowHidden = loaded.Settings.ShowHidden
	if loaded.Settings.Ignore != nil {
		cfg.Settings.Ignore = loaded.Settings.Ignore
	}
	if len(loaded.Bookmarks) > 0 {
		cfg.Bookmarks = loaded.Bookmarks
	}
	if loaded.Preview.MaxBytes > 0 {
		cfg.Preview.MaxBytes = loaded.Preview.MaxBytes
	}
	mergeTheme(&cfg.Theme, &loaded.Theme)
	if loaded.Log.File != "" {
		cfg.Log.File = loaded.Log.File
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogFile returns the configured log path, falling back to a file next to the
// config.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	if path, err := DefaultPath(); err == nil {
		return filepath.Join(filepath.Dir(path), "arbor.log")
	}
	return "arbor.log"
}

func mergeTheme(dst, src *Theme) {
	if src.Primary != "" {
		dst.Primary = src.Primary
	}
	if src.Folder != "" {
		dst.Folder = src.Folder
	}
	if src.File != "" {
		dst.File = src.File
	}
	if src.Accent != "" {
		dst.Accent = src.Accent
	}
	if src.Muted != "" {
		dst.Muted = src.Muted
	}
	if src.Selected != "" {
		dst.Selected = src.Selected
	}
}

func validate(cfg *Config) error {
	for _, b := range cfg.Bookmarks {
		if b.Name == "" || b.Path == "" {
			return apperrors.NewConfigError("bookmark requires both name and path", "bookmarks", apperrors.InvalidConfig, nil)
		}
	}
	if cfg.Preview.MaxBytes < 0 {
		return apperrors.NewConfigError("preview.max_bytes must not be negative", "preview.max_bytes", apperrors.InvalidConfig, nil)
	}
	return nil
}
