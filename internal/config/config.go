package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todo.db"
	DefaultLogName        = "todo.log"
	DefaultBreakpoint     = 80
	DefaultDialogMS       = 500

	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "TODO_CONFIG"
)

type Keymap struct {
	Quit          string `toml:"quit"`
	Up            string `toml:"up"`
	Down          string `toml:"down"`
	Left          string `toml:"left"`
	Right         string `toml:"right"`
	Activate      string `toml:"activate"`
	Toggle        string `toml:"toggle"`
	New           string `toml:"new"`
	QuickAdd      string `toml:"quick_add"`
	View          string `toml:"view"`
	Edit          string `toml:"edit"`
	Delete        string `toml:"delete"`
	FilterAll     string `toml:"filter_all"`
	FilterPending string `toml:"filter_pending"`
	FilterDone    string `toml:"filter_done"`
	Save          string `toml:"save"`
	Cancel        string `toml:"cancel"`
}

type Config struct {
	DBPath           string `toml:"db_path"`
	DefaultFilter    string `toml:"default_filter"`
	Breakpoint       int    `toml:"breakpoint"`
	DialogDurationMS int    `toml:"dialog_duration_ms"`
	LogPath          string `toml:"log_path"`
	LogLevel         string `toml:"log_level"`
	Keys             Keymap `toml:"keys"`
}

// DialogDuration is the length of the dialog entry animation.
func (c Config) DialogDuration() time.Duration {
	return time.Duration(c.DialogDurationMS) * time.Millisecond
}

// ResolveConfigPath picks $TODO_CONFIG, then the user config directory,
// then the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "todo", DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first
// when the file does not exist. Relative paths inside the file are taken
// relative to the config's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg.resolve(filepath.Dir(path)), nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.DefaultFilter == "" {
		c.DefaultFilter = def.DefaultFilter
	}
	if c.Breakpoint <= 0 {
		c.Breakpoint = def.Breakpoint
	}
	if c.DialogDurationMS <= 0 {
		c.DialogDurationMS = def.DialogDurationMS
	}
	if c.LogPath == "" {
		c.LogPath = def.LogPath
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	k := &c.Keys
	fill(&k.Quit, def.Keys.Quit)
	fill(&k.Up, def.Keys.Up)
	fill(&k.Down, def.Keys.Down)
	fill(&k.Left, def.Keys.Left)
	fill(&k.Right, def.Keys.Right)
	fill(&k.Activate, def.Keys.Activate)
	fill(&k.Toggle, def.Keys.Toggle)
	fill(&k.New, def.Keys.New)
	fill(&k.QuickAdd, def.Keys.QuickAdd)
	fill(&k.View, def.Keys.View)
	fill(&k.Edit, def.Keys.Edit)
	fill(&k.Delete, def.Keys.Delete)
	fill(&k.FilterAll, def.Keys.FilterAll)
	fill(&k.FilterPending, def.Keys.FilterPending)
	fill(&k.FilterDone, def.Keys.FilterDone)
	fill(&k.Save, def.Keys.Save)
	fill(&k.Cancel, def.Keys.Cancel)
}

func (c Config) resolve(base string) Config {
	if c.DBPath != "" && !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(base, c.DBPath)
	}
	if c.LogPath != "" && c.LogPath != "-" && !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(base, c.LogPath)
	}
	return c
}

func Default() Config {
	return Config{
		DBPath:           DefaultDBName,
		DefaultFilter:    "all",
		Breakpoint:       DefaultBreakpoint,
		DialogDurationMS: DefaultDialogMS,
		LogPath:          DefaultLogName,
		LogLevel:         "info",
		Keys: Keymap{
			Quit:          "q",
			Up:            "k",
			Down:          "j",
			Left:          "h",
			Right:         "l",
			Activate:      "enter",
			Toggle:        " ",
			New:           "n",
			QuickAdd:      "a",
			View:          "v",
			Edit:          "e",
			Delete:        "d",
			FilterAll:     "1",
			FilterPending: "2",
			FilterDone:    "3",
			Save:          "ctrl+s",
			Cancel:        "esc",
		},
	}
}
