package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Editor   EditorConfig   `mapstructure:"editor"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// EditorConfig mirrors the editor input options a user may persist.
type EditorConfig struct {
	MaxLength          int    `mapstructure:"max_length"`
	ReadOnly           bool   `mapstructure:"read_only"`
	DefaultInput       bool   `mapstructure:"default_input"`
	DefaultControlsBar bool   `mapstructure:"default_controls_bar"`
	Placeholder        string `mapstructure:"placeholder"`
	Width              int    `mapstructure:"width"`
	NoColor            bool   `mapstructure:"no_color"`
}

// LogConfig controls the append-only log file.
type LogConfig struct {
	File      string `mapstructure:"file"`
	Verbosity int    `mapstructure:"verbosity"`
}

func home() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}

// Path is the config file location. DRAFTINPUT_CONFIG overrides it.
func Path() string {
	if p := os.Getenv("DRAFTINPUT_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(home(), ".config", "draftinput", "config.toml")
}

// Defaults returns the configuration used when no file or env overrides exist.
func Defaults() Config {
	return Config{
		Database: DatabaseConfig{Path: filepath.Join(home(), ".local", "share", "draftinput", "documents.db")},
		Editor: EditorConfig{
			MaxLength:   1000,
			Placeholder: "Click to enter text",
			Width:       60,
		},
		Log: LogConfig{File: filepath.Join(".draftinput", "logs", "draftinput.log")},
	}
}

// Load reads configuration from file and env. Env var overrides use prefix
// DRAFTINPUT_, e.g. DRAFTINPUT_EDITOR_MAX_LENGTH.
func Load() (Config, error) {
	v := viper.New()
	d := Defaults()

	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("editor.max_length", d.Editor.MaxLength)
	v.SetDefault("editor.read_only", d.Editor.ReadOnly)
	v.SetDefault("editor.default_input", d.Editor.DefaultInput)
	v.SetDefault("editor.default_controls_bar", d.Editor.DefaultControlsBar)
	v.SetDefault("editor.placeholder", d.Editor.Placeholder)
	v.SetDefault("editor.width", d.Editor.Width)
	v.SetDefault("editor.no_color", d.Editor.NoColor)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.verbosity", d.Log.Verbosity)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("DRAFTINPUT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing file is fine; defaults and env still apply
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes cfg to Path, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("editor.max_length", cfg.Editor.MaxLength)
	v.Set("editor.read_only", cfg.Editor.ReadOnly)
	v.Set("editor.default_input", cfg.Editor.DefaultInput)
	v.Set("editor.default_controls_bar", cfg.Editor.DefaultControlsBar)
	v.Set("editor.placeholder", cfg.Editor.Placeholder)
	v.Set("editor.width", cfg.Editor.Width)
	v.Set("editor.no_color", cfg.Editor.NoColor)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.verbosity", cfg.Log.Verbosity)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
