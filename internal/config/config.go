// Package config loads the devlog configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// EnvNotesDir overrides the notes directory of the file.
const EnvNotesDir = "DEVLOG_DIR"

const (
	defaultConfigPath = "~/.config/devlog/config.toml"
	defaultNotesDir   = "~/.devlog/logs"
	defaultLogLevel   = "info"
	defaultPattern    = "*.md"
)

// Config holds the user settings.
type Config struct {
	NotesDir string
	LogLevel string
	// ViewportHeight fixes the pager page size; 0 derives it from the terminal.
	ViewportHeight int
	Pattern        string
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		NotesDir: mustExpand(defaultNotesDir),
		LogLevel: defaultLogLevel,
		Pattern:  defaultPattern,
	}
}

// Load reads the config at path (the default location when empty), falling
// back to defaults for a missing file or missing keys. DEVLOG_DIR, when set,
// replaces the notes directory.
func Load(path string) (Config, error) {
	cfg, err := load(path)
	if err != nil {
		return Config{}, err
	}
	if dir := strings.TrimSpace(os.Getenv(EnvNotesDir)); dir != "" {
		cfg.NotesDir = mustExpand(dir)
	}
	return cfg, nil
}

func load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		NotesDir       string `toml:"notes_dir"`
		LogLevel       string `toml:"log_level"`
		ViewportHeight int    `toml:"viewport_height"`
		Pattern        string `toml:"pattern"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if dir := strings.TrimSpace(raw.NotesDir); dir != "" {
		cfg.NotesDir = mustExpand(dir)
	}
	if level := strings.ToLower(strings.TrimSpace(raw.LogLevel)); level != "" {
		cfg.LogLevel = level
	}
	if pattern := strings.TrimSpace(raw.Pattern); pattern != "" {
		cfg.Pattern = pattern
	}
	if raw.ViewportHeight < 0 {
		return Config{}, fmt.Errorf("parse config: viewport_height must not be negative, got %d", raw.ViewportHeight)
	}
	cfg.ViewportHeight = raw.ViewportHeight

	return cfg, nil
}

// Level maps LogLevel to a slog level. Unknown names mean info.
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
