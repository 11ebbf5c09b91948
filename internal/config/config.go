package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	MusicFolder string   `koanf:"music_folder"` // base dir for relative sources; empty means cwd
	Extensions  []string `koanf:"extensions"`   // allowed file extensions; empty means everything the engine decodes

	Volume             *float64 `koanf:"volume"`               // initial volume 0..1 (default 1.0)
	StartMuted         bool     `koanf:"start_muted"`          // start with output muted
	ProgressIntervalMs int      `koanf:"progress_interval_ms"` // notifier period (default 1000)

	RestoreSession *bool `koanf:"restore_session"` // restore volume and position from the state db (default true)
	MPRIS          *bool `koanf:"mpris"`           // expose the player over D-Bus on Linux (default true)
	Notifications  *bool `koanf:"notifications"`   // desktop notification on track change (default true)
}

// Load reads the configuration files in priority order (last wins) and
// applies path expansion. Missing files are fine; an empty Config with
// defaults is valid.
func Load() (*Config, error) {
	return load(getConfigPaths())
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.MusicFolder != "" {
		cfg.MusicFolder = expandPath(cfg.MusicFolder)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/chime/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "chime", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetVolume returns the configured initial volume with defaults applied.
func (c *Config) GetVolume() float64 {
	if c.Volume == nil {
		return 1.0
	}
	v := *c.Volume
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// GetProgressInterval returns the notifier period with defaults applied.
func (c *Config) GetProgressInterval() time.Duration {
	if c.ProgressIntervalMs <= 0 {
		return time.Second
	}
	return time.Duration(c.ProgressIntervalMs) * time.Millisecond
}

// RestoreSessionEnabled reports whether saved volume/position should be
// restored on startup.
func (c *Config) RestoreSessionEnabled() bool {
	return c.RestoreSession == nil || *c.RestoreSession
}

// MPRISEnabled reports whether the D-Bus surface should be started.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS == nil || *c.MPRIS
}

// NotificationsEnabled reports whether track changes should raise a
// desktop notification.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// ExtensionAllowed reports whether a file extension passes the configured
// restriction. Extensions compare case-insensitively, with or without the
// leading dot.
func (c *Config) ExtensionAllowed(ext string) bool {
	if len(c.Extensions) == 0 {
		return true
	}
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	for _, allowed := range c.Extensions {
		if ext == strings.TrimPrefix(strings.ToLower(allowed), ".") {
			return true
		}
	}
	return false
}
