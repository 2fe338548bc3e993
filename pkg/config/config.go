// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Config holds all viewer settings.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Camera  CameraConfig  `yaml:"camera"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// DisplayConfig holds frame pacing and screen settings.
type DisplayConfig struct {
	TargetFPS  int    `yaml:"target_fps"`
	Background string `yaml:"background"` // "R,G,B"
	ShowHUD    bool   `yaml:"show_hud"`
}

// CameraConfig holds projection and zoom settings.
type CameraConfig struct {
	FOV     float64 `yaml:"fov"` // Vertical field of view, degrees
	Near    float64 `yaml:"near"`
	Far     float64 `yaml:"far"`
	ZoomMin float64 `yaml:"zoom_min"` // Nearest camera distance
	ZoomMax float64 `yaml:"zoom_max"` // Farthest camera distance
}

// SceneConfig holds the object list and simulation settings.
type SceneConfig struct {
	Models   []string `yaml:"models"`    // Builtin names or model file paths
	SpinRate float64  `yaml:"spin_rate"` // Degrees per second while a turn control is held
	Mode     string   `yaml:"mode"`      // Initial render mode
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			TargetFPS:  30,
			Background: "15,15,25",
			ShowHUD:    true,
		},
		Camera: CameraConfig{
			FOV:     90,
			Near:    0.1,
			Far:     100,
			ZoomMin: 10,
			ZoomMax: 80,
		},
		Scene: SceneConfig{
			Models:   []string{"cube", "diamond"},
			SpinRate: 45,
			Mode:     "points",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ParseBackground parses an "R,G,B" color string with 0-255 channels.
func ParseBackground(s string) (r, g, b uint8, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("background %q: want R,G,B", s)
	}
	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("background %q: %w", s, err)
		}
		ch[i] = uint8(v)
	}
	return ch[0], ch[1], ch[2], nil
}
