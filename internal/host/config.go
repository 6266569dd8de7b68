// Package host provides the command-line and windowed harness around the
// emulator core: JSON configuration, an Ebitengine diagnostic display, and
// keyboard-to-controller input mapping. None of it is part of the emulated
// system; it is the scaffolding a user runs the system inside.
package host

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the harness's runtime settings. It is intentionally narrow:
// only the window, input, and debug knobs this emulator's scope actually
// uses, not a full front-end configuration surface.
type Config struct {
	Window WindowConfig `json:"window"`
	Input  InputConfig  `json:"input"`
	Debug  DebugConfig  `json:"debug"`

	path string
}

// WindowConfig controls the diagnostic display window.
type WindowConfig struct {
	Scale      int  `json:"scale"`
	VSync      bool `json:"vsync"`
	Fullscreen bool `json:"fullscreen"`
}

// InputConfig maps keyboard keys to controller 1's buttons.
type InputConfig struct {
	Up     string `json:"up"`
	Down   string `json:"down"`
	Left   string `json:"left"`
	Right  string `json:"right"`
	A      string `json:"a"`
	B      string `json:"b"`
	Start  string `json:"start"`
	Select string `json:"select"`
}

// DebugConfig controls the orchestrator's diagnostic logging.
type DebugConfig struct {
	LogState     bool `json:"log_state"`
	LogInterval  int  `json:"log_interval_frames"`
	ShowMemoryView bool `json:"show_memory_view"`
}

const memoryViewCellPixels = 8

// NewConfig returns the harness's default configuration.
func NewConfig() *Config {
	return &Config{
		Window: WindowConfig{Scale: 2, VSync: true},
		Input: InputConfig{
			Up: "W", Down: "S", Left: "A", Right: "D",
			A: "J", B: "K", Start: "Enter", Select: "Space",
		},
		Debug: DebugConfig{LogState: false, LogInterval: 60, ShowMemoryView: true},
	}
}

// LoadFromFile reads JSON configuration from path, writing the default
// configuration to path first if it does not yet exist.
func (c *Config) LoadFromFile(path string) error {
	c.path = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c.SaveToFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	c.validate()
	return nil
}

// SaveToFile writes the configuration to path as indented JSON.
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	c.path = path
	return nil
}

func (c *Config) validate() {
	if c.Window.Scale <= 0 {
		c.Window.Scale = 2
	}
	if c.Debug.LogInterval <= 0 {
		c.Debug.LogInterval = 60
	}
}

// WindowSize returns the diagnostic window's pixel dimensions: a 16x16
// grid of memoryViewCellPixels-sized cells, scaled by Window.Scale.
func (c *Config) WindowSize() (int, int) {
	side := 16 * memoryViewCellPixels * c.Window.Scale
	return side, side
}
