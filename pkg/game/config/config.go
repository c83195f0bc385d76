// Package config loads settings.ini layered over the built-in defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/ini.v1"
)

//go:embed defaults.ini
var defaultConfig []byte

// Input modes for the level screen.
const (
	InputModeOffset    = "offset"
	InputModeTransform = "transform"
)

type WindowConfig struct {
	Width  int    `ini:"Width"`
	Height int    `ini:"Height"`
	Title  string `ini:"Title"`
	TPS    int    `ini:"TPS"`
}

type PathsConfig struct {
	Templates string `ini:"Templates"`
	Assets    string `ini:"Assets"`
	Locales   string `ini:"Locales"`
	Language  string `ini:"Language"`
}

// LevelConfig switches the level screen's optional features.
type LevelConfig struct {
	Countdown             int           `ini:"Countdown"`
	InputMode             string        `ini:"InputMode"`
	FadeEffect            bool          `ini:"FadeEffect"`
	FadeDelay             time.Duration `ini:"FadeDelay"`
	FreezeDelay           time.Duration `ini:"FreezeDelay"`
	FadeDuration          time.Duration `ini:"FadeDuration"`
	ImageCycling          bool          `ini:"ImageCycling"`
	WaitForTitleAnimation bool          `ini:"WaitForTitleAnimation"`
	OffsetStep            float64       `ini:"OffsetStep"`
}

type ControlsConfig struct {
	DeadZone   float64 `ini:"DeadZone"`
	MoveSpeed  float64 `ini:"MoveSpeed"`
	RotSpeed   float64 `ini:"RotSpeed"`
	KeyStep    float64 `ini:"KeyStep"`
	KeyRotStep float64 `ini:"KeyRotStep"`
}

type ScrambleConfig struct {
	Interval time.Duration `ini:"Interval"`
	Glyphs   string        `ini:"Glyphs"`
}

type CyclerConfig struct {
	RepeatDelay    time.Duration `ini:"RepeatDelay"`
	RepeatInterval time.Duration `ini:"RepeatInterval"`
}

// Config is the whole settings file.
type Config struct {
	Window   WindowConfig   `ini:"Window"`
	Paths    PathsConfig    `ini:"Paths"`
	Level    LevelConfig    `ini:"Level"`
	Controls ControlsConfig `ini:"Controls"`
	Scramble ScrambleConfig `ini:"Scramble"`
	Cycler   CyclerConfig   `ini:"Cycler"`

	// Path the user settings were read from, empty when only defaults applied.
	Source string `ini:"-"`
}

var loadOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	SkipUnrecognizableLines: true,
}

// Default returns the built-in settings.
func Default() *Config {
	c, err := parse(defaultConfig)
	if err != nil {
		panic(fmt.Errorf("built-in settings are invalid: %w", err))
	}
	return c
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	f, err := ini.LoadSources(loadOptions, defaultConfig, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	c, err := mapFile(f)
	if err != nil {
		return nil, err
	}
	c.Source = path
	return c, nil
}

// Parse reads settings from data layered over the defaults.
func Parse(data []byte) (*Config, error) {
	f, err := ini.LoadSources(loadOptions, defaultConfig, data)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return mapFile(f)
}

func parse(data []byte) (*Config, error) {
	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return mapFile(f)
}

func mapFile(f *ini.File) (*Config, error) {
	var c Config
	if err := f.MapTo(&c); err != nil {
		return nil, fmt.Errorf("failed to map settings: %w", err)
	}
	c.Validate()
	return &c, nil
}

// Validate clamps values that would break the screens back into range.
func (c *Config) Validate() {
	if c.Window.Width <= 0 {
		c.Window.Width = 1280
	}
	if c.Window.Height <= 0 {
		c.Window.Height = 720
	}
	if c.Window.TPS <= 0 {
		c.Window.TPS = 60
	}

	c.Level.InputMode = strings.ToLower(strings.TrimSpace(c.Level.InputMode))
	if c.Level.InputMode != InputModeOffset && c.Level.InputMode != InputModeTransform {
		fmt.Fprintf(os.Stderr, "Warning: unknown InputMode %q, using %s\n", c.Level.InputMode, InputModeTransform)
		c.Level.InputMode = InputModeTransform
	}
	if c.Level.Countdown < 0 {
		c.Level.Countdown = 0
	}
	if c.Level.FadeDelay < 0 {
		c.Level.FadeDelay = 0
	}
	if c.Level.FreezeDelay < c.Level.FadeDelay {
		c.Level.FreezeDelay = c.Level.FadeDelay
	}
	if c.Level.FadeDuration < 0 {
		c.Level.FadeDuration = 0
	}

	if c.Controls.DeadZone < 0 {
		c.Controls.DeadZone = 0
	}
	if c.Controls.DeadZone >= 1 {
		c.Controls.DeadZone = 0.99
	}

	if c.Scramble.Interval <= 0 {
		c.Scramble.Interval = 50 * time.Millisecond
	}
	if c.Cycler.RepeatDelay <= 0 {
		c.Cycler.RepeatDelay = 300 * time.Millisecond
	}
	if c.Cycler.RepeatInterval <= 0 {
		c.Cycler.RepeatInterval = 120 * time.Millisecond
	}
}
