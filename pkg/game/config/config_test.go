package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Level.Countdown != 10 {
		t.Errorf("Level.Countdown = %d, want 10", c.Level.Countdown)
	}
	if c.Level.InputMode != InputModeTransform {
		t.Errorf("Level.InputMode = %q, want %q", c.Level.InputMode, InputModeTransform)
	}
	if c.Level.FadeDelay != 5*time.Second || c.Level.FreezeDelay != 7*time.Second {
		t.Errorf("fade delays = %v/%v, want 5s/7s", c.Level.FadeDelay, c.Level.FreezeDelay)
	}
	if c.Cycler.RepeatDelay != 300*time.Millisecond || c.Cycler.RepeatInterval != 120*time.Millisecond {
		t.Errorf("cycler timing = %v/%v, want 300ms/120ms", c.Cycler.RepeatDelay, c.Cycler.RepeatInterval)
	}
	if c.Scramble.Glyphs != `!<>-_\/[]{}—=+*^?#________` {
		t.Errorf("Scramble.Glyphs = %q", c.Scramble.Glyphs)
	}
	if c.Controls.DeadZone != 0.15 {
		t.Errorf("Controls.DeadZone = %v, want 0.15", c.Controls.DeadZone)
	}
}

func TestParse_OverridesOnlyGivenKeys(t *testing.T) {
	c, err := Parse([]byte("[Level]\nCountdown = 3\nWaitForTitleAnimation = true\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Level.Countdown != 3 {
		t.Errorf("Level.Countdown = %d, want 3", c.Level.Countdown)
	}
	if !c.Level.WaitForTitleAnimation {
		t.Error("Level.WaitForTitleAnimation = false, want true")
	}
	if c.Window.Width != 1280 {
		t.Errorf("Window.Width = %d, want default 1280", c.Window.Width)
	}
}

func TestValidate_Clamps(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		check func(*Config) bool
	}{
		{"unknown input mode", "[Level]\nInputMode = joystick\n", func(c *Config) bool { return c.Level.InputMode == InputModeTransform }},
		{"mixed case input mode", "[Level]\nInputMode = Offset\n", func(c *Config) bool { return c.Level.InputMode == InputModeOffset }},
		{"negative countdown", "[Level]\nCountdown = -4\n", func(c *Config) bool { return c.Level.Countdown == 0 }},
		{"freeze before fade", "[Level]\nFadeDelay = 5s\nFreezeDelay = 1s\n", func(c *Config) bool { return c.Level.FreezeDelay == 5*time.Second }},
		{"dead zone too large", "[Controls]\nDeadZone = 3\n", func(c *Config) bool { return c.Controls.DeadZone < 1 }},
		{"zero window", "[Window]\nWidth = 0\n", func(c *Config) bool { return c.Window.Width == 1280 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.src))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !tt.check(c) {
				t.Errorf("value not clamped: %+v", *c)
			}
		})
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Source != "" {
		t.Errorf("Source = %q, want empty", c.Source)
	}
	if c.Level.Countdown != 10 {
		t.Errorf("Level.Countdown = %d, want 10", c.Level.Countdown)
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	if err := os.WriteFile(path, []byte("[Window]\nTitle = Test\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Window.Title != "Test" || c.Source != path {
		t.Errorf("Load() = title %q source %q", c.Window.Title, c.Source)
	}
}
