package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/adrg/xdg"
)

var (
	errConfigWrite   = errors.New("failed to write config file")
	errConfigRead    = errors.New("failed to read config file")
	errConfigInvalid = errors.New("invalid config value")
	errLoggerInit    = errors.New("failed to initialize logger")
)

const (
	ConfigDirName      = "halgui"
	DefaultConfigName  = "halgui"
	DefaultDBName      = "halgui.db"
	DefaultLogName     = "halgui.log"
	DefaultKeymapName  = "keys.conf"
	EnvPrefix          = "halgui"
	BackendBubbleTea   = "tea"
	BackendTCell       = "tcell"
	defaultFPS         = 30
	defaultBlinkMs     = 500
	defaultHoldMs      = 250
	defaultReleaseMs   = 150
	defaultCursorGlyph = "█"
)

type Config struct {
	// FPS is how many frames per second the host polls the gamepad and steps the gui.
	FPS int `mapstructure:"fps"`
	// BlinkMs is both the cursor blink interval and the render interval of an idle menu.
	BlinkMs int `mapstructure:"blink_ms"`
	// HoldRepeatMs is the interval between repeated hold events of a pressed button.
	HoldRepeatMs int `mapstructure:"hold_repeat_ms"`
	// KeyReleaseMs is how long a key press keeps its virtual button down. Terminals do not report
	// key releases, so this should be a little over the OS key repeat delay.
	KeyReleaseMs int    `mapstructure:"key_release_ms"`
	Backend      string `mapstructure:"backend"`
	CursorGlyph  string `mapstructure:"cursor_glyph"`
	KeymapPath   string `mapstructure:"keymap_path"`
	DatabasePath string `mapstructure:"database_path"`
	CycleButton  string `mapstructure:"cycle_button"`
	// Priorities overrides the event priority of individual buttons, keyed by button name.
	Priorities map[string]int `mapstructure:"priorities"`
	Debug      bool           `mapstructure:"debug"`
	LogLevel   string         `mapstructure:"log_level"`
}

func (c Config) BlinkSpeed() time.Duration {
	return time.Duration(c.BlinkMs) * time.Millisecond
}

func (c Config) HoldInterval() time.Duration {
	return time.Duration(c.HoldRepeatMs) * time.Millisecond
}

func (c Config) ReleaseWindow() time.Duration {
	return time.Duration(c.KeyReleaseMs) * time.Millisecond
}

func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(max(1, c.FPS))
}

// Glyph returns the first rune of the configured cursor glyph.
func (c Config) Glyph() rune {
	glyph, size := utf8.DecodeRuneInString(c.CursorGlyph)
	if size == 0 || glyph == utf8.RuneError {
		glyph, _ = utf8.DecodeRuneInString(defaultCursorGlyph)
	}

	return glyph
}

func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return level
}

// Validate checks the values that would otherwise break the frame loop.
func (c Config) Validate() error {
	var errs []error
	if c.FPS <= 0 || c.FPS > 240 {
		errs = append(errs, fmt.Errorf("%w: fps must be within 1-240, got %d", errConfigInvalid, c.FPS))
	}

	if c.BlinkMs <= 0 {
		errs = append(errs, fmt.Errorf("%w: blink_ms must be positive", errConfigInvalid))
	}

	if c.HoldRepeatMs <= 0 {
		errs = append(errs, fmt.Errorf("%w: hold_repeat_ms must be positive", errConfigInvalid))
	}

	if c.KeyReleaseMs <= 0 {
		errs = append(errs, fmt.Errorf("%w: key_release_ms must be positive", errConfigInvalid))
	}

	switch strings.ToLower(c.Backend) {
	case BackendBubbleTea, BackendTCell:
	default:
		errs = append(errs, fmt.Errorf("%w: unknown backend %q", errConfigInvalid, c.Backend))
	}

	return errors.Join(errs...)
}

// Path generates a path pointing to the filename under this apps defined $XDG_CONFIG_HOME.
func Path(name string) string {
	fullPath, errFullPath := xdg.ConfigFile(path.Join(ConfigDirName, name))
	if errFullPath != nil {
		panic(errFullPath)
	}

	return fullPath
}

// LoggerInit sets up the slog global handler to use a log file as we cant print to the console.
func LoggerInit(logPath string, level slog.Level) (io.Closer, error) {
	logFile, errLogFile := os.Create(Path(logPath))
	if errLogFile != nil {
		return nil, errors.Join(errLogFile, errLoggerInit)
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	}))

	slog.SetDefault(logger)

	return logFile, nil
}
