package config

import (
	"errors"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Loader handles setting up viper, loading configuration from files, and broadcasting configuration changes.
type Loader struct {
	*viper.Viper
	changes chan<- Config
}

// NewLoader creates a loader searching the given paths, defaulting to the XDG config dir and the
// working directory. A nil channel disables reload notifications.
func NewLoader(changes chan<- Config, searchPaths ...string) *Loader {
	loader := Loader{changes: changes, Viper: viper.New()}
	loader.SetDefault("fps", defaultFPS)
	loader.SetDefault("blink_ms", defaultBlinkMs)
	loader.SetDefault("hold_repeat_ms", defaultHoldMs)
	loader.SetDefault("key_release_ms", defaultReleaseMs)
	loader.SetDefault("backend", BackendBubbleTea)
	loader.SetDefault("cursor_glyph", defaultCursorGlyph)
	loader.SetDefault("keymap_path", "")
	loader.SetDefault("database_path", "")
	loader.SetDefault("cycle_button", "gamepad1_guide")
	loader.SetDefault("priorities", map[string]int{})
	loader.SetDefault("debug", false)
	loader.SetDefault("log_level", "info")
	loader.SetConfigName(DefaultConfigName)
	loader.SetConfigType("yaml")
	loader.SetEnvPrefix(EnvPrefix)

	if len(searchPaths) == 0 {
		searchPaths = []string{Path(""), "."}
	}

	for _, searchPath := range searchPaths {
		loader.AddConfigPath(searchPath)
	}

	loader.AutomaticEnv()

	return &loader
}

// Watch starts watching the config file for external edits.
func (cl *Loader) Watch() {
	cl.OnConfigChange(cl.onConfigChange)
	cl.WatchConfig()
}

func (cl *Loader) Path() string {
	return cl.ConfigFileUsed()
}

func (cl *Loader) onConfigChange(in fsnotify.Event) {
	if !in.Has(fsnotify.Write) && !in.Has(fsnotify.Create) {
		return
	}

	slog.Debug("External config reload triggered", slog.String("path", in.Name))
	config, err := cl.Read()
	if err != nil {
		slog.Error("Error reading config", slog.String("error", err.Error()))

		return
	}

	if cl.changes != nil {
		cl.changes <- config
	}
}

func (cl *Loader) Write(config Config) error {
	cl.Set("fps", config.FPS)
	cl.Set("blink_ms", config.BlinkMs)
	cl.Set("hold_repeat_ms", config.HoldRepeatMs)
	cl.Set("key_release_ms", config.KeyReleaseMs)
	cl.Set("backend", config.Backend)
	cl.Set("cursor_glyph", config.CursorGlyph)
	cl.Set("keymap_path", config.KeymapPath)
	cl.Set("database_path", config.DatabasePath)
	cl.Set("cycle_button", config.CycleButton)
	cl.Set("priorities", config.Priorities)
	cl.Set("debug", config.Debug)
	cl.Set("log_level", config.LogLevel)

	if cl.ConfigFileUsed() == "" {
		if err := cl.SafeWriteConfig(); err != nil {
			return errors.Join(err, errConfigWrite)
		}

		return nil
	}

	if err := cl.WriteConfig(); err != nil {
		return errors.Join(err, errConfigWrite)
	}

	return nil
}

func (cl *Loader) Read() (Config, error) {
	if err := cl.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return Config{}, errors.Join(err, errConfigRead)
		}
	}

	var config Config
	if err := cl.Unmarshal(&config); err != nil {
		return Config{}, errors.Join(err, errConfigRead)
	}

	if err := config.Validate(); err != nil {
		return Config{}, errors.Join(err, errConfigRead)
	}

	return config, nil
}
