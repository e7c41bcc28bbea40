package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/fang"
	_ "github.com/joho/godotenv/autoload"
	"github.com/leighmacdonald/halgui/internal/config"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

var (
	BuildVersion   = "master"
	BuildCommit    = "00000000"
	BuildDate      = time.Now().Format("2006-01-02T15:04:05Z")
	BuildGoVersion = runtime.Version()
	cfgFile        string
	backend        string
	clearTrees     []string
	rootCmd        = &cobra.Command{
		Use:   "halgui",
		Short: "Gamepad driven menu system for the terminal",
		Long:  `halgui - A cursor and menu tree system driven by a virtual gamepad, rendered in the terminal`,
		RunE:  run,
	}

	versionCmd = &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Long:              "Print detailed version information about halgui",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run:               version,
	}

	keysCmd = &cobra.Command{
		Use:               "keys",
		Short:             "Print the active key bindings",
		Long:              "Print the key bindings in the format accepted by keymap_path files",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE:              keys,
	}

	sessionsCmd = &cobra.Command{
		Use:               "sessions",
		Short:             "List saved cursor positions",
		Long:              "List saved cursor positions, after forgetting those of any --clear trees",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE:              sessions,
	}
)

var errApp = errors.New("application error")

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file path")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Terminal backend, tea or tcell")
	sessionsCmd.Flags().StringSliceVar(&clearTrees, "clear", nil, "Forget saved cursors of these trees")
	rootCmd.AddCommand(versionCmd, keysCmd, sessionsCmd)

	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		slog.Error("Exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func version(_ *cobra.Command, _ []string) {
	fmt.Printf("halgui - Gamepad Menu TUI\n\n")     //nolint:forbidigo
	fmt.Printf("  Version: %s\n", BuildVersion)     //nolint:forbidigo
	fmt.Printf("  Commit:  %s\n", BuildCommit)      //nolint:forbidigo
	fmt.Printf("  Built:   %s\n", BuildDate)        //nolint:forbidigo
	fmt.Printf("  Runtime: %s\n\n", BuildGoVersion) //nolint:forbidigo
}

// loadConfig reads the config file, applying command line overrides.
func loadConfig(changes chan<- config.Config) (*config.Loader, config.Config, error) {
	loader := config.NewLoader(changes)
	if cfgFile != "" {
		loader.SetConfigFile(cfgFile)
	}

	if backend != "" {
		loader.Set("backend", backend)
	}

	userConfig, errConfig := loader.Read()
	if errConfig != nil {
		return nil, config.Config{}, errors.Join(errConfig, errApp)
	}

	return loader, userConfig, nil
}

func keys(cmd *cobra.Command, _ []string) error {
	_, userConfig, errConfig := loadConfig(nil)
	if errConfig != nil {
		return errConfig
	}

	bindings, errBindings := loadBindings(userConfig)
	if errBindings != nil {
		return errors.Join(errBindings, errApp)
	}

	return config.WriteBindings(cmd.OutOrStdout(), bindings)
}

func sessions(cmd *cobra.Command, _ []string) error {
	_, userConfig, errConfig := loadConfig(nil)
	if errConfig != nil {
		return errConfig
	}

	app, errNew := NewApp(cmd.Context(), userConfig, nil)
	if errNew != nil {
		return errNew
	}
	defer app.Close()

	if err := app.clearSessions(cmd.Context(), clearTrees); err != nil {
		return err
	}

	return app.printSessions(cmd.Context(), cmd.OutOrStdout())
}

// run is the main entry point of halgui.
func run(cmd *cobra.Command, _ []string) error {
	configUpdates := make(chan config.Config)
	loader, userConfig, errConfig := loadConfig(configUpdates)
	if errConfig != nil {
		return errConfig
	}

	// Setup file based logger. This is very useful for us as our console is taken over by the ui.
	level := userConfig.Level()
	if userConfig.Debug {
		level = slog.LevelDebug
	}

	logFile, errLogger := config.LoggerInit(config.DefaultLogName, level)
	if errLogger != nil {
		return errors.Join(errLogger, errApp)
	}

	defer func(closer io.Closer) {
		if err := closer.Close(); err != nil {
			slog.Error("Failed to close log file", slog.String("error", err.Error()))
		}
	}(logFile)

	slog.Info("Starting halgui", slog.String("version", BuildVersion),
		slog.String("commit", BuildCommit), slog.String("date", BuildDate),
		slog.String("go", runtime.Version()), slog.String("backend", userConfig.Backend))

	loader.Watch()

	app, errNew := NewApp(cmd.Context(), userConfig, configUpdates)
	if errNew != nil {
		return errNew
	}
	defer app.Close()

	app.loader = loader

	return app.Start(cmd.Context())
}
