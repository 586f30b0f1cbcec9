// bigbox is a cover and video launcher for TeknoParrot. It lists the
// installed games by category, plays a preview of the selected one, and
// starts it through TeknoParrotUi.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user-none/bigbox/logging"
	"github.com/user-none/bigbox/standalone"
	"github.com/user-none/bigbox/standalone/storage"
)

// LogLevelEnv overrides the log level
const LogLevelEnv = "BIGBOX_LOG_LEVEL"

type flags struct {
	base     string
	player   string
	logLevel string
	workers  int
}

func main() {
	var f flags
	root := &cobra.Command{
		Use:           "bigbox",
		Short:         "Cover and video launcher for TeknoParrot",
		Version:       standalone.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(f)
		},
	}
	root.Flags().StringVar(&f.base, "base", "", "TeknoParrot install directory (default: next to this program, or $"+storage.BaseDirEnv+")")
	root.Flags().StringVar(&f.player, "player", "", "preview player program (default: mpv or ffplay from PATH)")
	root.Flags().StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error (default: $"+LogLevelEnv+")")
	root.Flags().IntVar(&f.workers, "workers", 0, "parallel metadata readers (default: one per CPU)")

	loadEnv()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadEnv reads .env from the working directory and from next to the
// executable. Variables already set win.
func loadEnv() {
	_ = godotenv.Load()
	if exe, err := os.Executable(); err == nil {
		_ = godotenv.Load(filepath.Join(filepath.Dir(exe), ".env"))
	}
}

func run(f flags) error {
	if f.base != "" {
		storage.Init(f.base)
	}
	baseDir, err := storage.GetBaseDir()
	if err != nil {
		return err
	}

	// A malformed file still yields usable settings
	settings, settingsErr := storage.LoadSettings()
	if settings == nil {
		return settingsErr
	}

	level := f.logLevel
	if level == "" {
		level = os.Getenv(LogLevelEnv)
	}
	logOpts := logging.Options{Level: level, Debug: settings.EnableDebugLog}
	if settings.EnableDebugLog {
		if logOpts.File, err = storage.GetDebugLogPath(); err != nil {
			return err
		}
	}
	logger, closeLog, err := logging.New(logOpts)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer closeLog()
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	logger.Info("Starting",
		zap.String("version", standalone.Version),
		zap.String("base", baseDir),
		zap.String("language", string(settings.Language)))

	return standalone.Run(standalone.Options{
		BaseDir:       baseDir,
		Settings:      settings,
		SettingsErr:   settingsErr,
		PlayerProgram: f.player,
		Workers:       f.workers,
		Logger:        logger,
	})
}
