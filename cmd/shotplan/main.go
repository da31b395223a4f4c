package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	lj "gopkg.in/natefinch/lumberjack.v2"

	"github.com/mmercade/shotplan/internal/common"
)

var version = "0.1.0"

func main() {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	cfg := common.LoadConfig()
	setupLogger(cfg)

	rootCmd := &cobra.Command{
		Use:   "shotplan",
		Short: "Shooting-plan schedule extractor",
		Long: `shotplan converts loosely-structured, text-extracted film shooting-plan
documents (narrative day-by-day plans and tabular calendar grids) into a
normalized weekly schedule: dates per production week, crew hours and
locations per day, and the numbered scenes shot in each.`,
		Version: version,
	}

	rootCmd.AddCommand(parseCmd(cfg))
	rootCmd.AddCommand(ingestCmd(cfg))
	rootCmd.AddCommand(exportCmd(cfg))
	rootCmd.AddCommand(dbhealthCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogger(cfg *common.Config) {
	var level slog.Level
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var w io.Writer = os.Stderr
	if cfg.Log.File != "" {
		w = &lj.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
