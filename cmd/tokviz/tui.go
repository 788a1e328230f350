package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/go-tokviz/internal/server"
	"github.com/example/go-tokviz/internal/tui"
	"github.com/example/go-tokviz/internal/viewmode"
	"github.com/spf13/cobra"
)

func newTUICmd() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the visualizer in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			mode, err := viewmode.ParseMode(cfg.View.DefaultMode)
			if err != nil {
				return fmt.Errorf("view.default_mode: %w", err)
			}

			tok, engine, err := newTokenizer(cfg)
			if err != nil {
				return err
			}

			logger, closeLog, err := tuiLogger(logFile, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer closeLog()

			m, err := tui.New(tok, mode, tui.WithEngineName(engine), tui.WithLogger(logger))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return tui.Run(ctx, m)
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "Write session logs to this file (stderr is owned by the terminal UI)")

	return cmd
}

// tuiLogger returns a JSON logger writing to path, or a discarding one when
// path is empty.
func tuiLogger(path, level string) (*slog.Logger, func(), error) {
	lvl, err := server.ParseLogLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}

	if path == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: lvl}))

	return logger, func() { _ = f.Close() }, nil
}
