package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/example/go-tokviz/internal/config"
	"github.com/example/go-tokviz/internal/server"
	"github.com/example/go-tokviz/internal/tokenizer"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	activeCfg config.Config
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "tokviz",
		Short:         "Watch a tokenizer segment text as you type",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg = loaded
			setupLogger(loaded.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newTUICmd())
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newHealthCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	lvl, err := server.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func requireConfig() (config.Config, error) {
	if activeCfg.Tokenizer.Engine == "" {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return activeCfg, nil
}

// newTokenizer builds the configured engine and logs what was loaded.
func newTokenizer(cfg config.Config) (tokenizer.Tokenizer, string, error) {
	engine, err := config.NormalizeEngine(cfg.Tokenizer.Engine)
	if err != nil {
		return nil, "", err
	}

	tok, err := tokenizer.New(cfg.Tokenizer)
	if err != nil {
		return nil, "", err
	}

	attrs := []any{slog.String("engine", engine)}
	switch engine {
	case config.EngineSentencePiece:
		attrs = append(attrs, slog.String("model_path", cfg.Tokenizer.ModelPath))
		if sp, ok := tok.(*tokenizer.SentencePieceTokenizer); ok {
			attrs = append(attrs, slog.String("model_type", sp.ModelType()))
		}
	case config.EngineTiktoken:
		attrs = append(attrs, slog.String("encoding", cfg.Tokenizer.Encoding))
	}
	slog.Debug("tokenizer ready", attrs...)

	return tok, engine, nil
}
