package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/go-tokviz/internal/render"
	"github.com/example/go-tokviz/internal/tui"
	"github.com/example/go-tokviz/internal/viewmode"
	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var mode string
	var file string
	var format string

	cmd := &cobra.Command{
		Use:   "render [text...]",
		Short: "Render text once and print the result",
		Long: "Render text once with the configured engine. Text comes from the arguments,\n" +
			"from --file, or from stdin. It is used byte for byte, trailing newline included.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if mode == "" {
				mode = cfg.View.DefaultMode
			}
			m, err := viewmode.ParseMode(mode)
			if err != nil {
				return err
			}

			text, err := readRenderText(args, file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			tok, _, err := newTokenizer(cfg)
			if err != nil {
				return err
			}

			out, err := render.Render(text, m, tok)
			if err != nil {
				return err
			}

			return writeRenderOutput(cmd.OutOrStdout(), out, format)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "View mode (ids|pieces); defaults to view.default_mode")
	cmd.Flags().StringVar(&file, "file", "", "Read text from file (- for stdin)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text|json)")

	return cmd
}

func readRenderText(args []string, file string, stdin io.Reader) (string, error) {
	if len(args) > 0 && file != "" {
		return "", errors.New("pass text as arguments or via --file, not both")
	}

	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	var (
		b   []byte
		err error
	)

	switch file {
	case "", "-":
		b, err = io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
	default:
		b, err = os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read text file: %w", err)
		}
	}

	return string(b), nil
}

func writeRenderOutput(w io.Writer, out render.Output, format string) error {
	switch strings.ToLower(format) {
	case "", "text":
		_, err := fmt.Fprintln(w, tui.Format(out, 0))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(out)
	default:
		return fmt.Errorf("unknown output format %q (want text|json)", format)
	}
}
