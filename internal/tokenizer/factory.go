package tokenizer

import (
	"fmt"

	"github.com/example/go-tokviz/internal/config"
)

// New builds the engine selected by cfg.Engine.
func New(cfg config.TokenizerConfig) (Tokenizer, error) {
	engine, err := config.NormalizeEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}

	switch engine {
	case config.EngineSentencePiece:
		sp, err := NewSentencePieceTokenizer(cfg.ModelPath)
		if err != nil {
			return nil, err
		}
		return sp, nil
	case config.EngineTiktoken:
		tk, err := NewTiktokenTokenizer(cfg.Encoding)
		if err != nil {
			return nil, err
		}
		return tk, nil
	case config.EngineBytes:
		return NewByteTokenizer(), nil
	case config.EngineRunes:
		return NewRuneTokenizer(), nil
	default:
		return nil, fmt.Errorf("unsupported engine %q", engine)
	}
}
