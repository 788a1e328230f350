package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	EngineSentencePiece = "sentencepiece"
	EngineTiktoken      = "tiktoken"
	EngineBytes         = "bytes"
	EngineRunes         = "runes"
)

// ErrUnknownEngine is returned by NormalizeEngine for unrecognised names.
var ErrUnknownEngine = errors.New("unknown tokenizer engine")

// NormalizeEngine canonicalizes a tokenizer engine name. Empty input selects
// EngineBytes; "sp", "spm" and "bpe" are accepted as aliases.
func NormalizeEngine(raw string) (string, error) {
	engine := strings.ToLower(strings.TrimSpace(raw))
	if engine == "" {
		engine = EngineBytes
	}
	switch engine {
	case EngineSentencePiece, EngineTiktoken, EngineBytes, EngineRunes:
		return engine, nil
	case "sp", "spm":
		return EngineSentencePiece, nil
	case "bpe":
		return EngineTiktoken, nil
	default:
		return "", fmt.Errorf(
			"%w %q (expected %s|%s|%s|%s)",
			ErrUnknownEngine,
			raw,
			EngineSentencePiece,
			EngineTiktoken,
			EngineBytes,
			EngineRunes,
		)
	}
}
