// Package testutil provides shared skip helpers for tests that need assets
// or network access outside the repository.
//
// Each helper calls t.Skip with a clear human-readable reason when the named
// prerequisite is absent, so the suite stays runnable in partial environments.
//
// Typical usage:
//
//	func TestRealModel(t *testing.T) {
//	    path := testutil.RequireModelFile(t)
//	    ...
//	}
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ModelPathEnv names the variable that points tests at a SentencePiece model.
const ModelPathEnv = "TOKVIZ_TOKENIZER_MODEL_PATH"

// RequireModelFile returns the path of a SentencePiece model, skipping the
// test if none is available. It checks ModelPathEnv first, then walks up from
// the working directory looking for models/tokenizer.model.
func RequireModelFile(tb testing.TB) string {
	tb.Helper()

	if p := os.Getenv(ModelPathEnv); p != "" {
		if _, err := os.Stat(p); err != nil {
			tb.Skipf("tokenizer model not found at %s=%q", ModelPathEnv, p)
		}

		return p
	}

	dir, err := filepath.Abs(".")
	if err != nil {
		tb.Fatalf("abs path: %v", err)
	}

	for {
		candidate := filepath.Join(dir, "models", "tokenizer.model")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	tb.Skipf("models/tokenizer.model not found; set %s to run this test", ModelPathEnv)

	return ""
}

// RequireEnv skips the test unless the environment variable key is set to a
// non-empty value, and returns that value. It gates tests that reach the
// network, such as downloading tiktoken rank files.
func RequireEnv(tb testing.TB, key string) string {
	tb.Helper()

	v := os.Getenv(key)
	if v == "" {
		tb.Skipf("%s not set; skipping", key)
	}

	return v
}
