package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel  string          `mapstructure:"log_level"`
	Tokenizer TokenizerConfig `mapstructure:"tokenizer"`
	View      ViewConfig      `mapstructure:"view"`
	Server    ServerConfig    `mapstructure:"server"`
}

type TokenizerConfig struct {
	Engine    string `mapstructure:"engine"`
	ModelPath string `mapstructure:"model_path"`
	Encoding  string `mapstructure:"encoding"`
}

type ViewConfig struct {
	DefaultMode string `mapstructure:"default_mode"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	MaxTextBytes    int    `mapstructure:"max_text_bytes"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

// flagKeys maps each registered flag to the config key it overrides.
var flagKeys = map[string]string{
	"log-level":               "log_level",
	"tokenizer-engine":        "tokenizer.engine",
	"engine":                  "tokenizer.engine",
	"tokenizer-model-path":    "tokenizer.model_path",
	"tokenizer-encoding":      "tokenizer.encoding",
	"view-default-mode":       "view.default_mode",
	"server-listen-addr":      "server.listen_addr",
	"server-max-text-bytes":   "server.max_text_bytes",
	"server-shutdown-timeout": "server.shutdown_timeout",
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Tokenizer: TokenizerConfig{
			Engine:    EngineBytes,
			ModelPath: "models/tokenizer.model",
			Encoding:  "cl100k_base",
		},
		View: ViewConfig{
			DefaultMode: "pieces",
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			MaxTextBytes:    1 << 20,
			ShutdownTimeout: 10,
		},
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.String("tokenizer-engine", defaults.Tokenizer.Engine, "Tokenizer engine (sentencepiece|tiktoken|bytes|runes)")
	fs.String("engine", defaults.Tokenizer.Engine, "Tokenizer engine (alias for --tokenizer-engine)")
	fs.String("tokenizer-model-path", defaults.Tokenizer.ModelPath, "Path to SentencePiece .model file")
	fs.String("tokenizer-encoding", defaults.Tokenizer.Encoding, "tiktoken model or encoding name")
	fs.String("view-default-mode", defaults.View.DefaultMode, "Initially selected view mode (ids|pieces)")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("server-max-text-bytes", defaults.Server.MaxTextBytes, "Maximum text size accepted per request or frame")
	fs.Int("server-shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown timeout in seconds")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("TOKVIZ")
	replacer := strings.NewReplacer("-", "_", ".", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("tokviz")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	engine, err := NormalizeEngine(cfg.Tokenizer.Engine)
	if err != nil {
		return Config{}, err
	}
	cfg.Tokenizer.Engine = engine

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("tokenizer.engine", c.Tokenizer.Engine)
	v.SetDefault("tokenizer.model_path", c.Tokenizer.ModelPath)
	v.SetDefault("tokenizer.encoding", c.Tokenizer.Encoding)
	v.SetDefault("view.default_mode", c.View.DefaultMode)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
}

// bindFlags binds every known flag present in fs to its config key. Flags
// only take effect when set explicitly, so env and file values still apply
// underneath them. An alias replaces its canonical flag only when the alias
// was set and the canonical flag was not.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, aliases := range []bool{false, true} {
		for name, key := range flagKeys {
			if isAlias(name) != aliases {
				continue
			}
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if aliases && (!f.Changed || flagChanged(fs, canonicalFlag(key))) {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %q: %w", name, err)
			}
		}
	}
	return nil
}

func canonicalFlag(key string) string {
	return strings.ReplaceAll(strings.ReplaceAll(key, ".", "-"), "_", "-")
}

func isAlias(name string) bool {
	return name != canonicalFlag(flagKeys[name])
}

func flagChanged(fs *pflag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	return f != nil && f.Changed
}
