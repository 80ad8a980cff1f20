package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Paths    PathsConfig `mapstructure:"paths"`
	Lemma    LemmaConfig `mapstructure:"lemma"`
	LogLevel string      `mapstructure:"log_level"`
}

type PathsConfig struct {
	DictDir string `mapstructure:"dict_dir"`
}

type LemmaConfig struct {
	Engine       string `mapstructure:"engine"`
	CaseFallback bool   `mapstructure:"case_fallback"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	// EnvFile is loaded into the process environment before the environment
	// is consulted. Variables that are already set win. Empty means ".env";
	// a missing file is not an error.
	EnvFile  string
	Defaults Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

// flagKeys maps registered flag names to their config keys.
var flagKeys = map[string]string{
	"paths-dict-dir":      "paths.dict_dir",
	"lemma-engine":        "lemma.engine",
	"lemma-case-fallback": "lemma.case_fallback",
	"log-level":           "log_level",
}

func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			DictDir: "dictionaries",
		},
		Lemma: LemmaConfig{
			Engine:       EngineAuto,
			CaseFallback: true,
		},
		LogLevel: "warn",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("paths-dict-dir", defaults.Paths.DictDir, "Directory holding <lang>.tsv[.gz] lemma dictionaries")
	fs.String("lemma-engine", defaults.Lemma.Engine, "Lemmatization engine (auto|dictionary|snowball)")
	fs.Bool("lemma-case-fallback", defaults.Lemma.CaseFallback, "Retry dictionary lookups with the lower-cased token")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return Config{}, err
	}

	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("LEMMATIZE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("lemmatize")
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

	engine, err := NormalizeEngine(cfg.Lemma.Engine)
	if err != nil {
		return Config{}, err
	}
	cfg.Lemma.Engine = engine

	return cfg, nil
}

func loadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("read env file %s: %w", path, err)
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.dict_dir", c.Paths.DictDir)
	v.SetDefault("lemma.engine", c.Lemma.Engine)
	v.SetDefault("lemma.case_fallback", c.Lemma.CaseFallback)
	v.SetDefault("log_level", c.LogLevel)
}

// ParseLogLevel maps a level name to a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}
