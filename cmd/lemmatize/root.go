package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/example/go-lemmatize/internal/config"
	"github.com/example/go-lemmatize/internal/lemma"
	"github.com/example/go-lemmatize/internal/text"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	activeCfg config.Config
)

// newLemmatizer builds the engine for a run; tests replace it with a stub.
var newLemmatizer = func(cfg config.Config) (text.Lemmatizer, error) {
	return lemma.New(cfg)
}

var errMissingLanguage = errors.New("missing language code argument (usage: lemmatize <language>)")

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "lemmatize <language>",
		Short: "Replace every token read from stdin with its lemma",
		Long: "lemmatize reads all of standard input and writes each line back with every\n" +
			"whitespace-delimited token replaced by its lemma for <language>.",
		Args:          languageArg,
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
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLemmatize(cmd, args[0])
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newDictCmd())
	cmd.AddCommand(newDoctorCmd())

	return cmd
}

func languageArg(_ *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return errMissingLanguage
	case 1:
		if args[0] == "" {
			return errMissingLanguage
		}
		return nil
	default:
		return fmt.Errorf("expected exactly one language code, got %d arguments", len(args))
	}
}

func runLemmatize(cmd *cobra.Command, lang string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}

	lem, err := newLemmatizer(cfg)
	if err != nil {
		return err
	}

	slog.Debug("lemmatize start", "lang", lang, "engine", cfg.Lemma.Engine, "dict_dir", cfg.Paths.DictDir)
	_, err = text.Process(cmd.InOrStdin(), cmd.OutOrStdout(), lang, lem)
	return err
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	lvl, err := config.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func requireConfig() (config.Config, error) {
	if activeCfg.Paths.DictDir == "" || activeCfg.Lemma.Engine == "" {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return activeCfg, nil
}
