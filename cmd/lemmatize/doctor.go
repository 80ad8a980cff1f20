package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/go-lemmatize/internal/config"
	"github.com/example/go-lemmatize/internal/dictionary"
	"github.com/example/go-lemmatize/internal/doctor"
	"github.com/example/go-lemmatize/internal/lemma"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	var langs []string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run local dictionary and engine checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			_, _ = fmt.Fprintf(out, "engine: %s\n", cfg.Lemma.Engine)

			dict := lemma.NewDictionary(lemma.DictionaryOptions{
				Dir:          cfg.Paths.DictDir,
				CaseFallback: cfg.Lemma.CaseFallback,
			})
			_, lockErr := os.Stat(filepath.Join(cfg.Paths.DictDir, dictionary.LockFileName))

			result := doctor.Run(doctor.Config{
				DictDir:             cfg.Paths.DictDir,
				RequireDictionaries: cfg.Lemma.Engine == config.EngineDictionary,
				ListDictionaries:    dict.Languages,
				LoadDictionary:      func(lang string) (int, error) { return countEntries(dict, lang) },
				HasLock:             lockErr == nil,
				VerifyLock: func() error {
					return dictionary.Verify(dictionary.VerifyOptions{Dir: cfg.Paths.DictDir})
				},
				ProbeLangs: langs,
				Resolve:    func(lang string) (string, error) { return resolveEngine(cfg, lang) },
			}, out)

			if result.Failed() {
				for _, f := range result.Failures() {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(out, "doctor checks passed")

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&langs, "lang", nil, "Language code to probe (repeatable)")

	return cmd
}

func countEntries(dict *lemma.Dictionary, lang string) (int, error) {
	path, err := dict.Path(lang)
	if err != nil {
		return 0, err
	}
	forms, err := lemma.LoadFile(path)
	if err != nil {
		return 0, err
	}
	return len(forms), nil
}

// resolveEngine names the engine that would serve lang under cfg.
func resolveEngine(cfg config.Config, lang string) (string, error) {
	l, err := lemma.New(cfg)
	if err != nil {
		return "", err
	}

	switch e := l.(type) {
	case *lemma.Auto:
		chosen, err := e.EngineFor(lang)
		if err != nil {
			return "", err
		}
		return engineName(chosen), nil
	case *lemma.Dictionary:
		path, err := e.Path(lang)
		if err != nil {
			return "", err
		}
		return "dictionary (" + path + ")", nil
	case *lemma.Snowball:
		if !e.Supports(lang) {
			return "", fmt.Errorf("snowball: %w %q", lemma.ErrUnsupportedLanguage, lang)
		}
		return "snowball", nil
	default:
		return fmt.Sprintf("%T", l), nil
	}
}

func engineName(l lemma.Lemmatizer) string {
	switch l.(type) {
	case *lemma.Dictionary:
		return "dictionary"
	case *lemma.Snowball:
		return "snowball"
	default:
		return fmt.Sprintf("%T", l)
	}
}
