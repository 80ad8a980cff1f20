package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/go-lemmatize/internal/dictionary"
	"github.com/example/go-lemmatize/internal/lemma"
	"github.com/spf13/cobra"
)

func newDictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Dictionary acquisition and verification commands",
	}

	cmd.AddCommand(newDictDownloadCmd())
	cmd.AddCommand(newDictVerifyCmd())
	cmd.AddCommand(newDictListCmd())
	return cmd
}

func newDictDownloadCmd() *cobra.Command {
	var source string
	var baseURL string
	var token string
	var all bool

	cmd := &cobra.Command{
		Use:   "download [language...]",
		Short: "Download lemma dictionaries into the dictionary directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			if len(args) == 0 && !all {
				return errors.New("name at least one language or pass --all")
			}
			if all {
				args = nil
			}
			if token == "" {
				token = os.Getenv("LEMMATIZE_DICT_TOKEN")
			}

			err = dictionary.Download(cmd.Context(), dictionary.DownloadOptions{
				Source:  source,
				Langs:   args,
				OutDir:  cfg.Paths.DictDir,
				BaseURL: baseURL,
				Token:   token,
				Stdout:  cmd.OutOrStdout(),
			})
			if err != nil {
				return fmt.Errorf("dictionary download failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", dictionary.DefaultSource, "Dictionary source repository")
	cmd.Flags().StringVar(&baseURL, "base-url", dictionary.DefaultBaseURL, "Base URL serving raw source files")
	cmd.Flags().StringVar(&token, "token", "", "Bearer token (falls back to LEMMATIZE_DICT_TOKEN env var)")
	cmd.Flags().BoolVar(&all, "all", false, "Download every language the source provides")

	return cmd
}

func newDictVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check downloaded dictionaries against the lock manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			return dictionary.Verify(dictionary.VerifyOptions{
				Dir:    cfg.Paths.DictDir,
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
			})
		},
	}
}

func newDictListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed, downloadable and stemmer-backed languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			dict := lemma.NewDictionary(lemma.DictionaryOptions{Dir: cfg.Paths.DictDir})
			installed, err := dict.Languages()
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			_, _ = fmt.Fprintf(out, "installed (%s): %s\n", filepath.Clean(cfg.Paths.DictDir), joinOrNone(installed))

			manifest, err := dictionary.PinnedManifest(dictionary.DefaultSource)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "downloadable (%s): %s\n", manifest.Source, joinOrNone(manifest.Languages()))
			_, _ = fmt.Fprintf(out, "snowball: %s\n", joinOrNone(lemma.NewSnowball().Languages()))
			return nil
		},
	}
}

func joinOrNone(langs []string) string {
	if len(langs) == 0 {
		return "(none)"
	}
	return strings.Join(langs, " ")
}
