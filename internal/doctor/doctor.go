// Package doctor provides environment preflight checks for lemmatize.
package doctor

import (
	"fmt"
	"io"
	"os"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// DictDir is the configured dictionary directory.
	DictDir string
	// RequireDictionaries turns a missing DictDir into a failure (dictionary
	// engine mode). Otherwise the dictionary checks are skipped.
	RequireDictionaries bool
	// ListDictionaries returns the languages that have a dictionary file.
	ListDictionaries func() ([]string, error)
	// LoadDictionary parses the dictionary for lang and returns its entry count.
	LoadDictionary func(lang string) (int, error)
	// VerifyLock checks the download lock manifest. It is skipped when nil
	// or when HasLock reports false.
	VerifyLock func() error
	HasLock    bool
	// ProbeLangs are resolved through Resolve, which names the engine that
	// would serve each language.
	ProbeLangs []string
	Resolve    func(lang string) (string, error)
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- dictionary directory ---------------------------------------------
	dirOK := false
	fi, err := os.Stat(cfg.DictDir)
	switch {
	case err == nil && fi.IsDir():
		dirOK = true
		fmt.Fprintf(w, "%s dictionary dir: %s\n", PassMark, cfg.DictDir)
	case err == nil:
		res.fail(fmt.Sprintf("dictionary dir %q: not a directory", cfg.DictDir))
		fmt.Fprintf(w, "%s dictionary dir %s: not a directory\n", FailMark, cfg.DictDir)
	case cfg.RequireDictionaries:
		res.fail(fmt.Sprintf("dictionary dir %q: %v", cfg.DictDir, err))
		fmt.Fprintf(w, "%s dictionary dir %s: not found\n", FailMark, cfg.DictDir)
	default:
		fmt.Fprintf(w, "%s dictionary dir: skipped (%s not present)\n", PassMark, cfg.DictDir)
	}

	// ---- dictionaries -----------------------------------------------------
	if dirOK && cfg.ListDictionaries != nil {
		langs, err := cfg.ListDictionaries()
		switch {
		case err != nil:
			res.fail(fmt.Sprintf("dictionaries: %v", err))
			fmt.Fprintf(w, "%s dictionaries: %v\n", FailMark, err)
		case len(langs) == 0 && cfg.RequireDictionaries:
			res.fail("dictionaries: none installed")
			fmt.Fprintf(w, "%s dictionaries: none installed in %s\n", FailMark, cfg.DictDir)
		case len(langs) == 0:
			fmt.Fprintf(w, "%s dictionaries: none installed\n", PassMark)
		}
		for _, lang := range langs {
			checkDictionary(cfg, lang, w, &res)
		}
	}

	// ---- lock manifest ----------------------------------------------------
	switch {
	case cfg.VerifyLock == nil || !cfg.HasLock:
		fmt.Fprintf(w, "%s lock manifest: skipped (no lock manifest)\n", PassMark)
	default:
		if err := cfg.VerifyLock(); err != nil {
			res.fail(fmt.Sprintf("lock manifest: %v", err))
			fmt.Fprintf(w, "%s lock manifest: %v\n", FailMark, err)
		} else {
			fmt.Fprintf(w, "%s lock manifest: ok\n", PassMark)
		}
	}

	// ---- probe languages --------------------------------------------------
	for _, lang := range cfg.ProbeLangs {
		if cfg.Resolve == nil {
			break
		}
		engine, err := cfg.Resolve(lang)
		if err != nil {
			res.fail(fmt.Sprintf("language %q: %v", lang, err))
			fmt.Fprintf(w, "%s language %s: %v\n", FailMark, lang, err)
			continue
		}
		fmt.Fprintf(w, "%s language %s: %s\n", PassMark, lang, engine)
	}

	return res
}

func checkDictionary(cfg Config, lang string, w io.Writer, res *Result) {
	if cfg.LoadDictionary == nil {
		fmt.Fprintf(w, "%s dictionary %s: present\n", PassMark, lang)
		return
	}
	n, err := cfg.LoadDictionary(lang)
	if err != nil {
		res.fail(fmt.Sprintf("dictionary %q: %v", lang, err))
		fmt.Fprintf(w, "%s dictionary %s: %v\n", FailMark, lang, err)
		return
	}
	if n == 0 {
		res.fail(fmt.Sprintf("dictionary %q: no entries", lang))
		fmt.Fprintf(w, "%s dictionary %s: no entries\n", FailMark, lang)
		return
	}
	fmt.Fprintf(w, "%s dictionary %s: %d entries\n", PassMark, lang, n)
}
