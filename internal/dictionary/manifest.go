// Package dictionary fetches and verifies the per-language lemma tables read
// by the lemma package's Dictionary engine.
package dictionary

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// DefaultSource is the public lemmatization-lists corpus. Its files use
	// the "lemma<TAB>form" layout the lemma package reads.
	DefaultSource = "michmech/lemmatization-lists"
	// DefaultBaseURL serves raw files of DefaultSource.
	DefaultBaseURL = "https://raw.githubusercontent.com"

	LockFileName = "download-manifest.lock.json"
)

type Manifest struct {
	Source string           `json:"source"`
	Files  []DictionaryFile `json:"files"`
}

type DictionaryFile struct {
	Lang     string `json:"lang"`
	Remote   string `json:"remote"`
	Revision string `json:"revision"`
	// SHA256 is optional. When empty the digest observed on first download is
	// recorded in the lock manifest and enforced afterwards.
	SHA256 string `json:"sha256"`
}

// LocalName is the file name written into the dictionary directory.
func (f DictionaryFile) LocalName() string {
	return f.Lang + ".tsv"
}

var lemmatizationListsLangs = []string{
	"ast", "bg", "ca", "cs", "cy", "de", "en", "es", "et", "fa", "fr", "ga",
	"gd", "gl", "gv", "hu", "it", "pt", "ro", "ru", "sk", "sl", "sv", "uk",
}

func PinnedManifest(source string) (Manifest, error) {
	switch source {
	case DefaultSource:
		files := make([]DictionaryFile, 0, len(lemmatizationListsLangs))
		for _, lang := range lemmatizationListsLangs {
			files = append(files, DictionaryFile{
				Lang:     lang,
				Remote:   "lemmatization-" + lang + ".txt",
				Revision: "master",
			})
		}
		return Manifest{Source: source, Files: files}, nil
	default:
		return Manifest{}, fmt.Errorf("no pinned manifest for source %q", source)
	}
}

// Languages lists the language codes the manifest can provide.
func (m Manifest) Languages() []string {
	out := make([]string, 0, len(m.Files))
	for _, f := range m.Files {
		out = append(out, f.Lang)
	}
	sort.Strings(out)
	return out
}

// Select returns the files for langs in the order given. An empty langs
// selects every file.
func (m Manifest) Select(langs []string) ([]DictionaryFile, error) {
	if len(langs) == 0 {
		return append([]DictionaryFile(nil), m.Files...), nil
	}

	byLang := make(map[string]DictionaryFile, len(m.Files))
	for _, f := range m.Files {
		byLang[f.Lang] = f
	}

	out := make([]DictionaryFile, 0, len(langs))
	var missing []string
	for _, lang := range langs {
		f, ok := byLang[strings.ToLower(strings.TrimSpace(lang))]
		if !ok {
			missing = append(missing, lang)
			continue
		}
		out = append(out, f)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("source %s has no dictionary for %s (available: %s)",
			m.Source, strings.Join(missing, ", "), strings.Join(m.Languages(), " "))
	}
	return out, nil
}
