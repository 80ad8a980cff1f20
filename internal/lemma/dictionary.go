package lemma

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Dictionary file suffixes, in lookup order.
const (
	SuffixTSV   = ".tsv"
	SuffixTSVGz = ".tsv.gz"
)

const byteOrderMark = "\ufeff"

type DictionaryOptions struct {
	// Dir holds one <lang>.tsv or <lang>.tsv.gz file per language.
	Dir string
	// CaseFallback retries a missed lookup with the lower-cased token.
	CaseFallback bool
}

// Dictionary looks tokens up in per-language "lemma<TAB>form" tables. A
// language's table is read on its first lookup and kept for the lifetime of
// the Dictionary. Tokens missing from the table are returned unchanged.
type Dictionary struct {
	opts DictionaryOptions

	mu     sync.Mutex
	tables map[string]*tableEntry
}

type tableEntry struct {
	forms map[string]string
	lower cases.Caser
	err   error
}

func NewDictionary(opts DictionaryOptions) *Dictionary {
	return &Dictionary{
		opts:   opts,
		tables: make(map[string]*tableEntry),
	}
}

func (d *Dictionary) Lemmatize(token, lang string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	t := d.table(lang)
	if t.err != nil {
		return "", t.err
	}

	key := norm.NFC.String(token)
	if l, ok := t.forms[key]; ok {
		return l, nil
	}
	if d.opts.CaseFallback {
		if l, ok := t.forms[t.lower.String(key)]; ok {
			return l, nil
		}
	}
	return token, nil
}

// Has reports whether a dictionary file exists for lang.
func (d *Dictionary) Has(lang string) bool {
	_, err := d.Path(lang)
	return err == nil
}

// Path returns the dictionary file used for lang.
func (d *Dictionary) Path(lang string) (string, error) {
	if !validLangCode(lang) {
		return "", unsupported("dictionary", lang)
	}
	for _, suffix := range []string{SuffixTSV, SuffixTSVGz} {
		p := filepath.Join(d.opts.Dir, lang+suffix)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w (no %s%s in %s)", unsupported("dictionary", lang), lang, SuffixTSV, d.opts.Dir)
}

// Languages lists the language codes that have a dictionary file in Dir.
func (d *Dictionary) Languages() ([]string, error) {
	entries, err := os.ReadDir(d.opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("read dictionary dir: %w", err)
	}

	seen := make(map[string]bool)
	var langs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		var lang string
		switch {
		case strings.HasSuffix(name, SuffixTSVGz):
			lang = strings.TrimSuffix(name, SuffixTSVGz)
		case strings.HasSuffix(name, SuffixTSV):
			lang = strings.TrimSuffix(name, SuffixTSV)
		default:
			continue
		}
		if lang == "" || seen[lang] {
			continue
		}
		seen[lang] = true
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs, nil
}

// table returns the loaded entry for lang, loading it on first use. Load
// failures are remembered so every later lookup reports the same error.
func (d *Dictionary) table(lang string) *tableEntry {
	if t, ok := d.tables[lang]; ok {
		return t
	}

	t := &tableEntry{lower: cases.Lower(parseTag(lang))}
	path, err := d.Path(lang)
	if err != nil {
		t.err = err
	} else {
		start := time.Now()
		t.forms, t.err = LoadFile(path)
		if t.err == nil {
			slog.Debug("dictionary loaded",
				"lang", lang,
				"path", path,
				"entries", len(t.forms),
				"elapsed", time.Since(start),
			)
		}
	}
	d.tables[lang] = t
	return t
}

// LoadFile reads a dictionary file, transparently decompressing .gz files.
func LoadFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip dictionary %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	forms, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse dictionary %s: %w", path, err)
	}
	return forms, nil
}

// Parse reads "lemma<TAB>form" lines into a form -> lemma map. Blank lines
// and lines starting with '#' are skipped. The first lemma listed for a form
// wins. Forms are stored in NFC.
func Parse(r io.Reader) (map[string]string, error) {
	forms := make(map[string]string)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, byteOrderMark)
		}
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		lemma, form, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("line %d: expected lemma<TAB>form", lineNo)
		}
		// Extra columns are ignored.
		form, _, _ = strings.Cut(form, "\t")
		lemma = strings.TrimSpace(lemma)
		form = strings.TrimSpace(form)
		if lemma == "" || form == "" {
			return nil, fmt.Errorf("line %d: empty lemma or form", lineNo)
		}

		key := norm.NFC.String(form)
		if _, dup := forms[key]; !dup {
			forms[key] = norm.NFC.String(lemma)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read line %d: %w", lineNo+1, err)
	}
	return forms, nil
}

func parseTag(lang string) language.Tag {
	tag, err := language.Parse(lang)
	if err != nil {
		return language.Und
	}
	return tag
}

// validLangCode rejects codes that would escape the dictionary directory.
func validLangCode(lang string) bool {
	if lang == "" || lang == "." || lang == ".." {
		return false
	}
	return !strings.ContainsAny(lang, `/\`) && !strings.ContainsRune(lang, 0)
}
