package lemma

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/go-lemmatize/internal/testutil"
)

func TestParse(t *testing.T) {
	input := "\ufeffrun\trunning\r\n" +
		"# comment\n" +
		"\n" +
		"dog\tdogs\textra\n" +
		"be\twas\n" +
		"was\twas\n"

	forms, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := map[string]string{"running": "run", "dogs": "dog", "was": "be"}
	if len(forms) != len(want) {
		t.Fatalf("Parse returned %d forms (%v); want %d", len(forms), forms, len(want))
	}
	for form, lemma := range want {
		if forms[form] != lemma {
			t.Errorf("forms[%q] = %q; want %q", form, forms[form], lemma)
		}
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  string
	}{
		{"no tab", "run\trunning\ndogs\n", "line 2"},
		{"empty form", "run\t \n", "line 1"},
		{"empty lemma", "\trunning\n", "line 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected parse error")
			}
			if !strings.Contains(err.Error(), tt.line) {
				t.Fatalf("error %q does not name %q", err, tt.line)
			}
		})
	}
}

func TestParse_NormalizesToNFC(t *testing.T) {
	// Decomposed input: "e" followed by a combining acute accent.
	forms, err := Parse(strings.NewReader("cafe\u0301\tcafe\u0301s\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := forms["caf\u00e9s"]; got != "caf\u00e9" {
		t.Fatalf("forms[cafés] = %q; want NFC key", got)
	}
}

func TestDictionary_Lemmatize(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDictionary(t, dir, "en", map[string]string{
		"running": "run",
		"dogs":    "dog",
		"went":    "go",
	})

	d := NewDictionary(DictionaryOptions{Dir: dir, CaseFallback: true})

	tests := []struct {
		token string
		want  string
	}{
		{"running", "run"},
		{"dogs", "dog"},
		{"Dogs", "dog"},
		{"WENT", "go"},
		{"unknown", "unknown"},
		{"dogs,", "dogs,"},
	}
	for _, tt := range tests {
		got, err := d.Lemmatize(tt.token, "en")
		if err != nil {
			t.Fatalf("Lemmatize(%q): %v", tt.token, err)
		}
		if got != tt.want {
			t.Errorf("Lemmatize(%q) = %q; want %q", tt.token, got, tt.want)
		}
	}
}

func TestDictionary_NoCaseFallback(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDictionary(t, dir, "en", map[string]string{"dogs": "dog"})

	d := NewDictionary(DictionaryOptions{Dir: dir})

	got, err := d.Lemmatize("Dogs", "en")
	if err != nil {
		t.Fatalf("Lemmatize: %v", err)
	}
	if got != "Dogs" {
		t.Fatalf("Lemmatize(Dogs) = %q; want unchanged token", got)
	}
}

func TestDictionary_CaseFallbackUsesLanguageRules(t *testing.T) {
	dir := t.TempDir()
	// Turkish lower-cases dotted capital I to a plain i.
	testutil.WriteDictionary(t, dir, "tr", map[string]string{"istanbul'da": "istanbul"})

	d := NewDictionary(DictionaryOptions{Dir: dir, CaseFallback: true})

	got, err := d.Lemmatize("İSTANBUL'DA", "tr")
	if err != nil {
		t.Fatalf("Lemmatize: %v", err)
	}
	if got != "istanbul" {
		t.Fatalf("Lemmatize = %q; want %q", got, "istanbul")
	}
}

func TestDictionary_Gzip(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteGzipDictionary(t, dir, "de", map[string]string{"Häuser": "Haus"})

	d := NewDictionary(DictionaryOptions{Dir: dir})

	got, err := d.Lemmatize("Häuser", "de")
	if err != nil {
		t.Fatalf("Lemmatize: %v", err)
	}
	if got != "Haus" {
		t.Fatalf("Lemmatize = %q; want Haus", got)
	}
}

func TestDictionary_PrefersPlainOverGzip(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDictionary(t, dir, "en", map[string]string{"dogs": "plain"})
	testutil.WriteGzipDictionary(t, dir, "en", map[string]string{"dogs": "gzip"})

	d := NewDictionary(DictionaryOptions{Dir: dir})

	got, err := d.Lemmatize("dogs", "en")
	if err != nil {
		t.Fatalf("Lemmatize: %v", err)
	}
	if got != "plain" {
		t.Fatalf("Lemmatize = %q; want lemma from .tsv", got)
	}
}

func TestDictionary_UnsupportedLanguage(t *testing.T) {
	d := NewDictionary(DictionaryOptions{Dir: t.TempDir()})

	for _, lang := range []string{"xx", "", "../en", "a/b"} {
		_, err := d.Lemmatize("dogs", lang)
		if !errors.Is(err, ErrUnsupportedLanguage) {
			t.Errorf("Lemmatize(lang=%q) err = %v; want ErrUnsupportedLanguage", lang, err)
		}
	}
}

func TestDictionary_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "en.tsv"), []byte("no tabs here\n"))

	d := NewDictionary(DictionaryOptions{Dir: dir})

	_, err := d.Lemmatize("dogs", "en")
	if err == nil {
		t.Fatal("expected load error for corrupt dictionary")
	}
	if errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("corrupt file reported as unsupported language: %v", err)
	}
}

func TestDictionary_LoadsOnce(t *testing.T) {
	dir := t.TempDir()
	p := testutil.WriteDictionary(t, dir, "en", map[string]string{"dogs": "dog"})

	d := NewDictionary(DictionaryOptions{Dir: dir})
	if _, err := d.Lemmatize("dogs", "en"); err != nil {
		t.Fatalf("first Lemmatize: %v", err)
	}

	if err := os.Remove(p); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	got, err := d.Lemmatize("dogs", "en")
	if err != nil {
		t.Fatalf("second Lemmatize after removal: %v", err)
	}
	if got != "dog" {
		t.Fatalf("Lemmatize = %q; want dog from the loaded table", got)
	}
}

func TestDictionary_Languages(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDictionary(t, dir, "en", nil)
	testutil.WriteGzipDictionary(t, dir, "de", nil)
	testutil.WriteGzipDictionary(t, dir, "en", nil)
	testutil.WriteFile(t, filepath.Join(dir, "notes.txt"), []byte("x"))
	if err := os.Mkdir(filepath.Join(dir, "fr.tsv"), 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	d := NewDictionary(DictionaryOptions{Dir: dir})

	got, err := d.Languages()
	if err != nil {
		t.Fatalf("Languages: %v", err)
	}
	if strings.Join(got, ",") != "de,en" {
		t.Fatalf("Languages = %v; want [de en]", got)
	}

	if d.Has("fr") {
		t.Error("Has(fr) = true for a directory named fr.tsv")
	}
}

func TestDictionary_LanguagesMissingDir(t *testing.T) {
	d := NewDictionary(DictionaryOptions{Dir: filepath.Join(t.TempDir(), "absent")})
	if _, err := d.Languages(); err == nil {
		t.Fatal("expected error for missing dictionary dir")
	}
}
