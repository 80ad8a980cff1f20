// Package testutil provides shared fixtures and skip helpers for tests.
//
// Typical usage:
//
//	func TestMyLookup(t *testing.T) {
//	    dir := t.TempDir()
//	    testutil.WriteDictionary(t, dir, "en", map[string]string{"dogs": "dog"})
//	    ...
//	}
package testutil

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// ErrStubLookup is returned by StubLemmatizer when Fail reports a failure
// without supplying its own error.
var ErrStubLookup = errors.New("stub lookup failed")

// OnlineEnv enables tests that reach the public dictionary source.
const OnlineEnv = "LEMMATIZE_ONLINE_TESTS"

// RequireOnline skips the test unless OnlineEnv is set to "1".
func RequireOnline(tb testing.TB) {
	tb.Helper()

	if os.Getenv(OnlineEnv) != "1" {
		tb.Skipf("network tests disabled; set %s=1 to enable", OnlineEnv)
	}
}

// DictionaryContent renders form -> lemma pairs in the on-disk
// "lemma<TAB>form" format, sorted by form.
func DictionaryContent(forms map[string]string) string {
	keys := make([]string, 0, len(forms))
	for form := range forms {
		keys = append(keys, form)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, form := range keys {
		b.WriteString(forms[form])
		b.WriteByte('\t')
		b.WriteString(form)
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteDictionary writes dir/<lang>.tsv and returns its path.
func WriteDictionary(tb testing.TB, dir, lang string, forms map[string]string) string {
	tb.Helper()

	return WriteFile(tb, filepath.Join(dir, lang+".tsv"), []byte(DictionaryContent(forms)))
}

// WriteGzipDictionary writes dir/<lang>.tsv.gz and returns its path.
func WriteGzipDictionary(tb testing.TB, dir, lang string, forms map[string]string) string {
	tb.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(DictionaryContent(forms))); err != nil {
		tb.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		tb.Fatalf("gzip close: %v", err)
	}

	return WriteFile(tb, filepath.Join(dir, lang+".tsv.gz"), buf.Bytes())
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(tb testing.TB, path string, data []byte) string {
	tb.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}

// StubLemmatizer maps tokens through Lemmas, echoing unknown tokens. Every
// call is recorded in Calls as "lang:token".
type StubLemmatizer struct {
	Lemmas map[string]string
	// Fail, when set, is consulted before the lookup; a non-nil result is
	// returned as the lookup error.
	Fail  func(token, lang string) error
	Calls []string
}

func (s *StubLemmatizer) Lemmatize(token, lang string) (string, error) {
	s.Calls = append(s.Calls, lang+":"+token)
	if s.Fail != nil {
		if err := s.Fail(token, lang); err != nil {
			return "", err
		}
	}
	if l, ok := s.Lemmas[token]; ok {
		return l, nil
	}
	return token, nil
}

// FailOnToken returns a Fail hook that reports ErrStubLookup for token.
func FailOnToken(token string) func(string, string) error {
	return func(tok, _ string) error {
		if tok == token {
			return ErrStubLookup
		}
		return nil
	}
}
