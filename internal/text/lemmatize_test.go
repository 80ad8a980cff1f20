package text

import (
	"errors"
	"strings"
	"testing"

	"github.com/example/go-lemmatize/internal/testutil"
)

func TestLemmatizeLine(t *testing.T) {
	stub := &testutil.StubLemmatizer{Lemmas: map[string]string{
		"running": "run",
		"dogs":    "dog",
		"cats":    "cat",
	}}

	tests := []struct {
		name string
		line string
		want string
	}{
		{"two tokens", "running dogs", "run dog"},
		{"empty line", "", ""},
		{"whitespace only", " \t  ", ""},
		{"collapses whitespace runs", "  running \t\t dogs  ", "run dog"},
		{"unknown token echoed by collaborator", "cats sleep", "cat sleep"},
		{"punctuation stays attached", "dogs, cats.", "dogs, cats."},
		{"unicode whitespace", "running\u00a0dogs\u3000cats", "run dog cat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LemmatizeLine(tt.line, "en", stub)
			if err != nil {
				t.Fatalf("LemmatizeLine(%q): %v", tt.line, err)
			}
			if got != tt.want {
				t.Fatalf("LemmatizeLine(%q) = %q; want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestLemmatizeLine_PreservesTokenCount(t *testing.T) {
	// Lemmas containing no spaces keep the per-line token count intact, even
	// when lemmatizing output again.
	stub := &testutil.StubLemmatizer{Lemmas: map[string]string{"a": "b", "b": "c"}}

	line := "a b a x"
	once, err := LemmatizeLine(line, "en", stub)
	if err != nil {
		t.Fatalf("LemmatizeLine: %v", err)
	}
	twice, err := LemmatizeLine(once, "en", stub)
	if err != nil {
		t.Fatalf("LemmatizeLine: %v", err)
	}

	if once != "b c b x" || twice != "c c c x" {
		t.Fatalf("once=%q twice=%q", once, twice)
	}
	if len(strings.Fields(twice)) != len(strings.Fields(line)) {
		t.Fatalf("token count changed: %q -> %q", line, twice)
	}
}

func TestLemmatizeLine_LooksUpEveryOccurrence(t *testing.T) {
	stub := &testutil.StubLemmatizer{}

	if _, err := LemmatizeLine("dog dog dog", "fr", stub); err != nil {
		t.Fatalf("LemmatizeLine: %v", err)
	}

	want := []string{"fr:dog", "fr:dog", "fr:dog"}
	if strings.Join(stub.Calls, ",") != strings.Join(want, ",") {
		t.Fatalf("Calls = %v; want %v", stub.Calls, want)
	}
}

func TestLemmatizeLine_AbortsOnFirstFailure(t *testing.T) {
	stub := &testutil.StubLemmatizer{Fail: testutil.FailOnToken("bad")}

	got, err := LemmatizeLine("good bad never", "en", stub)
	if !errors.Is(err, testutil.ErrStubLookup) {
		t.Fatalf("err = %v; want ErrStubLookup", err)
	}
	if got != "" {
		t.Fatalf("got %q; want empty result on failure", got)
	}
	if len(stub.Calls) != 2 {
		t.Fatalf("Calls = %v; want lookup to stop after the failing token", stub.Calls)
	}
	if !strings.Contains(err.Error(), `"bad"`) {
		t.Fatalf("error %q does not name the failing token", err)
	}
}
