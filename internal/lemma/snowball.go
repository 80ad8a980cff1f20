package lemma

import (
	"sort"
	"strings"

	"github.com/kljensen/snowball/english"
	"github.com/kljensen/snowball/french"
	"github.com/kljensen/snowball/norwegian"
	"github.com/kljensen/snowball/russian"
	"github.com/kljensen/snowball/spanish"
	"github.com/kljensen/snowball/swedish"
)

type stemFunc func(word string, stemStopWords bool) string

// Snowball reduces tokens to their Snowball stem. The stem is a best-effort
// base form and is always lower-case.
type Snowball struct {
	stemmers map[string]stemFunc
}

func NewSnowball() *Snowball {
	return &Snowball{
		stemmers: map[string]stemFunc{
			"en": english.Stem,
			"es": spanish.Stem,
			"fr": french.Stem,
			"nb": norwegian.Stem,
			"no": norwegian.Stem,
			"ru": russian.Stem,
			"sv": swedish.Stem,
		},
	}
}

func (s *Snowball) Lemmatize(token, lang string) (string, error) {
	stem, ok := s.stemmers[strings.ToLower(lang)]
	if !ok {
		return "", unsupported("snowball", lang)
	}
	return stem(token, false), nil
}

// Supports reports whether a stemmer exists for lang.
func (s *Snowball) Supports(lang string) bool {
	_, ok := s.stemmers[strings.ToLower(lang)]
	return ok
}

// Languages lists the supported language codes.
func (s *Snowball) Languages() []string {
	out := make([]string, 0, len(s.stemmers))
	for lang := range s.stemmers {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}
