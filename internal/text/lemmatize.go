package text

import (
	"fmt"
	"strings"
)

// Lemmatizer is the minimal interface required by LemmatizeLine.
// It is satisfied by every engine in the lemma package.
type Lemmatizer interface {
	Lemmatize(token, lang string) (string, error)
}

// LemmatizeLine replaces every whitespace-delimited token of line with its
// lemma and joins the results with single spaces. Each occurrence of a token
// is looked up separately. The first failed lookup aborts the line.
func LemmatizeLine(line, lang string, lem Lemmatizer) (string, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return "", nil
	}

	lemmas := make([]string, len(tokens))
	for i, tok := range tokens {
		l, err := lem.Lemmatize(tok, lang)
		if err != nil {
			return "", fmt.Errorf("lemmatize %q: %w", tok, err)
		}
		lemmas[i] = l
	}
	return strings.Join(lemmas, " "), nil
}
