package text

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Process reads all of r, lemmatizes it line by line for lang and writes one
// output line per input line to w, in input order. The first error stops
// processing; lines already produced are still flushed to w. It returns the
// number of lines written.
func Process(r io.Reader, w io.Writer, lang string, lem Lemmatizer) (int, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return 0, err
	}

	out := NewLineWriter(w)
	for i, line := range lines {
		lemmatized, err := LemmatizeLine(line, lang, lem)
		if err == nil {
			err = out.WriteLine(lemmatized)
		}
		if err != nil {
			err = fmt.Errorf("line %d: %w", i+1, err)
			if flushErr := out.Flush(); flushErr != nil {
				err = errors.Join(err, flushErr)
			}
			return out.Lines(), err
		}
	}

	if err := out.Flush(); err != nil {
		return out.Lines(), err
	}
	slog.Debug("input lemmatized", "lang", lang, "lines", out.Lines())
	return out.Lines(), nil
}
