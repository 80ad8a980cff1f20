// Package lemma provides the engines that map a token to its base form for a
// language code.
package lemma

import (
	"errors"
	"fmt"

	"github.com/example/go-lemmatize/internal/config"
)

// ErrUnsupportedLanguage is wrapped by every engine when no dictionary or
// stemmer exists for the requested language.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Lemmatizer maps a single token to its lemma for a language code.
type Lemmatizer interface {
	Lemmatize(token, lang string) (string, error)
}

// Func adapts a plain function to the Lemmatizer interface.
type Func func(token, lang string) (string, error)

func (f Func) Lemmatize(token, lang string) (string, error) { return f(token, lang) }

func unsupported(engine, lang string) error {
	return fmt.Errorf("%s: %w %q", engine, ErrUnsupportedLanguage, lang)
}

// New builds the engine selected by cfg.Lemma.Engine.
func New(cfg config.Config) (Lemmatizer, error) {
	engine, err := config.NormalizeEngine(cfg.Lemma.Engine)
	if err != nil {
		return nil, err
	}

	dict := NewDictionary(DictionaryOptions{
		Dir:          cfg.Paths.DictDir,
		CaseFallback: cfg.Lemma.CaseFallback,
	})

	switch engine {
	case config.EngineDictionary:
		return dict, nil
	case config.EngineSnowball:
		return NewSnowball(), nil
	case config.EngineAuto:
		return NewAuto(dict, NewSnowball()), nil
	default:
		return nil, fmt.Errorf("unsupported lemma engine %q", engine)
	}
}
