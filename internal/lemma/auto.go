package lemma

import (
	"log/slog"
	"sync"
)

// Auto picks an engine per language: the dictionary when a file exists for
// the language, otherwise the Snowball stemmer when it supports it. The
// choice is made on first use of a language and not revisited.
type Auto struct {
	dict *Dictionary
	stem *Snowball

	mu     sync.Mutex
	chosen map[string]Lemmatizer
}

func NewAuto(dict *Dictionary, stem *Snowball) *Auto {
	return &Auto{
		dict:   dict,
		stem:   stem,
		chosen: make(map[string]Lemmatizer),
	}
}

func (a *Auto) Lemmatize(token, lang string) (string, error) {
	engine, err := a.EngineFor(lang)
	if err != nil {
		return "", err
	}
	return engine.Lemmatize(token, lang)
}

// EngineFor returns the engine used for lang.
func (a *Auto) EngineFor(lang string) (Lemmatizer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if l, ok := a.chosen[lang]; ok {
		return l, nil
	}

	var engine Lemmatizer
	var name string
	switch {
	case a.dict.Has(lang):
		engine, name = a.dict, "dictionary"
	case a.stem.Supports(lang):
		engine, name = a.stem, "snowball"
	default:
		return nil, unsupported("auto", lang)
	}

	slog.Debug("lemma engine selected", "lang", lang, "engine", name)
	a.chosen[lang] = engine
	return engine, nil
}
