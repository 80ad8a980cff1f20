package config

import (
	"fmt"
	"strings"
)

const (
	EngineAuto       = "auto"
	EngineDictionary = "dictionary"
	EngineSnowball   = "snowball"
)

func NormalizeEngine(raw string) (string, error) {
	engine := strings.ToLower(strings.TrimSpace(raw))
	if engine == "" {
		engine = EngineAuto
	}
	switch engine {
	case EngineAuto, EngineDictionary, EngineSnowball:
		return engine, nil
	case "dict":
		return EngineDictionary, nil
	case "stem", "stemmer":
		return EngineSnowball, nil
	default:
		return "", fmt.Errorf(
			"invalid lemma engine %q (expected %s|%s|%s)",
			raw,
			EngineAuto,
			EngineDictionary,
			EngineSnowball,
		)
	}
}
