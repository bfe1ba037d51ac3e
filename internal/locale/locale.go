// Package locale holds the diagnostic message catalogue in English,
// Belarusian and Russian. Messages are produced by a table keyed on
// (diagnostic code, locale); entity nouns carry grammatical forms so the
// templates read naturally in each language.
package locale

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Locale enumerates the supported message languages.
type Locale uint8

const (
	En Locale = iota
	Be
	Ru
)

func (l Locale) String() string {
	switch l {
	case Be:
		return "be"
	case Ru:
		return "ru"
	default:
		return "en"
	}
}

var supported = []language.Tag{
	language.English,
	language.MustParse("be"),
	language.Russian,
}

var matcher = language.NewMatcher(supported)

// Detect picks the message locale. An explicit value (the --locale flag)
// wins, then LC_ALL, LC_MESSAGES and LANG; English is the fallback.
func Detect(explicit string) Locale {
	candidates := []string{explicit}
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		candidates = append(candidates, os.Getenv(env))
	}
	tags := make([]language.Tag, 0, len(candidates))
	for _, raw := range candidates {
		raw = strings.TrimSpace(raw)
		if raw == "" || raw == "C" || raw == "POSIX" {
			continue
		}
		// "ru_RU.UTF-8" -> "ru-RU"
		if i := strings.IndexByte(raw, '.'); i >= 0 {
			raw = raw[:i]
		}
		raw = strings.ReplaceAll(raw, "_", "-")
		if tag, err := language.Parse(raw); err == nil {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return En
	}
	_, index, _ := matcher.Match(tags...)
	return Locale(index)
}
