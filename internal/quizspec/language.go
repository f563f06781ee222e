package quizspec

import "strings"

var languageNames = map[string]string{
	"en": "English",
	"ro": "Romanian",
	"fr": "French",
	"de": "German",
	"es": "Spanish",
	"it": "Italian",
	"pt": "Portuguese",
	"hu": "Hungarian",
	"nl": "Dutch",
	"pl": "Polish",
}

const fallbackLanguage = "en"

// LanguageName returns the English name of a supported language code.
func LanguageName(code string) (string, bool) {
	name, ok := languageNames[strings.ToLower(strings.TrimSpace(code))]
	return name, ok
}

// NormalizeLanguage maps code onto the supported set, falling back to def and
// then to English. Region suffixes such as "pt-BR" are reduced to the base code.
func NormalizeLanguage(code, def string) string {
	c := strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(c, "-_"); i > 0 {
		c = c[:i]
	}
	if _, ok := languageNames[c]; ok {
		return c
	}
	d := strings.ToLower(strings.TrimSpace(def))
	if _, ok := languageNames[d]; ok {
		return d
	}
	return fallbackLanguage
}
