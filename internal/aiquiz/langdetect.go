package aiquiz

import (
	"strings"
	"unicode"
)

// Stop words that are frequent in one language and rare in the others. The
// check built on them is a quality gate only.
var stopWords = map[string][]string{
	"en": {"the", "and", "of", "which", "what", "with", "are", "this", "that", "from", "was", "were", "does", "how", "is"},
	"ro": {"și", "si", "este", "care", "sunt", "din", "pentru", "mai", "cu", "unui", "unei", "acest", "această", "aceasta", "fost"},
	"fr": {"le", "les", "et", "est", "des", "une", "du", "qui", "dans", "pour", "pas", "sont", "cette", "quel", "quelle"},
	"de": {"der", "die", "das", "und", "ist", "nicht", "ein", "eine", "mit", "welche", "welcher", "sind", "auf", "wird", "dem"},
	"es": {"el", "los", "las", "y", "es", "del", "por", "para", "cuál", "qué", "son", "está", "como", "su", "al"},
	"it": {"il", "gli", "è", "della", "che", "di", "per", "sono", "quale", "non", "nel", "alla", "dei", "delle", "questo"},
	"pt": {"o", "os", "é", "uma", "do", "da", "para", "com", "não", "qual", "são", "dos", "das", "em", "no"},
	"hu": {"az", "és", "hogy", "egy", "nem", "van", "melyik", "meg", "ez", "volt", "vagy", "mint", "kell", "csak", "mert"},
	"nl": {"het", "en", "een", "van", "niet", "dat", "op", "zijn", "met", "welke", "wat", "voor", "wordt", "ook", "bij"},
	"pl": {"i", "w", "na", "się", "jest", "nie", "to", "z", "że", "jak", "który", "która", "które", "są", "czy"},
}

var stopWordIndex = func() map[string][]string {
	idx := make(map[string][]string)
	for lang, words := range stopWords {
		for _, w := range words {
			idx[w] = append(idx[w], lang)
		}
	}
	return idx
}()

const (
	minWordsForLanguage = 20
	minLanguageHits     = 4
)

// languageMismatch guesses the language of text from stop word hits and
// reports whether another language clearly outscores want. Short texts and
// unknown target languages are never reported.
func languageMismatch(text, want string) (string, bool) {
	if _, ok := stopWords[want]; !ok {
		return "", false
	}

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) < minWordsForLanguage {
		return "", false
	}

	hits := make(map[string]int)
	for _, w := range words {
		for _, lang := range stopWordIndex[w] {
			hits[lang]++
		}
	}

	best, bestHits := "", 0
	for lang, n := range hits {
		if n > bestHits || (n == bestHits && lang < best) {
			best, bestHits = lang, n
		}
	}

	if best == "" || best == want || bestHits < minLanguageHits {
		return best, false
	}
	return best, bestHits > 2*hits[want]
}
