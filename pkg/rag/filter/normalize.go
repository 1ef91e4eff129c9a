package filter

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type translation struct {
	from string
	to   string
}

// translations maps folded Albanian vocabulary to the English indexing term,
// longest phrases first.
var translations = buildTranslations()

func buildTranslations() []translation {
	var out []translation
	add := func(terms []string, to string) {
		for _, term := range terms {
			from := strings.Join(Tokenize(term), " ")
			if from == "" || from == to {
				continue
			}
			out = append(out, translation{from: from, to: to})
		}
	}

	for _, tables := range [][]vocabEntry{colorVocabulary, materialVocabulary, sizeVocabulary, occasionVocabulary} {
		for _, entry := range tables {
			add(entry.SQ, entry.Canonical)
		}
	}
	for _, pt := range productTypes {
		add(pt.SQ, pt.Name)
	}

	sort.SliceStable(out, func(i, j int) bool {
		wi, wj := strings.Count(out[i].from, " "), strings.Count(out[j].from, " ")
		if wi != wj {
			return wi > wj
		}
		return len(out[i].from) > len(out[j].from)
	})
	return out
}

// Fold lower-cases s and strips combining marks, so "Çantë" becomes "cante".
func Fold(s string) string {
	lower := strings.ToLower(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, lower)
	if err != nil {
		return lower
	}
	return out
}

// Tokenize folds s and splits it into runs of letters and digits.
func Tokenize(s string) []string {
	return strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// NormalizeQuery lower-cases the utterance, strips punctuation and translates
// known Albanian vocabulary into the English terms the catalog is indexed in.
func NormalizeQuery(utterance string) string {
	tokens := Tokenize(utterance)
	if len(tokens) == 0 {
		return ""
	}

	padded := " " + strings.Join(tokens, " ") + " "
	for _, tr := range translations {
		needle := " " + tr.from + " "
		for strings.Contains(padded, needle) {
			padded = strings.Replace(padded, needle, " "+tr.to+" ", 1)
		}
	}

	return strings.Join(strings.Fields(padded), " ")
}

// Keywords returns the distinct non-stopword tokens of a normalized query.
func Keywords(query string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tok := range Tokenize(query) {
		if len(tok) < 2 || stopwords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

// Text is a folded, space-padded token string for whole-word phrase lookups.
type Text struct {
	padded string
}

func NewText(s string) Text {
	return Text{padded: " " + strings.Join(Tokenize(s), " ") + " "}
}

// Index returns the byte offset of the phrase, or -1.
func (t Text) Index(phrase string) int {
	tokens := Tokenize(phrase)
	if len(tokens) == 0 {
		return -1
	}
	return strings.Index(t.padded, " "+strings.Join(tokens, " ")+" ")
}

func (t Text) Contains(phrase string) bool {
	return t.Index(phrase) >= 0
}

// ContainsAny reports whether any of the phrases occurs in t.
func (t Text) ContainsAny(phrases []string) bool {
	for _, p := range phrases {
		if t.Contains(p) {
			return true
		}
	}
	return false
}

// firstMention returns the entry whose terms appear earliest in t.
// Ties on position go to the earlier table entry.
func firstMention(t Text, entries []vocabEntry) (vocabEntry, bool) {
	bestPos, bestLen := -1, 0
	var best vocabEntry
	for _, entry := range entries {
		for _, term := range entry.terms() {
			pos := t.Index(term)
			if pos < 0 {
				continue
			}
			// at the same position the longer phrase wins: "rose gold" over "rose"
			if bestPos < 0 || pos < bestPos || (pos == bestPos && len(term) > bestLen) {
				bestPos, bestLen = pos, len(term)
				best = entry
			}
		}
	}
	return best, bestPos >= 0
}
