// Package format converts loosely-punctuated spoken English into exact CLI
// syntax: phrase substitution, single-token symbol mapping with join
// behavior, spoken-number collapsing, and user-supplied correction overlays.
package format

import (
	"log"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/voxterm/voxterm/internal/corrections"
)

type phraseRule struct {
	re          *regexp.Regexp
	replacement string
}

// Formatter is the deterministic transcript rewriter. All tables are built
// once in New and never mutated; Format is safe for concurrent use.
type Formatter struct {
	phrases     []phraseRule // user phrases + replacements first, then built-ins
	corrections []phraseRule
	fillerRe    *regexp.Regexp
	gatedRe     *regexp.Regexp
	userWords   map[string]wordRule // checked before built-ins
}

// New builds a Formatter with the built-in tables merged under the user
// overlay. A nil overlay means built-ins only.
func New(overlay *corrections.Set) *Formatter {
	f := &Formatter{
		userWords: make(map[string]wordRule),
	}

	if overlay != nil {
		for _, e := range overlay.Phrases {
			f.phrases = append(f.phrases, phraseRule{wholePhraseRe(e.Spoken), e.Replacement})
		}
		for _, e := range overlay.Replacements {
			f.phrases = append(f.phrases, phraseRule{wholePhraseRe(e.Spoken), e.Replacement})
		}
		for _, e := range overlay.Symbols {
			f.userWords[e.Spoken] = wordRule{symbol: e.Replacement, join: Prefix}
		}
	}

	builtins := make([]phraseRule, 0, len(phraseMap))
	longest := append([]struct{ spoken, symbol string }{}, phraseMap...)
	sort.SliceStable(longest, func(i, j int) bool {
		return len(longest[i].spoken) > len(longest[j].spoken)
	})
	for _, p := range longest {
		builtins = append(builtins, phraseRule{wholePhraseRe(p.spoken), p.symbol})
	}
	f.phrases = append(f.phrases, builtins...)

	for _, c := range cliCorrections {
		f.corrections = append(f.corrections, phraseRule{wholePhraseRe(c.spoken), c.replacement})
	}

	f.fillerRe = regexp.MustCompile(`(?i)\b(` + strings.Join(fillers, "|") + `)\b,?`)
	f.gatedRe = regexp.MustCompile(`(?i)\b(` + strings.Join(commaGatedFillers, "|") + `),(\s|$)`)

	return f
}

// Format rewrites spoken text into CLI syntax. It is total: the worst case
// returns the cleaned input unchanged.
func (f *Formatter) Format(text string) string {
	original := text

	text = f.normalize(text)
	if text == "" {
		return ""
	}

	// Filler removal, then stray recognizer commas.
	text = f.gatedRe.ReplaceAllString(text, " ")
	text = f.fillerRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, ", ", " ")
	text = strings.TrimSuffix(strings.TrimSpace(text), ",")
	text = collapseSpaces(text)

	for _, c := range f.corrections {
		text = c.re.ReplaceAllString(text, c.replacement)
	}

	text = collapseNumbers(text)

	for _, p := range f.phrases {
		text = p.re.ReplaceAllString(text, p.replacement)
	}

	result := renderTokens(f.mapTokens(text))
	result = collapseSpaces(result)

	if result != strings.TrimSpace(original) {
		log.Printf("format: %q -> %q", strings.TrimSpace(original), result)
	}
	return result
}

// normalize lowercases, strips wrapping quotes and trailing sentence
// punctuation, and collapses whitespace.
func (f *Formatter) normalize(text string) string {
	text = strings.TrimSpace(text)
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if first == last && (first == '"' || first == '\'') {
			text = text[1 : len(text)-1]
		}
	}
	text = strings.ToLower(text)
	// Trailing sentence punctuation is a recognizer artifact, but only when
	// it follows a word: "cd .." must keep its dots.
	for len(text) >= 2 {
		last := text[len(text)-1]
		if (last == '.' || last == '!' || last == '?') && isAlnumByte(text[len(text)-2]) {
			text = text[:len(text)-1]
			continue
		}
		break
	}
	return collapseSpaces(text)
}

type token struct {
	text string
	join JoinBehavior
}

// mapTokens applies single-word mappings (user overlay first) and classifies
// unmapped tokens.
func (f *Formatter) mapTokens(text string) []token {
	words := strings.Fields(text)
	tokens := make([]token, 0, len(words))

	for _, word := range words {
		key := strings.Trim(strings.ToLower(word), ".,!?;:")
		if rule, ok := f.userWords[key]; ok {
			tokens = append(tokens, token{rule.symbol, rule.join})
			continue
		}
		if rule, ok := wordMap[key]; ok {
			tokens = append(tokens, token{rule.symbol, rule.join})
			continue
		}
		tokens = append(tokens, token{word, classifyToken(word)})
	}

	return tokens
}

func classifyToken(word string) JoinBehavior {
	if _, ok := symbolPrefixes[word]; ok {
		return Prefix
	}
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return Keep
		}
	}
	return Infix
}

// renderTokens joins the token sequence: no space when the previous token is
// Prefix, the current token is Infix, or the previous token is Infix.
func renderTokens(tokens []token) string {
	if len(tokens) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(tokens[0].text)
	for i := 1; i < len(tokens); i++ {
		prev, curr := tokens[i-1], tokens[i]
		if prev.join != Prefix && prev.join != Infix && curr.join != Infix {
			b.WriteString(" ")
		}
		b.WriteString(curr.text)
	}
	return b.String()
}

func isAlnumByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

var spacesRe = regexp.MustCompile(`\s+`)

func collapseSpaces(s string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}

func wholePhraseRe(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
}
