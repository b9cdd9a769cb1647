package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent lower-cases an identifier and drops separators, so
// "Widget_titleColor", "widgetTitleColor" and "WIDGET_TITLE_COLOR" all
// normalize to "widgettitlecolor".
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// TokenizeIdent splits an identifier into lower-case words at separators
// and case transitions.
func TokenizeIdent(s string) []string {
	tokens := tokenize(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// tokenize splits at separators and camel-case boundaries:
//   - "titleColor" -> ["title", "Color"]
//   - "Widget_titleColor" -> ["Widget", "title", "Color"]
//   - "HTTPButton" -> ["HTTP", "Button"]
func tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()

			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == ' '
}

func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	// End of an acronym: "HTTPButton" splits before 'B'.
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
