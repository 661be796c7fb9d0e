package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier to lower case and drops separators
// (_, -, ., spaces), so naming conventions compare equal.
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// TokenizeIdent splits an identifier into lowercase tokens at separators and
// CamelCase boundaries.
// Examples:
//   - "OrderID" -> ["order", "id"]
//   - "customerName" -> ["customer", "name"]
//   - "XMLParser" -> ["xml", "parser"]
//   - "created_at" -> ["created", "at"]
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// SnakeCase converts an identifier to snake_case: "OrderLine" -> "order_line".
func SnakeCase(s string) string {
	return strings.Join(TokenizeIdent(s), "_")
}

// tokenizeCamelCase splits a CamelCase, camelCase or separated string into
// tokens, keeping their case.
func tokenizeCamelCase(s string) []string {
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
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsToken reports whether a new token begins at position i: at a
// lower-to-upper transition ("orderID" before 'I'), at the end of an
// acronym ("XMLParser" before 'P'), or where digits follow letters.
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if isSeparator(prev) {
		return false
	}

	if unicode.IsUpper(r) && !unicode.IsUpper(prev) {
		return true
	}

	nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
	if unicode.IsUpper(r) && unicode.IsUpper(prev) && nextLower {
		return true
	}

	return unicode.IsDigit(r) && unicode.IsLetter(prev)
}
