package lockey

import (
	"strings"
	"unicode"
)

// splitCamel splits camelCase or PascalCase on lowercase-to-uppercase
// boundaries and on acronym-to-word boundaries, so "URLHandler" becomes
// ["URL", "Handler"] rather than ["U", "R", "L", "Handler"].
func splitCamel(s string) []string {
	if s == "" {
		return nil
	}

	runes := []rune(s)
	var words []string
	start := 0

	for i := 1; i < len(runes); i++ {
		prev := runes[i-1]
		cur := runes[i]

		boundary := false
		if unicode.IsUpper(cur) {
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				boundary = true
			} else if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				// end of an acronym run: HTMLParser -> HTML | Parser
				boundary = true
			}
		}

		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}

	return append(words, string(runes[start:]))
}

// CamelToTitle renders a camelCase or PascalCase identifier as spaced Title
// Case, keeping allow-listed acronyms fully upper-case.
func (p *Parser) CamelToTitle(s string) string {
	words := splitCamel(s)
	for i, w := range words {
		words[i] = p.titleWord(w)
	}
	return strings.Join(words, " ")
}

// ConstantToTitle renders a CONSTANT_CASE identifier as spaced Title Case,
// dropping a known role suffix first and keeping acronyms upper-case.
func (p *Parser) ConstantToTitle(s string) string {
	for _, suffix := range p.rules.StripSuffixes {
		if strings.HasSuffix(s, suffix) {
			s = s[:len(s)-len(suffix)]
			break
		}
	}

	words := strings.Split(s, "_")
	out := words[:0]
	for _, w := range words {
		if w == "" {
			continue
		}
		out = append(out, p.titleWord(w))
	}
	return strings.Join(out, " ")
}

func (p *Parser) titleWord(w string) string {
	if w == "" {
		return w
	}

	if _, ok := p.acronyms[strings.ToUpper(w)]; ok {
		return strings.ToUpper(w)
	}

	lower := strings.ToLower(w)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
