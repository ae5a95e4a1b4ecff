// Package lockey reconstructs human-readable text from machine-generated
// localization keys. A catalog that ships without its string tables leaves
// only identifier-shaped keys behind; this package recognizes the handful of
// naming dialects those keys follow and renders a best-effort natural
// language guess, tagged with a fixed confidence and full provenance. The
// parser never alters text that already looks like natural language, and it
// never raises: every input maps to some Parsed value.
package lockey

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode"
)

var (
	semverMarkRe  = regexp.MustCompile(`_\d+\.\d+\.\d+_`)
	keySuffixRe   = regexp.MustCompile(`(?i)_(description|name|parameter|intent|entity|type|title|representation)$`)
	embeddedKeyRe = regexp.MustCompile(`(?i)\b\w+_\w+_\d+\.\d+\.\d+_\w+\b`)
	embeddedConstRe = regexp.MustCompile(`\b[A-Z][A-Z_]{10,}\b`)

	versionKeyRe  = regexp.MustCompile(`^(\w+)_([A-Z][A-Za-z0-9]*)_(\d+\.\d+\.\d+)_(\w+)$`)
	entityKeyRe   = regexp.MustCompile(`^(\w+)_(\w*[Ee]ntity)_(\d+\.\d+\.\d+)_entity_type_display_representation$`)
	entityTrimRe  = regexp.MustCompile(`(?i)entity$`)
	constantKeyRe = regexp.MustCompile(`^[A-Z][A-Z0-9]*(?:_[A-Z0-9]+)+$`)
	paramKeyRe    = regexp.MustCompile(`^(\w+)_(\w+)_(\d+\.\d+\.\d+)_intent_parameter_(\w+)_description$`)
)

// Parsed is the result of one key parse. When Synthetic is false the input
// was taken verbatim and Confidence, OriginalKey and the non-Original Source
// values do not apply; when Synthetic is true OriginalKey always holds the
// untouched input.
type Parsed struct {
	Text        string
	Synthetic   bool
	OriginalKey string
	Confidence  float64
	Source      Source
}

// Render flattens the result for report output: {text, is_synthetic} plus,
// only for synthetic results, the provenance fields.
func (p Parsed) Render() map[string]any {
	out := map[string]any{
		"text":         p.Text,
		"is_synthetic": p.Synthetic,
	}
	if p.Synthetic {
		out["original_key"] = p.OriginalKey
		out["confidence"] = p.Confidence
		out["source"] = p.Source.String()
	}
	return out
}

func (p Parsed) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Render())
}

func (p *Parsed) UnmarshalJSON(data []byte) error {
	var raw struct {
		Text        string  `json:"text"`
		Synthetic   bool    `json:"is_synthetic"`
		OriginalKey string  `json:"original_key"`
		Confidence  float64 `json:"confidence"`
		Source      Source  `json:"source"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Parsed(raw)
	return nil
}

// Parser applies the recognizer ladder with a given rule set. It is
// stateless after construction and safe for concurrent use.
type Parser struct {
	rules        Rules
	acronyms     map[string]struct{}
	roleSuffixes map[string]struct{}
}

// NewParser returns a Parser with the built-in rules.
func NewParser() *Parser {
	return NewParserWith(DefaultRules())
}

// NewParserWith returns a Parser using rules, typically loaded via LoadRules.
func NewParserWith(rules Rules) *Parser {
	p := &Parser{
		rules:        rules,
		acronyms:     make(map[string]struct{}, len(rules.Acronyms)),
		roleSuffixes: make(map[string]struct{}, len(rules.RoleSuffixes)),
	}
	for _, a := range rules.Acronyms {
		p.acronyms[strings.ToUpper(a)] = struct{}{}
	}
	for _, s := range rules.RoleSuffixes {
		p.roleSuffixes[strings.ToLower(s)] = struct{}{}
	}
	return p
}

var defaultParser = NewParser()

// Parse runs the default parser. See Parser.Parse.
func Parse(key string) Parsed {
	return defaultParser.Parse(key)
}

// Parse classifies key against the recognizer ladder, first match wins.
// Input that does not look like a localization key at all (including the
// empty string) passes through untouched as an Original result. Key-shaped
// input that no recognizer understands comes back synthetic with zero
// confidence, signalling "could not improve this" rather than passing the
// key off as genuine content.
func (p *Parser) Parse(key string) Parsed {
	if !p.IsKey(key) {
		return Parsed{Text: key, Source: SourceOriginal}
	}

	// Embedded keys inside otherwise natural text are cleaned in place
	// before whole-key recognizers, which can never match a spaced string.
	if strings.ContainsRune(key, ' ') {
		if cleaned, ok := p.cleanEmbedded(key); ok {
			return Parsed{
				Text:        cleaned,
				Synthetic:   true,
				OriginalKey: key,
				Confidence:  ConfidenceEmbedded,
				Source:      SourceCleanedEmbedded,
			}
		}
	}

	if parsed, ok := p.recognize(key); ok {
		return parsed
	}

	return Parsed{
		Text:        key,
		Synthetic:   true,
		OriginalKey: key,
		Confidence:  ConfidenceNone,
		Source:      SourceFallback,
	}
}

// recognize tries the whole-key recognizers in ladder order.
func (p *Parser) recognize(key string) (Parsed, bool) {
	// 1. Version-tagged: <ns>_<PascalName>_<semver>_<display role suffix>.
	if m := versionKeyRe.FindStringSubmatch(key); m != nil {
		if _, ok := p.roleSuffixes[strings.ToLower(m[4])]; ok {
			return p.synthetic(p.CamelToTitle(m[2]), key, ConfidenceVersionTagged), true
		}
	}

	// 2. Entity display representation; the type-role suffix is stripped
	// before splitting.
	if m := entityKeyRe.FindStringSubmatch(key); m != nil {
		if name := entityTrimRe.ReplaceAllString(m[2], ""); name != "" {
			return p.synthetic(p.entityTitle(name), key, ConfidenceEntityType), true
		}
	}

	// 3. Whole-key CONSTANT_CASE.
	if constantKeyRe.MatchString(key) {
		return p.synthetic(p.ConstantToTitle(key), key, ConfidenceConstantCase), true
	}

	// 4. Parameter key; only the parameter's own name is the payload.
	if m := paramKeyRe.FindStringSubmatch(key); m != nil {
		return p.synthetic(p.CamelToTitle(m[4]), key, ConfidenceParameterKey), true
	}

	return Parsed{}, false
}

func (p *Parser) synthetic(text, key string, confidence float64) Parsed {
	return Parsed{
		Text:        text,
		Synthetic:   true,
		OriginalKey: key,
		Confidence:  confidence,
		Source:      SourceParsedKey,
	}
}

// entityTitle handles both PascalCase and all-lowercase entity names; the
// lowercase form appears when a key was downcased somewhere upstream.
func (p *Parser) entityTitle(name string) string {
	first := rune(name[0])
	if unicode.IsUpper(first) || !strings.ContainsRune(name, '_') {
		return p.CamelToTitle(name)
	}

	words := strings.Split(name, "_")
	for i, w := range words {
		words[i] = p.titleWord(w)
	}
	return strings.Join(words, " ")
}

// cleanEmbedded replaces key-shaped sub-tokens inside natural text with
// their cleaned, lowercased reading. ok is false when nothing changed.
func (p *Parser) cleanEmbedded(text string) (string, bool) {
	changed := false

	out := embeddedKeyRe.ReplaceAllStringFunc(text, func(tok string) string {
		if parsed, ok := p.recognize(tok); ok && parsed.Confidence > 0.7 {
			changed = true
			return strings.ToLower(parsed.Text)
		}
		return tok
	})

	out = embeddedConstRe.ReplaceAllStringFunc(out, func(tok string) string {
		if strings.ContainsRune(tok, '_') && p.KeyLikelihood(tok) > 0.7 {
			changed = true
			return strings.ToLower(p.ConstantToTitle(tok))
		}
		return tok
	})

	if !changed || out == text {
		return "", false
	}
	return out, true
}

// IsKey reports whether text looks like a localization key rather than
// natural language. The checks mirror the shapes seen in real catalogs:
// semver markers, role suffixes, constant-case keys, embedded key tokens and
// long snake-case identifiers with key vocabulary.
func (p *Parser) IsKey(text string) bool {
	if text == "" {
		return false
	}

	if semverMarkRe.MatchString(text) || keySuffixRe.MatchString(text) {
		return true
	}

	if isAllUpper(text) && strings.ContainsRune(text, '_') && len(text) > 15 {
		for _, marker := range []string{"_INTENT_", "_TITLE", "_DESCRIPTION", "_NAME", "_PARAMETER"} {
			if strings.Contains(text, marker) {
				return true
			}
		}
	}

	if embeddedKeyRe.MatchString(text) {
		return true
	}

	if strings.Count(text, "_") >= 4 && !strings.ContainsRune(text, ' ') {
		lower := strings.ToLower(text)
		for _, comp := range []string{"intent", "entity", "parameter", "description", "representation"} {
			if strings.Contains(lower, comp) {
				return true
			}
		}
	}

	return false
}

// IsKey runs the default parser's detection.
func IsKey(text string) bool {
	return defaultParser.IsKey(text)
}

// KeyLikelihood scores in [0,1] how strongly text resembles a localization
// key. Unlike the recognizer confidences this is a detection heuristic, used
// for flagging suspect fields, not for grading a transformation.
func (p *Parser) KeyLikelihood(text string) float64 {
	if text == "" {
		return 0
	}

	score := 0.0

	if semverMarkRe.MatchString(text) {
		score += 0.6
	}
	if keySuffixRe.MatchString(text) {
		score += 0.4
	}
	if strings.Count(text, "_") >= 4 {
		score += 0.2
	}
	if !strings.ContainsRune(text, ' ') && len(text) > 20 {
		score += 0.15
	}
	if isAllUpper(text) && strings.ContainsRune(text, '_') {
		score += 0.3
	}

	if strings.ContainsRune(text, ' ') && strings.Count(text, " ") > strings.Count(text, "_") {
		score -= 0.4
	}
	if looksTitleCased(text) {
		score -= 0.3
	}

	return min(1, max(0, score))
}

// isAllUpper reports whether text has cased characters and all of them are
// upper-case.
func isAllUpper(text string) bool {
	cased := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// looksTitleCased reports a leading capital followed by lower-case text,
// which suggests a real sentence rather than a key.
func looksTitleCased(text string) bool {
	runes := []rune(text)
	if len(runes) < 2 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
