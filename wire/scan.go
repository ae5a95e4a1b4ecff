package wire

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// minTextRun is the shortest printable run that makes a payload count as text.
const minTextRun = 3

// identRe matches reverse-DNS shaped tokens: alphanumeric segments joined by
// dots, at least two segments, no whitespace.
var identRe = regexp.MustCompile(`[A-Za-z0-9]+(?:\.[A-Za-z0-9]+)+`)

// Identifiers returns the reverse-DNS shaped tokens inside s, in order of
// appearance.
func Identifiers(s string) []string {
	return identRe.FindAllString(s, -1)
}

// looksTextual reports whether payload is valid UTF-8 containing at least one
// printable run of minTextRun characters.
func looksTextual(payload []byte) bool {
	if !utf8.Valid(payload) {
		return false
	}

	run := 0
	for _, r := range string(payload) {
		if unicode.IsPrint(r) {
			run++
			if run >= minTextRun {
				return true
			}
			continue
		}
		run = 0
	}

	return false
}

// ExtractStrings scans a raw blob for printable ASCII runs of at least
// minLength characters, independent of any field structure. Each run is
// passed through Sanitize, and duplicates are dropped while preserving the
// order of first appearance. This recovers strings even from blobs whose
// framing is too damaged to decode.
func ExtractStrings(blob []byte, minLength int) []string {
	if minLength < 1 {
		minLength = minTextRun
	}

	var out []string
	seen := make(map[string]struct{})

	emit := func(run []byte) {
		if len(run) < minLength {
			return
		}
		s, ok := Sanitize(string(run))
		if !ok || len(s) < minLength {
			return
		}
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	start := -1
	for i, b := range blob {
		if b >= 0x20 && b <= 0x7e {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			emit(blob[start:i])
			start = -1
		}
	}
	if start >= 0 {
		emit(blob[start:])
	}

	return out
}

// Leading characters that are wire-format framing noise rather than content.
const leadingArtifacts = "*([{$#-.!+,/:;=?'\""

// Trailing characters that are framing noise. Deliberately narrower than the
// leading set: ':' and friends legitimately end extracted tokens.
const trailingArtifacts = "*\"'()"

var (
	bplistRe        = regexp.MustCompile(`^bplist\d\d`)
	trailingQuoteRe = regexp.MustCompile(`["'][0-9+]?$`)
	bundleDigitsRe  = regexp.MustCompile(`^(.*\.[A-Za-z]+)[0-9]{2,}$`)
	bundleDigitUpRe = regexp.MustCompile(`^(.*\.[A-Za-z]+)[0-9][A-Z]$`)
	lowerSegmentRe  = regexp.MustCompile(`^[a-z][a-z0-9]*\.[a-z][a-z0-9]*\.`)
)

// Sanitize strips the encoding artifacts that raw-run extraction drags along
// with a string: length-prefix digits, field markers, stray quotes, and
// concatenated neighbor tokens. It returns ok=false when nothing usable
// remains. The rules are empirical, tuned against strings observed in real
// catalog blobs.
func Sanitize(s string) (string, bool) {
	original := s
	if s == "" || bplistRe.MatchString(s) {
		return "", false
	}

	// Leading artifacts first. A string that is mostly artifacts is noise.
	s = stripLeading(s)
	if len(s)*2 < len(original) {
		return "", false
	}

	// Two identifiers squashed together are separated by a marker byte that
	// happens to be printable. Keep the first token only.
	if idx := strings.IndexAny(s, "*!"); idx >= 0 {
		s = strings.TrimSpace(s[:idx])
	}

	s = stripTrailing(s)

	if len(s) < minTextRun {
		return "", false
	}

	return s, true
}

func stripLeading(s string) string {
	for s != "" {
		rest := s[1:]

		switch {
		case strings.ContainsRune(leadingArtifacts, rune(s[0])):
			s = rest

		// A single digit before a letter is a varint length prefix that
		// landed inside the printable range.
		case s[0] >= '0' && s[0] <= '9' && rest != "" && isLetter(rest[0]):
			s = rest

		// A stray uppercase byte glued onto a bundle id, e.g. "Acom.example.x".
		// Requires two lowercase segments so names like
		// "Attribute.currentHumidity" survive intact.
		case s[0] >= 'A' && s[0] <= 'Z' && lowerSegmentRe.MatchString(rest):
			s = rest

		default:
			return s
		}
	}
	return s
}

func stripTrailing(s string) string {
	for {
		before := s

		s = trailingQuoteRe.ReplaceAllString(s, "")
		for s != "" && strings.ContainsRune(trailingArtifacts, rune(s[len(s)-1])) {
			s = s[:len(s)-1]
		}

		if m := bundleDigitUpRe.FindStringSubmatch(s); m != nil {
			s = m[1]
		} else if m := bundleDigitsRe.FindStringSubmatch(s); m != nil {
			s = m[1]
		}

		if s == before {
			return s
		}
	}
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
