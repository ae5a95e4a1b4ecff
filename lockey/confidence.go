package lockey

import "fmt"

// Source identifies which pattern family produced a parsed text, so every
// synthetic guess stays auditable.
type Source uint8

const (
	// SourceOriginal marks text that was passed through untouched.
	SourceOriginal Source = iota

	// SourceParsedKey marks text reconstructed from a recognized key shape.
	SourceParsedKey

	// SourceCleanedEmbedded marks natural text in which an embedded key was
	// replaced in place.
	SourceCleanedEmbedded

	// SourceFallback marks a key that looked synthetic but matched no
	// recognizer; the raw key is kept with zero confidence.
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceOriginal:
		return "original"
	case SourceParsedKey:
		return "parsed_key"
	case SourceCleanedEmbedded:
		return "cleaned_embedded"
	case SourceFallback:
		return "fallback"
	default:
		return fmt.Sprintf("source(%d)", uint8(s))
	}
}

func (s Source) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Source) UnmarshalText(text []byte) error {
	switch string(text) {
	case "original":
		*s = SourceOriginal
	case "parsed_key":
		*s = SourceParsedKey
	case "cleaned_embedded":
		*s = SourceCleanedEmbedded
	case "fallback":
		*s = SourceFallback
	default:
		return fmt.Errorf("unknown source %q", text)
	}
	return nil
}

// Confidence values are fixed constants attached by the recognizer that
// fired, never computed from corpus statistics. Their only invariant is
// monotonicity: a more specific recognizer never reports less confidence
// than a less specific one below it.
const (
	ConfidenceVersionTagged = 0.95
	ConfidenceEntityType    = 0.90
	ConfidenceConstantCase  = 0.85
	ConfidenceParameterKey  = 0.85
	ConfidenceEmbedded      = 0.80
	ConfidenceNone          = 0.0
)

// ConfidenceLadder lists the recognizer constants in priority order. Kept as
// data so the monotonicity invariant is checkable.
func ConfidenceLadder() []float64 {
	return []float64{
		ConfidenceVersionTagged,
		ConfidenceEntityType,
		ConfidenceConstantCase,
		ConfidenceParameterKey,
		ConfidenceEmbedded,
		ConfidenceNone,
	}
}
