package wire

import (
	"encoding/hex"
	"fmt"
)

// WireType is the low three bits of a field tag.
type WireType uint8

const (
	TypeVarint     WireType = 0
	TypeFixed64    WireType = 1
	TypeBytes      WireType = 2
	TypeStartGroup WireType = 3 // legacy group marker, never decoded
	TypeEndGroup   WireType = 4 // legacy group marker, never decoded
	TypeFixed32    WireType = 5
)

// Kind selects which variant of a Field carries the value.
type Kind uint8

const (
	// KindInteger holds a scalar in Field.Uint (varint, fixed32 or fixed64).
	KindInteger Kind = iota

	// KindRaw holds opaque bytes in Field.Raw that were never classified.
	KindRaw

	// KindText holds a printable UTF-8 payload in Field.Text.
	KindText

	// KindNested holds a fully decoded sub-message in Field.Nested.
	KindNested

	// KindUnparsed holds bytes in Field.Raw after nested and text
	// classification both failed. The original bytes are always preserved.
	KindUnparsed
)

// Field is one decoded tag/value unit. Exactly one variant is populated,
// selected by Kind; Number and Type are never reinterpreted once assigned.
type Field struct {
	Number uint64
	Type   WireType
	Kind   Kind

	Uint   uint64
	Raw    []byte
	Text   string
	Nested []Field
}

// Message is the decode result for one blob. It is constructed once by
// Decode and not mutated afterwards; every decode is a pure function of its
// input bytes.
type Message struct {
	// Size is the length of the input blob in bytes.
	Size int

	// Fields in input order. May be empty when the very first tag read fails.
	Fields []Field

	// Strings holds every text payload found anywhere in the field tree,
	// deduplicated, in insertion order.
	Strings []string

	// Identifiers holds the reverse-DNS shaped tokens found in Strings,
	// deduplicated, in insertion order.
	Identifiers []string
}

// Render flattens the message into the report shape consumed downstream:
//
//	{size, uti_types, strings, decoded: {fields: {"field_<N>_<tag>": value}}}
//
// Nested values render recursively as the same fields mapping, unparsed and
// raw bytes as lowercase hex, text as the string itself and integers as
// numbers.
func (m Message) Render() map[string]any {
	return map[string]any{
		"size":      m.Size,
		"uti_types": emptyNotNil(m.Identifiers),
		"strings":   emptyNotNil(m.Strings),
		"decoded": map[string]any{
			"fields": RenderFields(m.Fields),
		},
	}
}

// RenderFields renders a field sequence as the "field_<N>_<tag>" mapping
// used inside Render.
func RenderFields(fields []Field) map[string]any {
	rendered := make(map[string]any, len(fields))
	for _, f := range fields {
		rendered[fmt.Sprintf("field_%d_%s", f.Number, f.variantTag())] = f.renderValue()
	}
	return rendered
}

func (f Field) variantTag() string {
	switch f.Kind {
	case KindInteger:
		switch f.Type {
		case TypeFixed64:
			return "fixed64"
		case TypeFixed32:
			return "fixed32"
		default:
			return "varint"
		}
	case KindText:
		return "text"
	case KindNested:
		return "message"
	default:
		return "bytes"
	}
}

func (f Field) renderValue() any {
	switch f.Kind {
	case KindInteger:
		return f.Uint
	case KindText:
		return f.Text
	case KindNested:
		return RenderFields(f.Nested)
	default:
		return hex.EncodeToString(f.Raw)
	}
}

func emptyNotNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
