// Package exhume recovers structure from a tool catalog: it decodes the
// catalog's opaque wire-format blobs best-effort and turns unresolved
// localization keys back into readable text.
//
// The root package is a thin facade over the subpackages for the two
// operations nearly every caller wants:
//
//	msg := exhume.DecodeBlob(blob)
//	name := exhume.ParseKey("photos_IncreaseWarmth_1.0.0_intent_title")
//
// Use wire, lockey, catalog and schema directly for anything finer grained.
package exhume

import (
	"github.com/go-gum/exhume/lockey"
	"github.com/go-gum/exhume/wire"
)

// DecodeBlob decodes one wire-format blob. Decoding never fails; damaged
// input degrades to raw byte fields rather than an error.
func DecodeBlob(blob []byte) wire.Message {
	return wire.Decode(blob)
}

// ParseKey turns a localization key into readable text with a confidence
// and provenance attached. Text that is not a key passes through untouched.
func ParseKey(key string) lockey.Parsed {
	return lockey.Parse(key)
}
