package schema

import (
	"github.com/go-gum/exhume/wire"
)

// BlobAnalysis is the best-effort reading of one opaque catalog blob:
// the structured decode plus the strings recovered from it, in a shape
// ready for report output.
type BlobAnalysis struct {
	Size     int            `json:"size"`
	UTITypes []string       `json:"uti_types"`
	Strings  []string       `json:"strings"`
	Decoded  map[string]any `json:"decoded"`

	// LikelyOSVersions holds small varint values that plausibly encode a
	// minimum platform version. Only populated for requirements blobs.
	LikelyOSVersions []uint64 `json:"likely_os_versions,omitempty"`
}

// AnalyzeBlob decodes one blob and merges in strings recovered by the raw
// printable-run scan, which still works when the field framing is too
// damaged to decode.
func AnalyzeBlob(blob []byte) BlobAnalysis {
	return analyzeMessage(wire.Decode(blob), blob)
}

// AnalyzeRequirements reads a requirements blob. On top of the generic
// analysis it flags small top-level varints that look like platform version
// floors.
func AnalyzeRequirements(blob []byte) BlobAnalysis {
	msg := wire.Decode(blob)
	analysis := analyzeMessage(msg, blob)

	for _, f := range msg.Fields {
		if f.Kind == wire.KindInteger && f.Type == wire.TypeVarint && f.Uint >= 1 && f.Uint <= 20 {
			analysis.LikelyOSVersions = append(analysis.LikelyOSVersions, f.Uint)
		}
	}

	return analysis
}

func analyzeMessage(msg wire.Message, blob []byte) BlobAnalysis {
	strs := msg.Strings
	seen := make(map[string]struct{}, len(strs))
	for _, s := range strs {
		seen[s] = struct{}{}
	}
	for _, s := range wire.ExtractStrings(blob, 3) {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		strs = append(strs, s)
	}

	idents := msg.Identifiers
	seenIdent := make(map[string]struct{}, len(idents))
	for _, id := range idents {
		seenIdent[id] = struct{}{}
	}
	for _, s := range strs {
		for _, id := range wire.Identifiers(s) {
			if _, dup := seenIdent[id]; dup {
				continue
			}
			seenIdent[id] = struct{}{}
			idents = append(idents, id)
		}
	}

	if strs == nil {
		strs = []string{}
	}
	if idents == nil {
		idents = []string{}
	}

	return BlobAnalysis{
		Size:     msg.Size,
		UTITypes: idents,
		Strings:  strs,
		Decoded:  map[string]any{"fields": wire.RenderFields(msg.Fields)},
	}
}
