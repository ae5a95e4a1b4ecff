package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// blob helpers mirror the wire test encoding without importing test code.
func appendVarint(b []byte, v uint64) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}

func appendString(b []byte, number uint64, s string) []byte {
	b = appendVarint(b, number<<3|2)
	b = appendVarint(b, uint64(len(s)))
	return append(b, s...)
}

func TestAnalyzeBlob(t *testing.T) {
	var blob []byte
	blob = appendString(blob, 1, "com.example.text")
	blob = appendVarint(blob, 2<<3|0)
	blob = appendVarint(blob, 42)

	analysis := AnalyzeBlob(blob)
	require.Equal(t, analysis.Size, len(blob))
	require.Contains(t, analysis.Strings, "com.example.text")
	require.Contains(t, analysis.UTITypes, "com.example.text")
	require.Empty(t, analysis.LikelyOSVersions)

	fields := analysis.Decoded["fields"].(map[string]any)
	require.Equal(t, fields["field_1_text"], "com.example.text")
	require.Equal(t, fields["field_2_varint"], uint64(42))
}

func TestAnalyzeBlobDamagedFraming(t *testing.T) {
	// The framing is broken but a printable identifier is still inside;
	// the raw scan must recover it.
	blob := append([]byte{0xff, 0xff}, []byte("com.example.notes")...)

	analysis := AnalyzeBlob(blob)
	require.Contains(t, analysis.Strings, "com.example.notes")
	require.Contains(t, analysis.UTITypes, "com.example.notes")
}

func TestAnalyzeBlobEmpty(t *testing.T) {
	analysis := AnalyzeBlob(nil)
	require.Equal(t, analysis.Size, 0)
	require.Equal(t, analysis.Strings, []string{})
	require.Equal(t, analysis.UTITypes, []string{})
}

func TestAnalyzeRequirements(t *testing.T) {
	var blob []byte
	blob = appendVarint(blob, 1<<3|0)
	blob = appendVarint(blob, 7)
	blob = appendVarint(blob, 2<<3|0)
	blob = appendVarint(blob, 500) // too large for a version floor

	analysis := AnalyzeRequirements(blob)
	require.Equal(t, analysis.LikelyOSVersions, []uint64{7})
}
