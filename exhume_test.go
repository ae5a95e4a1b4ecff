package exhume

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-gum/exhume/lockey"
	"github.com/go-gum/exhume/wire"
)

func TestDecodeBlob(t *testing.T) {
	// field 1, length-delimited "com.example.app"
	blob := append([]byte{0x0a, 0x0f}, []byte("com.example.app")...)

	msg := DecodeBlob(blob)
	require.Equal(t, msg.Size, len(blob))
	require.Len(t, msg.Fields, 1)
	require.Equal(t, msg.Fields[0].Kind, wire.KindText)
	require.Equal(t, msg.Identifiers, []string{"com.example.app"})
}

func TestParseKey(t *testing.T) {
	p := ParseKey("photos_IncreaseWarmth_1.0.0_intent_title")
	require.Equal(t, p.Text, "Increase Warmth")
	require.Equal(t, p.Source, lockey.SourceParsedKey)

	p = ParseKey("Increase Warmth")
	require.False(t, p.Synthetic)
}
