package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func appendVarint(b []byte, v uint64) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}

func appendTag(b []byte, number uint64, wt WireType) []byte {
	return appendVarint(b, number<<3|uint64(wt))
}

func appendBytes(b []byte, number uint64, payload []byte) []byte {
	b = appendTag(b, number, TypeBytes)
	b = appendVarint(b, uint64(len(payload)))
	return append(b, payload...)
}

func TestDecodeScalars(t *testing.T) {
	var blob []byte
	blob = appendTag(blob, 1, TypeVarint)
	blob = appendVarint(blob, 150)
	blob = appendTag(blob, 2, TypeFixed32)
	blob = append(blob, 0x78, 0x56, 0x34, 0x12)
	blob = appendTag(blob, 3, TypeFixed64)
	blob = append(blob, 1, 0, 0, 0, 0, 0, 0, 0)

	msg := Decode(blob)
	require.Equal(t, msg.Size, len(blob))
	require.Len(t, msg.Fields, 3)

	require.Equal(t, msg.Fields[0], Field{Number: 1, Type: TypeVarint, Kind: KindInteger, Uint: 150})
	require.Equal(t, msg.Fields[1], Field{Number: 2, Type: TypeFixed32, Kind: KindInteger, Uint: 0x12345678})
	require.Equal(t, msg.Fields[2], Field{Number: 3, Type: TypeFixed64, Kind: KindInteger, Uint: 1})
}

func TestDecodeText(t *testing.T) {
	blob := appendBytes(nil, 4, []byte("com.example.notes.CreateNote"))

	msg := Decode(blob)
	require.Len(t, msg.Fields, 1)
	require.Equal(t, msg.Fields[0].Kind, KindText)
	require.Equal(t, msg.Fields[0].Text, "com.example.notes.CreateNote")
	require.Equal(t, msg.Strings, []string{"com.example.notes.CreateNote"})
	require.Equal(t, msg.Identifiers, []string{"com.example.notes.CreateNote"})
}

func TestDecodeNested(t *testing.T) {
	inner := appendBytes(nil, 1, []byte("public.plain-text"))
	blob := appendBytes(nil, 2, inner)

	msg := Decode(blob)
	require.Len(t, msg.Fields, 1)
	require.Equal(t, msg.Fields[0].Kind, KindNested)
	require.Len(t, msg.Fields[0].Nested, 1)
	require.Equal(t, msg.Fields[0].Nested[0].Text, "public.plain-text")

	// Strings from nested levels surface on the top-level message.
	require.Equal(t, msg.Strings, []string{"public.plain-text"})
}

func TestDecodeNestedBeatsText(t *testing.T) {
	// "(1(2" is printable ASCII but also decodes cleanly as two varint
	// fields. Structure must win.
	payload := []byte{0x28, 0x31, 0x28, 0x32}
	require.True(t, looksTextual(payload))

	blob := appendBytes(nil, 1, payload)
	msg := Decode(blob)
	require.Len(t, msg.Fields, 1)
	require.Equal(t, msg.Fields[0].Kind, KindNested)
	require.Len(t, msg.Fields[0].Nested, 2)
}

func TestDecodeUnparsedPayload(t *testing.T) {
	// Neither decodable nor printable.
	payload := []byte{0xff, 0x00, 0xfe, 0x01}
	blob := appendBytes(nil, 7, payload)

	msg := Decode(blob)
	require.Len(t, msg.Fields, 1)
	require.Equal(t, msg.Fields[0].Kind, KindUnparsed)
	require.Equal(t, msg.Fields[0].Raw, payload)
}

func TestDecodeEmpty(t *testing.T) {
	msg := Decode(nil)
	require.Equal(t, msg.Size, 0)
	require.Empty(t, msg.Fields)
}

func TestDecodeGarbage(t *testing.T) {
	// A lone continuation byte cannot even produce a tag.
	msg := Decode([]byte{0x80})
	require.Empty(t, msg.Fields)
	require.Equal(t, msg.Size, 1)
}

func TestDecodeTruncatedLengthKeepsPrefix(t *testing.T) {
	var blob []byte
	blob = appendTag(blob, 1, TypeVarint)
	blob = appendVarint(blob, 7)
	// Claims 100 payload bytes, delivers 2.
	blob = appendTag(blob, 2, TypeBytes)
	blob = appendVarint(blob, 100)
	blob = append(blob, 0xde, 0xad)

	msg := Decode(blob)
	require.Len(t, msg.Fields, 1)
	require.Equal(t, msg.Fields[0].Uint, uint64(7))
}

func TestDecodeReservedTypeKeepsPrefix(t *testing.T) {
	var blob []byte
	blob = appendTag(blob, 1, TypeVarint)
	blob = appendVarint(blob, 7)
	blob = appendTag(blob, 2, TypeStartGroup)
	blob = appendVarint(blob, 3)

	msg := Decode(blob)
	require.Len(t, msg.Fields, 1)
	require.Equal(t, msg.Fields[0].Uint, uint64(7))
}

func TestDecodeGroupPayloadNotNested(t *testing.T) {
	// A payload containing a group marker is not a clean sub-message even if
	// a prefix of it decodes.
	var payload []byte
	payload = appendTag(payload, 1, TypeVarint)
	payload = appendVarint(payload, 1)
	payload = appendTag(payload, 2, TypeEndGroup)

	blob := appendBytes(nil, 1, payload)
	msg := Decode(blob)
	require.Len(t, msg.Fields, 1)
	require.NotEqual(t, msg.Fields[0].Kind, KindNested)
}

func TestRenderShape(t *testing.T) {
	var blob []byte
	blob = appendTag(blob, 1, TypeVarint)
	blob = appendVarint(blob, 16)
	blob = appendBytes(blob, 3, []byte("com.example.app"))

	rendered := Decode(blob).Render()
	require.Equal(t, rendered["size"], len(blob))
	require.Equal(t, rendered["uti_types"], []string{"com.example.app"})
	require.Equal(t, rendered["strings"], []string{"com.example.app"})

	fields := rendered["decoded"].(map[string]any)["fields"].(map[string]any)
	require.Equal(t, fields["field_1_varint"], uint64(16))
	require.Equal(t, fields["field_3_text"], "com.example.app")
}

func TestRenderEmptyMessage(t *testing.T) {
	rendered := Decode(nil).Render()
	require.Equal(t, rendered["uti_types"], []string{})
	require.Equal(t, rendered["strings"], []string{})
}

func TestDecodeStringsDeduplicated(t *testing.T) {
	var blob []byte
	blob = appendBytes(blob, 1, []byte("duplicate"))
	blob = appendBytes(blob, 2, []byte("duplicate"))

	msg := Decode(blob)
	require.Equal(t, msg.Strings, []string{"duplicate"})
}
