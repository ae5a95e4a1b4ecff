package wire

import (
	"errors"

	"golang.org/x/exp/constraints"
)

// ErrTruncated is returned by Cursor reads when the buffer ends before the
// requested value is complete. Callers treat it as "stop here, keep what we
// have", never as a fatal condition.
var ErrTruncated = errors.New("truncated input")

// maxVarintBytes is the longest legal varint encoding of a 64 bit value.
const maxVarintBytes = 10

// Cursor is a sequential reader over a borrowed byte slice. A read advances
// the position only when it succeeds, so a failed read leaves the cursor
// usable for diagnostics.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor wraps buf. The cursor only views the slice, it never copies or
// mutates it.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Remaining reports how many unread bytes are left.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// AtEnd reports whether the cursor has consumed the whole buffer.
func (c *Cursor) AtEnd() bool {
	return c.pos >= len(c.buf)
}

// Varint reads a continuation-bit encoded unsigned integer. It fails with
// ErrTruncated if the buffer ends mid-value or the encoding exceeds
// maxVarintBytes.
func (c *Cursor) Varint() (uint64, error) {
	var value uint64
	var shift uint

	for n := 0; n < maxVarintBytes; n++ {
		if c.pos+n >= len(c.buf) {
			return 0, ErrTruncated
		}

		b := c.buf[c.pos+n]
		value |= uint64(b&0x7f) << shift

		if b&0x80 == 0 {
			c.pos += n + 1
			return value, nil
		}

		shift += 7
	}

	return 0, ErrTruncated
}

// Bytes reads the next n bytes as a subslice of the underlying buffer.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, ErrTruncated
	}

	view := c.buf[c.pos : c.pos+n]
	c.pos += n

	return view, nil
}

// Fixed32 reads a little-endian 32 bit value.
func (c *Cursor) Fixed32() (uint32, error) {
	return readFixed[uint32](c, 4)
}

// Fixed64 reads a little-endian 64 bit value.
func (c *Cursor) Fixed64() (uint64, error) {
	return readFixed[uint64](c, 8)
}

func readFixed[T constraints.Unsigned](c *Cursor, size int) (T, error) {
	view, err := c.Bytes(size)
	if err != nil {
		return 0, err
	}

	var value T
	for i := size - 1; i >= 0; i-- {
		value = value<<8 | T(view[i])
	}

	return value, nil
}
