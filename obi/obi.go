// Package obi implements the length-prefixed, big-endian binary encoding
// used by the oracle network to serialize request and response packets.
// Values are concatenated in declaration order with no tags or padding.
// Strings and byte buffers carry a u32 length prefix
package obi

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrTruncated is returned when the input does not contain enough bytes
// for the next field, including a length prefix that points past the
// end of the input
var ErrTruncated = errors.New("obi: input truncated")

// ErrTooLarge is the panic value of the encoder when a string or byte
// buffer does not fit in a u32 length prefix
var ErrTooLarge = errors.New("obi: value too large for a u32 length prefix")

// Encoder appends OBI encoded values to an internal buffer
type Encoder struct {
	buf []byte
}

// NewEncoder creates an encoder with capacity for n bytes
func NewEncoder(n int) *Encoder {
	return &Encoder{buf: make([]byte, 0, n)}
}

func (e *Encoder) EncodeU8(v uint8) {
	e.buf = append(e.buf, v)
}

func (e *Encoder) EncodeU32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *Encoder) EncodeU64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

// EncodeBytes writes v with its length prefix. It panics with
// ErrTooLarge if v is 4GiB or longer
func (e *Encoder) EncodeBytes(v []byte) {
	e.EncodeU32(lengthPrefix(int64(len(v))))
	e.buf = append(e.buf, v...)
}

// EncodeString has the same bound as EncodeBytes
func (e *Encoder) EncodeString(v string) {
	e.EncodeU32(lengthPrefix(int64(len(v))))
	e.buf = append(e.buf, v...)
}

func lengthPrefix(n int64) uint32 {
	if n > math.MaxUint32 {
		panic(ErrTooLarge)
	}
	return uint32(n)
}

// Bytes returns the encoded buffer
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Decoder reads OBI encoded values from a byte slice. Once a read
// fails the decoder keeps returning the same error
type Decoder struct {
	p   []byte
	off int
	err error
}

func NewDecoder(p []byte) *Decoder {
	return &Decoder{p: p}
}

func (d *Decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || n > len(d.p)-d.off {
		d.err = ErrTruncated
		return nil
	}

	b := d.p[d.off : d.off+n]
	d.off += n
	return b
}

func (d *Decoder) DecodeU8() uint8 {
	b := d.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (d *Decoder) DecodeU32() uint32 {
	b := d.take(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (d *Decoder) DecodeU64() uint64 {
	b := d.take(8)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// DecodeBytes returns a copy of the next length prefixed buffer. An
// empty buffer decodes to nil
func (d *Decoder) DecodeBytes() []byte {
	n := d.DecodeU32()
	if d.err != nil {
		return nil
	}

	// compare in uint64 so that large prefixes cannot overflow int
	if uint64(n) > uint64(len(d.p)-d.off) {
		d.err = ErrTruncated
		return nil
	}

	b := d.take(int(n))
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func (d *Decoder) DecodeString() string {
	return string(d.DecodeBytes())
}

// Err returns the first error encountered while decoding
func (d *Decoder) Err() error {
	return d.err
}

// Remaining returns the number of bytes that have not been consumed
func (d *Decoder) Remaining() int {
	return len(d.p) - d.off
}
