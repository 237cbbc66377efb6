// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packwire

import (
	"golang.org/x/exp/constraints"
)

// CompactInt is a varint-style codec for signed integers wider than one
// byte: zig-zag encode, then emit 7 data bits per byte with
// the top bit as a continuation flag. Strict, when true, gives the
// "CompactValueAsObject" semantics: DataOverflow is latched if the decoded
// magnitude does not fit T's bit width.
//
// Values are promoted to int64 for the zig-zag transform; this is exact
// for every signed width Go offers (int8..int64) since the transform's
// sign-selection step depends only on the value's own sign, not its
// storage width. For int64 values of magnitude 2^62 or more the left
// shift wraps, and the wrapped two's-complement result is still the
// correct zig-zag code.
type CompactInt[T constraints.Signed] struct {
	Strict bool
}

func zigzagEncode64(v int64) uint64 { return uint64((v << 1) ^ (v >> 63)) }
func zigzagDecode64(u uint64) int64 { return int64(u>>1) ^ -int64(u&1) }

// EncodeWire implements Extension[T].
func (c CompactInt[T]) EncodeWire(s *Serializer, v *T) {
	writeVarint(s, zigzagEncode64(int64(*v)))
}

// DecodeWire implements Extension[T].
func (c CompactInt[T]) DecodeWire(d *Deserializer, v *T) {
	u, ok := readVarint(d)
	if !ok {
		return
	}
	signed := zigzagDecode64(u)
	if c.Strict {
		width := bitWidthOf[T]()
		if width < 64 {
			lo := -(int64(1) << uint(width-1))
			hi := int64(1)<<uint(width-1) - 1
			if signed < lo || signed > hi {
				d.r.err.Set(DataOverflow)
				*v = 0
				return
			}
		}
	}
	*v = T(signed)
}

// CompactUint is the unsigned counterpart of CompactInt: no zig-zag step,
// plain 7-bit-per-byte varint.
type CompactUint[T constraints.Unsigned] struct {
	Strict bool
}

// EncodeWire implements Extension[T].
func (c CompactUint[T]) EncodeWire(s *Serializer, v *T) {
	writeVarint(s, uint64(*v))
}

// DecodeWire implements Extension[T].
func (c CompactUint[T]) DecodeWire(d *Deserializer, v *T) {
	u, ok := readVarint(d)
	if !ok {
		return
	}
	if c.Strict {
		width := bitWidthOf[T]()
		if width < 64 && u>>uint(width) != 0 {
			d.r.err.Set(DataOverflow)
			*v = 0
			return
		}
	}
	*v = T(u)
}

func bitWidthOf[T constraints.Integer]() int {
	var zero T
	switch any(zero).(type) {
	case int8, uint8:
		return 8
	case int16, uint16:
		return 16
	case int32, uint32:
		return 32
	default:
		return 64
	}
}

func writeVarint(s *Serializer, u uint64) {
	for u >= 0x80 {
		s.writeUint8(byte(u) | 0x80)
		u >>= 7
	}
	s.writeUint8(byte(u))
}

func readVarint(d *Deserializer) (uint64, bool) {
	var u uint64
	var shift uint
	for i := 0; i < 10; i++ {
		if d.r.err.IsError() {
			return 0, false
		}
		b := d.readUint8()
		u |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			return u, true
		}
		shift += 7
	}
	d.r.err.Set(InvalidData)
	return 0, false
}
