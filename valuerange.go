// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packwire

import (
	"math"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// ValueRange quantizes an integer to exactly bitsRequired bits over
// [Min, Max]. It must be used inside an active bit-packing
// region (Serializer.EnableBitPacking / Deserializer.EnableBitPacking);
// using it outside one is a programmer error.
type ValueRange[T constraints.Integer] struct {
	Min, Max T
}

// BitsRequired reports ⌈log2(Max-Min+1)⌉, or 0 for an empty range.
func (r ValueRange[T]) BitsRequired() uint {
	if r.Max < r.Min {
		return 0
	}
	span := uint64(r.Max) - uint64(r.Min) + 1
	if span <= 1 {
		return 0
	}
	return uint(bits.Len64(span - 1))
}

// EncodeWire implements Extension[T].
func (r ValueRange[T]) EncodeWire(s *Serializer, v *T) {
	if s.bw == nil {
		panic("packwire: ValueRange used outside a bit-packing region")
	}
	if *v < r.Min || *v > r.Max {
		panic(ErrValueOutOfRange)
	}
	n := r.BitsRequired()
	if n == 0 {
		return
	}
	diff := uint64(*v) - uint64(r.Min)
	s.bw.WriteBitsWide(diff, n)
}

// DecodeWire implements Extension[T]. If CheckDataErrors is enabled and
// the decoded value falls outside [Min, Max] (only possible via a bug in
// BitsRequired or corrupt input reinterpreted with a mismatched range),
// InvalidData is latched and *v is reset to Min.
func (r ValueRange[T]) DecodeWire(d *Deserializer, v *T) {
	if d.br == nil {
		panic("packwire: ValueRange used outside a bit-packing region")
	}
	n := r.BitsRequired()
	if n == 0 {
		*v = r.Min
		return
	}
	raw := d.br.ReadBitsWide(n)
	result := r.Min + T(raw)
	if result < r.Min || result > r.Max {
		if d.r.checkData {
			d.r.err.Set(InvalidData)
		}
		*v = r.Min
		return
	}
	*v = result
}

// ValueRangeFloat quantizes a float to a fixed bit width over [Min, Max],
// either directly (Bits > 0) or derived from a target Precision:
// b = ceil(log2((max-min)/p + 1)).
type ValueRangeFloat[T constraints.Float] struct {
	Min, Max  T
	Bits      uint
	Precision T
}

func (r ValueRangeFloat[T]) bitsRequired() uint {
	if r.Bits > 0 {
		return r.Bits
	}
	if r.Precision <= 0 {
		panic("packwire: ValueRangeFloat: either Bits or Precision must be set")
	}
	span := float64(r.Max-r.Min) / float64(r.Precision)
	return uint(bits.Len64(uint64(math.Ceil(span))))
}

// EncodeWire implements Extension[T].
func (r ValueRangeFloat[T]) EncodeWire(s *Serializer, v *T) {
	if s.bw == nil {
		panic("packwire: ValueRangeFloat used outside a bit-packing region")
	}
	n := r.bitsRequired()
	if n == 0 {
		return
	}
	maxRaw := uint64(1)<<n - 1
	frac := float64(*v-r.Min) / float64(r.Max-r.Min)
	raw := uint64(math.Round(frac * float64(maxRaw)))
	if raw > maxRaw {
		raw = maxRaw
	}
	s.bw.WriteBitsWide(raw, n)
}

// DecodeWire implements Extension[T].
func (r ValueRangeFloat[T]) DecodeWire(d *Deserializer, v *T) {
	if d.br == nil {
		panic("packwire: ValueRangeFloat used outside a bit-packing region")
	}
	n := r.bitsRequired()
	if n == 0 {
		*v = r.Min
		return
	}
	maxRaw := uint64(1)<<n - 1
	raw := d.br.ReadBitsWide(n)
	frac := float64(raw) / float64(maxRaw)
	result := r.Min + T(frac*float64(r.Max-r.Min))
	if result < r.Min || result > r.Max {
		if d.r.checkData {
			d.r.err.Set(InvalidData)
		}
		*v = r.Min
		return
	}
	*v = result
}
