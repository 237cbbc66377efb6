// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packwire

// Substitution writes index 1..N when the value equals one of N fixed
// expected values, or 0 followed by the value itself otherwise. The
// index is written through a ValueRange[uint32] over [0, N], so it
// always costs exactly bitsRequired(N+1 values) bits; the region is
// self-contained (opened and aligned internally when no bit-packing
// region is already active) so Substitution can be used standalone,
// outside any caller-managed EnableBitPacking block.
type Substitution[T comparable] struct {
	Values   []T
	Fallback Extension[T]
}

// EncodeWire implements Extension[T].
func (sub Substitution[T]) EncodeWire(s *Serializer, v *T) {
	encodeEntropyIndex(s, sub.Values, *v, true)
	if !indexOf(sub.Values, *v) {
		sub.Fallback.EncodeWire(s, v)
	}
}

// DecodeWire implements Extension[T].
func (sub Substitution[T]) DecodeWire(d *Deserializer, v *T) {
	idx := decodeEntropyIndex(d, len(sub.Values), true)
	if idx > 0 {
		*v = sub.Values[idx-1]
		return
	}
	sub.Fallback.DecodeWire(d, v)
}

// Entropy is Substitution with a configurable alignment point: the same
// wire shape, with an option to align before the data payload. With
// Align false, the index is written into whatever bit-packing region the
// caller already has open, and the payload follows immediately, possibly
// still mid-byte; this lets two or more Entropy calls share one
// caller-managed region.
type Entropy[T comparable] struct {
	Values   []T
	Fallback Extension[T]
	Align    bool
}

// EncodeWire implements Extension[T].
func (e Entropy[T]) EncodeWire(s *Serializer, v *T) {
	encodeEntropyIndex(s, e.Values, *v, e.Align)
	if !indexOf(e.Values, *v) {
		e.Fallback.EncodeWire(s, v)
	}
}

// DecodeWire implements Extension[T].
func (e Entropy[T]) DecodeWire(d *Deserializer, v *T) {
	idx := decodeEntropyIndex(d, len(e.Values), e.Align)
	if idx > 0 {
		*v = e.Values[idx-1]
		return
	}
	e.Fallback.DecodeWire(d, v)
}

func indexOf[T comparable](values []T, v T) bool {
	for _, ev := range values {
		if ev == v {
			return true
		}
	}
	return false
}

func encodeEntropyIndex[T comparable](s *Serializer, values []T, v T, align bool) {
	idx := uint32(0)
	for i, ev := range values {
		if ev == v {
			idx = uint32(i + 1)
			break
		}
	}
	idxRange := ValueRange[uint32]{Min: 0, Max: uint32(len(values))}
	write := func(s *Serializer) { Ext(s, &idx, idxRange) }
	if s.bw != nil {
		write(s)
	} else {
		s.EnableBitPacking(write)
	}
	if align {
		s.Align()
	}
}

func decodeEntropyIndex(d *Deserializer, n int, align bool) uint32 {
	var idx uint32
	idxRange := ValueRange[uint32]{Min: 0, Max: uint32(n)}
	read := func(d *Deserializer) { idxRange.DecodeWire(d, &idx) }
	if d.br != nil {
		read(d)
	} else {
		d.EnableBitPacking(read)
	}
	if align {
		d.Align()
	}
	return idx
}
