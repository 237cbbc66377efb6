// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packwire

import "sort"

// TextExt adapts Text/ReadText to the Extension interface so a string
// field can be passed to Ext alongside other extensions (e.g. nested
// inside Optional or Substitution).
type TextExt struct {
	Max uint32
}

// EncodeWire implements Extension[string].
func (t TextExt) EncodeWire(s *Serializer, v *string) { Text(s, *v, t.Max) }

// DecodeWire implements Extension[string].
func (t TextExt) DecodeWire(d *Deserializer, v *string) { *v = ReadText(d, t.Max) }

// ContainerExt adapts Container/ReadContainer to the Extension interface
// for a []T field.
type ContainerExt[T any] struct {
	Max uint32
	Fn  func(*Serializer, *T)
	RFn func(*Deserializer, *T)
}

// EncodeWire implements Extension[[]T].
func (c ContainerExt[T]) EncodeWire(s *Serializer, v *[]T) { Container(s, *v, c.Max, c.Fn) }

// DecodeWire implements Extension[[]T].
func (c ContainerExt[T]) DecodeWire(d *Deserializer, v *[]T) { *v = ReadContainer(d, c.Max, c.RFn) }

// WriteMap writes a size prefix followed by each key/value pair ordered by
// less. Go's map iteration is deliberately randomized per run, so writing
// pairs in iteration order would make the byte image for the same map value
// non-deterministic across calls, contradicting spec §1's "platform-
// independent byte image" goal; less gives the caller's own total order over
// K (comparable alone doesn't imply one) and the pairs are sorted by it
// before anything is written. (supplemental: map[K]V has no counterpart in
// the original container/text pair, which only covers sequences.)
func WriteMap[K comparable, V any](s *Serializer, m map[K]V, max uint32, less func(a, b K) bool, keyFn func(*Serializer, *K), valFn func(*Serializer, *V)) {
	if max != 0 && uint32(len(m)) > max {
		panic(ErrTooLong)
	}
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })

	s.w.WriteSize(uint32(len(m)))
	for _, k := range keys {
		k := k
		v := m[k]
		keyFn(s, &k)
		valFn(s, &v)
	}
}

// ReadMap is the symmetric counterpart of WriteMap.
func ReadMap[K comparable, V any](d *Deserializer, max uint32, keyFn func(*Deserializer, *K), valFn func(*Deserializer, *V)) map[K]V {
	n := d.r.ReadSize(max)
	if d.r.err.IsError() {
		return nil
	}
	m := make(map[K]V, n)
	for i := uint32(0); i < n; i++ {
		var k K
		var v V
		keyFn(d, &k)
		valFn(d, &v)
		m[k] = v
	}
	return m
}
