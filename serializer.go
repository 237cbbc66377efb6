// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packwire

import (
	"reflect"
)

// Fundamental is the type set accepted by Value/ReadValue: fixed-width
// integers, their named (enum-like) variants, and floats.
type Fundamental interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

// Serializer drives a user-supplied serialize(s, v) program over a Writer,
// the write side of the traversal engine.
type Serializer struct {
	w   *Writer
	bw  *BitWriter
	cfg Config
	ctx []any

	sessions *writerSessionStack
}

// NewSerializer constructs a Serializer over w. ctx holds pointers to
// caller-owned state (LinkingContext, InheritanceContext, or any user
// type) retrievable later via Context / ContextOrNil. Polymorphic dispatch
// needs no ctx entry: Poly uses the process-wide RegisterDerived registry.
func NewSerializer(w *Writer, cfg Config, ctx ...any) *Serializer {
	return &Serializer{w: w, cfg: cfg, ctx: ctx}
}

// Writer returns the underlying output adapter.
func (s *Serializer) Writer() *Writer { return s.w }

// Context returns the first context value of type *T, panicking if none is
// registered. Use ContextOrNil when absence is a legal state.
func Context[T any](s *Serializer) *T {
	if v := ContextOrNil[T](s); v != nil {
		return v
	}
	panic("packwire: no context value of requested type")
}

// ContextOrNil returns the first context value of type *T, or nil.
func ContextOrNil[T any](s *Serializer) *T {
	for _, c := range s.ctx {
		if v, ok := c.(*T); ok {
			return v
		}
	}
	return nil
}

// Align flushes any open bit-packing region to a byte boundary; a no-op
// outside one.
func (s *Serializer) Align() {
	if s.bw != nil {
		s.bw.Align()
	}
}

// EnableBitPacking converts the engine to its bit-packing variant for the
// duration of fn (a no-op wrapping if s is already bit-packing), aligning
// automatically when fn returns.
func (s *Serializer) EnableBitPacking(fn func(*Serializer)) {
	if s.bw != nil {
		fn(s)
		return
	}
	s.bw = NewBitWriter(s.w)
	fn(s)
	s.bw.Align()
	s.bw = nil
}

// Value writes a fundamental value. Routes through the active
// bit-packing wrapper when one is open, so multi-byte values interleave
// correctly with adjacent WriteBits calls; the byte-aligned path applies
// the configured endian swap, the unaligned bit-packing path does not.
func Value[T Fundamental](s *Serializer, v T) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int8, reflect.Uint8:
		s.writeUint8(uint8(asUint64(rv)))
	case reflect.Int16, reflect.Uint16:
		s.writeUint16(uint16(asUint64(rv)))
	case reflect.Int32, reflect.Uint32:
		s.writeUint32(uint32(asUint64(rv)))
	case reflect.Int64, reflect.Uint64:
		s.writeUint64(asUint64(rv))
	case reflect.Float32:
		s.writeFloat32(float32(rv.Float()))
	case reflect.Float64:
		s.writeFloat64(rv.Float())
	default:
		panic("packwire: Value: unsupported kind")
	}
}

func asUint64(rv reflect.Value) uint64 {
	if rv.CanInt() {
		return uint64(rv.Int())
	}
	return rv.Uint()
}

func (s *Serializer) writeUint8(v uint8) {
	if s.bw != nil {
		s.bw.WriteUint8(v)
		return
	}
	s.w.WriteUint8(v)
}

func (s *Serializer) writeUint16(v uint16) {
	if s.bw == nil {
		s.w.WriteUint16(v)
		return
	}
	if s.bw.scratchBits == 0 {
		s.w.WriteUint16(v)
		return
	}
	s.bw.WriteBits(v, 16)
}

func (s *Serializer) writeUint32(v uint32) {
	if s.bw == nil {
		s.w.WriteUint32(v)
		return
	}
	if s.bw.scratchBits == 0 {
		s.w.WriteUint32(v)
		return
	}
	s.bw.WriteBits(uint16(v), 16)
	s.bw.WriteBits(uint16(v>>16), 16)
}

func (s *Serializer) writeUint64(v uint64) {
	if s.bw == nil {
		s.w.WriteUint64(v)
		return
	}
	if s.bw.scratchBits == 0 {
		s.w.WriteUint64(v)
		return
	}
	for i := 0; i < 4; i++ {
		s.bw.WriteBits(uint16(v>>(16*i)), 16)
	}
}

func (s *Serializer) writeFloat32(v float32) { s.writeUint32(float32bits(v)) }
func (s *Serializer) writeFloat64(v float64) { s.writeUint64(float64bits(v)) }

// Bool writes a single bit inside a bit-packing region, or a single byte
// (0 or 1) outside one.
func Bool(s *Serializer, v bool) {
	var b uint16
	if v {
		b = 1
	}
	if s.bw != nil {
		s.bw.WriteBits(b, 1)
		return
	}
	s.w.WriteUint8(uint8(b))
}

// Text writes a size prefix (bounded by max when max != 0) followed by the
// UTF-8 bytes of str; no NUL is written.
func Text(s *Serializer, str string, max uint32) {
	b := []byte(str)
	if max != 0 && uint32(len(b)) > max {
		panic(ErrTooLong)
	}
	s.w.WriteSize(uint32(len(b)))
	s.w.WriteBuffer(b)
}

// Container writes a size prefix followed by each element encoded via fn.
func Container[T any](s *Serializer, items []T, max uint32, fn func(*Serializer, *T)) {
	if max != 0 && uint32(len(items)) > max {
		panic(ErrTooLong)
	}
	s.w.WriteSize(uint32(len(items)))
	for i := range items {
		fn(s, &items[i])
	}
}

// ContainerBytes is the contiguous-container fast path for raw byte
// slices: the element type is fundamental and the backing
// store is contiguous, so the whole slice is copied in one WriteBuffer
// call instead of one Value call per element.
func ContainerBytes(s *Serializer, items []byte, max uint32) {
	if max != 0 && uint32(len(items)) > max {
		panic(ErrTooLong)
	}
	s.w.WriteSize(uint32(len(items)))
	s.w.WriteBuffer(items)
}

// Array writes each element via fn with no size prefix; the reader must
// supply a destination slice of the agreed-upon fixed length.
func Array[T any](s *Serializer, items []T, fn func(*Serializer, *T)) {
	for i := range items {
		fn(s, &items[i])
	}
}

// Object dispatches to v's EncodeWire method, unless a free function was
// registered for *T via RegisterEncodeFunc, which then takes precedence;
// see registry.go for the tie-break rule.
func Object[T any](s *Serializer, v *T) {
	t := reflect.TypeOf(v).Elem()
	if fn, ok := encodeFuncs.Load(t); ok {
		fn.(func(*Serializer, any))(s, v)
		return
	}
	if enc, ok := any(v).(Encodable); ok {
		enc.EncodeWire(s)
		return
	}
	panic("packwire: Object: no EncodeWire method and no RegisterEncodeFunc for " + t.String())
}

// Extension is a stateless policy object providing the encode/decode
// programs for a value with added semantics: value-range, entropy,
// substitution, compact-int, optional, pointer linking, inheritance.
type Extension[T any] interface {
	EncodeWire(s *Serializer, v *T)
	DecodeWire(d *Deserializer, v *T)
}

// Ext invokes extension's encode program for v.
func Ext[T any](s *Serializer, v *T, extension Extension[T]) {
	extension.EncodeWire(s, v)
}
