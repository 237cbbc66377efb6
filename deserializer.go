// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packwire

import "reflect"

// Deserializer drives a user-supplied serialize(s, v) program over a
// Reader, the read side of the traversal engine. It is the
// symmetric counterpart of Serializer: the same program, run against a
// Deserializer instead of a Serializer, reconstructs what was written.
type Deserializer struct {
	r   *Reader
	br  *BitReader
	cfg Config
	ctx []any

	sessions *readerSessionStack
}

// NewDeserializer constructs a Deserializer over r. ctx holds pointers to
// caller-owned state retrievable later via DContext / DContextOrNil.
func NewDeserializer(r *Reader, cfg Config, ctx ...any) *Deserializer {
	return &Deserializer{r: r, cfg: cfg, ctx: ctx}
}

// Reader returns the underlying input adapter.
func (d *Deserializer) Reader() *Reader { return d.r }

// DContext returns the first context value of type *T, panicking if none
// is registered.
func DContext[T any](d *Deserializer) *T {
	if v := DContextOrNil[T](d); v != nil {
		return v
	}
	panic("packwire: no context value of requested type")
}

// DContextOrNil returns the first context value of type *T, or nil.
func DContextOrNil[T any](d *Deserializer) *T {
	for _, c := range d.ctx {
		if v, ok := c.(*T); ok {
			return v
		}
	}
	return nil
}

// Align consumes any pending bit-packing padding; a no-op outside a
// bit-packing region.
func (d *Deserializer) Align() {
	if d.br != nil {
		d.br.Align()
	}
}

// EnableBitPacking is the read-side counterpart of
// Serializer.EnableBitPacking.
func (d *Deserializer) EnableBitPacking(fn func(*Deserializer)) {
	if d.br != nil {
		fn(d)
		return
	}
	d.br = NewBitReader(d.r)
	fn(d)
	d.br.Align()
	d.br = nil
}

// ReadValue reads a fundamental value of type T.
func ReadValue[T Fundamental](d *Deserializer) T {
	var zero T
	kind := reflect.TypeOf(zero).Kind()
	out := reflect.New(reflect.TypeOf(zero)).Elem()
	switch kind {
	case reflect.Int8, reflect.Uint8:
		setFromUint64(out, kind, uint64(d.readUint8()))
	case reflect.Int16, reflect.Uint16:
		setFromUint64(out, kind, uint64(d.readUint16()))
	case reflect.Int32, reflect.Uint32:
		setFromUint64(out, kind, uint64(d.readUint32()))
	case reflect.Int64, reflect.Uint64:
		setFromUint64(out, kind, d.readUint64())
	case reflect.Float32:
		out.SetFloat(float64(d.readFloat32()))
	case reflect.Float64:
		out.SetFloat(d.readFloat64())
	default:
		panic("packwire: ReadValue: unsupported kind")
	}
	return out.Interface().(T)
}

func setFromUint64(out reflect.Value, kind reflect.Kind, v uint64) {
	switch kind {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		out.SetInt(int64(v))
	default:
		out.SetUint(v)
	}
}

func (d *Deserializer) readUint8() uint8 {
	if d.br != nil {
		return d.br.ReadUint8()
	}
	return d.r.ReadUint8()
}

func (d *Deserializer) readUint16() uint16 {
	if d.br == nil {
		return d.r.ReadUint16()
	}
	if d.br.scratchBits == 0 {
		return d.r.ReadUint16()
	}
	return d.br.ReadBits(16)
}

func (d *Deserializer) readUint32() uint32 {
	if d.br == nil {
		return d.r.ReadUint32()
	}
	if d.br.scratchBits == 0 {
		return d.r.ReadUint32()
	}
	lo := uint32(d.br.ReadBits(16))
	hi := uint32(d.br.ReadBits(16))
	return lo | hi<<16
}

func (d *Deserializer) readUint64() uint64 {
	if d.br == nil {
		return d.r.ReadUint64()
	}
	if d.br.scratchBits == 0 {
		return d.r.ReadUint64()
	}
	var v uint64
	for i := 0; i < 4; i++ {
		v |= uint64(d.br.ReadBits(16)) << (16 * i)
	}
	return v
}

func (d *Deserializer) readFloat32() float32 { return float32frombits(d.readUint32()) }
func (d *Deserializer) readFloat64() float64 { return float64frombits(d.readUint64()) }

// ReadBool is the symmetric counterpart of Bool. If checkDataErrors is
// enabled and the decoded byte form is neither 0 nor 1, InvalidData is
// latched and false is returned.
func ReadBool(d *Deserializer) bool {
	if d.br != nil {
		return d.br.ReadBits(1) != 0
	}
	v := d.r.ReadUint8()
	if v > 1 {
		if d.r.checkData {
			d.r.err.Set(InvalidData)
		}
		return false
	}
	return v != 0
}

// ReadText is the symmetric counterpart of Text.
func ReadText(d *Deserializer, max uint32) string {
	n := d.r.ReadSize(max)
	if d.r.err.IsError() {
		return ""
	}
	b := make([]byte, n)
	d.r.ReadBuffer(b)
	return string(b)
}

// ReadContainer is the symmetric counterpart of Container: it decodes the
// size prefix (bounded by max), allocates a slice of that length, and
// calls fn once per element.
func ReadContainer[T any](d *Deserializer, max uint32, fn func(*Deserializer, *T)) []T {
	n := d.r.ReadSize(max)
	if d.r.err.IsError() {
		return nil
	}
	items := make([]T, n)
	for i := range items {
		fn(d, &items[i])
	}
	return items
}

// ReadContainerBytes is the symmetric counterpart of ContainerBytes.
func ReadContainerBytes(d *Deserializer, max uint32) []byte {
	n := d.r.ReadSize(max)
	if d.r.err.IsError() {
		return nil
	}
	b := make([]byte, n)
	d.r.ReadBuffer(b)
	return b
}

// ReadArray is the symmetric counterpart of Array: it fills the supplied
// slice (whose length is the agreed-upon fixed array length) in place.
func ReadArray[T any](d *Deserializer, items []T, fn func(*Deserializer, *T)) {
	for i := range items {
		fn(d, &items[i])
	}
}

// ReadObject dispatches to v's DecodeWire method, unless a free function
// was registered for *T via RegisterDecodeFunc.
func ReadObject[T any](d *Deserializer, v *T) {
	t := reflect.TypeOf(v).Elem()
	if fn, ok := decodeFuncs.Load(t); ok {
		fn.(func(*Deserializer, any))(d, v)
		return
	}
	if dec, ok := any(v).(Decodable); ok {
		dec.DecodeWire(d)
		return
	}
	panic("packwire: ReadObject: no DecodeWire method and no RegisterDecodeFunc for " + t.String())
}

// ReadExt invokes extension's decode program for v.
func ReadExt[T any](d *Deserializer, v *T, extension Extension[T]) {
	extension.DecodeWire(d, v)
}
