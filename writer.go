// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packwire

// growthMinCacheLine is the rounding unit used by the default growth
// strategy.
const growthMinCacheLine = 64

// Sink is the output adapter contract. A Writer owns exactly one Sink for its lifetime.
//
// Grow is only ever called for resizable sinks that StoresBytes; it must
// ensure the backing storage can hold at least minSize bytes, typically by
// geometric growth (×1.5 + 128) rounded up to a cache-line multiple, and
// return the (possibly reallocated) slice with length minSize or greater and
// identical contents in [0:len(old)].
type Sink interface {
	Bytes() []byte
	Resizable() bool
	Grow(cur []byte, minSize int) []byte

	// StoresBytes reports whether this Sink actually retains written bytes.
	// false lets Writer skip copying payload data entirely and track only a
	// length, the measure-size adapter's whole point (§4.6: "stores no
	// bytes").
	StoresBytes() bool
}

// growableSink is the default resizable Sink: a plain, geometrically
// growing []byte.
type growableSink struct{ buf []byte }

func newGrowableSink(initialCap int) *growableSink {
	return &growableSink{buf: make([]byte, 0, initialCap)}
}

func (s *growableSink) Bytes() []byte     { return s.buf }
func (s *growableSink) Resizable() bool   { return true }
func (s *growableSink) StoresBytes() bool { return true }

func (s *growableSink) Grow(cur []byte, minSize int) []byte {
	if cap(cur) >= minSize {
		return cur[:minSize]
	}
	newCap := cap(cur)*3/2 + 128
	if newCap < minSize {
		newCap = minSize
	}
	newCap = (newCap + growthMinCacheLine - 1) &^ (growthMinCacheLine - 1)
	grown := make([]byte, minSize, newCap)
	copy(grown, cur)
	return grown
}

// fixedSink is a non-resizable Sink over a caller-owned buffer. Writing
// past its capacity is a programmer error.
type fixedSink struct{ buf []byte }

func (s *fixedSink) Bytes() []byte     { return s.buf }
func (s *fixedSink) Resizable() bool   { return false }
func (s *fixedSink) StoresBytes() bool { return true }
func (s *fixedSink) Grow(cur []byte, minSize int) []byte {
	panic(ErrFixedBufferOverflow)
}

// Writer is the output adapter. The zero value is not usable;
// construct with NewWriter or NewFixedWriter.
type Writer struct {
	sink Sink
	buf  []byte // view of sink.Bytes(), length == write cursor's high-water slice
	pos  int    // current_write_pos
	hi   int    // biggest_previously_seen_pos

	wire        Endianness
	debugChecks bool
}

// NewWriter returns a Writer over a growable backing store that starts at
// initialCap bytes and grows geometrically as needed.
func NewWriter(initialCap int, opts ...ConfigOption) *Writer {
	cfg := defaultConfig
	for _, fn := range opts {
		fn(&cfg)
	}
	sink := newGrowableSink(initialCap)
	return &Writer{
		sink:        sink,
		buf:         sink.buf,
		wire:        cfg.WireEndianness,
		debugChecks: cfg.CheckAdapterErrors,
	}
}

// NewFixedWriter returns a Writer over buf. Writes past cap(buf) panic with
// ErrFixedBufferOverflow when CheckAdapterErrors is enabled in cfg (the
// spec's "debug-check only" contract); with checks disabled, the write is
// not checked up front and fails with a runtime slice-bounds panic instead.
func NewFixedWriter(buf []byte, opts ...ConfigOption) *Writer {
	cfg := defaultConfig
	for _, fn := range opts {
		fn(&cfg)
	}
	return &Writer{
		sink:        &fixedSink{buf: buf},
		buf:         buf[:0],
		wire:        cfg.WireEndianness,
		debugChecks: cfg.CheckAdapterErrors,
	}
}

// CurrentWritePos returns the write cursor.
func (w *Writer) CurrentWritePos() int { return w.pos }

// SeekWritePos rewinds or advances the write cursor for back-patching.
// Rewinding leaves the high-water mark untouched.
func (w *Writer) SeekWritePos(pos int) {
	if w.sink.StoresBytes() {
		w.ensureCapacity(pos)
	}
	w.pos = pos
	if pos > w.hi {
		w.hi = pos
	}
}

// WrittenBytes reports max(current_write_pos, high-water mark).
func (w *Writer) WrittenBytes() int {
	if w.pos > w.hi {
		return w.pos
	}
	return w.hi
}

// Bytes returns the portion of the backing store written so far, or nil
// for a Sink that does not StoresBytes (the measure-size adapter never
// retains a backing store to slice).
func (w *Writer) Bytes() []byte {
	if !w.sink.StoresBytes() {
		return nil
	}
	return w.buf[:w.WrittenBytes()]
}

// Flush is a no-op for in-memory sinks; retained for symmetry with the
// adapter contract and for Sink implementations that batch
// writes to an underlying stream.
func (w *Writer) Flush() {}

func (w *Writer) ensureCapacity(minSize int) {
	if minSize <= len(w.buf) {
		return
	}
	if !w.sink.Resizable() {
		if minSize > cap(w.buf) {
			if w.debugChecks {
				panic(ErrFixedBufferOverflow)
			}
			return
		}
		w.buf = w.buf[:minSize]
		return
	}
	w.buf = w.sink.Grow(w.buf, minSize)
}

// WriteBuffer appends p verbatim (no endian swap; used for raw byte copies
// and by the contiguous-container fast path once elements are already laid
// out on the wire). When the installed Sink does not StoresBytes (the
// measure-size adapter), p is never copied or allocated for — only the
// write cursor advances.
func (w *Writer) WriteBuffer(p []byte) {
	end := w.pos + len(p)
	if w.sink.StoresBytes() {
		w.ensureCapacity(end)
		copy(w.buf[w.pos:end], p)
	}
	w.pos = end
	if w.pos > w.hi {
		w.hi = w.pos
	}
}

// WriteUint8 writes one byte.
func (w *Writer) WriteUint8(v uint8) { w.WriteBuffer([]byte{v}) }

// WriteUint16 writes v as 2 bytes, swapped to w.wire if needed.
func (w *Writer) WriteUint16(v uint16) {
	if swapNeeded(w.wire) {
		v = swap16(v)
	}
	w.WriteBuffer([]byte{byte(v), byte(v >> 8)})
}

// WriteUint32 writes v as 4 bytes, swapped to w.wire if needed.
func (w *Writer) WriteUint32(v uint32) {
	if swapNeeded(w.wire) {
		v = swap32(v)
	}
	w.WriteBuffer([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

// WriteUint64 writes v as 8 bytes, swapped to w.wire if needed.
func (w *Writer) WriteUint64(v uint64) {
	if swapNeeded(w.wire) {
		v = swap64(v)
	}
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	w.WriteBuffer(b[:])
}

// WriteFloat32 writes v reinterpreted as an unsigned 32-bit pattern.
func (w *Writer) WriteFloat32(v float32) { w.WriteUint32(float32bits(v)) }

// WriteFloat64 writes v reinterpreted as an unsigned 64-bit pattern.
func (w *Writer) WriteFloat64(v float64) { w.WriteUint64(float64bits(v)) }

// WriteSize writes n using the variable-length size codec.
func (w *Writer) WriteSize(n uint32) {
	w.WriteBuffer(EncodeSize(nil, n))
}

// Endianness reports the configured wire endianness.
func (w *Writer) Endianness() Endianness { return w.wire }
