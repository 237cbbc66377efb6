package packwire

import "testing"

type point struct {
	X, Y int32
}

func (p *point) EncodeWire(s *Serializer) {
	Value(s, p.X)
	Value(s, p.Y)
}

func (p *point) DecodeWire(d *Deserializer) {
	p.X = ReadValue[int32](d)
	p.Y = ReadValue[int32](d)
}

// Property 1: round-trip identity for fundamentals, across both wire
// endiannesses.
func TestValueRoundTripAllWidths(t *testing.T) {
	for _, wire := range []Endianness{Little, Big} {
		opt := WithLittleEndian()
		if wire == Big {
			opt = WithBigEndian()
		}
		w := NewWriter(16, opt)
		s := NewSerializer(w, defaultConfig)
		Value(s, int8(-5))
		Value(s, uint8(250))
		Value(s, int16(-1234))
		Value(s, uint16(54321))
		Value(s, int32(-123456))
		Value(s, uint32(3000000000))
		Value(s, int64(-123456789012))
		Value(s, uint64(12345678901234))
		Value(s, float32(1.5))
		Value(s, float64(-9.75))

		r := NewReader(w.Bytes(), opt)
		d := NewDeserializer(r, defaultConfig)
		if got := ReadValue[int8](d); got != -5 {
			t.Fatalf("int8 = %d", got)
		}
		if got := ReadValue[uint8](d); got != 250 {
			t.Fatalf("uint8 = %d", got)
		}
		if got := ReadValue[int16](d); got != -1234 {
			t.Fatalf("int16 = %d", got)
		}
		if got := ReadValue[uint16](d); got != 54321 {
			t.Fatalf("uint16 = %d", got)
		}
		if got := ReadValue[int32](d); got != -123456 {
			t.Fatalf("int32 = %d", got)
		}
		if got := ReadValue[uint32](d); got != 3000000000 {
			t.Fatalf("uint32 = %d", got)
		}
		if got := ReadValue[int64](d); got != -123456789012 {
			t.Fatalf("int64 = %d", got)
		}
		if got := ReadValue[uint64](d); got != 12345678901234 {
			t.Fatalf("uint64 = %d", got)
		}
		if got := ReadValue[float32](d); got != 1.5 {
			t.Fatalf("float32 = %v", got)
		}
		if got := ReadValue[float64](d); got != -9.75 {
			t.Fatalf("float64 = %v", got)
		}
		if !d.IsCompletedSuccessfully() {
			t.Fatal("expected completion")
		}
	}
}

// spec §4.5/§9: multi-byte Value writes must interleave correctly with an
// odd-bit field already open in the same bit-packing region (scratchBits
// != 0 on entry), not just the byte-aligned fast path exercised by
// TestBitPackingNeutrality.
func TestValueUnalignedInsideBitPackingRegion(t *testing.T) {
	w := NewWriter(32)
	s := NewSerializer(w, defaultConfig)
	s.EnableBitPacking(func(s *Serializer) {
		s.bw.WriteBits(0b101, 3) // leaves scratchBits == 3 before each Value
		Value(s, uint16(0xBEEF))
		s.bw.WriteBits(0b11, 2)
		Value(s, uint32(0xDEADBEEF))
		s.bw.WriteBits(0b1, 1)
		Value(s, uint64(0x0102030405060708))
	})

	r := NewReader(w.Bytes())
	d := NewDeserializer(r, defaultConfig)
	d.EnableBitPacking(func(d *Deserializer) {
		if got := d.br.ReadBits(3); got != 0b101 {
			t.Fatalf("leading marker = %b, want 101", got)
		}
		if got := ReadValue[uint16](d); got != 0xBEEF {
			t.Fatalf("uint16 = %x, want BEEF", got)
		}
		if got := d.br.ReadBits(2); got != 0b11 {
			t.Fatalf("middle marker = %b, want 11", got)
		}
		if got := ReadValue[uint32](d); got != 0xDEADBEEF {
			t.Fatalf("uint32 = %x, want DEADBEEF", got)
		}
		if got := d.br.ReadBits(1); got != 0b1 {
			t.Fatalf("trailing marker = %b, want 1", got)
		}
		if got := ReadValue[uint64](d); got != 0x0102030405060708 {
			t.Fatalf("uint64 = %x, want 0102030405060708", got)
		}
	})
	if !d.IsCompletedSuccessfully() {
		t.Fatal("expected completion")
	}
}

func TestBoolByteFormRejectsNonBinary(t *testing.T) {
	w := NewWriter(2)
	w.WriteUint8(7)
	r := NewReader(w.Bytes())
	d := NewDeserializer(r, defaultConfig)
	got := ReadBool(d)
	if got != false {
		t.Fatalf("got = %v, want false on invalid bool byte", got)
	}
	if r.Error().Kind() != InvalidData {
		t.Fatalf("error = %v, want InvalidData", r.Error().Kind())
	}
}

func TestBoolBitFormInsideBitPacking(t *testing.T) {
	w := NewWriter(2)
	s := NewSerializer(w, defaultConfig)
	s.EnableBitPacking(func(s *Serializer) {
		Bool(s, true)
		Bool(s, false)
		Bool(s, true)
	})
	if got := len(w.Bytes()); got != 1 {
		t.Fatalf("3 bools packed = %d bytes, want 1", got)
	}

	r := NewReader(w.Bytes())
	d := NewDeserializer(r, defaultConfig)
	var a, b, c bool
	d.EnableBitPacking(func(d *Deserializer) {
		a = ReadBool(d)
		b = ReadBool(d)
		c = ReadBool(d)
	})
	if !a || b || !c {
		t.Fatalf("got a=%v b=%v c=%v, want true,false,true", a, b, c)
	}
}

// Object dispatch via a member DecodeWire/EncodeWire pair, used inside a
// Container of objects (property 2's simplest shape: a composite value with
// no shared pointers).
func TestObjectDispatchInsideContainer(t *testing.T) {
	w := NewWriter(32)
	s := NewSerializer(w, defaultConfig)
	pts := []point{{1, 2}, {3, 4}, {5, 6}}
	Container(s, pts, 0, func(s *Serializer, p *point) { Object(s, p) })

	r := NewReader(w.Bytes())
	d := NewDeserializer(r, defaultConfig)
	got := ReadContainer(d, 0, func(d *Deserializer, p *point) { ReadObject(d, p) })
	if len(got) != len(pts) {
		t.Fatalf("len = %d, want %d", len(got), len(pts))
	}
	for i := range pts {
		if got[i] != pts[i] {
			t.Fatalf("got[%d] = %+v, want %+v", i, got[i], pts[i])
		}
	}
	if !d.IsCompletedSuccessfully() {
		t.Fatal("expected completion")
	}
}

func TestRegisterEncodeDecodeFuncOverridesMethod(t *testing.T) {
	type taggedPoint struct{ X, Y int32 }
	RegisterEncodeFunc(func(s *Serializer, p *taggedPoint) {
		Value(s, p.X+1000) // distinguishable from a naive method-based encode
		Value(s, p.Y)
	})
	RegisterDecodeFunc(func(d *Deserializer, p *taggedPoint) {
		p.X = ReadValue[int32](d) - 1000
		p.Y = ReadValue[int32](d)
	})

	w := NewWriter(8)
	s := NewSerializer(w, defaultConfig)
	orig := taggedPoint{X: 5, Y: 6}
	Object(s, &orig)

	r := NewReader(w.Bytes())
	d := NewDeserializer(r, defaultConfig)
	var got taggedPoint
	ReadObject(d, &got)
	if got != orig {
		t.Fatalf("got = %+v, want %+v", got, orig)
	}
}

type userCtx struct{ Tag string }

func TestContextLookup(t *testing.T) {
	w := NewWriter(4)
	extra := &userCtx{Tag: "hello"}
	s := NewSerializer(w, defaultConfig, extra)
	got := Context[userCtx](s)
	if got.Tag != "hello" {
		t.Fatalf("Context lookup = %+v", got)
	}
	if ContextOrNil[point](s) != nil {
		t.Fatal("expected nil for an unregistered context type")
	}
}

func TestContextPanicsWhenAbsent(t *testing.T) {
	w := NewWriter(4)
	s := NewSerializer(w, defaultConfig)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic looking up an absent required context")
		}
	}()
	Context[userCtx](s)
}
