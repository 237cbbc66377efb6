package packwire

import "testing"

// Scenario S6 (shared-ownership half): a vector of owned nodes plus a
// separate list of observer references aliasing entries of that same
// vector. After round-trip, observers resolve to the identical
// reconstructed instances, and the context reports no dangling references.
func TestGraphSharedOwnershipAcrossSlices(t *testing.T) {
	owners := []*linkNode{
		{Value: 10},
		{Value: 20},
		{Value: 30},
	}
	observers := []*linkNode{owners[2], owners[0]}

	w := NewWriter(64)
	ctx := NewLinkingContext()
	s := NewSerializer(w, defaultConfig, ctx)
	Container(s, owners, 0, func(s *Serializer, n **linkNode) {
		Ext(s, n, Pointer[linkNode]{Kind: Owner, Nullable: true})
	})
	Container(s, observers, 0, func(s *Serializer, n **linkNode) {
		Ext(s, n, Pointer[linkNode]{Kind: Observer, Nullable: true})
	})

	r := NewReader(w.Bytes())
	dctx := NewLinkingContext()
	d := NewDeserializer(r, defaultConfig, dctx)
	gotOwners := ReadContainer(d, 0, func(d *Deserializer, n **linkNode) {
		ReadExt(d, n, Pointer[linkNode]{Kind: Owner, Nullable: true})
	})
	gotObservers := ReadContainer(d, 0, func(d *Deserializer, n **linkNode) {
		ReadExt(d, n, Pointer[linkNode]{Kind: Observer, Nullable: true})
	})

	if len(gotOwners) != 3 || len(gotObservers) != 2 {
		t.Fatalf("lengths: owners=%d observers=%d", len(gotOwners), len(gotObservers))
	}
	for i, want := range []int32{10, 20, 30} {
		if gotOwners[i].Value != want {
			t.Fatalf("gotOwners[%d].Value = %d, want %d", i, gotOwners[i].Value, want)
		}
	}
	if gotObservers[0] != gotOwners[2] {
		t.Fatalf("observer[0] identity mismatch: got %p, want %p (owners[2])", gotObservers[0], gotOwners[2])
	}
	if gotObservers[1] != gotOwners[0] {
		t.Fatalf("observer[1] identity mismatch: got %p, want %p (owners[0])", gotObservers[1], gotOwners[0])
	}
	if dctx.HasUnresolvedReferences() {
		t.Fatal("expected is_valid(): every observer's pointee was also visited as owner")
	}
	if !d.IsCompletedSuccessfully() {
		t.Fatal("expected successful completion")
	}
}

// Property 3: measure_size(v) == len(serialize(v)) for a nontrivial value.
func TestMeasureSizeMatchesActualSerializedLength(t *testing.T) {
	pts := []point{{1, 2}, {3, 4}, {5, 6}, {-7, -8}}

	mw := NewMeasureWriter()
	ms := NewSerializer(mw, defaultConfig)
	Container(ms, pts, 0, func(s *Serializer, p *point) { Object(s, p) })

	w := NewWriter(32)
	s := NewSerializer(w, defaultConfig)
	Container(s, pts, 0, func(s *Serializer, p *point) { Object(s, p) })

	if mw.WrittenBytes() != w.WrittenBytes() {
		t.Fatalf("measured size = %d, want %d", mw.WrittenBytes(), w.WrittenBytes())
	}
}
