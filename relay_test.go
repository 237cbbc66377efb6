package packwire

import "testing"

func TestRelayOncePreservesPayload(t *testing.T) {
	src := NewWriter(16)
	Text(NewSerializer(src, defaultConfig), "relay me", 0)

	r := NewReader(src.Bytes())
	dst := NewWriter(16)
	rl := NewRelay(8)
	n := rl.RelayOnce(r, dst)
	if n != len("relay me") {
		t.Fatalf("relayed %d bytes, want %d", n, len("relay me"))
	}

	got := ReadText(NewDeserializer(NewReader(dst.Bytes()), defaultConfig), 0)
	if got != "relay me" {
		t.Fatalf("got = %q, want %q", got, "relay me")
	}
}

func TestRelaySessionForwardsWholeRegion(t *testing.T) {
	w := NewWriter(16)
	s := NewSerializer(w, defaultConfig)
	s.BeginSession()
	Value(s, uint32(1))
	Value(s, uint32(2))
	s.EndSession()
	s.FlushSessions()

	srcR := NewReader(w.Bytes())
	srcD := NewDeserializer(srcR, defaultConfig)
	dstW := NewWriter(16)
	dstS := NewSerializer(dstW, defaultConfig)
	rl := NewRelay(16)
	rl.RelaySession(srcD, dstS)
	dstS.FlushSessions()

	r := NewReader(dstW.Bytes())
	d := NewDeserializer(r, defaultConfig)
	d.BeginSession()
	a := ReadValue[uint32](d)
	b := ReadValue[uint32](d)
	d.EndSession()
	if a != 1 || b != 2 {
		t.Fatalf("relayed session values = %d,%d, want 1,2", a, b)
	}
	if !d.IsCompletedSuccessfully() {
		t.Fatal("expected successful completion after relaying a session")
	}
}
