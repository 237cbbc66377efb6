// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packwire

// Relay forwards length-prefixed payloads or whole session regions from a
// Reader to a Writer without decoding their contents, reusing one internal
// buffer across calls to avoid steady-state allocation.
type Relay struct {
	buf []byte
}

// NewRelay returns a Relay with an internal buffer pre-sized to bufCap.
func NewRelay(bufCap int) *Relay {
	return &Relay{buf: make([]byte, 0, bufCap)}
}

func (rl *Relay) reserve(n int) {
	if cap(rl.buf) < n {
		rl.buf = make([]byte, n)
		return
	}
	rl.buf = rl.buf[:n]
}

// RelayOnce copies one size-prefixed payload (as written by Text,
// ContainerBytes, or ReadSize/WriteSize directly) from r to w verbatim. It
// returns the number of payload bytes relayed, or 0 if r's latched error
// state was already set or became set while reading.
func (rl *Relay) RelayOnce(r *Reader, w *Writer) int {
	size := r.ReadSize(0)
	if r.Error().IsError() {
		return 0
	}
	rl.reserve(int(size))
	r.ReadBuffer(rl.buf)
	if r.Error().IsError() {
		return 0
	}
	w.WriteSize(size)
	w.WriteBuffer(rl.buf)
	return int(size)
}

// RelaySession copies one whole growable session region from d's input to
// s's output verbatim, without interpreting its contents, by bracketing
// the copy with matching BeginSession/EndSession calls on both sides. This
// lets a proxy forward a message encoded by a newer or older program than
// its own without understanding the fields that program added or removed.
func (rl *Relay) RelaySession(d *Deserializer, s *Serializer) {
	d.BeginSession()
	s.BeginSession()
	n := d.r.CurrentReadEndPos() - d.r.CurrentReadPos()
	if n > 0 {
		rl.reserve(n)
		d.r.ReadBuffer(rl.buf)
		s.w.WriteBuffer(rl.buf)
	}
	d.EndSession()
	s.EndSession()
}
