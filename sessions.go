// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packwire

// Sessions ("growable" regions) bracket a span of the stream so
// a reader running an older or newer program than the writer still
// finishes cleanly: extra bytes are skipped, missing bytes read back as
// zero. The trailing endpoint table mirrors the length-prefix framing idea
// in the teacher's internal.go, relocated from "one prefix per message" to
// "one offset table per stream, appended once at the end".

type writerSessionStack struct {
	stack     []int // open session start positions
	endpoints []int // recorded end positions, in session-close order
}

// BeginSession pushes the writer's current byte position, opening a new
// growable region. Panics if Config.SessionsEnabled is false.
func (s *Serializer) BeginSession() {
	if !s.cfg.SessionsEnabled {
		panic("packwire: sessions disabled in this Serializer's Config")
	}
	if s.sessions == nil {
		s.sessions = &writerSessionStack{}
	}
	s.sessions.stack = append(s.sessions.stack, s.w.CurrentWritePos())
}

// EndSession records the writer's current byte position as the just-closed
// session's end.
func (s *Serializer) EndSession() {
	st := s.sessions
	n := len(st.stack)
	st.stack = st.stack[:n-1]
	st.endpoints = append(st.endpoints, s.w.CurrentWritePos())
}

// FlushSessions appends the endpoint table and its 4-byte trailing offset,
// if any sessions were recorded. Call once, after
// the top-level traversal completes, before reading back s.Writer().Bytes().
func (s *Serializer) FlushSessions() {
	if s.sessions == nil || len(s.sessions.endpoints) == 0 {
		return
	}
	tableStart := s.w.WrittenBytes()
	for _, e := range s.sessions.endpoints {
		s.w.WriteSize(uint32(e))
	}
	tableLen := s.w.WrittenBytes() - tableStart
	s.w.WriteUint32(uint32(tableLen))
}

// readerSessionStack is lazily initialized from the trailing endpoint table
// on the first BeginSession call.
type readerSessionStack struct {
	initialized bool
	endpoints   []int
	idx         int
	savedEnds   []int
	tableStart  int // byte offset where the trailing endpoint table begins
}

func (d *Deserializer) initSessions() {
	st := d.sessions
	if st.initialized {
		return
	}
	savedPos := d.r.CurrentReadPos()
	bufSize := d.r.BufferSize()
	if bufSize < 4 {
		d.r.err.Set(InvalidData)
		st.initialized = true
		return
	}
	d.r.SeekReadPos(bufSize - 4)
	tableLen := int(d.r.ReadUint32())
	tableStart := bufSize - 4 - tableLen
	if tableStart < 0 || tableStart > bufSize-4 {
		d.r.err.Set(InvalidData)
		st.initialized = true
		d.r.SeekReadPos(savedPos)
		return
	}
	d.r.SeekReadPos(tableStart)
	var endpoints []int
	for d.r.CurrentReadPos() < bufSize-4 {
		n := d.r.ReadSize(0)
		if d.r.err.IsError() {
			break
		}
		endpoints = append(endpoints, int(n))
	}
	d.r.SeekReadPos(savedPos)
	st.endpoints = endpoints
	st.tableStart = tableStart
	st.initialized = true
}

// BeginSession saves the current logical end and, if a next endpoint is
// recorded, narrows the logical end to it. Panics if
// Config.SessionsEnabled is false.
func (d *Deserializer) BeginSession() {
	if !d.cfg.SessionsEnabled {
		panic("packwire: sessions disabled in this Deserializer's Config")
	}
	if d.sessions == nil {
		d.sessions = &readerSessionStack{}
	}
	d.initSessions()
	st := d.sessions
	st.savedEnds = append(st.savedEnds, d.r.CurrentReadEndPos())
	if st.idx < len(st.endpoints) {
		next := st.endpoints[st.idx]
		st.idx++
		if next > d.r.CurrentReadEndPos() {
			if d.r.checkData {
				d.r.err.Set(InvalidData)
			}
			return
		}
		d.r.SetReadEndPos(next)
	}
}

// EndSession advances the cursor to the current logical end, restores the
// previous logical end, and advances the endpoint scanner past any
// endpoints already behind the cursor.
func (d *Deserializer) EndSession() {
	st := d.sessions
	n := len(st.savedEnds)
	prev := st.savedEnds[n-1]
	st.savedEnds = st.savedEnds[:n-1]

	d.r.SeekReadPos(d.r.CurrentReadEndPos())
	d.r.SetReadEndPos(prev)

	for st.idx < len(st.endpoints) && st.endpoints[st.idx] <= d.r.CurrentReadPos() {
		st.idx++
	}
}

// SessionsOpen reports whether any BeginSession call is unmatched by
// EndSession, used by IsCompletedSuccessfully.
func (d *Deserializer) SessionsOpen() bool {
	return d.sessions != nil && len(d.sessions.savedEnds) > 0
}

// IsCompletedSuccessfully reports whether the underlying Reader finished
// with no latched error, with no sessions left open, and with the cursor
// at the end of the program-visible data. When sessions were used, the
// trailing endpoint table and its 4-byte offset are out-of-band metadata
// the top-level program never reads through directly, so the comparison
// is against the table's start rather than the raw buffer length.
func (d *Deserializer) IsCompletedSuccessfully() bool {
	if d.r.err.IsError() || d.SessionsOpen() {
		return false
	}
	if d.sessions != nil && d.sessions.initialized {
		return d.r.CurrentReadPos() == d.sessions.tableStart
	}
	return d.r.IsCompletedSuccessfully()
}
