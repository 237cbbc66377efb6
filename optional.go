// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packwire

// Optional wraps an extension for PT so a *PT field round-trips as
// present/absent: a single presence flag (a bit inside a bit-packing
// region, a byte outside one, via Bool/ReadBool) followed by Inner's
// wire form when present.
type Optional[PT any] struct {
	Inner Extension[PT]
}

// EncodeWire implements Extension[*PT].
func (o Optional[PT]) EncodeWire(s *Serializer, v **PT) {
	has := *v != nil
	Bool(s, has)
	if has {
		o.Inner.EncodeWire(s, *v)
	}
}

// DecodeWire implements Extension[*PT].
func (o Optional[PT]) DecodeWire(d *Deserializer, v **PT) {
	if !ReadBool(d) {
		*v = nil
		return
	}
	nv := new(PT)
	o.Inner.DecodeWire(d, nv)
	*v = nv
}
