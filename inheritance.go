// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packwire

import "github.com/packwire/packwire/internal/bitset"

// InheritanceContext de-duplicates virtual base subobjects that are
// reachable through more than one derived-class path in a single
// traversal (the diamond-inheritance problem): each distinct virtual
// base, named by a caller-assigned small integer ID, is written exactly
// once no matter how many derived types embed it. Register one instance
// per top-level Serializer/Deserializer via its ctx argument.
type InheritanceContext struct {
	written bitset.Set
	decoded map[uint]any
}

// NewInheritanceContext returns an empty InheritanceContext.
func NewInheritanceContext() *InheritanceContext {
	return &InheritanceContext{decoded: make(map[uint]any)}
}

// BaseClass adapts a non-virtual base subobject to the Extension
// interface: it always encodes/decodes its payload, with no identity
// tracking, purely so a base-class field can be passed to Ext alongside
// other extensions.
type BaseClass[TBase any] struct{}

// EncodeWire implements Extension[TBase].
func (BaseClass[TBase]) EncodeWire(s *Serializer, v *TBase) { Object(s, v) }

// DecodeWire implements Extension[TBase].
func (BaseClass[TBase]) DecodeWire(d *Deserializer, v *TBase) { ReadObject(d, v) }

// VirtualBaseClass wraps a *TBase field shared across one or more derived
// types. ID must be the same value at every call site that shares the
// same underlying instance within one traversal. The first occurrence
// (in traversal order, which is wire order) writes the payload; later
// occurrences write only a Bool marker (one bit inside a bit-packing
// region, one byte outside) and, on decode, resolve to the already-decoded
// instance.
type VirtualBaseClass[TBase any] struct {
	ID uint
}

// EncodeWire implements Extension[*TBase].
func (b VirtualBaseClass[TBase]) EncodeWire(s *Serializer, v **TBase) {
	ctx := Context[InheritanceContext](s)
	first := !ctx.written.Test(b.ID)
	Bool(s, first)
	if first {
		ctx.written.Add(b.ID)
		Object(s, *v)
	}
}

// DecodeWire implements Extension[*TBase]. If a later occurrence names an
// ID that has not yet been decoded (a caller bug: IDs must be assigned so
// the first occurrence is genuinely first), InvalidData is latched and
// *v is left nil.
func (b VirtualBaseClass[TBase]) DecodeWire(d *Deserializer, v **TBase) {
	ctx := DContext[InheritanceContext](d)
	first := ReadBool(d)
	if first {
		nv := new(TBase)
		ReadObject(d, nv)
		ctx.decoded[b.ID] = nv
		*v = nv
		return
	}
	if cached, ok := ctx.decoded[b.ID]; ok {
		*v = cached.(*TBase)
		return
	}
	if d.r.checkData {
		d.r.err.Set(InvalidData)
	}
	*v = nil
}
