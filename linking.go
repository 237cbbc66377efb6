// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packwire

import (
	"reflect"

	"github.com/packwire/packwire/internal/bitset"
)

// Ownership names the role a Pointer extension plays at one call site
// toward a shared pointee: exactly one Owner call site exists per
// pointee and carries its payload; Observer call sites reference an
// Owner elsewhere; SharedOwner allows more than one call site to claim
// ownership (the first encountered carries the payload, the rest
// reference it); SharedObserver is Observer without the single-site
// restriction.
type Ownership uint8

const (
	Owner Ownership = iota
	Observer
	SharedOwner
	SharedObserver
)

// LinkingContext reconstructs an arbitrary pointer graph, including
// shared ownership and reference cycles, across the pointer-valued
// fields of one traversal. Wire identity is assigned in first-seen
// order, independent of which call site sees a pointer first; this lets
// an Observer reference a pointee before its Owner is reached in the
// traversal (a forward reference), which is resolved by back-patching
// once the Owner is decoded. Register one instance per top-level
// Serializer/Deserializer via its ctx argument.
type LinkingContext struct {
	ids    map[uintptr]uint32
	nextID uint32

	written bitset.Set

	resolved map[uint32]any
	pending  map[uint32][]func(any)
}

// NewLinkingContext returns an empty LinkingContext.
func NewLinkingContext() *LinkingContext {
	return &LinkingContext{
		ids:      make(map[uintptr]uint32),
		resolved: make(map[uint32]any),
		pending:  make(map[uint32][]func(any)),
	}
}

func (c *LinkingContext) idFor(ptr uintptr) uint32 {
	if id, ok := c.ids[ptr]; ok {
		return id
	}
	id := c.nextID
	c.nextID++
	c.ids[ptr] = id
	return id
}

func (c *LinkingContext) resolve(id uint32, v any) {
	c.resolved[id] = v
	for _, patch := range c.pending[id] {
		patch(v)
	}
	delete(c.pending, id)
}

// HasUnresolvedReferences reports whether any Observer/SharedObserver
// referenced a pointee whose Owner never appeared, which would otherwise
// surface only as a silently nil field. Call after the top-level
// traversal completes.
func (c *LinkingContext) HasUnresolvedReferences() bool {
	return len(c.pending) != 0
}

// Pointer adapts a **T field to the Extension interface under the given
// Ownership role. Wire identity 0 is reserved for nil; writing a nil
// pointer through a non-Nullable Pointer is a programmer error.
type Pointer[T any] struct {
	Kind     Ownership
	Nullable bool
}

// EncodeWire implements Extension[*T].
func (p Pointer[T]) EncodeWire(s *Serializer, v **T) {
	ctx := Context[LinkingContext](s)
	if *v == nil {
		if !p.Nullable {
			panic(ErrNotNullable)
		}
		s.w.WriteSize(0)
		return
	}
	ptr := reflect.ValueOf(*v).Pointer()
	id := ctx.idFor(ptr)
	s.w.WriteSize(id + 1)

	switch p.Kind {
	case Owner, SharedOwner:
		first := !ctx.written.Test(uint(id))
		if first {
			ctx.written.Add(uint(id))
			Object(s, *v)
		} else if p.Kind == Owner {
			panic("packwire: Owner pointer encoded more than once")
		}
	case Observer, SharedObserver:
		// reference only; no payload
	}
}

// DecodeWire implements Extension[*T].
func (p Pointer[T]) DecodeWire(d *Deserializer, v **T) {
	ctx := DContext[LinkingContext](d)
	wireID := d.r.ReadSize(0)
	if wireID == 0 {
		if !p.Nullable {
			d.r.err.Set(InvalidPointer)
		}
		*v = nil
		return
	}
	id := wireID - 1

	switch p.Kind {
	case Owner, SharedOwner:
		first := !ctx.written.Test(uint(id))
		if first {
			ctx.written.Add(uint(id))
			nv := new(T)
			ReadObject(d, nv)
			ctx.resolve(id, nv)
			*v = nv
			return
		}
		if cached, ok := ctx.resolved[id]; ok {
			*v = cached.(*T)
			return
		}
		if d.r.checkData {
			d.r.err.Set(InvalidData)
		}
	case Observer, SharedObserver:
		if cached, ok := ctx.resolved[id]; ok {
			*v = cached.(*T)
			return
		}
		dest := v
		ctx.pending[id] = append(ctx.pending[id], func(resolved any) {
			*dest = resolved.(*T)
		})
	}
}
