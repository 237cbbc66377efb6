// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packwire

import (
	"reflect"
	"sync"
)

// polyRegistry holds, for one base interface type, every derived
// concrete type registered against it, in registration order. That
// order is the wire index: platform-independent, unlike a type name or
// a host RTTI token, so the same registration sequence on both peers is
// the only compatibility requirement.
type polyRegistry struct {
	mu       sync.RWMutex
	indexOf  map[any]int
	encoders []func(*Serializer, any)
	decoders []func(*Deserializer) any
}

var polyRegistries sync.Map // reflect.Type (base interface) -> *polyRegistry

func registryFor(base reflect.Type) *polyRegistry {
	v, _ := polyRegistries.LoadOrStore(base, &polyRegistry{indexOf: make(map[any]int)})
	return v.(*polyRegistry)
}

// RegisterDerived registers Derived as a wire alternative of the
// interface Base. Derived must implement Base; this isn't enforced by
// the type system (Go generics can't express "this type parameter
// implements that other type parameter's interface"), so a mismatched
// pair fails at the first Poly call with a type assertion panic rather
// than at compile time.
func RegisterDerived[Base any, Derived any]() {
	bt := reflect.TypeOf((*Base)(nil)).Elem()
	r := registryFor(bt)
	dt := reflect.TypeOf((*Derived)(nil)).Elem()
	identity := activeTypeIdentity.IdentityOf(reflect.New(dt).Interface())

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.indexOf[identity]; exists {
		return
	}
	idx := len(r.encoders)
	r.indexOf[identity] = idx
	r.encoders = append(r.encoders, func(s *Serializer, v any) {
		Object(s, v.(*Derived))
	})
	r.decoders = append(r.decoders, func(d *Deserializer) any {
		nv := new(Derived)
		ReadObject(d, nv)
		return nv
	})
}

// Poly adapts a polymorphic field of interface type Base to the
// Extension interface: it writes the zero-based index into the registry
// built by RegisterDerived[Base, ...] calls plus one, followed by the
// concrete value's own encode program; a nil value is written as 0 with
// no payload.
type Poly[Base any] struct{}

// EncodeWire implements Extension[Base].
func (Poly[Base]) EncodeWire(s *Serializer, v *Base) {
	bt := reflect.TypeOf((*Base)(nil)).Elem()
	r := registryFor(bt)

	dv := reflect.ValueOf(*v)
	if !dv.IsValid() || (dv.Kind() == reflect.Ptr && dv.IsNil()) {
		s.w.WriteSize(0)
		return
	}
	identity := activeTypeIdentity.IdentityOf(dv.Interface())

	r.mu.RLock()
	idx, ok := r.indexOf[identity]
	r.mu.RUnlock()
	if !ok {
		panic("packwire: Poly: concrete type not registered via RegisterDerived")
	}
	s.w.WriteSize(uint32(idx) + 1)
	r.encoders[idx](s, dv.Interface())
}

// DecodeWire implements Extension[Base].
func (Poly[Base]) DecodeWire(d *Deserializer, v *Base) {
	bt := reflect.TypeOf((*Base)(nil)).Elem()
	r := registryFor(bt)

	wireIdx := d.r.ReadSize(0)
	if wireIdx == 0 {
		var zero Base
		*v = zero
		return
	}
	idx := int(wireIdx) - 1

	r.mu.RLock()
	defer r.mu.RUnlock()
	if idx < 0 || idx >= len(r.decoders) {
		d.r.err.Set(InvalidPointer)
		return
	}
	decoded := r.decoders[idx](d)
	*v = decoded.(Base)
}
