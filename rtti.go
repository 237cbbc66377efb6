// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packwire

import "reflect"

// TypeIdentity supplies a stable, comparable identity for a value's
// dynamic type, used by the polymorphic context to key its derived-type
// registries. The default binding uses reflect.Type; a host embedding
// packwire in an environment where reflect.Type identity is unstable
// across module boundaries (e.g. plugins loaded from separate shared
// objects) can install its own via SetTypeIdentity.
type TypeIdentity interface {
	IdentityOf(v any) any
}

type reflectTypeIdentity struct{}

func (reflectTypeIdentity) IdentityOf(v any) any { return reflect.TypeOf(v) }

var activeTypeIdentity TypeIdentity = reflectTypeIdentity{}

// SetTypeIdentity replaces the process-wide TypeIdentity implementation
// used by RegisterDerived and Poly. Call it, if at all, before any
// RegisterDerived call.
func SetTypeIdentity(ti TypeIdentity) {
	if ti == nil {
		ti = reflectTypeIdentity{}
	}
	activeTypeIdentity = ti
}
