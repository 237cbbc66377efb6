// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packwire

import (
	"reflect"
	"sync"
)

// Free-function registry for Object/ReadObject.
//
// Go has no free-function overloading to hang a trait specialization off
// of, so the tie-break here is an explicit, one-time registration call:
// RegisterEncodeFunc/RegisterDecodeFunc always take precedence over a
// type's own EncodeWire/DecodeWire methods once registered. This mirrors
// the caching approach in github.com/SnellerInc/sneller/ion's
// compileEncoder (ion/marshal.go), which keys a sync.Map by reflect.Type to
// memoize per-type dispatch.
var (
	encodeFuncs sync.Map // reflect.Type -> func(*Serializer, any)
	decodeFuncs sync.Map // reflect.Type -> func(*Deserializer, any)
)

// RegisterEncodeFunc registers a free function as the encoder for *T,
// overriding any EncodeWire method *T may have.
func RegisterEncodeFunc[T any](fn func(*Serializer, *T)) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	encodeFuncs.Store(t, func(s *Serializer, v any) { fn(s, v.(*T)) })
}

// RegisterDecodeFunc registers a free function as the decoder for *T,
// overriding any DecodeWire method *T may have.
func RegisterDecodeFunc[T any](fn func(*Deserializer, *T)) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	decodeFuncs.Store(t, func(d *Deserializer, v any) { fn(d, v.(*T)) })
}

// Encodable is implemented by types with a member serialize program.
type Encodable interface {
	EncodeWire(s *Serializer)
}

// Decodable is implemented by types with a member deserialize program.
type Decodable interface {
	DecodeWire(d *Deserializer)
}
