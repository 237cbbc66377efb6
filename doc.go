// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package packwire is a compact binary serialization engine for structured
// in-memory values.
//
// Semantics and design:
//   - No self-describing format: the byte stream carries only values, never
//     type structure. A Writer/Reader pair reconstructs a value graph
//     identically only by running the same program on both sides (see
//     Serializer/Deserializer).
//   - Bit-level packing: BitWriter/BitReader let a program write arbitrary
//     bit counts and transparently align back to byte boundaries.
//   - Forward/backward compatibility: BeginSession/EndSession bracket a
//     region of the stream so a reader running an older or newer program
//     than the writer still finishes cleanly (see sessions.go).
//   - Pointer graphs: LinkingContext reconstructs owner/observer pointer
//     relationships, including shared ownership; Poly, with types
//     registered via RegisterDerived, reconstructs base/derived dispatch
//     through a platform-independent registration-order index (see
//     linking.go, polymorphic.go).
//
// Wire format (fundamentals): an N-byte fundamental is written as N raw
// bytes, byte-swapped when the configured wire endianness differs from the
// host's. A variable-length size prefix (1, 2, or 4 bytes; see size.go)
// precedes resizable containers and text. Pointer ids and polymorphic tags
// are both size-prefixed integers; 0 always means "null".
package packwire
