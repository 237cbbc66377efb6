// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package packwire

import (
	"math"

	"github.com/packwire/packwire/internal/bo"
)

// Endianness selects the wire byte order a Writer/Reader pair agrees on.
// It defaults to Little, matching most modern peers; a build targeting a
// big-endian wire protocol (e.g. interop with an existing network-byte-order
// peer) selects Big via WithBigEndian.
type Endianness uint8

const (
	Little Endianness = iota
	Big
)

// hostLittle reports whether the running machine is little-endian, using
// internal/bo's per-arch Native() detection.
func hostLittle() bool { return bo.Native().String() == "LittleEndian" }

// swapNeeded reports whether fundamental writes/reads must byte-swap to
// reach the configured wire endianness on this host.
func swapNeeded(wire Endianness) bool {
	wireLittle := wire == Little
	return wireLittle != hostLittle()
}

func swap16(v uint16) uint16 {
	return v<<8 | v>>8
}

func swap32(v uint32) uint32 {
	return v<<24 | (v&0xFF00)<<8 | (v&0xFF0000)>>8 | v>>24
}

func swap64(v uint64) uint64 {
	return v<<56 | (v&0xFF00)<<40 | (v&0xFF0000)<<24 | (v&0xFF000000)<<8 |
		(v&0xFF00000000)>>8 | (v&0xFF0000000000)>>24 | (v&0xFF000000000000)>>40 | v>>56
}

// float32bits / float64bits reinterpret floating point values as unsigned
// integers of the same width so the same swap path handles them.
func float32bits(f float32) uint32 { return math.Float32bits(f) }
func float32frombits(b uint32) float32 { return math.Float32frombits(b) }
func float64bits(f float64) uint64 { return math.Float64bits(f) }
func float64frombits(b uint64) float64 { return math.Float64frombits(b) }
