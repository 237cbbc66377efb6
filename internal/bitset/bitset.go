// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bitset gives the pointer-linking and inheritance contexts a
// growable "have I seen this id" set, without each call site reaching
// for github.com/bits-and-blooms/bitset directly.
package bitset

import "github.com/bits-and-blooms/bitset"

// Set tracks membership of small non-negative integer ids (pointer ids,
// visited base-class slots). The zero value is ready to use.
type Set struct {
	bits *bitset.BitSet
}

// Test reports whether id has been recorded.
func (s *Set) Test(id uint) bool {
	if s.bits == nil {
		return false
	}
	return s.bits.Test(id)
}

// Add records id as seen, growing the backing storage if needed.
func (s *Set) Add(id uint) {
	if s.bits == nil {
		s.bits = bitset.New(id + 1)
	}
	s.bits.Set(id)
}

// Len reports the highest id + 1 the set has grown to accommodate.
func (s *Set) Len() uint {
	if s.bits == nil {
		return 0
	}
	return s.bits.Len()
}
