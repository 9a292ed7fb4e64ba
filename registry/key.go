// seehuhn.de/go/pdfgen - a library for generating PDF files
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package registry

import (
	"encoding/binary"
	"encoding/hex"
	"hash"
	"math"

	"golang.org/x/crypto/blake2b"
)

// Key is the content hash of a resource.
type Key [32]byte

func (k Key) String() string {
	return hex.EncodeToString(k[:8])
}

// Hasher computes a [Key] from a sequence of typed fields.  Every field is
// length-prefixed, so that different field sequences give different keys.
type Hasher struct {
	h hash.Hash
}

// NewHasher starts a new hash computation.  The kind string separates the
// key spaces of different resource types.
func NewHasher(kind string) *Hasher {
	h, _ := blake2b.New256(nil)
	res := &Hasher{h: h}
	res.String(kind)
	return res
}

// Bytes adds a byte slice to the hash.
func (h *Hasher) Bytes(b []byte) *Hasher {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(len(b)))
	h.h.Write(buf[:])
	h.h.Write(b)
	return h
}

// String adds a string to the hash.
func (h *Hasher) String(s string) *Hasher {
	return h.Bytes([]byte(s))
}

// Int adds an integer to the hash.
func (h *Hasher) Int(x int) *Hasher {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(x))
	h.h.Write(buf[:])
	return h
}

// Float adds floating point numbers to the hash.
func (h *Hasher) Float(xs ...float64) *Hasher {
	var buf [8]byte
	for _, x := range xs {
		if x == 0 {
			x = 0 // normalise -0
		}
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(x))
		h.h.Write(buf[:])
	}
	return h
}

// Bool adds a boolean to the hash.
func (h *Hasher) Bool(b bool) *Hasher {
	if b {
		return h.Int(1)
	}
	return h.Int(0)
}

// Sum returns the key.
func (h *Hasher) Sum() Key {
	var k Key
	copy(k[:], h.h.Sum(nil))
	return k
}

// Sum is a shortcut for hashing a single byte slice.
func Sum(kind string, data []byte) Key {
	return NewHasher(kind).Bytes(data).Sum()
}
