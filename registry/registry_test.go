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
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSequentialIDs(t *testing.T) {
	r := New[string]()
	var ids []int
	for i := 0; i < 5; i++ {
		s := strconv.Itoa(i)
		ids = append(ids, r.Register(Sum("test", []byte(s)), s))
	}
	if d := cmp.Diff([]int{1, 2, 3, 4, 5}, ids); d != "" {
		t.Error(d)
	}
	if r.Count() != 5 {
		t.Errorf("Count() = %d", r.Count())
	}
}

func TestDeduplication(t *testing.T) {
	r := New[string]()
	k := Sum("test", []byte("payload"))
	id1 := r.Register(k, "first")
	id2 := r.Register(k, "second")
	if id1 != id2 {
		t.Errorf("same key gave ids %d and %d", id1, id2)
	}
	if r.Count() != 1 {
		t.Errorf("Count() = %d", r.Count())
	}
	e, ok := r.Get(k)
	if !ok || e.Payload != "first" {
		t.Errorf("Get() = %v, %t", e, ok)
	}
	if !r.Has(k) || r.Has(Sum("test", []byte("other"))) {
		t.Error("Has() is wrong")
	}
}

func TestClear(t *testing.T) {
	r := New[int]()
	r.Register(Sum("a", nil), 1)
	r.Register(Sum("b", nil), 2)
	r.Clear()
	if r.Count() != 0 || r.Has(Sum("a", nil)) {
		t.Error("Clear() left entries behind")
	}
	if id := r.Register(Sum("a", nil), 1); id != 3 {
		t.Errorf("id after Clear() = %d, want 3", id)
	}
}

func TestEntriesOrder(t *testing.T) {
	r := New[string]()
	for _, s := range []string{"z", "a", "m"} {
		r.Register(Sum("x", []byte(s)), s)
	}
	var got []string
	for _, e := range r.Entries() {
		got = append(got, e.Payload)
	}
	if d := cmp.Diff([]string{"z", "a", "m"}, got); d != "" {
		t.Error(d)
	}
}

func TestHasherSeparatesFields(t *testing.T) {
	k1 := NewHasher("k").String("ab").String("c").Sum()
	k2 := NewHasher("k").String("a").String("bc").Sum()
	if k1 == k2 {
		t.Error("field boundaries are not part of the hash")
	}
	k3 := NewHasher("k").Float(0).Sum()
	k4 := NewHasher("k").Float(-0.0).Sum()
	if k3 != k4 {
		t.Error("-0 and 0 hash differently")
	}
	if Sum("image", []byte("x")) == Sum("font", []byte("x")) {
		t.Error("kind does not separate key spaces")
	}
}

func TestClone(t *testing.T) {
	r := New[int]()
	r.Register(Sum("a", nil), 1)
	c := r.Clone()
	c.Register(Sum("b", nil), 2)
	if r.Count() != 1 || c.Count() != 2 {
		t.Errorf("clone is not independent: %d %d", r.Count(), c.Count())
	}
}

func TestLookup(t *testing.T) {
	r := New[int]()
	a, b := Sum("a", nil), Sum("b", nil)
	if id := r.Lookup(a); id != 1 {
		t.Errorf("Lookup on empty registry = %d, want 1", id)
	}
	if r.Count() != 0 {
		t.Fatal("Lookup modified the registry")
	}
	r.Register(a, 1)
	if r.Lookup(a) != 1 || r.Lookup(b) != 2 {
		t.Errorf("Lookup = %d, %d", r.Lookup(a), r.Lookup(b))
	}
	r.Clear()
	if id := r.Lookup(b); id != r.Register(b, 2) {
		t.Errorf("Lookup after Clear() = %d", id)
	}
}
