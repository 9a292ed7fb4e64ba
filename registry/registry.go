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

// Package registry implements deduplicating stores for the resources of a
// document.  Every resource is identified by a hash of its content, so
// that resources which are used repeatedly are only embedded once.
package registry

// Registry maps content hashes to sequentially numbered entries.
// The first entry has id 1.  Ids are never reused, not even after
// [Registry.Clear].
type Registry[T any] struct {
	index   map[Key]int
	entries []Entry[T]
	base    int
}

// Entry is a registered resource.
type Entry[T any] struct {
	ID      int
	Key     Key
	Payload T
}

// New allocates an empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{
		index: make(map[Key]int),
	}
}

// Register returns the id of the entry with the given key.  If the key has
// not been seen before, a new entry with the next id is created.  The
// payload of an existing entry is not replaced.
func (r *Registry[T]) Register(key Key, payload T) int {
	if pos, ok := r.index[key]; ok {
		return r.entries[pos].ID
	}
	id := r.base + len(r.entries) + 1
	r.index[key] = len(r.entries)
	r.entries = append(r.entries, Entry[T]{ID: id, Key: key, Payload: payload})
	return id
}

// Lookup returns the id which [Registry.Register] would return for key,
// without modifying the registry.
func (r *Registry[T]) Lookup(key Key) int {
	if pos, ok := r.index[key]; ok {
		return r.entries[pos].ID
	}
	return r.base + len(r.entries) + 1
}

// Has reports whether an entry with the given key exists.
func (r *Registry[T]) Has(key Key) bool {
	_, ok := r.index[key]
	return ok
}

// Get returns the entry with the given key.
func (r *Registry[T]) Get(key Key) (Entry[T], bool) {
	pos, ok := r.index[key]
	if !ok {
		return Entry[T]{}, false
	}
	return r.entries[pos], true
}

// Count returns the number of entries.
func (r *Registry[T]) Count() int {
	return len(r.entries)
}

// Clear removes all entries.  Ids assigned afterwards continue the
// previous sequence.
func (r *Registry[T]) Clear() {
	r.base += len(r.entries)
	r.entries = nil
	clear(r.index)
}

// Entries returns all entries in order of increasing id.
func (r *Registry[T]) Entries() []Entry[T] {
	return append([]Entry[T](nil), r.entries...)
}

// Clone returns an independent copy of the registry.  The payloads are
// copied shallowly.
func (r *Registry[T]) Clone() *Registry[T] {
	res := &Registry[T]{
		index:   make(map[Key]int, len(r.index)),
		entries: append([]Entry[T](nil), r.entries...),
		base:    r.base,
	}
	for k, v := range r.index {
		res.index[k] = v
	}
	return res
}
