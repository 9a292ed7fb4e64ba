// seehuhn.de/go/pdfgen - a library for generating PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
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

package document

import (
	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/registry"
)

// Layer is an optional content group.  Viewers let the user show and
// hide layers.
type Layer struct {
	Name    string
	Visible bool

	doc *Document
	id  int
}

// AddLayer creates a new layer.  Calling AddLayer twice with the same
// name returns the same layer.
func (doc *Document) AddLayer(name string, visible bool) (*Layer, error) {
	if name == "" {
		return nil, argError("AddLayer", "empty layer name")
	}
	key := registry.NewHasher("layer").String(name).Sum()
	if e, ok := doc.layers.Get(key); ok {
		return e.Payload, nil
	}
	l := &Layer{Name: name, Visible: visible, doc: doc}
	l.id = doc.layers.Register(key, l)
	return l, nil
}

// ocgDict returns the optional content group dictionary.
func (l *Layer) ocgDict() pdf.Dict {
	return pdf.Dict{
		"Type": pdf.Name("OCG"),
		"Name": pdf.TextString(l.Name),
	}
}
