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
	"seehuhn.de/go/pdfgen/content"
	"seehuhn.de/go/pdfgen/registry"
)

// TilingPattern is a coloured tiling pattern.  The pattern cell is drawn
// using the [Surface] methods, and is repeated every XStep units
// horizontally and every YStep units vertically.
type TilingPattern struct {
	*Surface

	Width, Height float64
	XStep, YStep  float64

	id  int
	ops content.Stream
}

// AppendOperator implements the [content.Sink] interface.
func (p *TilingPattern) AppendOperator(op content.Operator) {
	p.ops = append(p.ops, op)
}

// NewTilingPattern creates a new tiling pattern with a cell of the given
// size.  The cell is repeated without gaps.
func (doc *Document) NewTilingPattern(width, height float64) (*TilingPattern, error) {
	if !validSize(width, height) {
		return nil, argError("NewTilingPattern", "invalid cell size %gx%g", width, height)
	}
	p := &TilingPattern{
		Width:  width,
		Height: height,
		XStep:  width,
		YStep:  height,
	}
	p.Surface = newSurface(doc, p)

	// Patterns are authored incrementally, so their content cannot be
	// used as a key.  Every pattern is distinct.
	key := registry.NewHasher("tiling pattern").Int(doc.patterns.Count()).Sum()
	p.id = doc.patterns.Register(key, p)
	return p, nil
}

// Template is a reusable piece of content, stored as a form XObject.
// Templates are placed on other surfaces using [Surface.DrawTemplate].
type Template struct {
	*Surface

	Name          string
	Width, Height float64

	ops content.Stream
}

// AppendOperator implements the [content.Sink] interface.
func (t *Template) AppendOperator(op content.Operator) {
	t.ops = append(t.ops, op)
}

// NewTemplate creates a new, empty template.  The bounding box of the
// template is the rectangle from (0, 0) to (width, height).
func (doc *Document) NewTemplate(name string, width, height float64) (*Template, error) {
	if name == "" {
		return nil, argError("NewTemplate", "empty template name")
	}
	if !validSize(width, height) {
		return nil, argError("NewTemplate", "invalid template size %gx%g", width, height)
	}
	if doc.template(name) != nil {
		return nil, argError("NewTemplate", "duplicate template %q", name)
	}
	t := &Template{
		Name:   name,
		Width:  width,
		Height: height,
	}
	t.Surface = newSurface(doc, t)
	doc.templates = append(doc.templates, t)
	return t, nil
}

func (doc *Document) template(name string) *Template {
	for _, t := range doc.templates {
		if t.Name == name {
			return t
		}
	}
	return nil
}
