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
	"fmt"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/content"
)

// Link is a link annotation.  A link either points to a URI or to a page
// of the same document.
type Link struct {
	Rect rect.Rect
	URI  string

	// Page is the index of the target page, for links inside the
	// document.  Top is the vertical position on the target page.
	Page int
	Top  float64
}

// AddLink adds a link to an external URI.
func (p *Page) AddLink(r rect.Rect, uri string) error {
	if uri == "" {
		return argError("AddLink", "empty URI")
	}
	if !validRect(r) {
		return argError("AddLink", "invalid rectangle %v", r)
	}
	p.links = append(p.links, &Link{Rect: r, URI: uri})
	return nil
}

// AddPageLink adds a link to another page of the document.  The target
// page index is checked when the document is generated.
func (p *Page) AddPageLink(r rect.Rect, page int, top float64) error {
	if !validRect(r) {
		return argError("AddPageLink", "invalid rectangle %v", r)
	}
	if page < 0 {
		return argError("AddPageLink", "invalid page index %d", page)
	}
	p.links = append(p.links, &Link{Rect: r, Page: page, Top: top})
	return nil
}

func validRect(r rect.Rect) bool {
	return finite(r.LLx, r.LLy, r.URx, r.URy) && r.URx > r.LLx && r.URy > r.LLy
}

// AnnotationKind selects the type of a markup annotation.
type AnnotationKind int

// These are the supported markup annotation types.
const (
	Note AnnotationKind = iota + 1
	Highlight
	Underline
	StrikeOut
	Square
	Circle
	Line
	Ink
	Stamp
	FreeText
)

var annotationSubtypes = map[AnnotationKind]pdf.Name{
	Note:      "Text",
	Highlight: "Highlight",
	Underline: "Underline",
	StrikeOut: "StrikeOut",
	Square:    "Square",
	Circle:    "Circle",
	Line:      "Line",
	Ink:       "Ink",
	Stamp:     "Stamp",
	FreeText:  "FreeText",
}

func (k AnnotationKind) String() string {
	if s, ok := annotationSubtypes[k]; ok {
		return string(s)
	}
	return fmt.Sprintf("AnnotationKind(%d)", int(k))
}

// Annotation is a markup annotation.
type Annotation struct {
	Kind     AnnotationKind
	Rect     rect.Rect
	Contents string
	Author   string
	Color    content.Color
	Opacity  float64 // 0 means opaque

	// Line gives the end points x1, y1, x2, y2 of a Line annotation.
	Line [4]float64

	// Ink gives the strokes of an Ink annotation.
	Ink [][]vec.Vec2

	// Stamp is the name of the stamp, for example "Approved".
	Stamp pdf.Name

	// Icon is the icon of a Note, for example "Comment".
	Icon pdf.Name
	Open bool

	// FontSize is used for FreeText annotations.  The default is 12.
	FontSize float64
}

// AddAnnotation adds a markup annotation to the page.
func (p *Page) AddAnnotation(a *Annotation) error {
	if a == nil {
		return argError("AddAnnotation", "missing annotation")
	}
	if _, ok := annotationSubtypes[a.Kind]; !ok {
		return argError("AddAnnotation", "unknown annotation kind %d", a.Kind)
	}
	if !validRect(a.Rect) {
		return argError("AddAnnotation", "invalid rectangle %v", a.Rect)
	}
	if !(a.Opacity >= 0 && a.Opacity <= 1) {
		return argError("AddAnnotation", "opacity %g not in [0, 1]", a.Opacity)
	}
	if a.Kind == Ink && len(a.Ink) == 0 {
		return argError("AddAnnotation", "ink annotation without strokes")
	}
	p.annots = append(p.annots, a.clone())
	return nil
}

func (a *Annotation) clone() *Annotation {
	c := *a
	c.Ink = make([][]vec.Vec2, len(a.Ink))
	for i, stroke := range a.Ink {
		c.Ink[i] = slices.Clone(stroke)
	}
	return &c
}

// asDict returns the annotation dictionary.  The entry /P is filled in
// by the caller.
func (a *Annotation) asDict() pdf.Dict {
	r := a.Rect
	dict := pdf.Dict{
		"Type":    pdf.Name("Annot"),
		"Subtype": annotationSubtypes[a.Kind],
		"Rect":    rectArray(r),
	}
	if a.Contents != "" {
		dict["Contents"] = pdf.TextString(a.Contents)
	}
	if a.Author != "" {
		dict["T"] = pdf.TextString(a.Author)
	}
	if a.Color != nil {
		dict["C"] = numbers(a.Color.Values()...)
	}
	if a.Opacity > 0 && a.Opacity < 1 {
		dict["CA"] = pdf.Number(a.Opacity)
	}

	switch a.Kind {
	case Note:
		if a.Icon != "" {
			dict["Name"] = a.Icon
		}
		if a.Open {
			dict["Open"] = pdf.Bool(true)
		}
	case Highlight, Underline, StrikeOut:
		dict["QuadPoints"] = numbers(r.LLx, r.URy, r.URx, r.URy, r.LLx, r.LLy, r.URx, r.LLy)
	case Line:
		dict["L"] = numbers(a.Line[:]...)
	case Ink:
		var list pdf.Array
		for _, stroke := range a.Ink {
			var path pdf.Array
			for _, pt := range stroke {
				path = append(path, pdf.Number(pt.X), pdf.Number(pt.Y))
			}
			list = append(list, path)
		}
		dict["InkList"] = list
	case Stamp:
		if a.Stamp != "" {
			dict["Name"] = a.Stamp
		}
	case FreeText:
		size := a.FontSize
		if size <= 0 {
			size = 12
		}
		dict["DA"] = pdf.String(fmt.Sprintf("/Helv %s Tf 0 g", pdf.Format(pdf.Number(size))))
	}
	return dict
}

// linkDict returns the link annotation dictionary.  pageRef is the
// reference of the target page, for links inside the document.
func (l *Link) linkDict(pageRef pdf.Reference) pdf.Dict {
	dict := pdf.Dict{
		"Type":    pdf.Name("Annot"),
		"Subtype": pdf.Name("Link"),
		"Rect":    rectArray(l.Rect),
		"Border":  pdf.Array{pdf.Integer(0), pdf.Integer(0), pdf.Integer(0)},
	}
	if l.URI != "" {
		dict["A"] = pdf.Dict{
			"S":   pdf.Name("URI"),
			"URI": pdf.String(l.URI),
		}
	} else {
		dict["Dest"] = pdf.Array{pageRef, pdf.Name("XYZ"), nil, pdf.Number(l.Top), nil}
	}
	return dict
}

func rectArray(r rect.Rect) pdf.Array {
	return numbers(r.LLx, r.LLy, r.URx, r.URy)
}

func numbers(xs ...float64) pdf.Array {
	res := make(pdf.Array, len(xs))
	for i, x := range xs {
		res[i] = pdf.Number(x)
	}
	return res
}
