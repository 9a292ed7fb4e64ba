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


// Package font describes the fonts used for text on the pages of a
// document.
//
// Two kinds of fonts are supported.  The 14 standard fonts are provided by
// every viewer and are only referenced by name.  TrueType fonts are
// embedded into the file, together with their metrics and a ToUnicode
// CMap.  All fonts use a single-byte encoding: WinAnsiEncoding for text
// fonts, and the built-in encoding for the two symbolic standard fonts.
package font

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/registry"
)

// The range of character codes covered by the width arrays of embedded
// fonts.
const (
	FirstChar = 32
	LastChar  = 255
)

// Font is a font which can be used on the pages of a document.
type Font struct {
	// PostScriptName is the name of the font, as used for /BaseFont.
	PostScriptName string

	// Program is the TrueType font program.  This is nil for the standard
	// fonts.
	Program []byte

	// Metrics gives the font metrics.  This may be nil for standard
	// fonts.
	Metrics *Metrics

	symbolic bool
}

// Metrics contains the font metrics, in PDF glyph space units.
type Metrics struct {
	// Widths lists the advance widths of the characters with codes
	// FirstChar, ..., LastChar.
	Widths []float64

	Ascent      float64
	Descent     float64 // negative
	CapHeight   float64
	ItalicAngle float64
	StemV       float64
	BBox        rect.Rect
	Flags       Flags
}

// IsStandard reports whether f is one of the 14 standard fonts.
func (f *Font) IsStandard() bool {
	return f.Program == nil
}

// NumObjects returns the number of indirect objects needed to represent
// the font in a PDF file: one for a standard font, and four for an
// embedded font.
func (f *Font) NumObjects() int {
	if f.IsStandard() {
		return 1
	}
	return 4
}

// Key returns the content hash used to deduplicate fonts.
func (f *Font) Key() registry.Key {
	return registry.NewHasher("font").
		String(f.PostScriptName).
		Bytes(f.Program).
		Sum()
}

// Encode converts a string into character codes for this font.
// Characters which cannot be represented are replaced by '?'.
func (f *Font) Encode(s string) pdf.String {
	res := make(pdf.String, 0, len(s))
	for _, r := range s {
		var c byte
		var ok bool
		if f.symbolic {
			c, ok = byte(r), r < 256
		} else {
			c, ok = charmap.Windows1252.EncodeRune(r)
		}
		if !ok {
			c = '?'
		}
		res = append(res, c)
	}
	return res
}

// Width returns the width of s in text space units, when set at the given
// font size.  The result is zero if the font has no metrics.
func (f *Font) Width(s string, size float64) float64 {
	if f.Metrics == nil {
		return 0
	}
	var w float64
	for _, c := range f.Encode(s) {
		if c < FirstChar {
			continue
		}
		idx := int(c) - FirstChar
		if idx < len(f.Metrics.Widths) {
			w += f.Metrics.Widths[idx]
		}
	}
	return w * size / 1000
}

// Objects returns the PDF objects which represent the font.  The slice refs
// must contain [Font.NumObjects] references, for the font dictionary, the
// font descriptor, the font program and the ToUnicode CMap, in this order.
// The returned objects correspond to the references.
func (f *Font) Objects(refs []pdf.Reference) ([]pdf.Object, error) {
	if len(refs) != f.NumObjects() {
		return nil, fmt.Errorf("font %q: need %d references, got %d",
			f.PostScriptName, f.NumObjects(), len(refs))
	}

	fontDict := pdf.Dict{
		"Type":     pdf.Name("Font"),
		"BaseFont": pdf.Name(f.PostScriptName),
	}
	if !f.symbolic {
		fontDict["Encoding"] = pdf.Name("WinAnsiEncoding")
	}
	if f.IsStandard() {
		fontDict["Subtype"] = pdf.Name("Type1")
		return []pdf.Object{fontDict}, nil
	}

	m := f.Metrics
	if m == nil || len(m.Widths) != LastChar-FirstChar+1 {
		return nil, fmt.Errorf("font %q: missing metrics", f.PostScriptName)
	}

	widths := make(pdf.Array, len(m.Widths))
	for i, w := range m.Widths {
		widths[i] = pdf.Number(w)
	}
	fontDict["Subtype"] = pdf.Name("TrueType")
	fontDict["FirstChar"] = pdf.Integer(FirstChar)
	fontDict["LastChar"] = pdf.Integer(LastChar)
	fontDict["Widths"] = widths
	fontDict["FontDescriptor"] = refs[1]
	fontDict["ToUnicode"] = refs[3]

	fd := pdf.Dict{
		"Type":        pdf.Name("FontDescriptor"),
		"FontName":    pdf.Name(f.PostScriptName),
		"Flags":       pdf.Integer(m.Flags),
		"FontBBox":    pdf.Array{pdf.Number(m.BBox.LLx), pdf.Number(m.BBox.LLy), pdf.Number(m.BBox.URx), pdf.Number(m.BBox.URy)},
		"ItalicAngle": pdf.Number(m.ItalicAngle),
		"Ascent":      pdf.Number(m.Ascent),
		"Descent":     pdf.Number(m.Descent),
		"CapHeight":   pdf.Number(m.CapHeight),
		"StemV":       pdf.Number(m.StemV),
		"FontFile2":   refs[2],
	}

	fontFile := &pdf.Stream{
		Dict: pdf.Dict{
			"Length1": pdf.Integer(len(f.Program)),
		},
		Data:     f.Program,
		Compress: true,
	}

	toUni, err := winAnsiToUnicode()
	if err != nil {
		return nil, err
	}

	return []pdf.Object{fontDict, fd, fontFile, toUni}, nil
}
