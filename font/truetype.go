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


package font

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"golang.org/x/text/encoding/charmap"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/sfnt"
)

var errNotGlyf = errors.New("font does not contain TrueType outlines")

// LoadTrueType reads a TrueType font and prepares it for embedding.
// The complete font program is embedded.  The glyph widths for the
// WinAnsi character codes are taken from the font's "cmap" table.
func LoadTrueType(data []byte) (*Font, error) {
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("loading TrueType font: %w", err)
	}
	if !info.IsGlyf() {
		return nil, errNotGlyf
	}
	cmapTable, err := info.CMapTable.GetBest()
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", info.PostScriptName(), err)
	}

	widths := make([]float64, LastChar-FirstChar+1)
	for code := FirstChar; code <= LastChar; code++ {
		r := charmap.Windows1252.DecodeByte(byte(code))
		gid := cmapTable.Lookup(r)
		widths[code-FirstChar] = math.Round(info.GlyphWidthPDF(gid))
	}

	qv := info.FontMatrix[3] * 1000
	bbox := info.FontBBoxPDF()

	var flags Flags
	if info.IsFixedPitch() {
		flags |= FlagFixedPitch
	}
	if info.IsSerif {
		flags |= FlagSerif
	}
	if info.IsScript {
		flags |= FlagScript
	}
	if info.IsItalic {
		flags |= FlagItalic
	}
	flags |= FlagNonsymbolic

	m := &Metrics{
		Widths:      widths,
		Ascent:      math.Round(float64(info.Ascent) * qv),
		Descent:     math.Round(float64(info.Descent) * qv),
		CapHeight:   math.Round(float64(info.CapHeight) * qv),
		ItalicAngle: info.ItalicAngle,
		BBox: rect.Rect{
			LLx: math.Round(bbox.LLx),
			LLy: math.Round(bbox.LLy),
			URx: math.Round(bbox.URx),
			URy: math.Round(bbox.URy),
		},
		Flags: flags,
	}

	res := &Font{
		PostScriptName: info.PostScriptName(),
		Program:        data,
		Metrics:        m,
	}
	return res, nil
}
