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
	"math"
	"unicode/utf8"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfgen/content"
	"seehuhn.de/go/pdfgen/font"
	"seehuhn.de/go/pdfgen/registry"
)

// Watermark describes a line of text which is drawn across the centre of
// a page.
type Watermark struct {
	Text    string
	Font    *font.Font    // default: Helvetica
	Size    float64       // default: 60
	Color   content.Color // default: 50% gray
	Opacity float64       // default: 0.3
	Angle   float64       // in degrees, counter-clockwise
}

// watermarkForm is the form XObject which draws a watermark, centred at
// the origin.
type watermarkForm struct {
	ops  content.Stream
	bbox rect.Rect
}

// AddWatermark draws a watermark over the current page content.  Identical
// watermarks on different pages share a single form XObject.
func (p *Page) AddWatermark(wm Watermark) error {
	if wm.Text == "" {
		return argError("AddWatermark", "empty watermark text")
	}
	if wm.Font == nil {
		wm.Font, _ = font.Standard(font.Helvetica)
	}
	if wm.Size == 0 {
		wm.Size = 60
	}
	if wm.Color == nil {
		wm.Color = content.Gray(0.5)
	}
	if wm.Opacity == 0 {
		wm.Opacity = 0.3
	}
	if !(wm.Size > 0) || !finite(wm.Size, wm.Angle) {
		return argError("AddWatermark", "invalid size or angle")
	}
	gs := GState{FillAlpha: wm.Opacity, StrokeAlpha: wm.Opacity}
	if err := gs.validate(); err != nil {
		return err
	}

	doc := p.doc
	fontKey := wm.Font.Key()
	fontID := doc.fonts.Lookup(fontKey)
	gsID := doc.gstates.Lookup(gs.key())

	width := wm.Font.Width(wm.Text, wm.Size)
	if width == 0 {
		width = 0.5 * wm.Size * float64(utf8.RuneCountInString(wm.Text))
	}
	r := math.Hypot(width/2, wm.Size)

	buf := &content.Buffer{}
	c := content.NewCanvas(buf)
	c.SetExtGState(gstateName(gsID))
	c.SetFillColor(wm.Color)
	c.TextBegin()
	c.TextSetFont(fontName(fontID), wm.Size)
	m := matrix.Translate(-width/2, -wm.Size/3).Mul(matrix.RotateDeg(wm.Angle))
	c.TextSetMatrix(m)
	c.TextShowRaw(wm.Font.Encode(wm.Text))
	c.TextEnd()
	if err := c.Close(); err != nil {
		return argError("AddWatermark", "%s", err)
	}

	// register only once the form is known to be valid
	doc.fonts.Register(fontKey, wm.Font)
	doc.gstates.Register(gs.key(), gs)

	form := &watermarkForm{
		ops:  buf.Ops,
		bbox: rect.Rect{LLx: -r, LLy: -r, URx: r, URy: r},
	}
	key := registry.NewHasher("watermark").
		String(wm.Text).
		Bytes(fontKey[:]).
		Float(wm.Size, wm.Opacity, wm.Angle).
		Float(wm.Color.Values()...).
		Sum()
	id := doc.watermarks.Register(key, form)

	p.PushGraphicsState()
	p.Translate(p.Width/2, p.Height/2)
	p.DrawXObject(watermarkName(id))
	p.PopGraphicsState()
	return nil
}
