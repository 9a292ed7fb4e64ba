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

package content

import (
	"fmt"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfgen"
)

// TextBegin starts a new text object.
//
// This implements the PDF graphics operator "BT".
func (c *Canvas) TextBegin() {
	if c.Err != nil {
		return
	}
	if c.textLevel > 0 {
		c.Err = fmt.Errorf("TextBegin: nested text object")
		return
	}
	c.Emit(OpTextBegin)
	c.textLevel++
}

// TextEnd ends the current text object.
//
// This implements the PDF graphics operator "ET".
func (c *Canvas) TextEnd() {
	if !c.inText() {
		return
	}
	c.Emit(OpTextEnd)
	c.textLevel--
}

func (c *Canvas) inText() bool {
	if c.Err != nil {
		return false
	}
	if c.textLevel == 0 {
		c.Err = errNoText
		return false
	}
	return true
}

// TextSetFont sets the font and font size.  The font is given by its
// name in the resource dictionary.
//
// This implements the PDF graphics operator "Tf".
func (c *Canvas) TextSetFont(name pdf.Name, size float64) {
	c.Emit(OpTextSetFont, name, pdf.Number(size))
}

// TextSetCharacterSpacing sets additional character spacing.
//
// This implements the PDF graphics operator "Tc".
func (c *Canvas) TextSetCharacterSpacing(charSpacing float64) {
	c.Emit(OpTextSetCharacterSpacing, pdf.Number(charSpacing))
}

// TextSetWordSpacing sets additional word spacing.
//
// This implements the PDF graphics operator "Tw".
func (c *Canvas) TextSetWordSpacing(wordSpacing float64) {
	c.Emit(OpTextSetWordSpacing, pdf.Number(wordSpacing))
}

// TextSetHorizontalScaling sets the horizontal scaling.
// The value 1 corresponds to normal scaling.
//
// This implements the PDF graphics operator "Tz".
func (c *Canvas) TextSetHorizontalScaling(scaling float64) {
	c.Emit(OpTextSetHorizontalScaling, pdf.Number(scaling*100))
}

// TextSetLeading sets the text leading.
//
// This implements the PDF graphics operator "TL".
func (c *Canvas) TextSetLeading(leading float64) {
	c.Emit(OpTextSetLeading, pdf.Number(leading))
}

// TextRenderingMode determines whether glyphs are filled, stroked, or used
// for clipping.
type TextRenderingMode int

// These are the possible text rendering modes.
const (
	TextFill TextRenderingMode = iota
	TextStroke
	TextFillStroke
	TextInvisible
	TextFillClip
	TextStrokeClip
	TextFillStrokeClip
	TextClip
)

// TextSetRenderingMode sets the text rendering mode.
//
// This implements the PDF graphics operator "Tr".
func (c *Canvas) TextSetRenderingMode(mode TextRenderingMode) {
	if mode < TextFill || mode > TextClip {
		c.setErr(fmt.Errorf("TextSetRenderingMode: invalid mode %d", mode))
		return
	}
	c.Emit(OpTextSetRenderingMode, pdf.Integer(mode))
}

// TextSetRise sets the text rise.
//
// This implements the PDF graphics operator "Ts".
func (c *Canvas) TextSetRise(rise float64) {
	c.Emit(OpTextSetRise, pdf.Number(rise))
}

// TextFirstLine moves to the start of the next line, offset by (dx, dy)
// from the start of the current line.
//
// This implements the PDF graphics operator "Td".
func (c *Canvas) TextFirstLine(dx, dy float64) {
	if !c.inText() {
		return
	}
	c.Emit(OpTextMoveOffset, nums(dx, dy)...)
}

// TextSetMatrix replaces the text matrix and the text line matrix.
//
// This implements the PDF graphics operator "Tm".
func (c *Canvas) TextSetMatrix(m matrix.Matrix) {
	if !c.inText() {
		return
	}
	c.Emit(OpTextSetMatrix, nums(m[:]...)...)
}

// TextNextLine moves to the start of the next line, using the current
// leading.
//
// This implements the PDF graphics operator "T*".
func (c *Canvas) TextNextLine() {
	if !c.inText() {
		return
	}
	c.Emit(OpTextNextLine)
}

// TextShowRaw shows an already encoded string.
//
// This implements the PDF graphics operator "Tj".
func (c *Canvas) TextShowRaw(s pdf.String) {
	if !c.inText() {
		return
	}
	c.Emit(OpTextShow, s)
}
