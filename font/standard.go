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
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// The names of the 14 standard PDF fonts.
const (
	Courier              = "Courier"
	CourierBold          = "Courier-Bold"
	CourierBoldOblique   = "Courier-BoldOblique"
	CourierOblique       = "Courier-Oblique"
	Helvetica            = "Helvetica"
	HelveticaBold        = "Helvetica-Bold"
	HelveticaBoldOblique = "Helvetica-BoldOblique"
	HelveticaOblique     = "Helvetica-Oblique"
	TimesRoman           = "Times-Roman"
	TimesBold            = "Times-Bold"
	TimesBoldItalic      = "Times-BoldItalic"
	TimesItalic          = "Times-Italic"
	Symbol               = "Symbol"
	ZapfDingbats         = "ZapfDingbats"
)

// StandardNames lists the names of the 14 standard fonts.
var StandardNames = []string{
	Courier, CourierBold, CourierBoldOblique, CourierOblique,
	Helvetica, HelveticaBold, HelveticaBoldOblique, HelveticaOblique,
	TimesRoman, TimesBold, TimesBoldItalic, TimesItalic,
	Symbol, ZapfDingbats,
}

// ErrUnknownFont is returned by [Standard] for names which do not
// belong to one of the 14 standard fonts.
var ErrUnknownFont = errors.New("not a standard font")

// Standard returns one of the 14 standard fonts.
//
// Glyph widths are only known for the Courier family, where every glyph
// is 600 units wide.  For the other standard fonts, [Font.Width] returns
// zero.
func Standard(name string) (*Font, error) {
	if !slices.Contains(StandardNames, name) {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownFont)
	}
	f := &Font{
		PostScriptName: name,
		symbolic:       name == Symbol || name == ZapfDingbats,
	}
	if name == Courier || name == CourierBold ||
		name == CourierOblique || name == CourierBoldOblique {
		widths := make([]float64, LastChar-FirstChar+1)
		for i := range widths {
			widths[i] = 600
		}
		f.Metrics = &Metrics{
			Widths:    widths,
			Ascent:    629,
			Descent:   -157,
			CapHeight: 562,
			Flags:     FlagFixedPitch | FlagSerif | FlagNonsymbolic,
		}
	}
	return f, nil
}
