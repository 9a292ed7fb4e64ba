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
	"strconv"
	"strings"

	"seehuhn.de/go/pdfgen"
)

// Color is a colour in one of the device colour spaces.
type Color interface {
	// Values returns the colour components, each in the range [0, 1].
	Values() []float64
}

// Gray is a colour in the DeviceGray colour space.
type Gray float64

// Values implements the [Color] interface.
func (g Gray) Values() []float64 { return []float64{float64(g)} }

// RGB is a colour in the DeviceRGB colour space.
type RGB struct {
	R, G, B float64
}

// Values implements the [Color] interface.
func (c RGB) Values() []float64 { return []float64{c.R, c.G, c.B} }

// CMYK is a colour in the DeviceCMYK colour space.
type CMYK struct {
	C, M, Y, K float64
}

// Values implements the [Color] interface.
func (c CMYK) Values() []float64 { return []float64{c.C, c.M, c.Y, c.K} }

// Some frequently used colours.
var (
	Black = Gray(0)
	White = Gray(1)
	Red   = RGB{R: 1}
	Green = RGB{G: 1}
	Blue  = RGB{B: 1}
)

// ParseHexColor parses colours of the form "#rgb" or "#rrggbb".
func ParseHexColor(s string) (RGB, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return RGB{}, fmt.Errorf("invalid colour %q", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid colour %q", s)
	}
	return RGB{
		R: float64(v>>16&0xFF) / 255,
		G: float64(v>>8&0xFF) / 255,
		B: float64(v&0xFF) / 255,
	}, nil
}

// SetFillColor sets the colour used for filling and for text.
//
// This implements the PDF graphics operators "g", "rg" and "k".
func (c *Canvas) SetFillColor(col Color) {
	c.setColor(col, true)
}

// SetStrokeColor sets the colour used for stroking.
//
// This implements the PDF graphics operators "G", "RG" and "K".
func (c *Canvas) SetStrokeColor(col Color) {
	c.setColor(col, false)
}

func (c *Canvas) setColor(col Color, fill bool) {
	var op OpName
	switch col.(type) {
	case Gray:
		op = OpSetStrokeGray
	case RGB:
		op = OpSetStrokeRGB
	case CMYK:
		op = OpSetStrokeCMYK
	default:
		c.setErr(fmt.Errorf("unsupported colour type %T", col))
		return
	}
	if fill {
		op = OpName(strings.ToLower(string(op)))
	}
	vals := col.Values()
	for _, v := range vals {
		if v < 0 || v > 1 {
			c.setErr(fmt.Errorf("colour component %g out of range", v))
			return
		}
	}
	c.Emit(op, nums(vals...)...)
}

// SetFillPattern selects the named pattern for filling.
//
// This implements the PDF graphics operators "cs" and "scn".
func (c *Canvas) SetFillPattern(name pdf.Name) {
	c.Emit(OpSetFillColorSpace, pdf.Name("Pattern"))
	c.Emit(OpSetFillColorN, name)
}

// SetStrokePattern selects the named pattern for stroking.
//
// This implements the PDF graphics operators "CS" and "SCN".
func (c *Canvas) SetStrokePattern(name pdf.Name) {
	c.Emit(OpSetStrokeColorSpace, pdf.Name("Pattern"))
	c.Emit(OpSetStrokeColorN, name)
}
