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
	"golang.org/x/exp/slices"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/registry"
)

// Blend modes, see table 134 in ISO 32000-2:2020.
var blendModes = []pdf.Name{
	"Normal", "Multiply", "Screen", "Overlay", "Darken", "Lighten",
	"ColorDodge", "ColorBurn", "HardLight", "SoftLight", "Difference",
	"Exclusion", "Hue", "Saturation", "Color", "Luminosity",
}

// GState is a set of graphics state parameters, stored in an ExtGState
// resource.
type GState struct {
	BlendMode   pdf.Name // empty for Normal
	FillAlpha   float64  // 0 (transparent) to 1 (opaque)
	StrokeAlpha float64
}

func (gs GState) validate() error {
	if gs.BlendMode != "" && !slices.Contains(blendModes, gs.BlendMode) {
		return argError("SetGState", "unknown blend mode %q", gs.BlendMode)
	}
	for _, a := range []float64{gs.FillAlpha, gs.StrokeAlpha} {
		if !(a >= 0 && a <= 1) {
			return argError("SetGState", "opacity %g not in [0, 1]", a)
		}
	}
	return nil
}

func (gs GState) key() registry.Key {
	return registry.NewHasher("ext gstate").
		String(string(gs.BlendMode)).
		Float(gs.FillAlpha, gs.StrokeAlpha).
		Sum()
}

// asDict returns the ExtGState dictionary.
func (gs GState) asDict() pdf.Dict {
	bm := gs.BlendMode
	if bm == "" {
		bm = "Normal"
	}
	return pdf.Dict{
		"Type": pdf.Name("ExtGState"),
		"ca":   pdf.Number(gs.FillAlpha),
		"CA":   pdf.Number(gs.StrokeAlpha),
		"BM":   bm,
	}
}
