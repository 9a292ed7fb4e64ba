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

// Package shading implements colour gradients.
//
// A gradient is either a [*Linear] (axial) or a [*Radial] gradient.  The
// colours are given by a list of stops, which are converted into a PDF
// function: an exponential interpolation function for two stops and a
// stitching function for more than two stops.
package shading

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/content"
	"seehuhn.de/go/pdfgen/registry"
)

// Gradient is either a [*Linear] or a [*Radial] gradient.
type Gradient interface {
	stops() []Stop
	isGradient()
}

// Stop fixes the colour at one position along the gradient.  Offsets
// range from 0 (start of the gradient) to 1 (end of the gradient).
type Stop struct {
	Offset float64
	Color  content.Color
}

// Linear is an axial gradient between the points (X0, Y0) and (X1, Y1).
type Linear struct {
	X0, Y0, X1, Y1 float64
	Stops          []Stop

	// Extend controls whether the gradient is continued beyond the
	// start and end points.
	Extend [2]bool
}

func (g *Linear) stops() []Stop { return g.Stops }
func (g *Linear) isGradient()   {}

// Radial is a gradient between two circles.
type Radial struct {
	X0, Y0, R0 float64
	X1, Y1, R1 float64
	Stops      []Stop
	Extend     [2]bool
}

func (g *Radial) stops() []Stop { return g.Stops }
func (g *Radial) isGradient()   {}

var (
	errFewStops    = errors.New("gradient needs at least two colour stops")
	errStopOrder   = errors.New("colour stops must be in increasing order")
	errMixedColors = errors.New("colour stops use different colour spaces")
	errRadius      = errors.New("invalid gradient radius")
	errNoGradient  = errors.New("missing gradient")
)

// Validate checks a gradient for consistency.
func Validate(g Gradient) error {
	var coords []float64
	switch g := g.(type) {
	case nil:
		return errNoGradient
	case *Linear:
		if g == nil {
			return errNoGradient
		}
		coords = []float64{g.X0, g.Y0, g.X1, g.Y1}
	case *Radial:
		if g == nil {
			return errNoGradient
		}
		if g.R0 < 0 || g.R1 < 0 || g.R0 == 0 && g.R1 == 0 {
			return errRadius
		}
		coords = []float64{g.X0, g.Y0, g.R0, g.X1, g.Y1, g.R1}
	default:
		panic("unreachable")
	}
	for _, x := range coords {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("invalid gradient coordinate %g", x)
		}
	}

	stops := g.stops()
	if len(stops) < 2 {
		return errFewStops
	}
	space := colorSpace(stops[0].Color)
	if space == "" {
		return fmt.Errorf("unsupported colour %T", stops[0].Color)
	}
	prev := 0.0
	for _, s := range stops {
		if !(s.Offset >= prev && s.Offset <= 1) {
			return errStopOrder
		}
		prev = s.Offset
		if colorSpace(s.Color) != space {
			return errMixedColors
		}
	}
	return nil
}

// Key returns the content hash used to deduplicate gradients.
// Gradients with the same geometry and the same colour stops have
// the same key.
func Key(g Gradient) registry.Key {
	var h *registry.Hasher
	switch g := g.(type) {
	case *Linear:
		h = registry.NewHasher("linear gradient")
		h.Float(g.X0, g.Y0, g.X1, g.Y1)
		h.Bool(g.Extend[0]).Bool(g.Extend[1])
	case *Radial:
		h = registry.NewHasher("radial gradient")
		h.Float(g.X0, g.Y0, g.R0, g.X1, g.Y1, g.R1)
		h.Bool(g.Extend[0]).Bool(g.Extend[1])
	default:
		panic("unreachable")
	}
	stops := g.stops()
	h.Int(len(stops))
	for _, s := range stops {
		var vals []float64
		if s.Color != nil {
			vals = s.Color.Values()
		}
		h.Float(s.Offset).String(string(colorSpace(s.Color)))
		h.Int(len(vals)).Float(vals...)
	}
	return h.Sum()
}

// Dict returns the shading dictionary for the gradient.
func Dict(g Gradient) (pdf.Dict, error) {
	err := Validate(g)
	if err != nil {
		return nil, err
	}

	res := pdf.Dict{}
	var extend [2]bool
	switch g := g.(type) {
	case *Linear:
		res["ShadingType"] = pdf.Integer(2)
		res["Coords"] = numbers(g.X0, g.Y0, g.X1, g.Y1)
		extend = g.Extend
	case *Radial:
		res["ShadingType"] = pdf.Integer(3)
		res["Coords"] = numbers(g.X0, g.Y0, g.R0, g.X1, g.Y1, g.R1)
		extend = g.Extend
	default:
		panic("unreachable")
	}
	stops := g.stops()
	res["ColorSpace"] = colorSpace(stops[0].Color)
	res["Function"] = function(stops)
	if extend[0] || extend[1] {
		res["Extend"] = pdf.Array{pdf.Bool(extend[0]), pdf.Bool(extend[1])}
	}
	return res, nil
}

// Pattern returns a shading pattern dictionary which uses the shading
// stored at shadingRef.
func Pattern(shadingRef pdf.Reference) pdf.Dict {
	return pdf.Dict{
		"Type":        pdf.Name("Pattern"),
		"PatternType": pdf.Integer(2),
		"Shading":     shadingRef,
	}
}

func colorSpace(c content.Color) pdf.Name {
	switch c.(type) {
	case content.Gray:
		return "DeviceGray"
	case content.RGB:
		return "DeviceRGB"
	case content.CMYK:
		return "DeviceCMYK"
	}
	return ""
}

// function converts the colour stops into a PDF function with domain
// [0 1].  Stops are padded, so that the first stop is at 0 and the last
// stop is at 1.
func function(stops []Stop) pdf.Dict {
	if stops[0].Offset > 0 {
		stops = append([]Stop{{Offset: 0, Color: stops[0].Color}}, stops...)
	}
	if last := stops[len(stops)-1]; last.Offset < 1 {
		stops = append(stops[:len(stops):len(stops)], Stop{Offset: 1, Color: last.Color})
	}

	if len(stops) == 2 {
		return interpolate(stops[0].Color, stops[1].Color)
	}

	k := len(stops) - 1
	funcs := make(pdf.Array, k)
	bounds := make(pdf.Array, 0, k-1)
	encode := make(pdf.Array, 0, 2*k)
	for i := range k {
		funcs[i] = interpolate(stops[i].Color, stops[i+1].Color)
		if i > 0 {
			bounds = append(bounds, pdf.Number(stops[i].Offset))
		}
		encode = append(encode, pdf.Integer(0), pdf.Integer(1))
	}
	return pdf.Dict{
		"FunctionType": pdf.Integer(3),
		"Domain":       pdf.Array{pdf.Integer(0), pdf.Integer(1)},
		"Functions":    funcs,
		"Bounds":       bounds,
		"Encode":       encode,
	}
}

// interpolate returns a type 2 function which interpolates linearly
// between two colours.
func interpolate(c0, c1 content.Color) pdf.Dict {
	return pdf.Dict{
		"FunctionType": pdf.Integer(2),
		"Domain":       pdf.Array{pdf.Integer(0), pdf.Integer(1)},
		"C0":           numbers(c0.Values()...),
		"C1":           numbers(c1.Values()...),
		"N":            pdf.Integer(1),
	}
}

func numbers(xs ...float64) pdf.Array {
	res := make(pdf.Array, len(xs))
	for i, x := range xs {
		res[i] = pdf.Number(x)
	}
	return res
}
