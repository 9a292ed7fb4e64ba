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

package shading

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/content"
)

func redToBlue() *Linear {
	return &Linear{
		X0: 0, Y0: 0, X1: 100, Y1: 0,
		Stops: []Stop{
			{Offset: 0, Color: content.Red},
			{Offset: 1, Color: content.Blue},
		},
	}
}

func TestKeyDedup(t *testing.T) {
	a := redToBlue()
	b := redToBlue()
	if Key(a) != Key(b) {
		t.Error("equal gradients have different keys")
	}

	b.Stops[1].Color = content.Green
	if Key(a) == Key(b) {
		t.Error("different gradients have equal keys")
	}

	r := &Radial{X0: 0, Y0: 0, R0: 0, X1: 0, Y1: 100, R1: 0, Stops: a.Stops}
	if Key(a) == Key(r) {
		t.Error("linear and radial gradient share a key")
	}
}

func TestTwoStops(t *testing.T) {
	d, err := Dict(redToBlue())
	if err != nil {
		t.Fatal(err)
	}
	want := pdf.Dict{
		"ShadingType": pdf.Integer(2),
		"Coords":      pdf.Array{pdf.Number(0), pdf.Number(0), pdf.Number(100), pdf.Number(0)},
		"ColorSpace":  pdf.Name("DeviceRGB"),
		"Function": pdf.Dict{
			"FunctionType": pdf.Integer(2),
			"Domain":       pdf.Array{pdf.Integer(0), pdf.Integer(1)},
			"C0":           pdf.Array{pdf.Number(1), pdf.Number(0), pdf.Number(0)},
			"C1":           pdf.Array{pdf.Number(0), pdf.Number(0), pdf.Number(1)},
			"N":            pdf.Integer(1),
		},
	}
	if d := cmp.Diff(want, d); d != "" {
		t.Error(d)
	}
}

func TestStitching(t *testing.T) {
	g := &Radial{
		X0: 50, Y0: 50, R0: 0, X1: 50, Y1: 50, R1: 50,
		Stops: []Stop{
			{Offset: 0.2, Color: content.Gray(0)},
			{Offset: 0.5, Color: content.Gray(1)},
			{Offset: 0.8, Color: content.Gray(0.5)},
		},
		Extend: [2]bool{true, true},
	}
	d, err := Dict(g)
	if err != nil {
		t.Fatal(err)
	}
	if d["ShadingType"] != pdf.Integer(3) || d["ColorSpace"] != pdf.Name("DeviceGray") {
		t.Errorf("wrong shading dictionary %v", d)
	}
	f := d["Function"].(pdf.Dict)
	if f["FunctionType"] != pdf.Integer(3) {
		t.Fatal("expected a stitching function")
	}
	// padded to 0, 0.2, 0.5, 0.8, 1
	if n := len(f["Functions"].(pdf.Array)); n != 4 {
		t.Errorf("%d sub-functions", n)
	}
	wantBounds := pdf.Array{pdf.Number(0.2), pdf.Number(0.5), pdf.Number(0.8)}
	if d := cmp.Diff(wantBounds, f["Bounds"]); d != "" {
		t.Error(d)
	}
	if len(f["Encode"].(pdf.Array)) != 8 {
		t.Error("wrong /Encode array")
	}
	if len(g.Stops) != 3 {
		t.Error("padding modified the caller's stops")
	}
}

func TestValidate(t *testing.T) {
	bad := []Gradient{
		&Linear{Stops: []Stop{{Offset: 0, Color: content.Red}}},
		&Linear{Stops: []Stop{{Offset: 0.5, Color: content.Red}, {Offset: 0.2, Color: content.Red}}},
		&Linear{Stops: []Stop{{Offset: 0, Color: content.Red}, {Offset: 1, Color: content.Gray(0)}}},
		&Linear{Stops: []Stop{{Offset: 0, Color: content.Red}, {Offset: 1.5, Color: content.Red}}},
		&Radial{R0: -1, R1: 2, Stops: redToBlue().Stops},
		nil,
		(*Linear)(nil),
		(*Radial)(nil),
	}
	for i, g := range bad {
		if err := Validate(g); err == nil {
			t.Errorf("%d: invalid gradient accepted", i)
		}
		if _, err := Dict(g); err == nil {
			t.Errorf("%d: Dict accepted invalid gradient", i)
		}
	}
}

func TestPattern(t *testing.T) {
	ref := pdf.NewReference(12, 0)
	p := Pattern(ref)
	if p["PatternType"] != pdf.Integer(2) || p["Shading"] != ref {
		t.Errorf("wrong pattern %v", p)
	}
}
