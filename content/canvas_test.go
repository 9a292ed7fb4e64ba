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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfgen"
)

func newTestCanvas() (*Canvas, *Buffer) {
	buf := &Buffer{}
	return NewCanvas(buf), buf
}

func opNames(s Stream) []OpName {
	var res []OpName
	for _, op := range s {
		res = append(res, op.Name)
	}
	return res
}

func args(t *testing.T, op Operator) []float64 {
	t.Helper()
	var res []float64
	for _, a := range op.Args {
		x, ok := a.(pdf.Number)
		if !ok {
			t.Fatalf("argument %v of %s is not a number", a, op.Name)
		}
		res = append(res, float64(x))
	}
	return res
}

func TestRedRectangle(t *testing.T) {
	c, buf := newTestCanvas()
	c.SetFillColor(Red)
	c.Rectangle(10, 10, 100, 50)
	c.Fill()
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := buf.Ops.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	want := "1 0 0 rg\n10 10 100 50 re\nf\n"
	if string(data) != want {
		t.Errorf("got %q, want %q", data, want)
	}
}

func TestCircleUsesKappa(t *testing.T) {
	c, buf := newTestCanvas()
	c.Circle(0, 0, 100)
	want := []OpName{OpMoveTo, OpCurveTo, OpCurveTo, OpCurveTo, OpCurveTo, OpClosePath}
	if d := cmp.Diff(want, opNames(buf.Ops)); d != "" {
		t.Fatal(d)
	}
	first := args(t, buf.Ops[1])
	if d := cmp.Diff([]float64{100, 100 * Kappa, 100 * Kappa, 100, 0, 100}, first); d != "" {
		t.Error(d)
	}
}

func TestEllipseAxes(t *testing.T) {
	c, buf := newTestCanvas()
	c.Ellipse(10, 20, 30, 5)
	end := args(t, buf.Ops[2]) // second quadrant ends at the left vertex
	if end[4] != -20 || end[5] != 20 {
		t.Errorf("second quadrant ends at (%g, %g)", end[4], end[5])
	}
}

func TestArcSegments(t *testing.T) {
	cases := []struct {
		start, end float64
		segments   int
	}{
		{0, math.Pi / 2, 1},
		{0, math.Pi / 2 * 1.01, 2},
		{0, math.Pi, 2},
		{0, 2 * math.Pi, 4},
		{math.Pi, 0, 2},
		{0, 0.1, 1},
	}
	for _, test := range cases {
		c, buf := newTestCanvas()
		c.MoveToArc(0, 0, 1, test.start, test.end)
		if len(buf.Ops) != test.segments+1 {
			t.Errorf("arc %g..%g: %d segments, want %d",
				test.start, test.end, len(buf.Ops)-1, test.segments)
		}
	}
}

func TestQuarterArcControlPoints(t *testing.T) {
	c, buf := newTestCanvas()
	c.MoveToArc(0, 0, 1, 0, math.Pi/2)
	a := args(t, buf.Ops[1])
	k := 4.0 / 3.0 * math.Tan(math.Pi/8)
	want := []float64{1, k, k, 1, 0, 1}
	for i := range want {
		if math.Abs(a[i]-want[i]) > 1e-9 {
			t.Errorf("control points %v, want %v", a, want)
			break
		}
	}
	if math.Abs(k-Kappa) > 1e-8 {
		t.Errorf("kappa mismatch: %g vs %g", k, Kappa)
	}
}

func TestDonut(t *testing.T) {
	c, buf := newTestCanvas()
	c.Donut(0, 0, 10, 5, 0, math.Pi)
	names := opNames(buf.Ops)
	want := []OpName{OpMoveTo, OpCurveTo, OpCurveTo, OpLineTo, OpCurveTo, OpCurveTo, OpClosePath}
	if d := cmp.Diff(want, names); d != "" {
		t.Fatal(d)
	}
	// the inner arc starts at the end angle of the outer arc
	line := args(t, buf.Ops[3])
	if math.Abs(line[0]+5) > 1e-9 || math.Abs(line[1]) > 1e-9 {
		t.Errorf("inner arc starts at %v", line)
	}
	last := args(t, buf.Ops[5])
	if math.Abs(last[len(last)-2]-5) > 1e-9 {
		t.Errorf("inner arc ends at %v", last)
	}

	c2, _ := newTestCanvas()
	c2.Donut(0, 0, 5, 10, 0, 1)
	if c2.Err == nil {
		t.Error("inner radius larger than outer radius accepted")
	}
}

func TestPie(t *testing.T) {
	c, buf := newTestCanvas()
	c.Pie(1, 2, 3, 0, math.Pi/4)
	names := opNames(buf.Ops)
	want := []OpName{OpMoveTo, OpLineTo, OpCurveTo, OpClosePath}
	if d := cmp.Diff(want, names); d != "" {
		t.Error(d)
	}
}

func TestPolygon(t *testing.T) {
	c, buf := newTestCanvas()
	c.Polygon([]vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}})
	if d := cmp.Diff([]OpName{OpMoveTo, OpLineTo, OpLineTo, OpClosePath}, opNames(buf.Ops)); d != "" {
		t.Error(d)
	}

	c.RegularPolygon(0, 0, 1, 6, 0)
	if len(buf.Ops) != 4+7 {
		t.Errorf("hexagon has %d operators", len(buf.Ops)-4)
	}

	c.Polygon([]vec.Vec2{{X: 0, Y: 0}})
	if c.Err == nil {
		t.Error("degenerate polygon accepted")
	}
}

func TestCurveVariants(t *testing.T) {
	c, buf := newTestCanvas()
	c.MoveTo(0, 0)
	c.CurveTo(0, 0, 1, 1, 2, 0)
	c.CurveTo(3, 1, 4, 0, 4, 0)
	c.CurveTo(5, 1, 6, 1, 7, 0)
	want := []OpName{OpMoveTo, OpCurveToV, OpCurveToY, OpCurveTo}
	if d := cmp.Diff(want, opNames(buf.Ops)); d != "" {
		t.Error(d)
	}
}

func TestStickyError(t *testing.T) {
	c, buf := newTestCanvas()
	c.SetLineWidth(-1)
	c.MoveTo(0, 0)
	if c.Err == nil {
		t.Fatal("negative line width accepted")
	}
	if len(buf.Ops) != 0 {
		t.Errorf("operators emitted after an error: %v", buf.Ops)
	}

	c2, _ := newTestCanvas()
	c2.MoveTo(math.NaN(), 0)
	if c2.Err == nil {
		t.Error("NaN coordinate accepted")
	}
}

func TestBalance(t *testing.T) {
	c, _ := newTestCanvas()
	c.PushGraphicsState()
	if err := c.Close(); err == nil {
		t.Error("missing Q not detected")
	}

	c, _ = newTestCanvas()
	c.PopGraphicsState()
	if c.Err == nil {
		t.Error("extra Q not detected")
	}

	c, _ = newTestCanvas()
	c.TextShowRaw(pdf.String("x"))
	if c.Err == nil {
		t.Error("Tj outside text object accepted")
	}

	c, _ = newTestCanvas()
	c.TextBegin()
	if err := c.Close(); err == nil {
		t.Error("missing ET not detected")
	}
}

func TestUsedResources(t *testing.T) {
	c, buf := newTestCanvas()
	c.TextBegin()
	c.TextSetFont("F2", 12)
	c.TextSetFont("F1", 10)
	c.TextEnd()
	c.DrawXObject("Im1")
	c.DrawXObject("Im1")
	c.SetExtGState("GS1")
	c.SetFillPattern("P1")
	c.PaintShading("Sh1")
	c.BeginMarkedContent("OC", "OC1")
	c.EndMarkedContent()

	got := buf.Ops.UsedResources()
	want := map[Category][]pdf.Name{
		CatFont:       {"F1", "F2"},
		CatXObject:    {"Im1"},
		CatExtGState:  {"GS1"},
		CatPattern:    {"P1"},
		CatShading:    {"Sh1"},
		CatProperties: {"OC1"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}

func TestStreamClone(t *testing.T) {
	c, buf := newTestCanvas()
	c.SetDashPattern([]float64{3, 1}, 0)
	clone := buf.Ops.Clone()
	clone[0].Args[1] = pdf.Number(7)
	if buf.Ops[0].Args[1] != pdf.Number(0) {
		t.Error("clone aliases the original arguments")
	}
}

func TestParseHexColor(t *testing.T) {
	col, err := ParseHexColor("#ff0080")
	if err != nil {
		t.Fatal(err)
	}
	if col.R != 1 || col.G != 0 || math.Abs(col.B-128.0/255) > 1e-12 {
		t.Errorf("got %v", col)
	}
	short, _ := ParseHexColor("#f00")
	if short != Red {
		t.Errorf("got %v", short)
	}
	for _, bad := range []string{"ff0000", "#12345", "#gg0000"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("%q accepted", bad)
		}
	}
}

func TestCopyState(t *testing.T) {
	a, _ := newTestCanvas()
	a.PushGraphicsState()
	a.TextBegin()

	b, buf := newTestCanvas()
	b.CopyState(a)
	b.TextEnd()
	b.PopGraphicsState()
	if err := b.Close(); err != nil {
		t.Errorf("copied state not balanced: %v", err)
	}
	if d := cmp.Diff([]OpName{OpTextEnd, OpPopGraphicsState}, opNames(buf.Ops)); d != "" {
		t.Error(d)
	}

	c, _ := newTestCanvas()
	c.CopyState(a)
	c.TextEnd()
	if err := c.Close(); err == nil {
		t.Error("open graphics state not copied")
	}
}
