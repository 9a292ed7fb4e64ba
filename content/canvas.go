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
	"math"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfgen"
)

// Sink receives the operators of a content stream.
type Sink interface {
	AppendOperator(op Operator)
}

// Buffer is a Sink which collects operators in memory.
type Buffer struct {
	Ops Stream
}

// AppendOperator implements the [Sink] interface.
func (b *Buffer) AppendOperator(op Operator) {
	b.Ops = append(b.Ops, op)
}

// Canvas provides drawing operations.  All coordinates are in PDF user
// space, with the origin in the bottom-left corner.
//
// Errors are sticky: once Err is set, all further operations are ignored.
type Canvas struct {
	Sink Sink
	Err  error

	curX, curY float64
	textLevel  int
	stack      int
}

// NewCanvas returns a Canvas which writes to s.
func NewCanvas(s Sink) *Canvas {
	return &Canvas{Sink: s}
}

// Emit appends an operator to the content stream.
// This is used for operators which have no dedicated method.
func (c *Canvas) Emit(name OpName, args ...pdf.Object) {
	if c.Err != nil {
		return
	}
	for _, arg := range args {
		if x, ok := arg.(pdf.Number); ok && (math.IsNaN(float64(x)) || math.IsInf(float64(x), 0)) {
			c.Err = fmt.Errorf("operator %q: invalid number %g", name, float64(x))
			return
		}
	}
	c.Sink.AppendOperator(Operator{Name: name, Args: args})
}

func nums(xs ...float64) []pdf.Object {
	res := make([]pdf.Object, len(xs))
	for i, x := range xs {
		res[i] = pdf.Number(x)
	}
	return res
}

// PushGraphicsState saves the current graphics state.
//
// This implements the PDF graphics operator "q".
func (c *Canvas) PushGraphicsState() {
	c.Emit(OpPushGraphicsState)
	c.stack++
}

// PopGraphicsState restores the previous graphics state.
//
// This implements the PDF graphics operator "Q".
func (c *Canvas) PopGraphicsState() {
	if c.Err != nil {
		return
	}
	if c.stack == 0 {
		c.Err = errUnbalancedQ
		return
	}
	c.stack--
	c.Emit(OpPopGraphicsState)
}

// Transform modifies the current transformation matrix.
//
// This implements the PDF graphics operator "cm".
func (c *Canvas) Transform(m matrix.Matrix) {
	c.Emit(OpTransform, nums(m[:]...)...)
}

// Translate moves the origin of the coordinate system.
func (c *Canvas) Translate(dx, dy float64) {
	c.Transform(matrix.Translate(dx, dy))
}

// Scale scales the coordinate system.
func (c *Canvas) Scale(sx, sy float64) {
	c.Transform(matrix.Scale(sx, sy))
}

// Rotate rotates the coordinate system counter-clockwise by the given
// angle in degrees.
func (c *Canvas) Rotate(deg float64) {
	c.Transform(matrix.RotateDeg(deg))
}

// SetLineWidth sets the line width.
//
// This implements the PDF graphics operator "w".
func (c *Canvas) SetLineWidth(width float64) {
	if width < 0 {
		c.setErr(fmt.Errorf("SetLineWidth: negative width %g", width))
		return
	}
	c.Emit(OpSetLineWidth, pdf.Number(width))
}

// LineCapStyle is the style of the end of a line.
type LineCapStyle int

// These are the possible line cap styles.
const (
	LineCapButt LineCapStyle = iota
	LineCapRound
	LineCapSquare
)

// SetLineCap sets the line cap style.
//
// This implements the PDF graphics operator "J".
func (c *Canvas) SetLineCap(cap LineCapStyle) {
	if cap < LineCapButt || cap > LineCapSquare {
		c.setErr(fmt.Errorf("SetLineCap: invalid style %d", cap))
		return
	}
	c.Emit(OpSetLineCap, pdf.Integer(cap))
}

// LineJoinStyle is the style of the corner of a path.
type LineJoinStyle int

// These are the possible line join styles.
const (
	LineJoinMiter LineJoinStyle = iota
	LineJoinRound
	LineJoinBevel
)

// SetLineJoin sets the line join style.
//
// This implements the PDF graphics operator "j".
func (c *Canvas) SetLineJoin(join LineJoinStyle) {
	if join < LineJoinMiter || join > LineJoinBevel {
		c.setErr(fmt.Errorf("SetLineJoin: invalid style %d", join))
		return
	}
	c.Emit(OpSetLineJoin, pdf.Integer(join))
}

// SetMiterLimit sets the miter limit.
//
// This implements the PDF graphics operator "M".
func (c *Canvas) SetMiterLimit(limit float64) {
	if limit < 1 {
		c.setErr(fmt.Errorf("SetMiterLimit: limit %g < 1", limit))
		return
	}
	c.Emit(OpSetMiterLimit, pdf.Number(limit))
}

// SetDashPattern sets the line dash pattern.  An empty pattern gives
// solid lines.
//
// This implements the PDF graphics operator "d".
func (c *Canvas) SetDashPattern(pattern []float64, phase float64) {
	arr := make(pdf.Array, len(pattern))
	allZero := len(pattern) > 0
	for i, x := range pattern {
		if x < 0 {
			c.setErr(fmt.Errorf("SetDashPattern: negative length %g", x))
			return
		}
		if x != 0 {
			allZero = false
		}
		arr[i] = pdf.Number(x)
	}
	if allZero {
		c.setErr(fmt.Errorf("SetDashPattern: all lengths are zero"))
		return
	}
	c.Emit(OpSetLineDash, arr, pdf.Number(phase))
}

// SetExtGState applies the named graphics state parameter dictionary.
//
// This implements the PDF graphics operator "gs".
func (c *Canvas) SetExtGState(name pdf.Name) {
	c.Emit(OpSetExtGState, name)
}

// DrawXObject paints the named XObject (an image or a form).
//
// This implements the PDF graphics operator "Do".
func (c *Canvas) DrawXObject(name pdf.Name) {
	c.Emit(OpXObject, name)
}

// PaintShading fills the current clipping region with the named shading.
//
// This implements the PDF graphics operator "sh".
func (c *Canvas) PaintShading(name pdf.Name) {
	c.Emit(OpShading, name)
}

// BeginMarkedContent starts a marked-content sequence with a property
// list from the resource dictionary.  This is used for optional content,
// with tag "OC".
//
// This implements the PDF graphics operator "BDC".
func (c *Canvas) BeginMarkedContent(tag, properties pdf.Name) {
	c.Emit(OpBeginMarkedContentWithProperties, tag, properties)
}

// EndMarkedContent ends a marked-content sequence.
//
// This implements the PDF graphics operator "EMC".
func (c *Canvas) EndMarkedContent() {
	c.Emit(OpEndMarkedContent)
}

// Close checks that all graphics states have been restored and all
// text objects have been ended.  The check result is also stored in Err.
func (c *Canvas) Close() error {
	if c.Err == nil && c.stack != 0 {
		c.Err = errUnbalancedQ
	}
	if c.Err == nil && c.textLevel != 0 {
		c.Err = errOpenText
	}
	return c.Err
}

// CopyState copies the drawing state of src to c: the current point, the
// nesting depth of graphics states and text objects, and any error.  The
// sink of c is not changed.
func (c *Canvas) CopyState(src *Canvas) {
	c.Err = src.Err
	c.curX, c.curY = src.curX, src.curY
	c.textLevel = src.textLevel
	c.stack = src.stack
}

func (c *Canvas) setErr(err error) {
	if c.Err == nil {
		c.Err = err
	}
}
