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
	"errors"
	"math"
)

var (
	errUnbalancedQ = errors.New("unbalanced q/Q operators")
	errOpenText    = errors.New("unterminated text object")
	errNoText      = errors.New("text operator outside BT/ET")
)

// MoveTo starts a new path at the given coordinates.
//
// This implements the PDF graphics operator "m".
func (c *Canvas) MoveTo(x, y float64) {
	c.Emit(OpMoveTo, nums(x, y)...)
	c.curX, c.curY = x, y
}

// LineTo appends a straight line segment to the current path.
//
// This implements the PDF graphics operator "l".
func (c *Canvas) LineTo(x, y float64) {
	c.Emit(OpLineTo, nums(x, y)...)
	c.curX, c.curY = x, y
}

// CurveTo appends a cubic Bezier curve to the current path.
//
// This implements the PDF graphics operators "c", "v", and "y".
func (c *Canvas) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	x0, y0 := c.curX, c.curY
	if nearlyEqual(x0, x1) && nearlyEqual(y0, y1) {
		// first control point at current point → "v"
		c.Emit(OpCurveToV, nums(x2, y2, x3, y3)...)
	} else if nearlyEqual(x2, x3) && nearlyEqual(y2, y3) {
		// second control point at end point → "y"
		c.Emit(OpCurveToY, nums(x1, y1, x3, y3)...)
	} else {
		c.Emit(OpCurveTo, nums(x1, y1, x2, y2, x3, y3)...)
	}
	c.curX, c.curY = x3, y3
}

// ClosePath closes the current subpath.
//
// This implements the PDF graphics operator "h".
func (c *Canvas) ClosePath() {
	c.Emit(OpClosePath)
}

// Rectangle appends a rectangle to the current path as a closed subpath.
//
// This implements the PDF graphics operator "re".
func (c *Canvas) Rectangle(x, y, width, height float64) {
	c.Emit(OpRectangle, nums(x, y, width, height)...)
	c.curX, c.curY = x, y
}

// Stroke strokes the current path.
//
// This implements the PDF graphics operator "S".
func (c *Canvas) Stroke() {
	c.Emit(OpStroke)
}

// CloseAndStroke closes and strokes the current path.
//
// This implements the PDF graphics operator "s".
func (c *Canvas) CloseAndStroke() {
	c.Emit(OpCloseAndStroke)
}

// Fill fills the current path using the nonzero winding number rule.
//
// This implements the PDF graphics operator "f".
func (c *Canvas) Fill() {
	c.Emit(OpFill)
}

// FillEvenOdd fills the current path using the even-odd rule.
//
// This implements the PDF graphics operator "f*".
func (c *Canvas) FillEvenOdd() {
	c.Emit(OpFillEvenOdd)
}

// FillAndStroke fills and strokes the current path.
//
// This implements the PDF graphics operator "B".
func (c *Canvas) FillAndStroke() {
	c.Emit(OpFillAndStroke)
}

// FillAndStrokeEvenOdd fills and strokes the current path using the
// even-odd rule.
//
// This implements the PDF graphics operator "B*".
func (c *Canvas) FillAndStrokeEvenOdd() {
	c.Emit(OpFillAndStrokeEvenOdd)
}

// CloseFillAndStroke closes, fills and strokes the current path.
//
// This implements the PDF graphics operator "b".
func (c *Canvas) CloseFillAndStroke() {
	c.Emit(OpCloseFillAndStroke)
}

// EndPath ends the path without filling or stroking it.
//
// This implements the PDF graphics operator "n".
func (c *Canvas) EndPath() {
	c.Emit(OpEndPath)
}

// ClipNonZero sets the current clipping path using the nonzero winding
// number rule.
//
// This implements the PDF graphics operator "W".
func (c *Canvas) ClipNonZero() {
	c.Emit(OpClipNonZero)
}

// ClipEvenOdd sets the current clipping path using the even-odd rule.
//
// This implements the PDF graphics operator "W*".
func (c *Canvas) ClipEvenOdd() {
	c.Emit(OpClipEvenOdd)
}

func nearlyEqual(a, b float64) bool {
	const ε = 1e-6
	return math.Abs(a-b) < ε
}
