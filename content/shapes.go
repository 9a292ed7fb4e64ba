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

	"seehuhn.de/go/geom/vec"
)

// Kappa is the control point distance, relative to the radius, of the
// cubic Bezier curves which approximate a quarter circle.
const Kappa = 0.552284749

// Line appends a straight line from (x1, y1) to (x2, y2) to the path,
// as a new subpath.
func (c *Canvas) Line(x1, y1, x2, y2 float64) {
	c.MoveTo(x1, y1)
	c.LineTo(x2, y2)
}

// Circle appends a circle to the current path, as a closed subpath.
func (c *Canvas) Circle(x, y, radius float64) {
	c.Ellipse(x, y, radius, radius)
}

// Ellipse appends an axis-parallel ellipse to the current path, as a
// closed subpath.  The ellipse is made of four Bezier curves, one per
// quadrant.
func (c *Canvas) Ellipse(x, y, rx, ry float64) {
	if rx < 0 || ry < 0 {
		c.setErr(fmt.Errorf("Ellipse: negative radius"))
		return
	}
	kx := Kappa * rx
	ky := Kappa * ry
	c.MoveTo(x+rx, y)
	c.CurveTo(x+rx, y+ky, x+kx, y+ry, x, y+ry)
	c.CurveTo(x-kx, y+ry, x-rx, y+ky, x-rx, y)
	c.CurveTo(x-rx, y-ky, x-kx, y-ry, x, y-ry)
	c.CurveTo(x+kx, y-ry, x+rx, y-ky, x+rx, y)
	c.ClosePath()
}

// MoveToArc appends a circular arc to the current path, starting a new
// subpath.  Angles are in radians, counter-clockwise from the positive
// x-axis.  If endAngle < startAngle, the arc is drawn clockwise.
func (c *Canvas) MoveToArc(x, y, radius, startAngle, endAngle float64) {
	c.arc(x, y, radius, startAngle, endAngle, true)
}

// LineToArc appends a circular arc to the current subpath, connecting the
// previous point to the start of the arc using a straight line.
func (c *Canvas) LineToArc(x, y, radius, startAngle, endAngle float64) {
	c.arc(x, y, radius, startAngle, endAngle, false)
}

// arc appends a circular arc to the current path.  The arc is split into
// segments of at most 90 degrees.  For a segment spanning the angle dPhi,
// the control points are placed at distance 4/3*tan(dPhi/4)*radius from
// the end points, perpendicular to the radius.
func (c *Canvas) arc(x, y, radius, startAngle, endAngle float64, move bool) {
	if radius < 0 {
		c.setErr(fmt.Errorf("arc: negative radius %g", radius))
		return
	}

	nSegment := int(math.Ceil(math.Abs(endAngle-startAngle)/(0.5*math.Pi) - 1e-9))
	nSegment = max(nSegment, 1)
	dPhi := (endAngle - startAngle) / float64(nSegment)
	k := 4.0 / 3.0 * radius * math.Tan(dPhi/4)

	phi := startAngle
	x0 := x + radius*math.Cos(phi)
	y0 := y + radius*math.Sin(phi)
	if move {
		c.MoveTo(x0, y0)
	} else {
		c.LineTo(x0, y0)
	}

	for range nSegment {
		x1 := x0 - k*math.Sin(phi)
		y1 := y0 + k*math.Cos(phi)
		phi += dPhi
		x3 := x + radius*math.Cos(phi)
		y3 := y + radius*math.Sin(phi)
		x2 := x3 + k*math.Sin(phi)
		y2 := y3 - k*math.Cos(phi)
		c.CurveTo(x1, y1, x2, y2, x3, y3)
		x0 = x3
		y0 = y3
	}
}

// Pie appends a circular sector to the current path, as a closed subpath.
// The sector runs from the centre to the arc between the two angles
// (in radians) and back.
func (c *Canvas) Pie(x, y, radius, startAngle, endAngle float64) {
	c.MoveTo(x, y)
	c.LineToArc(x, y, radius, startAngle, endAngle)
	c.ClosePath()
}

// Donut appends a sector of an annulus to the current path, as a single
// closed subpath.  The outer arc is drawn from startAngle to endAngle and
// the inner arc backwards, so that the path does not intersect itself.
// If the angles span a full circle, the result is a ring which must be
// filled with the nonzero winding rule.
func (c *Canvas) Donut(x, y, outer, inner, startAngle, endAngle float64) {
	if inner < 0 || inner >= outer {
		c.setErr(fmt.Errorf("Donut: invalid radii %g, %g", outer, inner))
		return
	}
	c.MoveToArc(x, y, outer, startAngle, endAngle)
	c.LineToArc(x, y, inner, endAngle, startAngle)
	c.ClosePath()
}

// Polygon appends a closed polygon with the given vertices to the path.
// At least three points are required.
func (c *Canvas) Polygon(points []vec.Vec2) {
	if len(points) < 3 {
		c.setErr(fmt.Errorf("Polygon: need at least 3 points, got %d", len(points)))
		return
	}
	c.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.LineTo(p.X, p.Y)
	}
	c.ClosePath()
}

// RegularPolygon appends a regular polygon with n corners on a circle of
// the given radius.  The first corner is at angle rotation (in radians).
func (c *Canvas) RegularPolygon(x, y, radius float64, n int, rotation float64) {
	if n < 3 {
		c.setErr(fmt.Errorf("RegularPolygon: need at least 3 corners, got %d", n))
		return
	}
	points := make([]vec.Vec2, n)
	for i := range points {
		phi := rotation + 2*math.Pi*float64(i)/float64(n)
		points[i] = vec.Vec2{X: x + radius*math.Cos(phi), Y: y + radius*math.Sin(phi)}
	}
	c.Polygon(points)
}

// RoundedRectangle appends a rectangle with rounded corners to the path.
// The corner radius is reduced if it exceeds half the width or height.
func (c *Canvas) RoundedRectangle(x, y, width, height, radius float64) {
	r := min(radius, math.Abs(width)/2, math.Abs(height)/2)
	if r <= 0 {
		c.Rectangle(x, y, width, height)
		return
	}
	x0, x1 := min(x, x+width), max(x, x+width)
	y0, y1 := min(y, y+height), max(y, y+height)
	k := Kappa * r

	c.MoveTo(x0+r, y0)
	c.LineTo(x1-r, y0)
	c.CurveTo(x1-r+k, y0, x1, y0+r-k, x1, y0+r)
	c.LineTo(x1, y1-r)
	c.CurveTo(x1, y1-r+k, x1-r+k, y1, x1-r, y1)
	c.LineTo(x0+r, y1)
	c.CurveTo(x0+r-k, y1, x0, y1-r+k, x0, y1-r)
	c.LineTo(x0, y0+r)
	c.CurveTo(x0, y0+r-k, x0+r-k, y0, x0+r, y0)
	c.ClosePath()
}
