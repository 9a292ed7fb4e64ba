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
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/content"
	"seehuhn.de/go/pdfgen/font"
	"seehuhn.de/go/pdfgen/image"
	"seehuhn.de/go/pdfgen/shading"
)

// Surface is something which can be drawn on: a page, a tiling pattern
// or a template.  The embedded [content.Canvas] provides the drawing
// primitives which do not need resources.
//
// Methods which register resources with the document validate their
// arguments and return an [*ArgumentError] without changing the content
// stream if the arguments are invalid.  Other drawing errors are
// recorded in Canvas.Err and are reported by [Document.Generate].
type Surface struct {
	*content.Canvas

	doc      *Document
	font     *font.Font
	fontName pdf.Name
	fontSize float64
}

func newSurface(doc *Document, s content.Sink) *Surface {
	return &Surface{
		Canvas: content.NewCanvas(s),
		doc:    doc,
	}
}

// SetFont selects the font for subsequent text operations.
func (s *Surface) SetFont(f *font.Font, size float64) error {
	if f == nil {
		return argError("SetFont", "missing font")
	}
	if !(size > 0) || math.IsInf(size, 0) {
		return argError("SetFont", "invalid font size %g", size)
	}
	id := s.doc.fonts.Register(f.Key(), f)
	s.font = f
	s.fontName = fontName(id)
	s.fontSize = size
	return nil
}

// Font returns the current font and font size.
func (s *Surface) Font() (*font.Font, float64) {
	return s.font, s.fontSize
}

// Text shows the string s, with the start of the baseline at (x, y).
// The string is encoded using the current font.
func (s *Surface) Text(x, y float64, text string) error {
	if s.font == nil {
		return errNoFont
	}
	s.TextBegin()
	s.TextSetFont(s.fontName, s.fontSize)
	s.TextFirstLine(x, y)
	s.TextShowRaw(s.font.Encode(text))
	s.TextEnd()
	return nil
}

// TextShow shows s at the current text position.  This must be called
// inside a text object, see [content.Canvas.TextBegin].
func (s *Surface) TextShow(text string) error {
	if s.font == nil {
		return errNoFont
	}
	s.TextSetFont(s.fontName, s.fontSize)
	s.TextShowRaw(s.font.Encode(text))
	return nil
}

// TextWidth returns the width of s, set in the current font, in PDF
// units.  Zero is returned if no font is set or if the font has no
// metrics.
func (s *Surface) TextWidth(text string) float64 {
	if s.font == nil {
		return 0
	}
	return s.font.Width(text, s.fontSize)
}

// DrawImage draws an image into the rectangle with lower-left corner
// (x, y), width w and height h.
func (s *Surface) DrawImage(im *image.Image, x, y, w, h float64) error {
	if im == nil {
		return argError("DrawImage", "missing image")
	}
	if err := im.Validate(); err != nil {
		return argError("DrawImage", "%s", err)
	}
	if im.Mask != nil {
		if err := im.Mask.Validate(); err != nil {
			return argError("DrawImage", "mask: %s", err)
		}
	}
	if !finite(x, y, w, h) || w == 0 || h == 0 {
		return argError("DrawImage", "invalid placement %g %g %g %g", x, y, w, h)
	}
	id := s.doc.images.Register(im.Key(), im)

	s.PushGraphicsState()
	s.Transform(matrix.Matrix{w, 0, 0, h, x, y})
	s.DrawXObject(imageName(id))
	s.PopGraphicsState()
	return nil
}

func (s *Surface) registerGradient(op string, g shading.Gradient) (int, error) {
	if g == nil {
		return 0, argError(op, "missing gradient")
	}
	if err := shading.Validate(g); err != nil {
		return 0, argError(op, "%s", err)
	}
	return s.doc.gradients.Register(shading.Key(g), g), nil
}

// FillGradient paints the gradient over the current clipping region.
func (s *Surface) FillGradient(g shading.Gradient) error {
	id, err := s.registerGradient("FillGradient", g)
	if err != nil {
		return err
	}
	s.PaintShading(shadingName(id))
	return nil
}

// SetFillGradient uses the gradient as the fill colour.
func (s *Surface) SetFillGradient(g shading.Gradient) error {
	id, err := s.registerGradient("SetFillGradient", g)
	if err != nil {
		return err
	}
	s.SetFillPattern(gradientPatternName(id))
	return nil
}

// SetStrokeGradient uses the gradient as the stroke colour.
func (s *Surface) SetStrokeGradient(g shading.Gradient) error {
	id, err := s.registerGradient("SetStrokeGradient", g)
	if err != nil {
		return err
	}
	s.SetStrokePattern(gradientPatternName(id))
	return nil
}

// SetFillTilingPattern uses a tiling pattern as the fill colour.
// The pattern must have been created by [Document.NewTilingPattern].
func (s *Surface) SetFillTilingPattern(p *TilingPattern) error {
	if p == nil || p.Surface.doc != s.doc {
		return argError("SetFillTilingPattern", "pattern belongs to a different document")
	}
	s.SetFillPattern(tilingName(p.id))
	return nil
}

// SetGState sets transparency and blend mode.
func (s *Surface) SetGState(gs GState) error {
	if err := gs.validate(); err != nil {
		return err
	}
	id := s.doc.gstates.Register(gs.key(), gs)
	s.SetExtGState(gstateName(id))
	return nil
}

// SetComposite is a shortcut for setting the same opacity for filling
// and stroking, together with a blend mode.
func (s *Surface) SetComposite(mode pdf.Name, opacity float64) error {
	return s.SetGState(GState{BlendMode: mode, FillAlpha: opacity, StrokeAlpha: opacity})
}

// BeginLayer starts a section of content which belongs to layer l.
// Each call must be matched by a call to [Surface.EndLayer].
func (s *Surface) BeginLayer(l *Layer) error {
	if l == nil || l.id == 0 || l.doc != s.doc {
		return argError("BeginLayer", "layer belongs to a different document")
	}
	s.BeginMarkedContent("OC", layerName(l.id))
	return nil
}

// EndLayer ends a section started by [Surface.BeginLayer].
func (s *Surface) EndLayer() {
	s.EndMarkedContent()
}

// DrawTemplate draws the template with the given name, with its origin
// at (x, y), scaled by the given factor.  Templates may be defined before
// or after they are used; unknown names are reported by
// [Document.Generate].
func (s *Surface) DrawTemplate(name string, x, y, scale float64) error {
	if name == "" {
		return argError("DrawTemplate", "empty template name")
	}
	if !finite(x, y, scale) || scale == 0 {
		return argError("DrawTemplate", "invalid placement")
	}
	s.PushGraphicsState()
	s.Transform(matrix.Matrix{scale, 0, 0, scale, x, y})
	s.DrawXObject(templateName(name))
	s.PopGraphicsState()
	return nil
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Resource names used in content streams.

func fontName(id int) pdf.Name            { return pdf.Name(fmt.Sprintf("F%d", id)) }
func imageName(id int) pdf.Name           { return pdf.Name(fmt.Sprintf("Im%d", id)) }
func shadingName(id int) pdf.Name         { return pdf.Name(fmt.Sprintf("Sh%d", id)) }
func gradientPatternName(id int) pdf.Name { return pdf.Name(fmt.Sprintf("P%d", id)) }
func tilingName(id int) pdf.Name          { return pdf.Name(fmt.Sprintf("TP%d", id)) }
func templateName(name string) pdf.Name   { return pdf.Name("Tpl_" + name) }
func watermarkName(id int) pdf.Name       { return pdf.Name(fmt.Sprintf("WM%d", id)) }
func layerName(id int) pdf.Name           { return pdf.Name(fmt.Sprintf("OC%d", id)) }
func gstateName(id int) pdf.Name          { return pdf.Name(fmt.Sprintf("GS%d", id)) }
