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

// Package content implements PDF content streams and the drawing
// operations which produce them.
//
// Drawing operations are methods of [Canvas].  A Canvas writes operators
// into a [Sink], which collects the content stream of a page, a tiling
// pattern, or a form XObject.
package content

import (
	"bytes"
	"io"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/pdfgen"
)

// OpName is the name of a content stream operator.
type OpName string

// Content stream operators used by this package.
const (
	// General Graphics State
	OpPushGraphicsState OpName = "q"
	OpPopGraphicsState  OpName = "Q"
	OpTransform         OpName = "cm"
	OpSetLineWidth      OpName = "w"
	OpSetLineCap        OpName = "J"
	OpSetLineJoin       OpName = "j"
	OpSetMiterLimit     OpName = "M"
	OpSetLineDash       OpName = "d"
	OpSetExtGState      OpName = "gs"

	// Path Construction
	OpMoveTo    OpName = "m"
	OpLineTo    OpName = "l"
	OpCurveTo   OpName = "c"
	OpCurveToV  OpName = "v"
	OpCurveToY  OpName = "y"
	OpClosePath OpName = "h"
	OpRectangle OpName = "re"

	// Path Painting
	OpStroke                    OpName = "S"
	OpCloseAndStroke            OpName = "s"
	OpFill                      OpName = "f"
	OpFillEvenOdd               OpName = "f*"
	OpFillAndStroke             OpName = "B"
	OpFillAndStrokeEvenOdd      OpName = "B*"
	OpCloseFillAndStroke        OpName = "b"
	OpCloseFillAndStrokeEvenOdd OpName = "b*"
	OpEndPath                   OpName = "n"

	// Clipping Paths
	OpClipNonZero OpName = "W"
	OpClipEvenOdd OpName = "W*"

	// Text Objects
	OpTextBegin OpName = "BT"
	OpTextEnd   OpName = "ET"

	// Text State
	OpTextSetCharacterSpacing  OpName = "Tc"
	OpTextSetWordSpacing       OpName = "Tw"
	OpTextSetHorizontalScaling OpName = "Tz"
	OpTextSetLeading           OpName = "TL"
	OpTextSetFont              OpName = "Tf"
	OpTextSetRenderingMode     OpName = "Tr"
	OpTextSetRise              OpName = "Ts"

	// Text Positioning
	OpTextMoveOffset OpName = "Td"
	OpTextSetMatrix  OpName = "Tm"
	OpTextNextLine   OpName = "T*"

	// Text Showing
	OpTextShow OpName = "Tj"

	// Colour
	OpSetStrokeColorSpace OpName = "CS"
	OpSetFillColorSpace   OpName = "cs"
	OpSetStrokeColorN     OpName = "SCN"
	OpSetFillColorN       OpName = "scn"
	OpSetStrokeGray       OpName = "G"
	OpSetFillGray         OpName = "g"
	OpSetStrokeRGB        OpName = "RG"
	OpSetFillRGB          OpName = "rg"
	OpSetStrokeCMYK       OpName = "K"
	OpSetFillCMYK         OpName = "k"

	// Shading Patterns
	OpShading OpName = "sh"

	// XObjects
	OpXObject OpName = "Do"

	// Marked Content
	OpBeginMarkedContent               OpName = "BMC"
	OpBeginMarkedContentWithProperties OpName = "BDC"
	OpEndMarkedContent                 OpName = "EMC"
)

// Operator represents a content stream operator with its arguments.
type Operator struct {
	Name OpName
	Args []pdf.Object
}

// Stream represents a PDF content stream.
type Stream []Operator

// Write writes the content stream to w in PDF content stream format,
// one operator per line.
func (s Stream) Write(w io.Writer) error {
	buf := &bytes.Buffer{}
	for _, op := range s {
		for _, arg := range op.Args {
			if arg == nil {
				buf.WriteString("null")
			} else if err := arg.PDF(buf); err != nil {
				return err
			}
			buf.WriteByte(' ')
		}
		buf.WriteString(string(op.Name))
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Bytes returns the content stream in PDF format.
func (s Stream) Bytes() ([]byte, error) {
	buf := &bytes.Buffer{}
	err := s.Write(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Clone returns a deep copy of the stream.  The argument slices of the
// copy do not alias the original.
func (s Stream) Clone() Stream {
	if s == nil {
		return nil
	}
	res := make(Stream, len(s))
	for i, op := range s {
		res[i] = Operator{Name: op.Name, Args: slices.Clone(op.Args)}
	}
	return res
}
