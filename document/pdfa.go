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
	"bytes"
	"fmt"
	"strconv"

	"golang.org/x/text/language"

	"seehuhn.de/go/icc"
	"seehuhn.de/go/xmp"

	"seehuhn.de/go/pdfgen"
)

// pdfNS is the XMP namespace for PDF metadata.
type pdfNS struct {
	_          xmp.Namespace `xmp:"http://ns.adobe.com/pdf/1.3/"`
	_          xmp.Prefix    `xmp:"pdf"`
	Keywords   xmp.Text
	PDFVersion xmp.Text
	Producer   xmp.AgentName
}

// pdfaID is the PDF/A identification schema.
type pdfaID struct {
	_           xmp.Namespace `xmp:"http://www.aiim.org/pdfa/ns/id/"`
	_           xmp.Prefix    `xmp:"pdfaid"`
	Part        xmp.Text
	Conformance xmp.Text
}

// pdfaPart returns the part of ISO 19005 which matches the PDF version.
// PDF/A-1 is based on PDF 1.4, later parts on PDF 1.7.
func pdfaPart(v pdf.Version) int {
	if v <= pdf.V1_4 {
		return 1
	}
	return 2
}

// metadataStream returns the XMP metadata stream for the document.  The
// packet repeats the information dictionary, as required by PDF/A.
func (doc *Document) metadataStream() (*pdf.Stream, error) {
	info := &doc.info
	xDefault := language.MustParse("x-default")

	dc := &xmp.DublinCore{}
	if info.Title != "" {
		dc.Title.Set(xDefault, info.Title)
	}
	if info.Author != "" {
		dc.Creator.Append(xmp.NewProperName(info.Author))
	}
	if info.Subject != "" {
		dc.Description.Set(xDefault, info.Subject)
	}

	basic := &xmp.Basic{}
	if !info.CreationDate.IsZero() {
		basic.CreateDate = xmp.NewDate(info.CreationDate)
	}
	if !info.ModDate.IsZero() {
		basic.ModifyDate = xmp.NewDate(info.ModDate)
	}

	ver, err := doc.version.ToString()
	if err != nil {
		return nil, err
	}
	pdfInfo := &pdfNS{}
	pdfInfo.PDFVersion = xmp.NewText(ver)
	if info.Keywords != "" {
		pdfInfo.Keywords = xmp.NewText(info.Keywords)
	}
	if info.Producer != "" {
		pdfInfo.Producer = xmp.NewAgentName(info.Producer)
	}

	id := &pdfaID{
		Part:        xmp.NewText(strconv.Itoa(pdfaPart(doc.version))),
		Conformance: xmp.NewText("B"),
	}

	packet := xmp.NewPacket()
	packet.Set(dc, basic, pdfInfo, id)

	buf := &bytes.Buffer{}
	err = packet.Write(buf, &xmp.PacketOptions{Pretty: true})
	if err != nil {
		return nil, fmt.Errorf("XMP metadata: %w", err)
	}

	// PDF/A requires the metadata to be readable without decoding, so
	// the stream is never compressed.
	return &pdf.Stream{
		Dict: pdf.Dict{
			"Type":    pdf.Name("Metadata"),
			"Subtype": pdf.Name("XML"),
		},
		Data: buf.Bytes(),
	}, nil
}

// iccStream returns the sRGB ICC profile used for the output intent.
func iccStream() (*pdf.Stream, error) {
	profile := srgbProfile()
	p, err := icc.Decode(append([]byte(nil), profile...))
	if err != nil {
		return nil, err
	}
	return &pdf.Stream{
		Dict: pdf.Dict{
			"N": pdf.Integer(p.ColorSpace.NumComponents()),
		},
		Data:     profile,
		Compress: true,
	}, nil
}

// outputIntentDict returns the PDF/A output intent dictionary.
func outputIntentDict(profile pdf.Reference) pdf.Dict {
	return pdf.Dict{
		"Type":                      pdf.Name("OutputIntent"),
		"S":                         pdf.Name("GTS_PDFA1"),
		"OutputConditionIdentifier": pdf.String("sRGB IEC61966-2.1"),
		"Info":                      pdf.String("sRGB IEC61966-2.1"),
		"DestOutputProfile":         profile,
	}
}
