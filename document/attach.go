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
	"time"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/registry"
)

// Attachment is a file embedded in the PDF file.
type Attachment struct {
	Name        string
	Data        []byte
	Description string
	MimeType    string // for example "text/csv"
	ModDate     time.Time

	// Rect is the location of the attachment icon, for files attached to
	// a page.  This is ignored for document-level attachments.
	Rect rect.Rect
}

func (a *Attachment) clone() *Attachment {
	c := *a
	c.Data = bytes.Clone(a.Data)
	return &c
}

func (a *Attachment) validate(op string) error {
	if a == nil {
		return argError(op, "missing attachment")
	}
	if a.Name == "" {
		return argError(op, "attachment without a file name")
	}
	return nil
}

// AttachFile attaches a file to the document.  The file is listed in the
// /EmbeddedFiles name tree of the catalog.  Attaching the same file twice
// has no effect.  Attaching different data under an existing name is an
// error.
func (doc *Document) AttachFile(a *Attachment) error {
	if err := a.validate("AttachFile"); err != nil {
		return err
	}
	key := registry.NewHasher("attachment").String(a.Name).Sum()
	if e, ok := doc.attachments.Get(key); ok {
		if !bytes.Equal(e.Payload.Data, a.Data) {
			return argError("AttachFile", "duplicate attachment name %q", a.Name)
		}
		return nil
	}
	doc.attachments.Register(key, a.clone())
	return nil
}

// AttachFile attaches a file to the page.  A file attachment annotation
// is placed at a.Rect.
func (p *Page) AttachFile(a *Attachment) error {
	if err := a.validate("AttachFile"); err != nil {
		return err
	}
	if !validRect(a.Rect) {
		return argError("AttachFile", "invalid rectangle %v", a.Rect)
	}
	p.files = append(p.files, a.clone())
	return nil
}

// embeddedFile returns the embedded file stream.
func (a *Attachment) embeddedFile() *pdf.Stream {
	params := pdf.Dict{
		"Size": pdf.Integer(len(a.Data)),
	}
	if !a.ModDate.IsZero() {
		params["ModDate"] = pdf.Date(a.ModDate)
	}
	dict := pdf.Dict{
		"Type":   pdf.Name("EmbeddedFile"),
		"Params": params,
	}
	if a.MimeType != "" {
		dict["Subtype"] = pdf.Name(a.MimeType)
	}
	return &pdf.Stream{Dict: dict, Data: a.Data, Compress: true}
}

// fileSpec returns the file specification dictionary.
func (a *Attachment) fileSpec(data pdf.Reference) pdf.Dict {
	dict := pdf.Dict{
		"Type": pdf.Name("Filespec"),
		"F":    pdf.String(a.Name),
		"UF":   pdf.TextString(a.Name),
		"EF":   pdf.Dict{"F": data},
	}
	if a.Description != "" {
		dict["Desc"] = pdf.TextString(a.Description)
	}
	return dict
}

// annotDict returns the file attachment annotation.
func (a *Attachment) annotDict(spec pdf.Reference) pdf.Dict {
	dict := pdf.Dict{
		"Type":     pdf.Name("Annot"),
		"Subtype":  pdf.Name("FileAttachment"),
		"Rect":     rectArray(a.Rect),
		"FS":       spec,
		"Name":     pdf.Name("PushPin"),
		"Contents": pdf.TextString(a.Name),
	}
	if a.Description != "" {
		dict["Contents"] = pdf.TextString(a.Description)
	}
	return dict
}
