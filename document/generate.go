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
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/crypt"
)

var errNoPages = errors.New("document has no pages")

// Generate returns the complete PDF file.  If an error occurs, no data is
// returned.
//
// Generate can be called repeatedly.  All content streams must be in a
// consistent state: every PushGraphicsState must be matched by a
// PopGraphicsState, and every TextBegin by a TextEnd.
func (doc *Document) Generate() ([]byte, error) {
	if len(doc.pages) == 0 {
		return nil, errNoPages
	}
	if err := doc.checkCanvases(); err != nil {
		return nil, err
	}

	s := doc.snapshot()
	a := reserve(s)
	doc.log.WithFields(logrus.Fields{
		"objects":   a.Count(),
		"pages":     len(s.pages),
		"fonts":     len(s.fonts),
		"images":    len(s.images),
		"gradients": len(s.gradients),
	}).Debug("object numbers reserved")

	var handler *crypt.Handler
	if s.encrypt {
		var err error
		handler, err = doc.securityHandler()
		if err != nil {
			return nil, &ObjectError{Number: a.Encrypt.Number(), Kind: a.kind(a.Encrypt), Err: err}
		}
		doc.log.WithFields(logrus.Fields{
			"V": handler.V,
			"R": handler.R,
		}).Debug("encryption enabled")
	}

	e := &emitter{doc: doc, s: s, a: a, handler: handler}
	objs, err := e.emit()
	if err != nil {
		return nil, err
	}

	opt := &pdf.WriterOptions{
		Version:       doc.version,
		Compress:      doc.compression.Enabled,
		CompressLevel: doc.compression.Level,
	}
	if handler != nil {
		opt.Encryptor = handler
	}

	buf := &bytes.Buffer{}
	w, err := pdf.NewWriter(buf, opt)
	if err != nil {
		return nil, err
	}
	for i, obj := range objs {
		ref := pdf.NewReference(uint32(i+1), 0)
		if ref == a.Encrypt {
			err = w.WriteIndirectPlain(ref, obj)
		} else {
			err = w.WriteIndirect(ref, obj)
		}
		if err != nil {
			return nil, &ObjectError{Number: ref.Number(), Kind: a.kind(ref), Err: err}
		}
	}

	trailer := pdf.Dict{
		"Root": a.Catalog,
		"Info": a.Info,
		"ID":   pdf.Array{pdf.HexString(doc.id), pdf.HexString(doc.id)},
	}
	if a.Encrypt != 0 {
		trailer["Encrypt"] = a.Encrypt
	}
	err = w.Close(trailer)
	if err != nil {
		return nil, err
	}

	doc.log.WithField("bytes", buf.Len()).Debug("PDF file generated")
	return buf.Bytes(), nil
}

// Write generates the PDF file and writes it to w.
func (doc *Document) Write(w io.Writer) error {
	data, err := doc.Generate()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// checkCanvases reports drawing errors on any page, tiling pattern or
// template.
func (doc *Document) checkCanvases() error {
	for i, p := range doc.pages {
		if err := p.Close(); err != nil {
			return &ObjectError{Kind: fmt.Sprintf("page %d", i), Err: err}
		}
	}
	for _, e := range doc.patterns.Entries() {
		if err := e.Payload.Close(); err != nil {
			return &ObjectError{Kind: fmt.Sprintf("tiling pattern %d", e.ID), Err: err}
		}
	}
	for _, t := range doc.templates {
		if err := t.Close(); err != nil {
			return &ObjectError{Kind: fmt.Sprintf("template %q", t.Name), Err: err}
		}
	}
	return nil
}
