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

	"golang.org/x/exp/slices"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/content"
	"seehuhn.de/go/pdfgen/crypt"
	"seehuhn.de/go/pdfgen/shading"
)

// emitter turns the snapshot of a document into the objects of the
// output file, using the object numbers from the allocation.
type emitter struct {
	doc     *Document
	s       *snapshot
	a       *allocation
	handler *crypt.Handler

	objs []pdf.Object
}

func (e *emitter) put(ref pdf.Reference, obj pdf.Object) {
	e.objs[ref.Number()-1] = obj
}

func (e *emitter) fail(ref pdf.Reference, err error) error {
	return &ObjectError{Number: ref.Number(), Kind: e.a.kind(ref), Err: err}
}

func (e *emitter) pageRef(op string, ref pdf.Reference, page int) (pdf.Reference, error) {
	if page < 0 || page >= len(e.s.pages) {
		return 0, e.fail(ref, fmt.Errorf("%s: %w", op,
			&PageIndexError{Index: page, NumPages: len(e.s.pages)}))
	}
	return e.a.Pages[page].Page, nil
}

// emit generates all objects.  The result has one element per reserved
// object number.
func (e *emitter) emit() ([]pdf.Object, error) {
	e.objs = make([]pdf.Object, e.a.Count())

	steps := []func() error{
		e.emitPages,
		e.emitFonts,
		e.emitImages,
		e.emitGradients,
		e.emitForms,
		e.emitLayers,
		e.emitAnnotations,
		e.emitFields,
		e.emitOutline,
		e.emitAttachments,
		e.emitMisc,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	for i, obj := range e.objs {
		if obj == nil {
			ref := pdf.NewReference(uint32(i+1), 0)
			return nil, e.fail(ref, errors.New("object was reserved but not generated"))
		}
	}
	return e.objs, nil
}

func (e *emitter) contentStream(ref pdf.Reference, ops content.Stream) (*pdf.Stream, error) {
	data, err := ops.Bytes()
	if err != nil {
		return nil, e.fail(ref, err)
	}
	return &pdf.Stream{Data: data, Compress: true}, nil
}

func (e *emitter) resources(ref pdf.Reference, ops content.Stream) (pdf.Dict, error) {
	res, err := e.a.resources(ops)
	if err != nil {
		return nil, e.fail(ref, err)
	}
	return res, nil
}

func (e *emitter) emitPages() error {
	kids := make(pdf.Array, len(e.s.pages))
	for i, p := range e.s.pages {
		refs := e.a.Pages[i]
		kids[i] = refs.Page

		stm, err := e.contentStream(refs.Contents, p.ops)
		if err != nil {
			return err
		}
		e.put(refs.Contents, stm)

		res, err := e.resources(refs.Resources, p.ops)
		if err != nil {
			return err
		}
		e.put(refs.Resources, res)

		dict := p.extra.Clone()
		if dict == nil {
			dict = pdf.Dict{}
		}
		dict["Type"] = pdf.Name("Page")
		dict["Parent"] = e.a.PageTree
		dict["MediaBox"] = numbers(0, 0, p.Width, p.Height)
		dict["Contents"] = refs.Contents
		dict["Resources"] = refs.Resources
		if p.rotate != 0 {
			dict["Rotate"] = pdf.Integer(p.rotate)
		}

		var annots pdf.Array
		for _, ref := range e.a.Links[i] {
			annots = append(annots, ref)
		}
		for _, ref := range e.a.Markup[i] {
			annots = append(annots, ref)
		}
		for _, f := range e.a.PageFiles[i] {
			annots = append(annots, f.Annot)
		}
		for j, f := range e.s.fields {
			if f.Page == i {
				annots = append(annots, e.a.Fields[j])
			}
		}
		if len(annots) > 0 {
			dict["Annots"] = annots
		}
		e.put(refs.Page, dict)
	}

	e.put(e.a.PageTree, pdf.Dict{
		"Type":  pdf.Name("Pages"),
		"Kids":  kids,
		"Count": pdf.Integer(len(kids)),
	})
	return nil
}

func (e *emitter) emitFonts() error {
	for i, entry := range e.s.fonts {
		refs := e.a.Fonts[i]
		objs, err := entry.Payload.Objects(refs)
		if err != nil {
			return e.fail(refs[0], err)
		}
		for j, obj := range objs {
			e.put(refs[j], obj)
		}
	}
	return nil
}

func (e *emitter) emitImages() error {
	for i, entry := range e.s.images {
		im := entry.Payload
		refs := e.a.Images[i]
		e.put(refs.Image, im.Stream(refs.Mask))
		if im.Mask != nil {
			e.put(refs.Mask, im.Mask.Stream(0))
		}
	}
	return nil
}

func (e *emitter) emitGradients() error {
	for i, entry := range e.s.gradients {
		refs := e.a.Gradients[i]
		dict, err := shading.Dict(entry.Payload)
		if err != nil {
			return e.fail(refs.Shading, err)
		}
		e.put(refs.Shading, dict)
		e.put(refs.Pattern, shading.Pattern(refs.Shading))
	}
	return nil
}

// formStream builds the stream of a form XObject or a tiling pattern.
func (e *emitter) formStream(ref pdf.Reference, ops content.Stream, dict pdf.Dict) (*pdf.Stream, error) {
	stm, err := e.contentStream(ref, ops)
	if err != nil {
		return nil, err
	}
	res, err := e.resources(ref, ops)
	if err != nil {
		return nil, err
	}
	dict["Resources"] = res
	stm.Dict = dict
	return stm, nil
}

func (e *emitter) emitForms() error {
	for i, entry := range e.s.patterns {
		p := entry.Payload
		ref := e.a.Patterns[i]
		stm, err := e.formStream(ref, p.ops, pdf.Dict{
			"Type":        pdf.Name("Pattern"),
			"PatternType": pdf.Integer(1),
			"PaintType":   pdf.Integer(1),
			"TilingType":  pdf.Integer(1),
			"BBox":        numbers(0, 0, p.Width, p.Height),
			"XStep":       pdf.Number(p.XStep),
			"YStep":       pdf.Number(p.YStep),
		})
		if err != nil {
			return err
		}
		e.put(ref, stm)
	}

	for i, t := range e.s.templates {
		ref := e.a.Templates[i]
		stm, err := e.formStream(ref, t.ops, formDict(numbers(0, 0, t.Width, t.Height)))
		if err != nil {
			return err
		}
		e.put(ref, stm)
	}

	for i, entry := range e.s.watermarks {
		wm := entry.Payload
		ref := e.a.Watermarks[i]
		stm, err := e.formStream(ref, wm.ops, formDict(rectArray(wm.bbox)))
		if err != nil {
			return err
		}
		e.put(ref, stm)
	}
	return nil
}

func formDict(bbox pdf.Array) pdf.Dict {
	return pdf.Dict{
		"Type":    pdf.Name("XObject"),
		"Subtype": pdf.Name("Form"),
		"BBox":    bbox,
	}
}

func (e *emitter) emitLayers() error {
	if len(e.s.layers) == 0 {
		return nil
	}
	var ocgs, on, off pdf.Array
	for i, entry := range e.s.layers {
		l := entry.Payload
		ref := e.a.Layers[i]
		e.put(ref, l.ocgDict())
		ocgs = append(ocgs, ref)
		if l.Visible {
			on = append(on, ref)
		} else {
			off = append(off, ref)
		}
	}
	d := pdf.Dict{
		"Order": ocgs,
		"ON":    on,
		"OFF":   off,
	}
	e.put(e.a.OCProperties, pdf.Dict{
		"OCGs": ocgs,
		"D":    d,
	})
	return nil
}

func (e *emitter) emitAnnotations() error {
	for i, p := range e.s.pages {
		pageRef := e.a.Pages[i].Page
		for j, l := range p.links {
			ref := e.a.Links[i][j]
			var target pdf.Reference
			if l.URI == "" {
				var err error
				target, err = e.pageRef("link", ref, l.Page)
				if err != nil {
					return err
				}
			}
			dict := l.linkDict(target)
			dict["P"] = pageRef
			e.put(ref, dict)
		}
		for j, an := range p.annots {
			dict := an.asDict()
			dict["P"] = pageRef
			e.put(e.a.Markup[i][j], dict)
		}
	}
	return nil
}

func (e *emitter) emitFields() error {
	if len(e.s.fields) == 0 {
		return nil
	}
	for i, f := range e.s.fields {
		ref := e.a.Fields[i]
		pageRef, err := e.pageRef("form field", ref, f.Page)
		if err != nil {
			return err
		}
		e.put(ref, f.fieldDict(pageRef))
	}
	helv := pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  pdf.Name("Type1"),
		"BaseFont": pdf.Name("Helvetica"),
		"Encoding": pdf.Name("WinAnsiEncoding"),
	}
	e.put(e.a.AcroForm, acroFormDict(e.a.Fields, helv))
	return nil
}

func (e *emitter) emitOutline() error {
	if len(e.s.bookmarks) == 0 {
		return nil
	}
	refOf := make(map[*Bookmark]pdf.Reference, len(e.s.bookmarks))
	for i, b := range e.s.bookmarks {
		refOf[b] = e.a.Bookmarks[i]
	}

	var top []*Bookmark
	for _, b := range e.s.bookmarks {
		if b.parent == nil {
			top = append(top, b)
		}
	}
	e.put(e.a.Outline, pdf.Dict{
		"Type":  pdf.Name("Outlines"),
		"First": refOf[top[0]],
		"Last":  refOf[top[len(top)-1]],
		"Count": pdf.Integer(visibleCount(top)),
	})

	for i, b := range e.s.bookmarks {
		ref := e.a.Bookmarks[i]
		pageRef, err := e.pageRef("bookmark", ref, b.Page)
		if err != nil {
			return err
		}

		y := b.Top
		if y == 0 {
			y = e.s.pages[b.Page].Height
		}

		siblings := top
		parent := e.a.Outline
		if b.parent != nil {
			siblings = b.parent.children
			parent = refOf[b.parent]
		}
		dict := pdf.Dict{
			"Title":  pdf.TextString(b.Title),
			"Parent": parent,
			"Dest":   pdf.Array{pageRef, pdf.Name("XYZ"), nil, pdf.Number(y), nil},
		}
		k := slices.Index(siblings, b)
		if k > 0 {
			dict["Prev"] = refOf[siblings[k-1]]
		}
		if k < len(siblings)-1 {
			dict["Next"] = refOf[siblings[k+1]]
		}
		if n := len(b.children); n > 0 {
			dict["First"] = refOf[b.children[0]]
			dict["Last"] = refOf[b.children[n-1]]
			count := visibleCount(b.children)
			if !b.Open {
				count = -count
			}
			dict["Count"] = pdf.Integer(count)
		}
		e.put(ref, dict)
	}
	return nil
}

func (e *emitter) emitAttachments() error {
	for i, entry := range e.s.attachments {
		refs := e.a.DocFiles[i]
		e.put(refs.FileSpec, entry.Payload.fileSpec(refs.Data))
		e.put(refs.Data, entry.Payload.embeddedFile())
	}
	for i, p := range e.s.pages {
		for j, f := range p.files {
			refs := e.a.PageFiles[i][j]
			e.put(refs.FileSpec, f.fileSpec(refs.Data))
			e.put(refs.Data, f.embeddedFile())
			annot := f.annotDict(refs.FileSpec)
			annot["P"] = e.a.Pages[i].Page
			e.put(refs.Annot, annot)
		}
	}
	return nil
}

func (e *emitter) emitMisc() error {
	for i, entry := range e.s.gstates {
		e.put(e.a.GStates[i], entry.Payload.asDict())
	}

	if e.s.pdfa {
		meta, err := e.doc.metadataStream()
		if err != nil {
			return e.fail(e.a.Metadata, err)
		}
		e.put(e.a.Metadata, meta)
		e.put(e.a.OutputIntent, outputIntentDict(e.a.ICC))
		profile, err := iccStream()
		if err != nil {
			return e.fail(e.a.ICC, err)
		}
		e.put(e.a.ICC, profile)
	}

	if e.s.encrypt {
		e.put(e.a.Encrypt, e.handler.AsDict())
	}

	e.put(e.a.Info, e.doc.info.AsDict())
	e.put(e.a.Catalog, e.catalog())
	return nil
}

func (e *emitter) catalog() pdf.Dict {
	doc := e.doc
	cat := pdf.Dict{
		"Type":  pdf.Name("Catalog"),
		"Pages": e.a.PageTree,
	}
	if doc.pageLayout != "" {
		cat["PageLayout"] = doc.pageLayout
	}
	if doc.pageMode != "" {
		cat["PageMode"] = doc.pageMode
	}
	if e.a.Outline != 0 {
		cat["Outlines"] = e.a.Outline
		if doc.pageMode == "" {
			cat["PageMode"] = pdf.Name("UseOutlines")
		}
	}
	if e.a.AcroForm != 0 {
		cat["AcroForm"] = e.a.AcroForm
	}
	if e.a.OCProperties != 0 {
		cat["OCProperties"] = e.a.OCProperties
	}
	if len(e.s.attachments) > 0 {
		type nameRef struct {
			key pdf.String
			ref pdf.Reference
		}
		entries := make([]nameRef, len(e.s.attachments))
		for i, entry := range e.s.attachments {
			entries[i] = nameRef{
				key: pdf.TextString(entry.Payload.Name),
				ref: e.a.DocFiles[i].FileSpec,
			}
		}
		// name trees are sorted by the bytes of the encoded keys
		slices.SortFunc(entries, func(a, b nameRef) int {
			return bytes.Compare(a.key, b.key)
		})
		var list pdf.Array
		for _, ent := range entries {
			list = append(list, ent.key, ent.ref)
		}
		cat["Names"] = pdf.Dict{
			"EmbeddedFiles": pdf.Dict{"Names": list},
		}
	}
	if doc.javaScript != "" {
		cat["OpenAction"] = pdf.Dict{
			"S":  pdf.Name("JavaScript"),
			"JS": pdf.TextString(doc.javaScript),
		}
	}
	if e.a.Metadata != 0 {
		cat["Metadata"] = e.a.Metadata
		cat["OutputIntents"] = pdf.Array{e.a.OutputIntent}
	}
	return cat
}
