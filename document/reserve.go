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

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/content"
	"seehuhn.de/go/pdfgen/font"
	"seehuhn.de/go/pdfgen/image"
	"seehuhn.de/go/pdfgen/registry"
	"seehuhn.de/go/pdfgen/shading"
)

// snapshot is the frozen state of a document, as seen by one call to
// Generate.  Both the reservation and the emission phase work from the
// same snapshot.
type snapshot struct {
	pages       []*Page
	fonts       []registry.Entry[*font.Font]
	images      []registry.Entry[*image.Image]
	gradients   []registry.Entry[shading.Gradient]
	patterns    []registry.Entry[*TilingPattern]
	templates   []*Template
	watermarks  []registry.Entry[*watermarkForm]
	layers      []registry.Entry[*Layer]
	fields      []*Field
	bookmarks   []*Bookmark // depth-first pre-order
	attachments []registry.Entry[*Attachment]
	gstates     []registry.Entry[GState]

	pdfa    bool
	encrypt bool
}

func (doc *Document) snapshot() *snapshot {
	return &snapshot{
		pages:       append([]*Page(nil), doc.pages...),
		fonts:       doc.fonts.Entries(),
		images:      doc.images.Entries(),
		gradients:   doc.gradients.Entries(),
		patterns:    doc.patterns.Entries(),
		templates:   append([]*Template(nil), doc.templates...),
		watermarks:  doc.watermarks.Entries(),
		layers:      doc.layers.Entries(),
		fields:      append([]*Field(nil), doc.fields...),
		bookmarks:   flattenOutline(doc.outline),
		attachments: doc.attachments.Entries(),
		gstates:     doc.gstates.Entries(),
		pdfa:        doc.pdfa,
		encrypt:     doc.encryption != nil,
	}
}

// allocator hands out consecutive object numbers, starting at 1.
type allocator struct {
	kinds []string
}

func (a *allocator) next(kind string) pdf.Reference {
	a.kinds = append(a.kinds, kind)
	return pdf.NewReference(uint32(len(a.kinds)), 0)
}

// pageRefs are the three consecutive objects used by every page.
type pageRefs struct {
	Contents, Resources, Page pdf.Reference
}

type imageRefs struct {
	Image, Mask pdf.Reference // Mask is 0 if the image has no mask
}

type gradientRefs struct {
	Shading, Pattern pdf.Reference
}

type fileRefs struct {
	FileSpec, Data pdf.Reference
	Annot          pdf.Reference // 0 for document-level attachments
}

// allocation maps every object of the output file to its object number.
// It is built once per call to Generate and not modified afterwards.
type allocation struct {
	Info, Catalog, PageTree pdf.Reference

	Pages      []pageRefs
	Fonts      [][]pdf.Reference
	Images     []imageRefs
	Gradients  []gradientRefs
	Patterns   []pdf.Reference
	Templates  []pdf.Reference
	Watermarks []pdf.Reference
	Layers     []pdf.Reference

	OCProperties pdf.Reference // 0 if there are no layers

	Links  [][]pdf.Reference
	Markup [][]pdf.Reference

	AcroForm pdf.Reference // 0 if there are no fields
	Fields   []pdf.Reference

	Outline   pdf.Reference // 0 if there are no bookmarks
	Bookmarks []pdf.Reference

	DocFiles  []fileRefs
	PageFiles [][]fileRefs

	GStates []pdf.Reference

	Metadata, OutputIntent, ICC pdf.Reference

	Encrypt pdf.Reference

	// res maps resource names used in content streams to the objects
	// they refer to.
	res map[content.Category]map[pdf.Name]pdf.Reference

	kinds []string
}

// Count returns the number of reserved objects.
func (a *allocation) Count() int {
	return len(a.kinds)
}

// kind describes the object with the given reference, for error messages.
func (a *allocation) kind(ref pdf.Reference) string {
	n := int(ref.Number())
	if n < 1 || n > len(a.kinds) {
		return "unknown object"
	}
	return a.kinds[n-1]
}

func (a *allocation) addResource(cat content.Category, name pdf.Name, ref pdf.Reference) {
	m := a.res[cat]
	if m == nil {
		m = make(map[pdf.Name]pdf.Reference)
		a.res[cat] = m
	}
	m[name] = ref
}

// reserve assigns object numbers to all objects of the output file.
// The order of the objects is fixed: the document structure first,
// then pages, resources, annotations and document-level structures,
// and the encryption dictionary last.
func reserve(s *snapshot) *allocation {
	al := &allocator{}
	a := &allocation{
		res: make(map[content.Category]map[pdf.Name]pdf.Reference),
	}

	a.Info = al.next("info")
	a.Catalog = al.next("catalog")
	a.PageTree = al.next("page tree")

	a.Pages = make([]pageRefs, len(s.pages))
	for i := range s.pages {
		a.Pages[i] = pageRefs{
			Contents:  al.next(fmt.Sprintf("page %d contents", i)),
			Resources: al.next(fmt.Sprintf("page %d resources", i)),
			Page:      al.next(fmt.Sprintf("page %d", i)),
		}
	}

	a.Fonts = make([][]pdf.Reference, len(s.fonts))
	for i, e := range s.fonts {
		f := e.Payload
		refs := make([]pdf.Reference, f.NumObjects())
		for j := range refs {
			refs[j] = al.next("font " + f.PostScriptName)
		}
		a.Fonts[i] = refs
		a.addResource(content.CatFont, fontName(e.ID), refs[0])
	}

	a.Images = make([]imageRefs, len(s.images))
	for i, e := range s.images {
		refs := imageRefs{Image: al.next(fmt.Sprintf("image %d", e.ID))}
		if e.Payload.Mask != nil {
			refs.Mask = al.next(fmt.Sprintf("image %d mask", e.ID))
		}
		a.Images[i] = refs
		a.addResource(content.CatXObject, imageName(e.ID), refs.Image)
	}

	a.Gradients = make([]gradientRefs, len(s.gradients))
	for i, e := range s.gradients {
		refs := gradientRefs{
			Shading: al.next(fmt.Sprintf("gradient %d", e.ID)),
			Pattern: al.next(fmt.Sprintf("gradient %d pattern", e.ID)),
		}
		a.Gradients[i] = refs
		a.addResource(content.CatShading, shadingName(e.ID), refs.Shading)
		a.addResource(content.CatPattern, gradientPatternName(e.ID), refs.Pattern)
	}

	a.Patterns = make([]pdf.Reference, len(s.patterns))
	for i, e := range s.patterns {
		a.Patterns[i] = al.next(fmt.Sprintf("tiling pattern %d", e.ID))
		a.addResource(content.CatPattern, tilingName(e.ID), a.Patterns[i])
	}

	a.Templates = make([]pdf.Reference, len(s.templates))
	for i, t := range s.templates {
		a.Templates[i] = al.next(fmt.Sprintf("template %q", t.Name))
		a.addResource(content.CatXObject, templateName(t.Name), a.Templates[i])
	}

	a.Watermarks = make([]pdf.Reference, len(s.watermarks))
	for i, e := range s.watermarks {
		a.Watermarks[i] = al.next(fmt.Sprintf("watermark %d", e.ID))
		a.addResource(content.CatXObject, watermarkName(e.ID), a.Watermarks[i])
	}

	a.Layers = make([]pdf.Reference, len(s.layers))
	for i, e := range s.layers {
		a.Layers[i] = al.next(fmt.Sprintf("layer %q", e.Payload.Name))
		a.addResource(content.CatProperties, layerName(e.ID), a.Layers[i])
	}
	if len(s.layers) > 0 {
		a.OCProperties = al.next("optional content properties")
	}

	a.Links = reserveAnnots(al, s.pages, "link", func(p *Page) int { return len(p.links) })
	a.Markup = reserveAnnots(al, s.pages, "annotation", func(p *Page) int { return len(p.annots) })

	if len(s.fields) > 0 {
		a.AcroForm = al.next("AcroForm")
		a.Fields = make([]pdf.Reference, len(s.fields))
		for i, f := range s.fields {
			a.Fields[i] = al.next(fmt.Sprintf("field %q", f.Name))
		}
	}

	if len(s.bookmarks) > 0 {
		a.Outline = al.next("outline")
		a.Bookmarks = make([]pdf.Reference, len(s.bookmarks))
		for i, b := range s.bookmarks {
			a.Bookmarks[i] = al.next(fmt.Sprintf("bookmark %q", b.Title))
		}
	}

	a.DocFiles = make([]fileRefs, len(s.attachments))
	for i, e := range s.attachments {
		name := e.Payload.Name
		a.DocFiles[i] = fileRefs{
			FileSpec: al.next(fmt.Sprintf("attachment %s", name)),
			Data:     al.next(fmt.Sprintf("attachment %s data", name)),
		}
	}
	a.PageFiles = make([][]fileRefs, len(s.pages))
	for i, p := range s.pages {
		if len(p.files) == 0 {
			continue
		}
		refs := make([]fileRefs, len(p.files))
		for j, f := range p.files {
			refs[j] = fileRefs{
				FileSpec: al.next(fmt.Sprintf("page %d attachment %s", i, f.Name)),
				Data:     al.next(fmt.Sprintf("page %d attachment %s data", i, f.Name)),
				Annot:    al.next(fmt.Sprintf("page %d attachment %s annotation", i, f.Name)),
			}
		}
		a.PageFiles[i] = refs
	}

	a.GStates = make([]pdf.Reference, len(s.gstates))
	for i, e := range s.gstates {
		a.GStates[i] = al.next(fmt.Sprintf("graphics state %d", e.ID))
		a.addResource(content.CatExtGState, gstateName(e.ID), a.GStates[i])
	}

	if s.pdfa {
		a.Metadata = al.next("XMP metadata")
		a.OutputIntent = al.next("output intent")
		a.ICC = al.next("ICC profile")
	}

	if s.encrypt {
		a.Encrypt = al.next("encryption dictionary")
	}

	a.kinds = al.kinds
	return a
}

// reserveAnnots reserves one object per annotation, for every page.
// Link annotations and markup annotations are reserved using this
// function, in two separate passes.
func reserveAnnots(al *allocator, pages []*Page, kind string, count func(*Page) int) [][]pdf.Reference {
	res := make([][]pdf.Reference, len(pages))
	for i, p := range pages {
		n := count(p)
		if n == 0 {
			continue
		}
		refs := make([]pdf.Reference, n)
		for j := range refs {
			refs[j] = al.next(fmt.Sprintf("page %d %s %d", i, kind, j))
		}
		res[i] = refs
	}
	return res
}

// resources builds the resource dictionary for a content stream.
func (a *allocation) resources(ops content.Stream) (pdf.Dict, error) {
	res := pdf.Dict{}
	for cat, names := range ops.UsedResources() {
		dict := pdf.Dict{}
		for _, name := range names {
			ref, ok := a.res[cat][name]
			if !ok {
				if cat == content.CatXObject && len(name) > 4 && name[:4] == "Tpl_" {
					return nil, fmt.Errorf("unknown template %q", string(name[4:]))
				}
				return nil, fmt.Errorf("unknown %s resource /%s", cat, name)
			}
			dict[name] = ref
		}
		res[pdf.Name(cat)] = dict
	}
	return res, nil
}
