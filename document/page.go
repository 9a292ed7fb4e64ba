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
	"golang.org/x/exp/slices"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/content"
)

// Page represents a page in a PDF document.
// The contents of the page are drawn using the [Surface] methods.
type Page struct {
	*Surface

	Width, Height float64

	rotate int
	ops    content.Stream
	links  []*Link
	annots []*Annotation
	files  []*Attachment
	extra  pdf.Dict
}

// AppendOperator implements the [content.Sink] interface.
func (p *Page) AppendOperator(op content.Operator) {
	p.ops = append(p.ops, op)
}

// Operators returns the content stream of the page.
func (p *Page) Operators() content.Stream {
	return p.ops
}

// Rotation returns the page rotation in degrees.
func (p *Page) Rotation() int {
	return p.rotate
}

// SetRotation sets the number of degrees by which the page is rotated
// clockwise when displayed.  This must be 0, 90, 180 or 270.
func (p *Page) SetRotation(degrees int) error {
	switch degrees {
	case 0, 90, 180, 270:
		p.rotate = degrees
		return nil
	}
	return argError("SetRotation", "invalid rotation %d", degrees)
}

// pageKeys are the page dictionary entries which are managed by the
// document and cannot be set using [Page.SetExtra].
var pageKeys = []pdf.Name{
	"Type", "Parent", "Contents", "Resources", "MediaBox", "Rotate", "Annots",
}

// SetExtra adds an entry to the page dictionary.  The value may be a
// [pdf.Raw] fragment; literal strings inside raw fragments are encrypted
// if the document is encrypted.  A nil value removes the entry.
func (p *Page) SetExtra(key pdf.Name, val pdf.Object) error {
	if slices.Contains(pageKeys, key) {
		return argError("SetExtra", "/%s cannot be overridden", key)
	}
	if val == nil {
		delete(p.extra, key)
		return nil
	}
	if p.extra == nil {
		p.extra = pdf.Dict{}
	}
	p.extra[key] = val
	return nil
}

func (doc *Document) newPage(w, h float64) *Page {
	p := &Page{Width: w, Height: h}
	p.Surface = newSurface(doc, p)
	return p
}

// AddPage appends a new page of the given size and makes it the current
// page.
func (doc *Document) AddPage(width, height float64) (*Page, error) {
	if !validSize(width, height) {
		return nil, argError("AddPage", "invalid page size %gx%g", width, height)
	}
	p := doc.newPage(width, height)
	doc.pages = append(doc.pages, p)
	doc.current = len(doc.pages) - 1
	return p, nil
}

// AddDefaultPage appends a new page using the default page size of the
// document.
func (doc *Document) AddDefaultPage() *Page {
	p, _ := doc.AddPage(doc.pageSize.Dx(), doc.pageSize.Dy())
	return p
}

// NumPages returns the number of pages.
func (doc *Document) NumPages() int {
	return len(doc.pages)
}

// CurrentPage returns the current page, or nil if the document has no
// pages.
func (doc *Document) CurrentPage() *Page {
	if len(doc.pages) == 0 {
		return nil
	}
	return doc.pages[doc.current]
}

// CurrentPageIndex returns the index of the current page.
func (doc *Document) CurrentPageIndex() int {
	return doc.current
}

// Page returns the page with index i.
func (doc *Document) Page(i int) (*Page, error) {
	if err := doc.checkIndex(i); err != nil {
		return nil, err
	}
	return doc.pages[i], nil
}

func (doc *Document) checkIndex(i int) error {
	if i < 0 || i >= len(doc.pages) {
		return &PageIndexError{Index: i, NumPages: len(doc.pages)}
	}
	return nil
}

// SwitchToPage makes page i the current page.
func (doc *Document) SwitchToPage(i int) (*Page, error) {
	if err := doc.checkIndex(i); err != nil {
		return nil, err
	}
	doc.current = i
	return doc.pages[i], nil
}

// DeletePage removes page i.  The last remaining page cannot be deleted.
func (doc *Document) DeletePage(i int) error {
	if err := doc.checkIndex(i); err != nil {
		return err
	}
	if len(doc.pages) == 1 {
		return ErrLastPage
	}
	doc.pages = slices.Delete(doc.pages, i, i+1)
	if doc.current > i || doc.current == len(doc.pages) {
		doc.current--
	}
	return nil
}

// DuplicatePage inserts a copy of page i immediately after page i, and
// makes the copy the current page.  The content stream, annotations,
// attachments and extra entries of the page are copied.  Graphics states
// and text objects which are open on page i are also open on the copy.
func (doc *Document) DuplicatePage(i int) (*Page, error) {
	if err := doc.checkIndex(i); err != nil {
		return nil, err
	}
	orig := doc.pages[i]

	p := doc.newPage(orig.Width, orig.Height)
	p.rotate = orig.rotate
	p.ops = orig.ops.Clone()
	p.CopyState(orig.Canvas)
	p.font, p.fontName, p.fontSize = orig.font, orig.fontName, orig.fontSize
	for _, l := range orig.links {
		c := *l
		p.links = append(p.links, &c)
	}
	for _, a := range orig.annots {
		p.annots = append(p.annots, a.clone())
	}
	for _, f := range orig.files {
		p.files = append(p.files, f.clone())
	}
	p.extra = orig.extra.Clone()

	doc.pages = slices.Insert(doc.pages, i+1, p)
	doc.current = i + 1
	return p, nil
}

// ReorderPages rearranges the pages.  After the call, page k is the page
// which previously had index order[k].  The current page stays the same
// page, at its new index.
func (doc *Document) ReorderPages(order []int) error {
	n := len(doc.pages)
	if len(order) != n {
		return ErrBadPermutation
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return ErrBadPermutation
		}
		seen[idx] = true
	}

	pages := make([]*Page, n)
	current := 0
	for k, idx := range order {
		pages[k] = doc.pages[idx]
		if idx == doc.current {
			current = k
		}
	}
	doc.pages = pages
	doc.current = current
	return nil
}
