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

// Bookmark is an entry in the document outline.
type Bookmark struct {
	Title string
	Page  int

	// Top is the vertical position shown at the top of the window.
	// Zero selects the top edge of the page.
	Top float64

	// Open controls whether the children of the bookmark are shown
	// initially.
	Open bool

	parent   *Bookmark
	children []*Bookmark
}

// AddBookmark adds an entry to the document outline.  If parent is nil,
// a top-level entry is created.  The page index is checked when the
// document is generated.
func (doc *Document) AddBookmark(title string, page int, parent *Bookmark) (*Bookmark, error) {
	if title == "" {
		return nil, argError("AddBookmark", "empty title")
	}
	if page < 0 {
		return nil, argError("AddBookmark", "invalid page index %d", page)
	}
	b := &Bookmark{Title: title, Page: page, parent: parent}
	if parent == nil {
		doc.outline = append(doc.outline, b)
	} else {
		parent.children = append(parent.children, b)
	}
	return b, nil
}

// Children returns the direct children of the bookmark.
func (b *Bookmark) Children() []*Bookmark {
	return b.children
}

// flattenOutline lists all bookmarks in depth-first pre-order.
func flattenOutline(items []*Bookmark) []*Bookmark {
	var res []*Bookmark
	var walk func([]*Bookmark)
	walk = func(items []*Bookmark) {
		for _, b := range items {
			res = append(res, b)
			walk(b.children)
		}
	}
	walk(items)
	return res
}

// visibleCount returns the number of descendants of b which are visible
// when the outline is first displayed.
func visibleCount(items []*Bookmark) int {
	n := 0
	for _, b := range items {
		n++
		if b.Open {
			n += visibleCount(b.children)
		}
	}
	return n
}
