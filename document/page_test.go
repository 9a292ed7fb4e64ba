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
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/content"
	"seehuhn.de/go/pdfgen/shading"
)

func newTestDoc(t *testing.T) *Document {
	t.Helper()
	doc, err := New(&Options{ID: []byte("0123456789abcdef")})
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestAddPage(t *testing.T) {
	doc := newTestDoc(t)
	for _, size := range [][2]float64{{0, 100}, {100, -1}, {math.NaN(), 100}, {100, math.Inf(1)}} {
		_, err := doc.AddPage(size[0], size[1])
		var argErr *ArgumentError
		if !errors.As(err, &argErr) {
			t.Errorf("%v: got %v, want ArgumentError", size, err)
		}
	}
	if doc.NumPages() != 0 {
		t.Fatal("invalid AddPage modified the document")
	}

	p := doc.AddDefaultPage()
	if p.Width != A4.Dx() || p.Height != A4.Dy() {
		t.Errorf("default page is %gx%g", p.Width, p.Height)
	}
	q, err := doc.AddPage(200, 300)
	if err != nil {
		t.Fatal(err)
	}
	if doc.CurrentPage() != q || doc.CurrentPageIndex() != 1 {
		t.Error("new page is not current")
	}
}

func TestSwitchToPage(t *testing.T) {
	doc := newTestDoc(t)
	doc.AddDefaultPage()
	doc.AddDefaultPage()

	p, err := doc.SwitchToPage(0)
	if err != nil {
		t.Fatal(err)
	}
	if doc.CurrentPage() != p {
		t.Error("SwitchToPage did not change the current page")
	}

	_, err = doc.SwitchToPage(2)
	var idxErr *PageIndexError
	if !errors.As(err, &idxErr) || idxErr.Index != 2 || idxErr.NumPages != 2 {
		t.Errorf("got %v", err)
	}
}

func TestDeleteLastPage(t *testing.T) {
	doc := newTestDoc(t)
	doc.AddDefaultPage()
	if err := doc.DeletePage(0); !errors.Is(err, ErrLastPage) {
		t.Errorf("got %v, want ErrLastPage", err)
	}
	if doc.NumPages() != 1 {
		t.Error("page was deleted")
	}
}

func TestDeletePageCurrent(t *testing.T) {
	doc := newTestDoc(t)
	a := doc.AddDefaultPage()
	doc.AddDefaultPage()
	c := doc.AddDefaultPage()

	if err := doc.DeletePage(1); err != nil {
		t.Fatal(err)
	}
	if doc.CurrentPage() != c {
		t.Error("current page changed")
	}
	if err := doc.DeletePage(1); err != nil {
		t.Fatal(err)
	}
	if doc.CurrentPage() != a || doc.NumPages() != 1 {
		t.Error("wrong current page after deleting the last page")
	}
	if err := doc.DeletePage(5); err == nil {
		t.Error("out of range index accepted")
	}
}

func TestDuplicatePage(t *testing.T) {
	doc := newTestDoc(t)
	p := doc.AddDefaultPage()
	p.SetFillColor(content.Red)
	p.Rectangle(0, 0, 10, 10)
	doc.AddDefaultPage()

	if len(p.ops) != 2 {
		t.Fatalf("page has %d operators", len(p.ops))
	}

	dup, err := doc.DuplicatePage(0)
	if err != nil {
		t.Fatal(err)
	}
	if doc.NumPages() != 3 {
		t.Fatalf("%d pages", doc.NumPages())
	}
	if doc.pages[1] != dup || doc.CurrentPage() != dup {
		t.Error("copy is not inserted after the original")
	}
	if d := cmp.Diff(p.ops, dup.ops); d != "" {
		t.Error(d)
	}

	dup.Fill()
	dup.ops[0].Args[0] = pdf.Number(0.5)
	if len(p.ops) != 2 || p.ops[0].Args[0] != pdf.Number(1) {
		t.Error("copy is not independent of the original")
	}
}

func TestReorderPages(t *testing.T) {
	doc := newTestDoc(t)
	a := doc.AddDefaultPage()
	b := doc.AddDefaultPage()
	c := doc.AddDefaultPage()
	doc.SwitchToPage(0)

	for _, bad := range [][]int{{0, 1}, {0, 1, 1}, {0, 1, 3}, {-1, 0, 1}} {
		if err := doc.ReorderPages(bad); !errors.Is(err, ErrBadPermutation) {
			t.Errorf("%v: got %v", bad, err)
		}
	}

	if err := doc.ReorderPages([]int{2, 0, 1}); err != nil {
		t.Fatal(err)
	}
	for i, want := range []*Page{c, a, b} {
		if doc.pages[i] != want {
			t.Errorf("wrong page at index %d", i)
		}
	}
	if doc.CurrentPage() != a || doc.CurrentPageIndex() != 1 {
		t.Error("current page did not follow the reordering")
	}
}

func TestSetRotationAndExtra(t *testing.T) {
	doc := newTestDoc(t)
	p := doc.AddDefaultPage()
	if err := p.SetRotation(45); err == nil {
		t.Error("invalid rotation accepted")
	}
	if err := p.SetRotation(270); err != nil || p.Rotation() != 270 {
		t.Errorf("rotation: %v %d", err, p.Rotation())
	}

	if err := p.SetExtra("MediaBox", pdf.Array{}); err == nil {
		t.Error("reserved key accepted")
	}
	if err := p.SetExtra("UserUnit", pdf.Number(2)); err != nil {
		t.Fatal(err)
	}
	if err := p.SetExtra("UserUnit", nil); err != nil || len(p.extra) != 0 {
		t.Error("entry not removed")
	}
}

func TestGradientDedup(t *testing.T) {
	doc := newTestDoc(t)
	p := doc.AddDefaultPage()
	mk := func() shading.Gradient {
		return &shading.Linear{
			X1: 100,
			Stops: []shading.Stop{
				{Offset: 0, Color: content.Red},
				{Offset: 1, Color: content.Blue},
			},
		}
	}
	if err := p.FillGradient(mk()); err != nil {
		t.Fatal(err)
	}
	if err := p.SetFillGradient(mk()); err != nil {
		t.Fatal(err)
	}
	if n := doc.gradients.Count(); n != 1 {
		t.Errorf("%d gradients registered", n)
	}

	n := len(p.ops)
	bad := &shading.Linear{Stops: []shading.Stop{{Offset: 0, Color: content.Red}}}
	if err := p.FillGradient(bad); err == nil {
		t.Error("invalid gradient accepted")
	}
	if len(p.ops) != n {
		t.Error("invalid gradient modified the content stream")
	}
}

func TestTextNeedsFont(t *testing.T) {
	doc := newTestDoc(t)
	p := doc.AddDefaultPage()
	if err := p.Text(10, 10, "hello"); !errors.Is(err, errNoFont) {
		t.Errorf("got %v", err)
	}
	if len(p.ops) != 0 {
		t.Error("operators emitted without a font")
	}
}

func TestLayerDedup(t *testing.T) {
	doc := newTestDoc(t)
	l1, err := doc.AddLayer("Notes", true)
	if err != nil {
		t.Fatal(err)
	}
	l2, _ := doc.AddLayer("Notes", false)
	if l1 != l2 || doc.layers.Count() != 1 {
		t.Error("layer not deduplicated")
	}

	other := newTestDoc(t)
	p := other.AddDefaultPage()
	if err := p.BeginLayer(l1); err == nil {
		t.Error("layer of a different document accepted")
	}
}

func TestAnnotationValidation(t *testing.T) {
	doc := newTestDoc(t)
	p := doc.AddDefaultPage()
	r := rect.Rect{LLx: 10, LLy: 10, URx: 50, URy: 30}

	cases := []*Annotation{
		nil,
		{Kind: 0, Rect: r},
		{Kind: Note, Rect: rect.Rect{LLx: 10, LLy: 10, URx: 5, URy: 30}},
		{Kind: Note, Rect: r, Opacity: 2},
		{Kind: Ink, Rect: r},
	}
	for i, a := range cases {
		if err := p.AddAnnotation(a); err == nil {
			t.Errorf("%d: invalid annotation accepted", i)
		}
	}
	if len(p.annots) != 0 {
		t.Error("invalid annotations were stored")
	}

	a := &Annotation{Kind: Highlight, Rect: r, Color: content.RGB{R: 1, G: 1}}
	if err := p.AddAnnotation(a); err != nil {
		t.Fatal(err)
	}
	d := p.annots[0].asDict()
	quad := numbers(10, 30, 50, 30, 10, 10, 50, 10)
	if diff := cmp.Diff(quad, d["QuadPoints"]); diff != "" {
		t.Error(diff)
	}
}

func TestAttachFileDuplicate(t *testing.T) {
	doc := newTestDoc(t)
	a := &Attachment{Name: "data.csv", Data: []byte("a,b\n1,2\n")}
	if err := doc.AttachFile(a); err != nil {
		t.Fatal(err)
	}
	if err := doc.AttachFile(a); err != nil {
		t.Errorf("identical attachment rejected: %v", err)
	}
	b := &Attachment{Name: "data.csv", Data: []byte("other")}
	if err := doc.AttachFile(b); err == nil {
		t.Error("conflicting attachment accepted")
	}
	if doc.attachments.Count() != 1 {
		t.Error("attachment stored twice")
	}
}

func TestAddField(t *testing.T) {
	doc := newTestDoc(t)
	r := rect.Rect{LLx: 100, LLy: 700, URx: 300, URy: 720}
	if err := doc.AddField(&Field{Kind: TextField, Name: "name", Rect: r}); err != nil {
		t.Fatal(err)
	}
	if err := doc.AddField(&Field{Kind: CheckBox, Name: "name", Rect: r}); err == nil {
		t.Error("duplicate field name accepted")
	}
	err := doc.AddField(&Field{Kind: ComboBox, Name: "c", Rect: r, Options: []string{"a", "b"}, Value: "x"})
	if err == nil {
		t.Error("value outside the options accepted")
	}
}

func TestOutlineCount(t *testing.T) {
	doc := newTestDoc(t)
	ch1, _ := doc.AddBookmark("Chapter 1", 0, nil)
	ch1.Open = true
	doc.AddBookmark("Section 1.1", 0, ch1)
	s12, _ := doc.AddBookmark("Section 1.2", 0, ch1)
	doc.AddBookmark("Section 1.2.1", 0, s12) // s12 is closed
	doc.AddBookmark("Chapter 2", 0, nil)

	if n := visibleCount(doc.outline); n != 4 {
		t.Errorf("visible count %d, want 4", n)
	}
	var titles []string
	for _, b := range flattenOutline(doc.outline) {
		titles = append(titles, b.Title)
	}
	want := []string{"Chapter 1", "Section 1.1", "Section 1.2", "Section 1.2.1", "Chapter 2"}
	if d := cmp.Diff(want, titles); d != "" {
		t.Error(d)
	}
}

func TestWatermarkInvalidColor(t *testing.T) {
	doc := newTestDoc(t)
	p := doc.AddDefaultPage()
	err := p.AddWatermark(Watermark{Text: "X", Color: content.RGB{R: math.NaN()}})
	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("got %v, want ArgumentError", err)
	}
	if doc.fonts.Count() != 0 || doc.gstates.Count() != 0 || doc.watermarks.Count() != 0 {
		t.Errorf("registries changed: %d fonts, %d gstates, %d watermarks",
			doc.fonts.Count(), doc.gstates.Count(), doc.watermarks.Count())
	}
	if len(p.ops) != 0 {
		t.Error("invalid watermark modified the content stream")
	}

	// the ids used inside the form match the registered resources
	if err := p.AddWatermark(Watermark{Text: "X"}); err != nil {
		t.Fatal(err)
	}
	form := doc.watermarks.Entries()[0].Payload
	used := form.ops.UsedResources()
	if d := cmp.Diff([]pdf.Name{fontName(1)}, used[content.CatFont]); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff([]pdf.Name{gstateName(1)}, used[content.CatExtGState]); d != "" {
		t.Error(d)
	}
}

func TestTypedNilGradient(t *testing.T) {
	doc := newTestDoc(t)
	p := doc.AddDefaultPage()
	for _, g := range []shading.Gradient{(*shading.Linear)(nil), (*shading.Radial)(nil)} {
		if err := p.FillGradient(g); err == nil {
			t.Errorf("%T accepted", g)
		}
	}
	if doc.gradients.Count() != 0 || len(p.ops) != 0 {
		t.Error("nil gradient modified the document")
	}
}

func TestDuplicatePageOpenState(t *testing.T) {
	doc := newTestDoc(t)
	p := doc.AddDefaultPage()
	p.PushGraphicsState()
	p.Rectangle(0, 0, 10, 10)
	dup, err := doc.DuplicatePage(0)
	if err != nil {
		t.Fatal(err)
	}
	p.Fill()
	p.PopGraphicsState()
	if _, err := doc.Generate(); err == nil {
		t.Error("unbalanced copy accepted")
	}

	doc = newTestDoc(t)
	p = doc.AddDefaultPage()
	p.PushGraphicsState()
	dup, err = doc.DuplicatePage(0)
	if err != nil {
		t.Fatal(err)
	}
	p.PopGraphicsState()
	dup.PopGraphicsState()
	if dup.Err != nil {
		t.Errorf("Q after q on the copy: %v", dup.Err)
	}
	if _, err := doc.Generate(); err != nil {
		t.Error(err)
	}
}
