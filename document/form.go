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

	"golang.org/x/exp/slices"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfgen"
)

// FieldKind is the type of an interactive form field.
type FieldKind int

// These are the supported form field types.
const (
	TextField FieldKind = iota + 1
	CheckBox
	ComboBox
	ListBox
	SignatureField
)

// Field flags, see table 227 ff. in ISO 32000-2:2020.
const (
	ffReadOnly  = 1 << 0
	ffRequired  = 1 << 1
	ffMultiline = 1 << 12
	ffCombo     = 1 << 17
)

// Field is an interactive form field.  Each field has a single widget
// annotation, and the field and the widget share one dictionary.
type Field struct {
	Kind FieldKind

	// Name is the partial field name.  Names must be unique within a
	// document.
	Name string

	Page int
	Rect rect.Rect

	// Value is the initial value of text and choice fields.
	Value string

	// Checked is the initial state of a check box.
	Checked bool

	// Options lists the choices of combo boxes and list boxes.
	Options []string

	MaxLen    int // text fields only; 0 means unlimited
	Multiline bool
	ReadOnly  bool
	Required  bool
	FontSize  float64 // 0 means auto-size
}

// AddField adds an interactive form field to the document.  The page
// index is checked when the document is generated.
func (doc *Document) AddField(f *Field) error {
	if f == nil {
		return argError("AddField", "missing field")
	}
	if f.Kind < TextField || f.Kind > SignatureField {
		return argError("AddField", "unknown field kind %d", f.Kind)
	}
	if f.Name == "" {
		return argError("AddField", "field without a name")
	}
	for _, g := range doc.fields {
		if g.Name == f.Name {
			return argError("AddField", "duplicate field name %q", f.Name)
		}
	}
	if !validRect(f.Rect) {
		return argError("AddField", "invalid rectangle %v", f.Rect)
	}
	if f.MaxLen < 0 || f.FontSize < 0 {
		return argError("AddField", "negative length or font size")
	}
	if (f.Kind == ComboBox || f.Kind == ListBox) && f.Value != "" &&
		!slices.Contains(f.Options, f.Value) {
		return argError("AddField", "value %q is not one of the options", f.Value)
	}

	c := *f
	c.Options = slices.Clone(f.Options)
	doc.fields = append(doc.fields, &c)
	return nil
}

// fieldDict returns the merged field and widget dictionary.
func (f *Field) fieldDict(pageRef pdf.Reference) pdf.Dict {
	dict := pdf.Dict{
		"Type":    pdf.Name("Annot"),
		"Subtype": pdf.Name("Widget"),
		"Rect":    rectArray(f.Rect),
		"P":       pageRef,
		"T":       pdf.TextString(f.Name),
		"F":       pdf.Integer(4), // print
	}

	var flags int
	if f.ReadOnly {
		flags |= ffReadOnly
	}
	if f.Required {
		flags |= ffRequired
	}

	switch f.Kind {
	case TextField:
		dict["FT"] = pdf.Name("Tx")
		if f.Multiline {
			flags |= ffMultiline
		}
		if f.MaxLen > 0 {
			dict["MaxLen"] = pdf.Integer(f.MaxLen)
		}
		if f.Value != "" {
			dict["V"] = pdf.TextString(f.Value)
		}
	case CheckBox:
		dict["FT"] = pdf.Name("Btn")
		state := pdf.Name("Off")
		if f.Checked {
			state = "Yes"
		}
		dict["V"] = state
		dict["AS"] = state
	case ComboBox, ListBox:
		dict["FT"] = pdf.Name("Ch")
		if f.Kind == ComboBox {
			flags |= ffCombo
		}
		opts := make(pdf.Array, len(f.Options))
		for i, o := range f.Options {
			opts[i] = pdf.TextString(o)
		}
		dict["Opt"] = opts
		if f.Value != "" {
			dict["V"] = pdf.TextString(f.Value)
		}
	case SignatureField:
		dict["FT"] = pdf.Name("Sig")
	}

	if flags != 0 {
		dict["Ff"] = pdf.Integer(flags)
	}
	if f.Kind != SignatureField {
		dict["DA"] = pdf.String(fmt.Sprintf("/Helv %s Tf 0 g", pdf.Format(pdf.Number(f.FontSize))))
	}
	return dict
}

// acroFormDict returns the interactive form dictionary.
func acroFormDict(fields []pdf.Reference, helv pdf.Object) pdf.Dict {
	list := make(pdf.Array, len(fields))
	for i, ref := range fields {
		list[i] = ref
	}
	return pdf.Dict{
		"Fields":          list,
		"NeedAppearances": pdf.Bool(true),
		"DA":              pdf.String("/Helv 0 Tf 0 g"),
		"DR": pdf.Dict{
			"Font": pdf.Dict{"Helv": helv},
		},
	}
}
