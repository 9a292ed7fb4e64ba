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

package content

import (
	"golang.org/x/exp/slices"

	"seehuhn.de/go/pdfgen"
)

// Category is a resource category, i.e. a key of a resource dictionary.
type Category pdf.Name

// These are the resource categories which content streams can refer to.
const (
	CatFont       Category = "Font"
	CatXObject    Category = "XObject"
	CatExtGState  Category = "ExtGState"
	CatPattern    Category = "Pattern"
	CatShading    Category = "Shading"
	CatProperties Category = "Properties"
)

// UsedResources returns the resource names referenced by the operators in
// the stream, grouped by category.  Each list is sorted and free of
// duplicates.
func (s Stream) UsedResources() map[Category][]pdf.Name {
	res := make(map[Category][]pdf.Name)
	add := func(cat Category, obj pdf.Object) {
		if name, ok := obj.(pdf.Name); ok {
			res[cat] = append(res[cat], name)
		}
	}
	for _, op := range s {
		n := len(op.Args)
		switch op.Name {
		case OpTextSetFont:
			if n >= 1 {
				add(CatFont, op.Args[0])
			}
		case OpXObject:
			if n >= 1 {
				add(CatXObject, op.Args[0])
			}
		case OpSetExtGState:
			if n >= 1 {
				add(CatExtGState, op.Args[0])
			}
		case OpSetFillColorN, OpSetStrokeColorN:
			if n >= 1 {
				add(CatPattern, op.Args[n-1])
			}
		case OpShading:
			if n >= 1 {
				add(CatShading, op.Args[0])
			}
		case OpBeginMarkedContentWithProperties:
			if n >= 2 {
				add(CatProperties, op.Args[1])
			}
		}
	}
	for cat, names := range res {
		slices.Sort(names)
		res[cat] = slices.Compact(names)
	}
	return res
}
