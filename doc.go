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

// Package pdf implements the native PDF object types and a writer for the
// file structure of a PDF file.
//
// A [Writer] writes numbered indirect objects to a PDF file, one after
// the other, and finally the cross-reference table and the trailer:
//
//	w, err := pdf.NewWriter(out, &pdf.WriterOptions{Version: pdf.V1_7})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = w.WriteIndirect(pdf.NewReference(1, 0), pdf.Dict{
//	    "Type":  pdf.Name("Catalog"),
//	    "Pages": pdf.NewReference(2, 0),
//	})
//	...
//	err = w.Close(pdf.Dict{"Root": pdf.NewReference(1, 0)})
//
// The following types implement the native PDF object types.
// All of these implement the [Object] interface:
//
//	Array
//	Bool
//	Dict
//	HexString
//	Integer
//	Name
//	Number
//	Real
//	Reference
//	Stream
//	String
//
// Complete documents with pages, fonts and images are assembled by the
// subpackage document.
package pdf
