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


package font

// Flags represents PDF font descriptor flags.
// See section 9.8.2 of ISO 32000-1:2008.
type Flags uint32

// Possible values for PDF font descriptor flags.
const (
	FlagFixedPitch  Flags = 1 << 0  // all glyphs have the same width
	FlagSerif       Flags = 1 << 1  // glyphs have serifs
	FlagSymbolic    Flags = 1 << 2  // glyphs outside the Adobe standard Latin character set
	FlagScript      Flags = 1 << 3  // glyphs resemble cursive handwriting
	FlagNonsymbolic Flags = 1 << 5  // uses (a subset of) the Adobe standard Latin character set
	FlagItalic      Flags = 1 << 6  // dominant vertical strokes are slanted
	FlagAllCap      Flags = 1 << 16 // no lowercase letters
	FlagSmallCap    Flags = 1 << 17 // lowercase letters are small capitals
	FlagForceBold   Flags = 1 << 18 // thicken strokes at small sizes
)
