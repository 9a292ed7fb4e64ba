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

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"

	"seehuhn.de/go/postscript"

	"seehuhn.de/go/pdfgen"
)

// toUnicodeMapping is one line of a bfchar section.
type toUnicodeMapping struct {
	Code  byte
	Value rune
}

// winAnsiToUnicode returns a ToUnicode CMap stream for the character codes
// FirstChar, ..., LastChar of WinAnsiEncoding.
func winAnsiToUnicode() (*pdf.Stream, error) {
	var singles []toUnicodeMapping
	for code := FirstChar; code <= LastChar; code++ {
		r := charmap.Windows1252.DecodeByte(byte(code))
		if unicode.IsControl(r) {
			continue
		}
		singles = append(singles, toUnicodeMapping{Code: byte(code), Value: r})
	}

	buf := &bytes.Buffer{}
	err := toUnicodeTmpl.Execute(buf, singles)
	if err != nil {
		return nil, fmt.Errorf("ToUnicode CMap: %w", err)
	}
	res := &pdf.Stream{
		Data:     buf.Bytes(),
		Compress: true,
	}
	return res, nil
}

const chunkSize = 100

func chunks[T any](x []T) [][]T {
	var res [][]T
	for len(x) >= chunkSize {
		res = append(res, x[:chunkSize])
		x = x[chunkSize:]
	}
	if len(x) > 0 {
		res = append(res, x)
	}
	return res
}

func utf16Hex(r rune) string {
	var parts []string
	for _, v := range utf16.Encode([]rune{r}) {
		parts = append(parts, fmt.Sprintf("%04X", v))
	}
	return "<" + strings.Join(parts, "") + ">"
}

var toUnicodeTmpl = template.Must(template.New("tounicode").Funcs(template.FuncMap{
	"PN": func(s string) string {
		return postscript.Name(s).PS()
	},
	"Chunks": chunks[toUnicodeMapping],
	"Single": func(m toUnicodeMapping) string {
		return fmt.Sprintf("<%02X> %s", m.Code, utf16Hex(m.Value))
	},
}).Parse(`/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CMapName {{PN "Adobe-Identity-UCS"}} def
/CMapType 2 def
/CIDSystemInfo <</Registry (Adobe) /Ordering (UCS) /Supplement 0>> def
1 begincodespacerange
<00> <FF>
endcodespacerange
{{range Chunks . -}}
{{len .}} beginbfchar
{{range . -}}
{{Single .}}
{{end -}}
endbfchar
{{end -}}
endcmap
CMapName currentdict /CMap defineresource pop
end
end
`))
