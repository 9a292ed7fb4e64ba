// seehuhn.de/go/pdfgen - a library for generating PDF files
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
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

package crypt

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	errUnterminatedString = errors.New("crypt: unterminated string")
	errMalformedHex       = errors.New("crypt: malformed hex string")
)

// EncryptLiteralStrings locates all strings in the PDF syntax fragment raw,
// replaces each by enc applied to the decoded string bytes, and returns the
// rewritten fragment.  Replaced strings are always written in hexadecimal
// form.
//
// Literal strings are delimited by balanced parentheses.  Inside a literal
// string the following escapes are recognised:
//
//	\n \r \t \b \f    control characters
//	\( \) \\          literal parenthesis or backslash
//	\ddd              one to three octal digits
//	\<end of line>    line continuation, produces no output
//
// A backslash before any other character is ignored.  An unescaped end of
// line (CR, LF, or CR LF) inside a string is read as a single LF.
//
// Hexadecimal strings "<...>" are decoded as well; dictionary delimiters
// "<<" and ">>" are copied unchanged.  Comments run from "%" to the end of
// the line and are copied unchanged, including any parentheses they
// contain.
func EncryptLiteralStrings(raw []byte, enc func([]byte) []byte) ([]byte, error) {
	out := &bytes.Buffer{}
	i := 0
	for i < len(raw) {
		c := raw[i]
		switch {
		case c == '%':
			j := i
			for j < len(raw) && raw[j] != '\n' && raw[j] != '\r' {
				j++
			}
			out.Write(raw[i:j])
			i = j
		case c == '(':
			s, next, err := scanLiteral(raw, i)
			if err != nil {
				return nil, err
			}
			fmt.Fprintf(out, "<%X>", enc(s))
			i = next
		case c == '<' && i+1 < len(raw) && raw[i+1] == '<':
			out.WriteString("<<")
			i += 2
		case c == '<':
			s, next, err := scanHex(raw, i)
			if err != nil {
				return nil, err
			}
			fmt.Fprintf(out, "<%X>", enc(s))
			i = next
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.Bytes(), nil
}

// scanLiteral decodes the literal string starting at raw[start] == '('.
// It returns the string bytes and the position after the closing
// parenthesis.
func scanLiteral(raw []byte, start int) ([]byte, int, error) {
	var s []byte
	level := 0
	i := start + 1
	for i < len(raw) {
		c := raw[i]
		i++
		switch c {
		case '(':
			level++
			s = append(s, c)
		case ')':
			if level == 0 {
				return s, i, nil
			}
			level--
			s = append(s, c)
		case '\r':
			if i < len(raw) && raw[i] == '\n' {
				i++
			}
			s = append(s, '\n')
		case '\\':
			if i >= len(raw) {
				return nil, 0, errUnterminatedString
			}
			e := raw[i]
			i++
			switch e {
			case 'n':
				s = append(s, '\n')
			case 'r':
				s = append(s, '\r')
			case 't':
				s = append(s, '\t')
			case 'b':
				s = append(s, '\b')
			case 'f':
				s = append(s, '\f')
			case '(', ')', '\\':
				s = append(s, e)
			case '\r':
				if i < len(raw) && raw[i] == '\n' {
					i++
				}
			case '\n':
				// line continuation
			case '0', '1', '2', '3', '4', '5', '6', '7':
				val := int(e - '0')
				for k := 0; k < 2 && i < len(raw) && raw[i] >= '0' && raw[i] <= '7'; k++ {
					val = val*8 + int(raw[i]-'0')
					i++
				}
				s = append(s, byte(val))
			default:
				s = append(s, e)
			}
		default:
			s = append(s, c)
		}
	}
	return nil, 0, errUnterminatedString
}

// scanHex decodes the hexadecimal string starting at raw[start] == '<'.
// White space is ignored, and a missing final digit is taken as 0.
func scanHex(raw []byte, start int) ([]byte, int, error) {
	var s []byte
	var hi byte
	odd := false
	for i := start + 1; i < len(raw); i++ {
		c := raw[i]
		var v byte
		switch {
		case c == '>':
			if odd {
				s = append(s, hi<<4)
			}
			return s, i + 1, nil
		case c >= '0' && c <= '9':
			v = c - '0'
		case c >= 'a' && c <= 'f':
			v = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			v = c - 'A' + 10
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == 0:
			continue
		default:
			return nil, 0, errMalformedHex
		}
		if odd {
			s = append(s, hi<<4|v)
		} else {
			hi = v
		}
		odd = !odd
	}
	return nil, 0, errUnterminatedString
}
