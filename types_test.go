// seehuhn.de/go/pdfgen - a library for generating PDF files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
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

package pdf

import (
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in  Object
		out string
	}{
		{nil, "null"},
		{Integer(12), "12"},
		{Real(1), "1."},
		{Real(-0.5), "-0.5"},
		{Number(3), "3"},
		{Number(0.1 + 0.2), "0.3"},
		{Number(-0.000001), "0"},
		{Bool(true), "true"},
		{Name("Type"), "/Type"},
		{Name("A B#"), "/A#20B#23"},
		{String("a"), "(a)"},
		{String("a (test version)"), "(a (test version))"},
		{String("a (test version"), "(a \\(test version)"},
		{String(""), "()"},
		{String("\000"), "<00>"},
		{HexString{0xAB, 0x01}, "<AB01>"},
		{Array{Integer(1), nil, Integer(3)}, "[1 null 3]"},
		{Dict{"B": Integer(2), "A": Integer(1), "C": nil}, "<<\n/A 1\n/B 2\n>>"},
		{NewReference(7, 0), "7 0 R"},
		{Raw("[(x) 1]"), "[(x) 1]"},
	}
	for _, test := range cases {
		out := Format(test.in)
		if out != test.out {
			t.Errorf("%v wrongly formatted, expected %q but got %q",
				test.in, test.out, out)
		}
	}
}

func TestStreamLength(t *testing.T) {
	stm := &Stream{
		Dict: Dict{"Type": Name("XObject")},
		Data: []byte("0123456789"),
	}
	got := Format(stm)
	want := "<<\n/Length 10\n/Type /XObject\n>>\nstream\n0123456789\nendstream"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if _, present := stm.Dict["Length"]; present {
		t.Error("formatting modified the stream dictionary")
	}
}

func TestTextString(t *testing.T) {
	if got := TextString("hello"); string(got) != "hello" {
		t.Errorf("ASCII text changed: %q", got)
	}
	got := TextString("ein Bär")
	want := "\xfe\xff\x00e\x00i\x00n\x00 \x00B\x00\xe4\x00r"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDateString(t *testing.T) {
	PST := time.FixedZone("PST", -8*60*60)
	got := Date(time.Date(1998, 12, 23, 19, 52, 0, 0, PST))
	want := "D:19981223195200-08'00'"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestVersion(t *testing.T) {
	for _, s := range []string{"1.0", "1.3", "1.4", "1.7", "2.0"} {
		v, err := ParseVersion(s)
		if err != nil {
			t.Fatal(err)
		}
		if v.String() != s {
			t.Errorf("%s round-tripped to %s", s, v)
		}
	}
	if _, err := ParseVersion("3.1"); err != ErrVersion {
		t.Errorf("unexpected error %v", err)
	}
}
