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
	"bytes"
	"testing"

	"seehuhn.de/go/icc"
)

func TestSRGBProfile(t *testing.T) {
	data := srgbProfile()
	p, err := icc.Decode(append([]byte(nil), data...))
	if err != nil {
		t.Fatal(err)
	}
	if p.ColorSpace != icc.RGBSpace || p.ColorSpace.NumComponents() != 3 {
		t.Errorf("colour space %s", p.ColorSpace)
	}
	if p.Class != icc.DisplayDeviceProfile || p.PCS != icc.CIEXYZSpace {
		t.Errorf("class %s, PCS %s", p.Class, p.PCS)
	}
	if p.Version != icc.Version2_1_0 {
		t.Errorf("version %s", p.Version)
	}

	for _, tag := range []icc.TagType{
		icc.ProfileDescription, icc.Copyright, tagWhitePoint,
		tagRedXYZ, tagGreenXYZ, tagBlueXYZ,
		tagRedTRC, tagGreenTRC, tagBlueTRC,
	} {
		if _, ok := p.TagData[tag]; !ok {
			t.Errorf("missing tag %s", tag)
		}
	}

	// D50 white point: 0.9642, 1.0, 0.8249 as s15Fixed16
	wtpt := []byte{
		'X', 'Y', 'Z', ' ', 0, 0, 0, 0,
		0x00, 0x00, 0xf6, 0xd6,
		0x00, 0x01, 0x00, 0x00,
		0x00, 0x00, 0xd3, 0x2d,
	}
	if !bytes.Equal(p.TagData[tagWhitePoint], wtpt) {
		t.Errorf("white point % x", p.TagData[tagWhitePoint])
	}

	cprt, err := p.Copyright()
	if err != nil || len(cprt) != 1 || cprt[0].Value != "No copyright, use freely" {
		t.Errorf("copyright %v, %v", cprt, err)
	}

	if !bytes.Equal(data, srgbProfile()) {
		t.Error("profile is not deterministic")
	}
}

func TestSRGBCurve(t *testing.T) {
	trc := curveTag(1024, srgbDecode)
	if len(trc) != 12+2*1024 {
		t.Fatalf("curve tag has %d bytes", len(trc))
	}
	first := uint16(trc[12])<<8 | uint16(trc[13])
	last := uint16(trc[len(trc)-2])<<8 | uint16(trc[len(trc)-1])
	if first != 0 || last != 0xFFFF {
		t.Errorf("curve runs from %d to %d", first, last)
	}
}
