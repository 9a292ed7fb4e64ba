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
	"encoding/binary"
	"math"
	"time"

	"seehuhn.de/go/icc"
)

// ICC tag signatures used by a matrix/TRC display profile.
const (
	tagWhitePoint icc.TagType = 0x77747074 // "wtpt"
	tagRedXYZ     icc.TagType = 0x7258595A // "rXYZ"
	tagGreenXYZ   icc.TagType = 0x6758595A // "gXYZ"
	tagBlueXYZ    icc.TagType = 0x6258595A // "bXYZ"
	tagRedTRC     icc.TagType = 0x72545243 // "rTRC"
	tagGreenTRC   icc.TagType = 0x67545243 // "gTRC"
	tagBlueTRC    icc.TagType = 0x62545243 // "bTRC"
)

// srgbProfile returns a version 2 ICC profile for the sRGB colour space.
// The primaries are the D50-adapted sRGB primaries, and the tone curves
// sample the sRGB transfer function.
func srgbProfile() []byte {
	trc := curveTag(1024, srgbDecode)
	p := &icc.Profile{
		Version:         icc.Version2_1_0,
		Class:           icc.DisplayDeviceProfile,
		ColorSpace:      icc.RGBSpace,
		PCS:             icc.CIEXYZSpace,
		CreationDate:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		RenderingIntent: icc.Perceptual,
		TagData: map[icc.TagType][]byte{
			icc.ProfileDescription: descTag("sRGB IEC61966-2.1"),
			icc.Copyright:          textTag("No copyright, use freely"),
			tagWhitePoint:          xyzTag(0.9642, 1.0, 0.8249),
			tagRedXYZ:              xyzTag(0.4361, 0.2225, 0.0139),
			tagGreenXYZ:            xyzTag(0.3851, 0.7169, 0.0971),
			tagBlueXYZ:             xyzTag(0.1431, 0.0606, 0.7141),
			tagRedTRC:              trc,
			tagGreenTRC:            trc,
			tagBlueTRC:             trc,
		},
	}
	return p.Encode()
}

func srgbDecode(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// xyzTag encodes an XYZType tag with a single s15Fixed16 triple.
func xyzTag(x, y, z float64) []byte {
	buf := make([]byte, 20)
	copy(buf, "XYZ ")
	for i, v := range []float64{x, y, z} {
		binary.BigEndian.PutUint32(buf[8+4*i:], uint32(int32(math.Round(v*65536))))
	}
	return buf
}

// curveTag encodes a curveType tag with n samples of f on [0, 1].
func curveTag(n int, f func(float64) float64) []byte {
	buf := make([]byte, 12+2*n)
	copy(buf, "curv")
	binary.BigEndian.PutUint32(buf[8:], uint32(n))
	for i := range n {
		y := f(float64(i) / float64(n-1))
		binary.BigEndian.PutUint16(buf[12+2*i:], uint16(math.Round(y*65535)))
	}
	return buf
}

// textTag encodes a textType tag.
func textTag(s string) []byte {
	buf := make([]byte, 8+len(s)+1)
	copy(buf, "text")
	copy(buf[8:], s)
	return buf
}

// descTag encodes a version 2 textDescriptionType tag with an ASCII
// description and empty Unicode and ScriptCode parts.
func descTag(s string) []byte {
	n := len(s) + 1
	buf := make([]byte, 12+n+4+4+2+1+67)
	copy(buf, "desc")
	binary.BigEndian.PutUint32(buf[8:], uint32(n))
	copy(buf[12:], s)
	return buf
}
